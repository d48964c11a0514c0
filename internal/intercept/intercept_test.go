package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/config"
	"github.com/banshee-data/targeting/internal/kinematics"
)

func body(px, py, vx, vy, ax, ay float64) kinematics.Model {
	return kinematics.Model{Pos: r2.Vec{X: px, Y: py}, Vel: r2.Vec{X: vx, Y: vy}, Acc: r2.Vec{X: ax, Y: ay}}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("fixed_index")
	require.NoError(t, err)
	assert.Equal(t, FixedIndex, p)

	p, err = ParsePolicy("earliest_positive")
	require.NoError(t, err)
	assert.Equal(t, EarliestPositive, p)
	assert.Equal(t, "earliest_positive", p.String())

	_, err = ParsePolicy("latest")
	assert.Error(t, err)
}

func TestNewSolver(t *testing.T) {
	t.Parallel()

	s, err := NewSolver(config.DefaultTuningConfig())
	require.NoError(t, err)
	assert.Equal(t, FixedIndex, s.Policy)
	assert.Positive(t, s.ProjectileSpeed)
}

func TestFiringSolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		shooter kinematics.Model
		target  kinematics.Model
		speed   float64
		want    float64
	}{
		{
			name:    "crossing target",
			shooter: body(0, 0, 0, 0, 0, 0),
			target:  body(1000, 0, 0, 100, 0, 10),
			speed:   1000,
			want:    1.0055614734843648,
		},
		{
			name:    "closing target",
			shooter: body(0, 0, 0, 0, 0, 0),
			target:  body(3000, 500, -50, 100, 5, -10),
			speed:   1000,
			want:    2.9705390652389694,
		},
		{
			name:    "moving shooter",
			shooter: body(100, 100, 10, 0, 0, 0),
			target:  body(3000, 500, -50, 100, 5, -10),
			speed:   1000,
			want:    2.8245334583209836,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs, ok := NewFiringSolution(tt.shooter, tt.speed, tt.target, FixedIndex)
			require.True(t, ok)
			assert.InDelta(t, tt.want, fs.ImpactTime, 1e-9)

			// The projectile covers speed*t in the shooter's frame.
			dist := r2.Norm(r2.Sub(fs.ImpactPoint, tt.shooter.Pos))
			assert.InEpsilon(t, tt.speed*fs.ImpactTime, dist, 1e-6)

			assert.Equal(t, tt.target.Vel, fs.Velocity())
			assert.Equal(t, tt.target.Acc, fs.Acceleration())
			assert.Equal(t, fs.ImpactPoint, fs.Position())
		})
	}
}

func TestFiringSolutionRootPolicy(t *testing.T) {
	t.Parallel()

	shooter := body(0, 0, 0, 0, 0, 0)

	// Both roots lie in the past: the target is receding faster than the
	// projectile.
	receding := body(-1000, 0, -100, 0, 0, 3)

	fs, ok := NewFiringSolution(shooter, 100, receding, FixedIndex)
	require.True(t, ok)
	assert.Negative(t, fs.ImpactTime)
	assert.InDelta(t, -42.82, fs.ImpactTime, 0.01)

	_, ok = NewFiringSolution(shooter, 100, receding, EarliestPositive)
	assert.False(t, ok)

	// Two positive roots: both policies agree on the earlier one.
	passing := body(500, 300, 200, -300, -20, 3)
	fixed, ok := NewFiringSolution(shooter, 300, passing, FixedIndex)
	require.True(t, ok)
	earliest, ok := NewFiringSolution(shooter, 300, passing, EarliestPositive)
	require.True(t, ok)
	assert.InDelta(t, 9.3629, fixed.ImpactTime, 1e-3)
	assert.InDelta(t, fixed.ImpactTime, earliest.ImpactTime, 1e-12)
}

func TestFiringSolutionBarelyAcceleratingTarget(t *testing.T) {
	t.Parallel()

	shooter := body(0, 0, 0, 0, 0, 0)
	for _, accel := range []float64{1, 0.01, 0.001} {
		target := body(1000, 0, 0, 100, 0, accel)

		fs, ok := NewFiringSolution(shooter, 1000, target, FixedIndex)
		require.True(t, ok, "accel=%v", accel)
		assert.InDelta(t, 1.00504, fs.ImpactTime, 1e-4, "accel=%v", accel)

		dist := r2.Norm(r2.Sub(fs.ImpactPoint, shooter.Pos))
		assert.InDelta(t, 1000*fs.ImpactTime, dist, 1e-6, "accel=%v", accel)
	}
}

func TestFiringSolutionNonAcceleratingTarget(t *testing.T) {
	t.Parallel()

	// The leading coefficient vanishes and the quartic is not solved.
	_, ok := NewFiringSolution(body(0, 0, 0, 0, 0, 0), 1000, body(1000, 0, 0, 100, 0, 0), FixedIndex)
	assert.False(t, ok)
}

func TestIntercept(t *testing.T) {
	t.Parallel()

	vessel := body(0, 0, 0, 0, 0, 0)

	tests := []struct {
		name   string
		target kinematics.Model
		want   float64
	}{
		{name: "accelerating target", target: body(1000, 0, 0, 50, 1, 2), want: 4.562049524189486},
		{name: "offset target", target: body(1000, 200, -20, 50, 3, 2), want: 4.564473017015173},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, ok := NewIntercept(vessel, 100, tt.target, FixedIndex)
			require.True(t, ok)
			assert.InDelta(t, tt.want, in.Time, 1e-9)

			dist := r2.Norm(r2.Sub(in.Point, vessel.Pos))
			assert.InEpsilon(t, 0.5*100*in.Time*in.Time, dist, 1e-6)
			assert.Equal(t, in.Point, in.Position())

			earliest, ok := NewIntercept(vessel, 100, tt.target, EarliestPositive)
			require.True(t, ok)
			assert.InDelta(t, in.Time, earliest.Time, 1e-12)
		})
	}
}

func TestInterceptConstantVelocityTarget(t *testing.T) {
	t.Parallel()

	// Without target acceleration the quartic has no odd terms.
	_, ok := NewIntercept(body(0, 0, 0, 0, 0, 0), 100, body(1000, 0, 0, 50, 0, 0), FixedIndex)
	assert.False(t, ok)
}

func TestSolverDelegates(t *testing.T) {
	t.Parallel()

	s := Solver{Policy: FixedIndex, ProjectileSpeed: 1000}
	fs, ok := s.FiringSolution(body(0, 0, 0, 0, 0, 0), body(1000, 0, 0, 100, 0, 10))
	require.True(t, ok)
	assert.InDelta(t, 1.0055614734843648, fs.ImpactTime, 1e-9)

	in, ok := s.Intercept(body(0, 0, 0, 0, 0, 0), body(1000, 0, 0, 50, 1, 2), 100)
	require.True(t, ok)
	assert.InDelta(t, 4.562049524189486, in.Time, 1e-9)
}
