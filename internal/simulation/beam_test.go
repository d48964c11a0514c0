package simulation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/geometry"
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/sensor"
	"github.com/banshee-data/targeting/internal/timeutil"
)

func worldOf(targets ...TargetSpec) *World {
	return NewWorld(&Scenario{Ticks: 1, Targets: targets})
}

func targetAt(name string, class sensor.Class, x, y, snr float64) TargetSpec {
	return TargetSpec{Name: name, Class: class, Body: Body{Position: Vec2{x, y}}, SNR: snr}
}

func newBeam(w *World, heading, width, near, far float64) *BeamSensor {
	b := NewBeamSensor(w, timeutil.FixedClock{}, sensor.DefaultErrorModel(), rand.New(rand.NewSource(1)))
	b.SetHeading(heading)
	b.SetWidth(width)
	b.SetMinDistance(near)
	b.SetMaxDistance(far)
	return b
}

func TestSNRAt(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 30, SNRAt(30, ReferenceRange), 1e-12)
	assert.InDelta(t, 30-40*math.Log10(2), SNRAt(30, 2*ReferenceRange), 1e-12)
	assert.Equal(t, SNRAt(30, 1), SNRAt(30, 0))
}

func TestBeamSensor_Scan(t *testing.T) {
	t.Parallel()

	w := worldOf(
		targetAt("east", sensor.ClassFighter, 2000, 0, 60),
		targetAt("north", sensor.ClassFrigate, 0, 2000, 60),
	)

	tests := []struct {
		name      string
		heading   float64
		near, far float64
		want      sensor.Class
		hit       bool
	}{
		{name: "east in beam", heading: 0, far: 5000, want: sensor.ClassFighter, hit: true},
		{name: "north in beam", heading: math.Pi / 2, far: 5000, want: sensor.ClassFrigate, hit: true},
		{name: "pointing west", heading: math.Pi, far: 5000},
		{name: "out of range", heading: 0, far: 1000},
		{name: "inside min distance", heading: 0, near: 2500, far: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newBeam(w, tt.heading, math.Pi/8, tt.near, tt.far)
			r, ok := b.Scan()
			require.Equal(t, tt.hit, ok)
			if ok {
				assert.Equal(t, tt.want, r.Class)
			}
		})
	}
}

func TestBeamSensor_StrongestReturn(t *testing.T) {
	t.Parallel()

	w := worldOf(
		targetAt("far", sensor.ClassCruiser, 4000, 0, 60),
		targetAt("near", sensor.ClassFighter, 2000, 100, 60),
		targetAt("faint", sensor.ClassMissile, 1000, 0, -20),
	)
	b := newBeam(w, 0, math.Pi/4, 0, 10000)

	r, ok := b.Scan()
	require.True(t, ok)
	assert.Equal(t, sensor.ClassFighter, r.Class)
	assert.InDelta(t, SNRAt(60, math.Hypot(2000, 100)), r.SNR, 1e-9)
	assert.InDelta(t, r.SNR+noiseFloor, r.RSSI, 1e-9)
}

func TestBeamSensor_NoiseStaysInRegion(t *testing.T) {
	t.Parallel()

	truth := kinematics.Model{Pos: r2.Vec{X: 3000, Y: 400}, Vel: r2.Vec{X: -20, Y: 5}}
	w := worldOf(TargetSpec{
		Name: "bandit", Class: sensor.ClassFighter, SNR: 40,
		Body: Body{Position: Vec2{3000, 400}, Velocity: Vec2{-20, 5}},
	})
	b := newBeam(w, geometry.Angle(truth.Pos), math.Pi/8, 0, 10000)

	for i := 0; i < 200; i++ {
		r, ok := b.Scan()
		require.True(t, ok)
		err := sensor.DefaultErrorModel().ErrorFor(r.SNR)

		d := r2.Norm(r.Position)
		assert.LessOrEqual(t, math.Abs(d-r2.Norm(truth.Pos)), NoiseScale*err.Distance+1e-9)

		bearing := math.Abs(kinematics.AngleDiff(geometry.Angle(truth.Pos), geometry.Angle(r.Position)))
		assert.LessOrEqual(t, bearing, NoiseScale*math.Atan(err.Bearing)+1e-12)

		assert.LessOrEqual(t, r2.Norm(r2.Sub(r.Velocity, truth.Vel)), NoiseScale*err.Velocity+1e-9)
	}
}

func TestBeamSensor_MovingTargetAndOwnship(t *testing.T) {
	t.Parallel()

	sc := &Scenario{
		Ticks:   1,
		Ownship: Body{Position: Vec2{100, 0}, Velocity: Vec2{10, 0}},
		Targets: []TargetSpec{{
			Name: "a", Class: sensor.ClassFrigate, SNR: 80,
			Body: Body{Position: Vec2{1000, 1000}, Velocity: Vec2{0, -100}},
		}},
	}
	w := NewWorld(sc)

	// At t=10 the target has crossed to (1000, 0) and the ownship sits at
	// (200, 0), so the target lies dead ahead.
	b := NewBeamSensor(w, timeutil.FixedClock{T: 10}, sensor.DefaultErrorModel(), rand.New(rand.NewSource(3)))
	b.SetWidth(math.Pi / 16)
	b.SetMaxDistance(5000)

	r, ok := b.Scan()
	require.True(t, ok)
	assert.InDelta(t, 1000, r.Position.X, 1)
	assert.InDelta(t, 0, r.Position.Y, 1)

	assert.Equal(t, r2.Vec{X: 200, Y: 0}, w.Ownship(10).Pos)
}
