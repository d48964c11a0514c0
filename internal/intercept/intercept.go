// Package intercept predicts where a moving, accelerating target can be met
// by an unguided projectile or a guided interceptor.
//
// Both reduce "distance covered by the shooter equals distance to the
// target's future position" to a quartic in time and solve it in closed
// form.
package intercept

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/config"
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/monitoring"
	"github.com/banshee-data/targeting/internal/polynomial"
)

// FiringSolution is where and when a projectile fired now meets the target.
type FiringSolution struct {
	ImpactTime         float64
	ImpactPoint        r2.Vec
	TargetVelocity     r2.Vec
	TargetAcceleration r2.Vec
}

func (f FiringSolution) Position() r2.Vec     { return f.ImpactPoint }
func (f FiringSolution) Velocity() r2.Vec     { return f.TargetVelocity }
func (f FiringSolution) Acceleration() r2.Vec { return f.TargetAcceleration }

// Intercept is where and when a guided interceptor meets the target.
type Intercept struct {
	Time  float64
	Point r2.Vec
}

func (i Intercept) Position() r2.Vec { return i.Point }

// Solver computes firing solutions and intercepts under one root policy.
type Solver struct {
	Policy          Policy
	ProjectileSpeed float64
}

// NewSolver builds a Solver from the intercept keys of cfg.
func NewSolver(cfg *config.TuningConfig) (Solver, error) {
	policy, err := ParsePolicy(cfg.GetInterceptRootPolicy())
	if err != nil {
		return Solver{}, fmt.Errorf("intercept solver: %w", err)
	}
	return Solver{Policy: policy, ProjectileSpeed: cfg.GetProjectileSpeed()}, nil
}

// FiringSolution solves for a projectile leaving shooter at the solver's
// projectile speed, relative to the shooter's own velocity.
func (s Solver) FiringSolution(shooter kinematics.Velocity, target kinematics.Acceleration) (FiringSolution, bool) {
	return NewFiringSolution(shooter, s.ProjectileSpeed, target, s.Policy)
}

// Intercept solves for an interceptor with net acceleration accel.
func (s Solver) Intercept(vessel, target kinematics.Acceleration, accel float64) (Intercept, bool) {
	return NewIntercept(vessel, accel, target, s.Policy)
}

// NewFiringSolution solves |p + v*t + a*t²/2| = speed*t for t, with p and v
// the target's position and velocity relative to shooter and a its
// acceleration. It reports false when no root is usable.
func NewFiringSolution(shooter kinematics.Velocity, speed float64, target kinematics.Acceleration, policy Policy) (FiringSolution, bool) {
	pos := kinematics.RelativePosition(target, shooter)
	vel := kinematics.RelativeVelocity(target, shooter)
	acc := target.Acceleration()

	a := r2.Dot(acc, acc) / 4
	b := r2.Dot(acc, vel)
	c := r2.Dot(vel, vel) + r2.Dot(acc, pos) - speed*speed
	d := 2 * r2.Dot(vel, pos)
	e := r2.Dot(pos, pos)

	roots := polynomial.SolveQuartic(a, b, c, d, e)
	monitoring.Debugf("intercept: firing solution roots %v", roots)

	t, ok := policy.pick(roots, firingIndex)
	if !ok {
		return FiringSolution{}, false
	}

	return FiringSolution{
		ImpactTime:         t,
		ImpactPoint:        projected(target.Position(), vel, acc, t),
		TargetVelocity:     target.Velocity(),
		TargetAcceleration: acc,
	}, true
}

// NewIntercept solves |p + v*t + a*t²/2| = accel*t²/2 for t, with p and v the
// target's position and velocity relative to vessel and a its acceleration.
func NewIntercept(vessel kinematics.Acceleration, accel float64, target kinematics.Acceleration, policy Policy) (Intercept, bool) {
	pos := kinematics.RelativePosition(target, vessel)
	vel := kinematics.RelativeVelocity(target, vessel)
	acc := target.Acceleration()

	a := 0.25 * (accel*accel - r2.Dot(acc, acc))
	b := -r2.Dot(vel, acc)
	c := -r2.Dot(acc, pos) - r2.Dot(vel, vel)
	d := -2 * r2.Dot(pos, vel)
	e := -r2.Dot(pos, pos)

	roots := polynomial.SolveQuartic(a, b, c, d, e)
	monitoring.Debugf("intercept: intercept roots %v", roots)

	t, ok := policy.pick(roots, interceptIndex)
	if !ok {
		return Intercept{}, false
	}
	return Intercept{Time: t, Point: projected(target.Position(), vel, acc, t)}, true
}

// projected moves from by vel*t + acc*t²/2.
func projected(from, vel, acc r2.Vec, t float64) r2.Vec {
	p := r2.Add(from, r2.Scale(t, vel))
	return r2.Add(p, r2.Scale(0.5*t*t, acc))
}
