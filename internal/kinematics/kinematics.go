// Package kinematics describes moving bodies through small capability
// interfaces and derives relative quantities from them with free functions.
//
// Each interface exposes only an accessor. Anything that can report a
// position, for example, gets bearings and distances from the functions in
// this package without implementing them itself.
package kinematics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/geometry"
)

// Vec is a 2D vector in world units.
type Vec = r2.Vec

// Position is anything with a location.
type Position interface {
	Position() Vec
}

// Velocity is a Position that moves.
type Velocity interface {
	Position
	Velocity() Vec
}

// Acceleration is a Velocity that accelerates.
type Acceleration interface {
	Velocity
	Acceleration() Vec
}

// Heading is a Position facing a direction.
type Heading interface {
	Position
	Heading() float64
}

// AngularVelocity is a Heading that turns.
type AngularVelocity interface {
	Heading
	AngularVelocity() float64
}

// Point adapts a bare vector to Position.
type Point Vec

func (p Point) Position() Vec { return Vec(p) }

// AngleDiff returns the signed smallest rotation from a to b, in [-π, π].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// RelativePosition returns the vector from other to p.
func RelativePosition(p, other Position) Vec {
	return r2.Sub(p.Position(), other.Position())
}

// DistanceTo returns the distance between p and other.
func DistanceTo(p, other Position) float64 {
	return r2.Norm(RelativePosition(p, other))
}

// BearingTo returns the world-frame direction from p to other.
func BearingTo(p, other Position) float64 {
	return geometry.Angle(r2.Sub(other.Position(), p.Position()))
}

// RelativeVelocity returns v's velocity as seen from other.
func RelativeVelocity(v, other Velocity) Vec {
	return r2.Sub(v.Velocity(), other.Velocity())
}

func Speed(v Velocity) float64 {
	return r2.Norm(v.Velocity())
}

func RelativeSpeed(v, other Velocity) float64 {
	return r2.Norm(RelativeVelocity(v, other))
}

// OrbitalVelocity returns the angular rate at which v sweeps around other.
func OrbitalVelocity(v, other Velocity) float64 {
	pos := RelativePosition(v, other)
	theta := AngleDiff(geometry.Angle(pos), geometry.Angle(RelativeVelocity(v, other)))
	return (RelativeSpeed(v, other) * math.Sin(theta)) / DistanceTo(v, other)
}

// PossiblePositionAfter returns the region v can reach in seconds when
// its acceleration is bounded by maxAcceleration.
func PossiblePositionAfter(v Velocity, maxAcceleration, seconds float64) geometry.Circle {
	centre := r2.Add(v.Position(), r2.Scale(seconds, v.Velocity()))
	return geometry.NewCircle(centre, 0.5*maxAcceleration*seconds*seconds)
}

func AccelerationMagnitude(a Acceleration) float64 {
	return r2.Norm(a.Acceleration())
}

func RelativeAcceleration(a, other Acceleration) Vec {
	return r2.Sub(a.Acceleration(), other.Acceleration())
}

// PositionAfter projects a's position under constant acceleration.
func PositionAfter(a Acceleration, seconds float64) Vec {
	p := r2.Add(a.Position(), r2.Scale(seconds, a.Velocity()))
	return r2.Add(p, r2.Scale(0.5*seconds*seconds, a.Acceleration()))
}

// VelocityAfter projects a's velocity under constant acceleration.
func VelocityAfter(a Acceleration, seconds float64) Vec {
	return r2.Add(a.Velocity(), r2.Scale(seconds, a.Acceleration()))
}

// OrbitalAcceleration estimates the tangential acceleration of a around
// other.
func OrbitalAcceleration(a Acceleration, other Position) float64 {
	radial := RelativePosition(a, other)
	prograde := geometry.Rotated(radial, -math.Pi/4)
	accAngle := geometry.Angle(a.Acceleration())

	anglePrograde := AngleDiff(geometry.Angle(prograde), accAngle)
	angleRadial := AngleDiff(geometry.Angle(radial), accAngle)

	accelerationPrograde := AccelerationMagnitude(a) * math.Cos(anglePrograde)
	velocityRadial := Speed(a) * math.Cos(angleRadial)
	velocityPrograde := Speed(a) * math.Cos(anglePrograde)

	return DistanceTo(a, other)*accelerationPrograde + 2*velocityRadial*velocityPrograde
}

// RelativeBearing returns the rotation from h's heading to target.
func RelativeBearing(h Heading, target Position) float64 {
	return AngleDiff(h.Heading(), geometry.Angle(r2.Sub(target.Position(), h.Position())))
}

// HeadingAfter projects the heading of a after turning at a constant rate,
// wrapped into [-π, π).
func HeadingAfter(a AngularVelocity, seconds float64) float64 {
	h := math.Mod(a.Heading()+math.Pi+a.AngularVelocity()*seconds, 2*math.Pi)
	if h < 0 {
		h += 2 * math.Pi
	}
	return h - math.Pi
}
