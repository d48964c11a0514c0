package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Angle returns the direction of v in (-π, π].
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// FromPolar returns the vector of the given length pointing at angle.
func FromPolar(angle, length float64) r2.Vec {
	return r2.Vec{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

// Rotated returns v rotated anticlockwise by angle about the origin.
func Rotated(v r2.Vec, angle float64) r2.Vec {
	return r2.Rotate(v, angle, r2.Vec{})
}
