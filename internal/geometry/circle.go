package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const circleBoundaryPoints = 8

// Circle is the set of points strictly closer than its radius to its centre.
type Circle struct {
	centre r2.Vec
	radius float64
}

func NewCircle(centre r2.Vec, radius float64) Circle {
	return Circle{centre: centre, radius: radius}
}

func (c Circle) Centre() r2.Vec  { return c.centre }
func (c Circle) Radius() float64 { return c.radius }

// Contains reports whether p lies strictly inside c.
func (c Circle) Contains(p r2.Vec) bool {
	return r2.Norm(r2.Sub(p, c.centre)) < c.radius
}

func (c Circle) MinDistanceTo(p r2.Vec) float64 {
	near, _ := c.MinMaxDistanceTo(p)
	return near
}

func (c Circle) MaxDistanceTo(p r2.Vec) float64 {
	_, far := c.MinMaxDistanceTo(p)
	return far
}

func (c Circle) MinMaxDistanceTo(p r2.Vec) (near, far float64) {
	d := r2.Norm(r2.Sub(c.centre, p))
	return math.Abs(d - c.radius), d + c.radius
}

// Boundary returns a regular octagon inscribed in c.
func (c Circle) Boundary() []r2.Vec {
	points := make([]r2.Vec, circleBoundaryPoints)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / circleBoundaryPoints
		points[i] = r2.Add(c.centre, FromPolar(angle, c.radius))
	}
	return points
}
