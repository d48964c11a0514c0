package geometry

import "gonum.org/v1/gonum/spatial/r2"

// Shape is a closed planar region.
//
// Distances are measured from a point to the shape's edge along the line
// joining the point to the shape's centre.
type Shape interface {
	Centre() r2.Vec
	Contains(p r2.Vec) bool
	MinDistanceTo(p r2.Vec) float64
	MaxDistanceTo(p r2.Vec) float64
	MinMaxDistanceTo(p r2.Vec) (near, far float64)
	// Boundary returns a closed polyline approximating the edge. The last
	// point connects back to the first.
	Boundary() []r2.Vec
}

var (
	_ Shape = Ellipse{}
	_ Shape = Circle{}
)
