package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// BoundaryPoints is the number of vertices in an Ellipse boundary polyline.
const BoundaryPoints = 40

// Ellipse is an oriented ellipse. Height is measured along the orientation
// axis and width across it; construction keeps Width <= Height.
type Ellipse struct {
	centre      r2.Vec
	orientation float64
	width       float64
	height      float64
}

// NewEllipse returns an ellipse centred on centre. Since heading 0 is the +x
// axis, height is the extent along the orientation. If width > height the
// axes are swapped and the orientation turned a quarter so the same region
// is described with the minor axis as width.
func NewEllipse(centre r2.Vec, orientation, width, height float64) Ellipse {
	if width > height {
		return Ellipse{
			centre:      centre,
			orientation: orientation + math.Pi/2,
			width:       height,
			height:      width,
		}
	}
	return Ellipse{centre: centre, orientation: orientation, width: width, height: height}
}

func (e Ellipse) Centre() r2.Vec       { return e.centre }
func (e Ellipse) Orientation() float64 { return e.orientation }
func (e Ellipse) Width() float64       { return e.width }
func (e Ellipse) Height() float64      { return e.height }

// Translate returns e moved by v.
func (e Ellipse) Translate(v r2.Vec) Ellipse {
	e.centre = r2.Add(e.centre, v)
	return e
}

// Expand returns e grown by amount in every direction.
func (e Ellipse) Expand(amount float64) Ellipse {
	e.width += amount * 2
	e.height += amount * 2
	return e
}

// Radius returns the distance from the centre to the edge in the direction
// angle.
func (e Ellipse) Radius(angle float64) float64 {
	angle -= e.orientation
	a := e.height / 2
	b := e.width / 2

	sin, cos := math.Sincos(angle)
	return (a * b) / math.Sqrt(a*a*sin*sin+b*b*cos*cos)
}

// Contains reports whether p lies inside or on the edge of e.
func (e Ellipse) Contains(p r2.Vec) bool {
	v := Rotated(r2.Sub(e.centre, p), -e.orientation)

	a := e.height / 2
	b := e.width / 2
	return (v.X*v.X)/(a*a)+(v.Y*v.Y)/(b*b) <= 1
}

// MinDistanceTo returns the distance from p to the near edge of e.
func (e Ellipse) MinDistanceTo(p r2.Vec) float64 {
	near, _ := e.MinMaxDistanceTo(p)
	return near
}

// MaxDistanceTo returns the distance from p to the far edge of e.
func (e Ellipse) MaxDistanceTo(p r2.Vec) float64 {
	_, far := e.MinMaxDistanceTo(p)
	return far
}

// MinMaxDistanceTo returns the distances from p to the near and far edges of
// e, measured along the bearing from p to the centre. When p is inside e the
// near distance is how far the edge lies beyond p.
func (e Ellipse) MinMaxDistanceTo(p r2.Vec) (near, far float64) {
	toCentre := r2.Sub(e.centre, p)
	d := r2.Norm(toCentre)
	r := e.Radius(Angle(toCentre))
	return math.Abs(d - r), d + r
}

// Boundary returns a BoundaryPoints-vertex polyline around the edge.
func (e Ellipse) Boundary() []r2.Vec {
	a := e.height / 2
	b := e.width / 2
	y := func(x float64) float64 {
		return math.Sqrt(math.Max(0, b*b-(x*x/(a*a))*b*b))
	}

	half := BoundaryPoints / 2
	step := e.height / float64(half)

	points := make([]r2.Vec, 0, BoundaryPoints)
	for i := 0; i < half; i++ {
		x := -a + float64(i)*step
		points = append(points, r2.Vec{X: x, Y: y(x)})
	}
	points = append(points, r2.Vec{X: a, Y: y(a)})

	// Mirror the upper half across the major axis, skipping both tips.
	for i := len(points) - 2; i >= 1; i-- {
		points = append(points, r2.Vec{X: points[i].X, Y: -points[i].Y})
	}

	for i, p := range points {
		points[i] = r2.Add(e.centre, Rotated(p, e.orientation))
	}
	return points
}

func (e Ellipse) String() string {
	return fmt.Sprintf("ellipse{centre=(%.1f, %.1f) orientation=%.3f w=%.1f h=%.1f}",
		e.centre.X, e.centre.Y, e.orientation, e.width, e.height)
}
