// Package contacts models detected objects and fuses repeated detections of
// the same object into one board entry.
//
// A SearchContact is a single low-confidence observation. A TrackedContact
// keeps a short history of observations and estimates acceleration from it.
// Both describe where the object could be at a later time as an uncertainty
// ellipse that grows with measurement error and the class's worst-case
// acceleration.
package contacts

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/geometry"
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/sensor"
)

// Observation is one scan of a contact together with the beam that produced
// it and the error derived from its signal quality.
type Observation struct {
	Time    float64
	Emitter sensor.Emitter
	Reading sensor.Reading
	Error   sensor.Error
}

// Contact is either a *SearchContact or a *TrackedContact.
type Contact interface {
	kinematics.Velocity

	// Time returns the simulation time of the latest observation.
	Time() float64
	Class() sensor.Class

	// AreaAfter returns the uncertainty region t seconds after the latest
	// observation.
	AreaAfter(t float64) geometry.Ellipse

	contact()
}

var (
	_ Contact = (*SearchContact)(nil)
	_ Contact = (*TrackedContact)(nil)

	_ kinematics.Acceleration = (*TrackedContact)(nil)
)

// Elapsed returns the time since c was last observed.
func Elapsed(c Contact, now float64) float64 {
	return now - c.Time()
}

// AreaNow returns the uncertainty region of c at time now.
func AreaNow(c Contact, now float64) geometry.Ellipse {
	return c.AreaAfter(Elapsed(c, now))
}

// IsTracked reports whether c is a *TrackedContact.
func IsTracked(c Contact) bool {
	_, ok := c.(*TrackedContact)
	return ok
}

// minAxis keeps a region non-degenerate when the reading coincides with the
// emitter.
const minAxis = 1e-3

// initialArea is the region an observation places its contact in at the
// moment of detection. The ellipse's long axis lies along the line of sight:
// its length comes from the range error and its breadth from the bearing
// error projected out to the detection range.
func initialArea(o Observation) geometry.Ellipse {
	toEmitter := r2.Sub(o.Emitter.Pos, o.Reading.Position)
	bearing := geometry.Angle(toEmitter)
	distance := r2.Norm(toEmitter)

	width := math.Max(math.Atan(o.Error.Bearing)*distance*2, minAxis)
	height := math.Max(o.Error.Distance*2, minAxis)
	return geometry.NewEllipse(o.Reading.Position, bearing, width, height)
}

// areaAfter translates the initial area by the observed velocity and grows
// it by the velocity error plus the distance the class could cover under
// maximum acceleration.
func areaAfter(o Observation, class sensor.Class, t float64) geometry.Ellipse {
	maxAccel := sensor.MaxAccelerationFor(class).Magnitude()

	area := initialArea(o).Translate(r2.Scale(t, o.Reading.Velocity))
	return area.Expand(o.Error.Velocity*t + 0.5*maxAccel*t*t)
}
