package contacts

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/targeting/internal/geometry"
	"github.com/banshee-data/targeting/internal/sensor"
)

// HistoryCapacity is the number of observations a TrackedContact keeps.
const HistoryCapacity = 9

// TrackedContact is a contact under active tracking. It holds the most
// recent HistoryCapacity observations, oldest evicted first, and is never
// empty.
type TrackedContact struct {
	history [HistoryCapacity]Observation
	start   int
	n       int

	class        sensor.Class
	acceleration r2.Vec
}

// Promote starts a track from a search contact. The new track has a single
// observation and no acceleration estimate.
func Promote(s *SearchContact) *TrackedContact {
	return NewTrackedContact(s.obs)
}

// NewTrackedContact starts a track from one observation.
func NewTrackedContact(o Observation) *TrackedContact {
	t := &TrackedContact{class: o.Reading.Class}
	t.history[0] = o
	t.n = 1
	return t
}

func (t *TrackedContact) contact() {}

// Update appends o, evicting the oldest observation when full, and
// re-estimates acceleration over the whole history.
func (t *TrackedContact) Update(o Observation) {
	if t.n == HistoryCapacity {
		t.start = (t.start + 1) % HistoryCapacity
		t.n--
	}
	t.history[(t.start+t.n)%HistoryCapacity] = o
	t.n++

	t.acceleration = t.estimateAcceleration()
}

// estimateAcceleration averages the finite-difference acceleration of each
// consecutive pair of observations. Pairs taken at the same instant carry no
// rate information and are skipped.
func (t *TrackedContact) estimateAcceleration() r2.Vec {
	xs := make([]float64, 0, t.n-1)
	ys := make([]float64, 0, t.n-1)

	for i := 1; i < t.n; i++ {
		prev := t.at(i - 1)
		cur := t.at(i)

		dt := cur.Time - prev.Time
		if dt == 0 {
			continue
		}
		dv := r2.Sub(cur.Reading.Velocity, prev.Reading.Velocity)
		xs = append(xs, dv.X/dt)
		ys = append(ys, dv.Y/dt)
	}

	if len(xs) == 0 {
		return r2.Vec{}
	}
	return r2.Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

func (t *TrackedContact) at(i int) Observation {
	return t.history[(t.start+i)%HistoryCapacity]
}

// Len returns the number of observations held.
func (t *TrackedContact) Len() int { return t.n }

// Observations returns the history, oldest first.
func (t *TrackedContact) Observations() []Observation {
	out := make([]Observation, t.n)
	for i := range out {
		out[i] = t.at(i)
	}
	return out
}

// Latest returns the most recent observation.
func (t *TrackedContact) Latest() Observation {
	if t.n == 0 {
		panic("contacts: tracked contact has no observations")
	}
	return t.at(t.n - 1)
}

func (t *TrackedContact) Position() r2.Vec     { return t.Latest().Reading.Position }
func (t *TrackedContact) Velocity() r2.Vec     { return t.Latest().Reading.Velocity }
func (t *TrackedContact) Acceleration() r2.Vec { return t.acceleration }
func (t *TrackedContact) Time() float64        { return t.Latest().Time }
func (t *TrackedContact) Class() sensor.Class  { return t.class }
func (t *TrackedContact) Error() sensor.Error  { return t.Latest().Error }

// InitialArea returns the uncertainty region at the latest observation.
func (t *TrackedContact) InitialArea() geometry.Ellipse {
	return initialArea(t.Latest())
}

// AreaAfter grows the region of the latest observation exactly as for a
// search contact. The acceleration estimate does not narrow it.
func (t *TrackedContact) AreaAfter(dt float64) geometry.Ellipse {
	return areaAfter(t.Latest(), t.class, dt)
}

func (t *TrackedContact) String() string {
	p := t.Position()
	a := t.acceleration
	return fmt.Sprintf("tracked{%s at (%.1f, %.1f) t=%.3f samples=%d accel=(%.2f, %.2f)}",
		t.class, p.X, p.Y, t.Time(), t.n, a.X, a.Y)
}
