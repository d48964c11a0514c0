package contacts

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/geometry"
	"github.com/banshee-data/targeting/internal/sensor"
)

// SearchContact is a single observation of an object.
type SearchContact struct {
	obs Observation
}

// NewSearchContact wraps one observation.
func NewSearchContact(o Observation) *SearchContact {
	return &SearchContact{obs: o}
}

// Demote discards the history of t, keeping only its latest observation.
func Demote(t *TrackedContact) *SearchContact {
	return &SearchContact{obs: t.Latest()}
}

func (s *SearchContact) contact() {}

func (s *SearchContact) Position() r2.Vec         { return s.obs.Reading.Position }
func (s *SearchContact) Velocity() r2.Vec         { return s.obs.Reading.Velocity }
func (s *SearchContact) Time() float64            { return s.obs.Time }
func (s *SearchContact) Class() sensor.Class      { return s.obs.Reading.Class }
func (s *SearchContact) Error() sensor.Error      { return s.obs.Error }
func (s *SearchContact) Emitter() sensor.Emitter  { return s.obs.Emitter }
func (s *SearchContact) Observation() Observation { return s.obs }

// InitialArea returns the uncertainty region at the moment of detection.
func (s *SearchContact) InitialArea() geometry.Ellipse {
	return initialArea(s.obs)
}

func (s *SearchContact) AreaAfter(t float64) geometry.Ellipse {
	return areaAfter(s.obs, s.Class(), t)
}

func (s *SearchContact) String() string {
	p := s.Position()
	return fmt.Sprintf("search{%s at (%.1f, %.1f) t=%.3f snr=%.1f}", s.Class(), p.X, p.Y, s.Time(), s.obs.Reading.SNR)
}
