package scheduler

import (
	"math"

	"github.com/banshee-data/targeting/internal/contacts"
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/sensor"
	"github.com/banshee-data/targeting/internal/timeutil"
)

// SearchSensor rasters a wide beam around the emitter.
type SearchSensor struct {
	cfg    Config
	sensor sensor.Sensor
	clock  timeutil.Clock

	lastHeading float64
	lastContact *contacts.SearchContact
}

func NewSearchSensor(cfg Config, s sensor.Sensor, clock timeutil.Clock) *SearchSensor {
	return &SearchSensor{cfg: cfg, sensor: s, clock: clock}
}

// Scan reads the sensor at its current beam and wraps any return in a
// search contact.
func (s *SearchSensor) Scan(emitter kinematics.Position) (*contacts.SearchContact, bool) {
	snapshot := sensor.NewEmitter(emitter.Position(), s.sensor)
	s.lastHeading = snapshot.Heading
	s.lastContact = nil

	reading, ok := s.sensor.Scan()
	if !ok {
		return nil, false
	}

	s.lastContact = contacts.NewSearchContact(contacts.Observation{
		Time:    s.clock.Now(),
		Emitter: snapshot,
		Reading: reading,
		Error:   s.cfg.Errors.ErrorFor(reading.SNR),
	})
	return s.lastContact, true
}

// Adjust sets the beam for next tick's search. After a detection it looks
// again along the same heading but starts beyond the contact's predicted far
// edge, to find anything it was hiding. Otherwise it steps the heading on by
// one beam width over the full range.
func (s *SearchSensor) Adjust(emitter kinematics.Acceleration) {
	tick := s.clock.TickLength()
	s.sensor.SetWidth(s.cfg.SearchBeamWidth)

	if c := s.lastContact; c != nil {
		area := c.AreaAfter(contacts.Elapsed(c, s.clock.Now()) + tick)
		furthest := area.MaxDistanceTo(kinematics.PositionAfter(emitter, tick))

		s.sensor.SetHeading(s.lastHeading)
		s.sensor.SetMinDistance(math.Min(furthest, s.cfg.MaxRange))
		s.sensor.SetMaxDistance(s.cfg.MaxRange)
		return
	}

	s.sensor.SetHeading(s.lastHeading + s.cfg.SearchBeamWidth)
	s.sensor.SetMinDistance(0)
	s.sensor.SetMaxDistance(s.cfg.MaxRange)
}
