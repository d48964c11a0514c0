package scheduler

import (
	"github.com/banshee-data/targeting/internal/contacts"
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/monitoring"
	"github.com/banshee-data/targeting/internal/sensor"
	"github.com/banshee-data/targeting/internal/timeutil"
)

// TrackSensor points a narrow beam at a single contact.
type TrackSensor struct {
	cfg    Config
	sensor sensor.Sensor
	clock  timeutil.Clock
}

func NewTrackSensor(cfg Config, s sensor.Sensor, clock timeutil.Clock) *TrackSensor {
	return &TrackSensor{cfg: cfg, sensor: s, clock: clock}
}

// Scan reads the sensor and folds any return into target. A search contact
// is promoted first. On a miss the promoted contact is returned unchanged
// with ok false.
func (t *TrackSensor) Scan(target contacts.Contact, emitter kinematics.Position) (track *contacts.TrackedContact, ok bool) {
	switch c := target.(type) {
	case *contacts.TrackedContact:
		track = c
	case *contacts.SearchContact:
		track = contacts.Promote(c)
	}

	snapshot := sensor.NewEmitter(emitter.Position(), t.sensor)
	reading, ok := t.sensor.Scan()
	if !ok {
		return track, false
	}

	track.Update(contacts.Observation{
		Time:    t.clock.Now(),
		Emitter: snapshot,
		Reading: reading,
		Error:   t.cfg.Errors.ErrorFor(reading.SNR),
	})
	return track, true
}

// Adjust aims a narrow beam at where target is predicted to be next tick
// and limits the range window to that region's near and far edges.
func (t *TrackSensor) Adjust(target *contacts.TrackedContact, emitter kinematics.Acceleration) {
	tick := t.clock.TickLength()
	area := target.AreaAfter(contacts.Elapsed(target, t.clock.Now()) + tick)
	from := kinematics.Point(kinematics.PositionAfter(emitter, tick))

	near, far := area.MinMaxDistanceTo(from.Position())
	monitoring.Debugf("scheduler: track centre=(%.1f, %.1f) range=[%.1f, %.1f]",
		area.Centre().X, area.Centre().Y, near, far)

	t.sensor.SetWidth(t.cfg.TrackBeamWidth)
	t.sensor.SetHeading(kinematics.BearingTo(from, kinematics.Point(area.Centre())))
	t.sensor.SetMinDistance(near)
	t.sensor.SetMaxDistance(far)
}
