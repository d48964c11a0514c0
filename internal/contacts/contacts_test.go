package contacts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/sensor"
	"github.com/banshee-data/targeting/internal/timeutil"
)

// observe builds an observation of a contact at pos, seen by an emitter 100m
// to its west looking straight at it.
func observe(class sensor.Class, pos r2.Vec, time float64) Observation {
	reading := sensor.Reading{Class: class, Position: pos, RSSI: 50, SNR: 50}
	return Observation{
		Time: time,
		Emitter: sensor.Emitter{
			Pos:         r2.Sub(pos, r2.Vec{X: 100}),
			MaxDistance: 1000,
			Width:       math.Pi / 4,
		},
		Reading: reading,
		Error:   sensor.DefaultErrorModel().ErrorFor(reading.SNR),
	}
}

func withVelocity(o Observation, v r2.Vec) Observation {
	o.Reading.Velocity = v
	return o
}

func TestSearchContact_InitialArea(t *testing.T) {
	t.Parallel()

	o := observe(sensor.ClassFighter, r2.Vec{X: 500, Y: 0}, 0)
	o.Error = sensor.Error{Bearing: 0.01, Distance: 20, Velocity: 5}
	s := NewSearchContact(o)

	area := s.InitialArea()
	assert.Equal(t, r2.Vec{X: 500, Y: 0}, area.Centre())
	assert.InDelta(t, math.Atan(0.01)*100*2, area.Width(), 1e-9)
	assert.InDelta(t, 40, area.Height(), 1e-9)

	// Long axis along the line of sight, short axis across it.
	assert.True(t, area.Contains(r2.Vec{X: 519, Y: 0}))
	assert.False(t, area.Contains(r2.Vec{X: 500, Y: 19}))
}

func TestSearchContact_InitialAreaAtEmitter(t *testing.T) {
	t.Parallel()

	o := observe(sensor.ClassFighter, r2.Vec{X: 300, Y: 200}, 0)
	o.Emitter.Pos = o.Reading.Position
	s := NewSearchContact(o)

	area := s.InitialArea()
	assert.Equal(t, minAxis, area.Width())
	assert.True(t, area.Contains(r2.Vec{X: 300, Y: 200}))

	board := NewBoard(timeutil.FixedClock{})
	id1, ok := board.Add(s)
	require.True(t, ok)
	id2, ok := board.Add(NewSearchContact(o))
	require.True(t, ok)
	assert.Equal(t, id1, id2, "repeat detection merges")
	assert.Equal(t, 1, board.Count())
}

func TestSearchContact_AreaAfter(t *testing.T) {
	t.Parallel()

	o := withVelocity(observe(sensor.ClassFrigate, r2.Vec{X: 0, Y: 0}, 0), r2.Vec{X: 10, Y: 0})
	o.Error = sensor.Error{Bearing: 0.01, Distance: 20, Velocity: 5}
	s := NewSearchContact(o)

	initial := s.InitialArea()
	later := s.AreaAfter(2)

	growth := 5*2 + 0.5*sensor.MaxAccelerationFor(sensor.ClassFrigate).Magnitude()*4
	assert.Equal(t, r2.Vec{X: 20, Y: 0}, later.Centre())
	assert.InDelta(t, initial.Width()+2*growth, later.Width(), 1e-9)
	assert.InDelta(t, initial.Height()+2*growth, later.Height(), 1e-9)

	assert.Equal(t, initial, s.AreaAfter(0))
}

func TestTrackedContact_Acceleration(t *testing.T) {
	t.Parallel()

	pos := r2.Vec{X: 10, Y: 10}
	track := NewTrackedContact(observe(sensor.ClassFighter, pos, 0))
	assert.Equal(t, r2.Vec{}, track.Acceleration())

	track.Update(withVelocity(observe(sensor.ClassFighter, pos, 1), r2.Vec{X: 2, Y: 0}))
	assert.InDelta(t, 2, track.Acceleration().X, 1e-12)

	track.Update(withVelocity(observe(sensor.ClassFighter, pos, 2), r2.Vec{X: 6, Y: -2}))
	assert.InDelta(t, 3, track.Acceleration().X, 1e-12)
	assert.InDelta(t, -1, track.Acceleration().Y, 1e-12)

	// A repeated timestamp adds no rate information.
	track.Update(withVelocity(observe(sensor.ClassFighter, pos, 2), r2.Vec{X: 100, Y: 0}))
	assert.InDelta(t, 3, track.Acceleration().X, 1e-12)
	assert.Equal(t, 4, track.Len())
}

func TestTrackedContact_Capacity(t *testing.T) {
	t.Parallel()

	track := NewTrackedContact(observe(sensor.ClassCruiser, r2.Vec{}, 0))
	for i := 1; i <= 3*HistoryCapacity; i++ {
		track.Update(withVelocity(observe(sensor.ClassCruiser, r2.Vec{}, float64(i)), r2.Vec{X: float64(i)}))
		require.LessOrEqual(t, track.Len(), HistoryCapacity)
	}

	obs := track.Observations()
	require.Len(t, obs, HistoryCapacity)
	assert.Equal(t, float64(3*HistoryCapacity-HistoryCapacity+1), obs[0].Time)
	assert.Equal(t, float64(3*HistoryCapacity), obs[len(obs)-1].Time)
	assert.Equal(t, obs[len(obs)-1], track.Latest())
	for i := 1; i < len(obs); i++ {
		assert.Less(t, obs[i-1].Time, obs[i].Time)
	}

	// Velocity rises by one per second throughout.
	assert.InDelta(t, 1, track.Acceleration().X, 1e-12)
}

func TestPromoteDemote(t *testing.T) {
	t.Parallel()

	o := observe(sensor.ClassTorpedo, r2.Vec{X: 1, Y: 2}, 3)
	s := NewSearchContact(o)

	track := Promote(s)
	assert.Equal(t, 1, track.Len())
	assert.Equal(t, s.Position(), track.Position())
	assert.Equal(t, s.Time(), track.Time())
	assert.Equal(t, sensor.ClassTorpedo, track.Class())
	assert.Equal(t, s.AreaAfter(1.5), track.AreaAfter(1.5))

	later := observe(sensor.ClassTorpedo, r2.Vec{X: 5, Y: 2}, 4)
	track.Update(later)

	back := Demote(track)
	assert.Equal(t, later, back.Observation())
	assert.False(t, IsTracked(back))
	assert.True(t, IsTracked(track))
}
