// Package sensor describes the directional sensor shared by the search and
// tracking jobs: its beam state, what a scan returns and how measurement
// error is derived from signal quality.
package sensor

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Reading is the result of one scan.
type Reading struct {
	Class    Class
	Position r2.Vec
	Velocity r2.Vec
	RSSI     float64
	SNR      float64
}

// Sensor is the host's directional sensor. Beam parameters set during a tick
// take effect from the next tick's scan.
type Sensor interface {
	Heading() float64
	SetHeading(heading float64)
	Width() float64
	SetWidth(width float64)
	MinDistance() float64
	SetMinDistance(distance float64)
	MaxDistance() float64
	SetMaxDistance(distance float64)

	// Scan returns the strongest return inside the current beam, if any.
	Scan() (Reading, bool)
}

// Emitter is a snapshot of the sensor beam at scan time.
type Emitter struct {
	Pos         r2.Vec
	MinDistance float64
	MaxDistance float64
	Heading     float64
	Width       float64
}

// NewEmitter captures the current beam of s as seen from position pos.
func NewEmitter(pos r2.Vec, s Sensor) Emitter {
	return Emitter{
		Pos:         pos,
		MinDistance: s.MinDistance(),
		MaxDistance: s.MaxDistance(),
		Heading:     s.Heading(),
		Width:       s.Width(),
	}
}

func (e Emitter) Position() r2.Vec { return e.Pos }

// MinHeading returns the clockwise edge of the beam.
func (e Emitter) MinHeading() float64 { return e.Heading - e.Width/2 }

// MaxHeading returns the anticlockwise edge of the beam.
func (e Emitter) MaxHeading() float64 { return e.Heading + e.Width/2 }

func (e Emitter) String() string {
	return fmt.Sprintf("emitter{pos=(%.1f, %.1f) heading=%.3f width=%.3f range=[%.0f, %.0f]}",
		e.Pos.X, e.Pos.Y, e.Heading, e.Width, e.MinDistance, e.MaxDistance)
}
