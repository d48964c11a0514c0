package simulation

import (
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/sensor"
)

// Target is a scripted body moving under constant acceleration from t=0.
type Target struct {
	Name  string
	Class sensor.Class
	SNR   float64
	start kinematics.Model
}

// At returns the target's true state at the given simulation time.
func (t *Target) At(seconds float64) kinematics.Model { return t.start.After(seconds) }

// World holds the ground truth of a scenario.
type World struct {
	ownship kinematics.Model
	targets []*Target
}

func NewWorld(sc *Scenario) *World {
	w := &World{ownship: sc.Ownship.Model()}
	for _, ts := range sc.Targets {
		w.targets = append(w.targets, &Target{
			Name:  ts.Name,
			Class: ts.Class,
			SNR:   ts.SNR,
			start: ts.Model(),
		})
	}
	return w
}

// Ownship returns the sensor platform's state at the given simulation time.
func (w *World) Ownship(seconds float64) kinematics.Model { return w.ownship.After(seconds) }

func (w *World) Targets() []*Target { return w.targets }
