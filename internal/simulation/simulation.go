// Package simulation runs the targeting core against scripted targets.
//
// It stands in for the host: a World of constant-acceleration bodies, a
// BeamSensor that scans it, and a fixed-tick loop that drives the scheduler,
// computes firing solutions for tracked contacts and journals the board.
package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/config"
	"github.com/banshee-data/targeting/internal/contacts"
	"github.com/banshee-data/targeting/internal/intercept"
	"github.com/banshee-data/targeting/internal/monitoring"
	"github.com/banshee-data/targeting/internal/scheduler"
	"github.com/banshee-data/targeting/internal/sensor"
	"github.com/banshee-data/targeting/internal/timeutil"
)

// Solution pairs a tracked contact with what the solver found for it.
type Solution struct {
	ContactID int
	Firing    intercept.FiringSolution
	HasFiring bool

	Intercept    intercept.Intercept
	HasIntercept bool
}

// TickReport summarises one step.
type TickReport struct {
	Tick      uint64
	Time      float64
	Contacts  int
	Tracked   int
	Solutions []Solution
}

// Summary is the outcome of a full run.
type Summary struct {
	Scenario      string
	Ticks         int
	MaxContacts   int
	FinalContacts int
	FinalTracked  int
	Solutions     int

	// LastSolutions holds the solver output of the final tick.
	LastSolutions []Solution
}

// ImpactPoints returns the predicted impact point of every firing solution
// found on the final tick, keyed by contact id.
func (s Summary) ImpactPoints() map[int]r2.Vec {
	points := make(map[int]r2.Vec, len(s.LastSolutions))
	for _, sol := range s.LastSolutions {
		if sol.HasFiring {
			points[sol.ContactID] = sol.Firing.ImpactPoint
		}
	}
	return points
}

// Simulation owns one scenario run.
type Simulation struct {
	scenario *Scenario
	world    *World
	clock    *timeutil.TickClock
	beam     *BeamSensor
	manager  *scheduler.Manager
	solver   intercept.Solver
	recorder *Recorder
}

// New builds a simulation of sc using the tuning in cfg.
func New(cfg *config.TuningConfig, sc *Scenario) (*Simulation, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	solver, err := intercept.NewSolver(cfg)
	if err != nil {
		return nil, err
	}

	schedCfg := scheduler.ConfigFromTuning(cfg)
	clock := timeutil.NewTickClock(cfg.GetTickLength())
	world := NewWorld(sc)
	beam := NewBeamSensor(world, clock, sensor.ErrorModelFromTuning(cfg), rand.New(rand.NewSource(sc.Seed)))
	beam.SetWidth(schedCfg.SearchBeamWidth)
	beam.SetMaxDistance(schedCfg.MaxRange)

	return &Simulation{
		scenario: sc,
		world:    world,
		clock:    clock,
		beam:     beam,
		manager:  scheduler.NewManager(schedCfg, beam, clock),
		solver:   solver,
	}, nil
}

// SetRecorder journals subsequent ticks through r.
func (s *Simulation) SetRecorder(r *Recorder) { s.recorder = r }

func (s *Simulation) Manager() *scheduler.Manager { return s.manager }
func (s *Simulation) Clock() *timeutil.TickClock  { return s.clock }
func (s *Simulation) World() *World               { return s.world }

// Emitter returns the current beam as seen from the ownship.
func (s *Simulation) Emitter() sensor.Emitter {
	return sensor.NewEmitter(s.world.Ownship(s.clock.Now()).Pos, s.beam)
}

// Step runs one tick and advances the clock.
func (s *Simulation) Step() (TickReport, error) {
	now := s.clock.Now()
	ownship := s.world.Ownship(now)

	s.manager.Step(ownship)
	if s.scenario.AutoTrack {
		s.autoTrack()
	}

	report := TickReport{Tick: s.clock.Tick(), Time: now}
	board := s.manager.Board()
	for _, e := range board.Entries() {
		report.Contacts++
		track, ok := e.Contact.(*contacts.TrackedContact)
		if !ok {
			continue
		}
		report.Tracked++
		report.Solutions = append(report.Solutions, s.solve(e.ID, track))
	}

	if s.recorder != nil {
		if err := s.recorder.Record(report, board); err != nil {
			return report, err
		}
	}

	s.clock.Advance(1)
	return report, nil
}

func (s *Simulation) solve(id int, track *contacts.TrackedContact) Solution {
	ownship := s.world.Ownship(s.clock.Now())
	sol := Solution{ContactID: id}
	sol.Firing, sol.HasFiring = s.solver.FiringSolution(ownship, track)
	if a := s.scenario.InterceptorAcceleration; a > 0 {
		sol.Intercept, sol.HasIntercept = s.solver.Intercept(ownship, track, a)
	}
	return sol
}

// autoTrack starts tracking the lowest-id search contacts while fewer than
// MaxTracks contacts are tracked.
func (s *Simulation) autoTrack() {
	tracked := 0
	var candidates []int
	for _, e := range s.manager.Board().Entries() {
		if contacts.IsTracked(e.Contact) {
			tracked++
			continue
		}
		candidates = append(candidates, e.ID)
	}

	for _, id := range candidates {
		if tracked >= s.scenario.MaxTracks {
			return
		}
		if err := s.manager.StartTracking(id); err != nil {
			monitoring.Logf("simulation: auto track %d: %v", id, err)
			continue
		}
		monitoring.Debugf("simulation: tracking contact %d", id)
		tracked++
	}
}

// Run steps through every tick of the scenario or until ctx is done.
func (s *Simulation) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Scenario: s.scenario.Name}
	for i := 0; i < s.scenario.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return sum, fmt.Errorf("run %q stopped at tick %d: %w", s.scenario.Name, i, err)
		}

		report, err := s.Step()
		if err != nil {
			return sum, fmt.Errorf("tick %d: %w", report.Tick, err)
		}

		sum.Ticks++
		sum.FinalContacts = report.Contacts
		sum.FinalTracked = report.Tracked
		sum.LastSolutions = report.Solutions
		if report.Contacts > sum.MaxContacts {
			sum.MaxContacts = report.Contacts
		}
		for _, sol := range report.Solutions {
			if sol.HasFiring {
				sum.Solutions++
			}
		}
	}

	monitoring.Logf("simulation: %s finished after %d ticks, %d contacts (%d tracked)",
		sum.Scenario, sum.Ticks, sum.FinalContacts, sum.FinalTracked)
	if monitoring.DebugEnabled() {
		monitoring.Debugf("%s", s.manager.Describe())
	}
	return sum, nil
}
