// Package scheduler shares one physical sensor between a wide search sweep
// and any number of narrow tracking jobs.
//
// Exactly one job runs per tick. Beam parameters set during a tick only
// apply to the next tick's scan, so each Step scans for the current job and
// then prepares the beam for the job after it.
package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/banshee-data/targeting/internal/contacts"
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/monitoring"
	"github.com/banshee-data/targeting/internal/sensor"
	"github.com/banshee-data/targeting/internal/timeutil"
)

// ErrContactNotFound is returned when a job names an id missing from the
// board.
var ErrContactNotFound = errors.New("contact not found")

// Manager runs the sensor job rotation and owns the contact board.
type Manager struct {
	board    *contacts.Board
	rotation []Job
	index    int

	search *SearchSensor
	track  *TrackSensor
}

// NewManager creates a manager whose rotation holds a single search job.
func NewManager(cfg Config, s sensor.Sensor, clock timeutil.Clock) *Manager {
	return &Manager{
		board:    contacts.NewBoard(clock),
		rotation: []Job{Search()},
		search:   NewSearchSensor(cfg, s, clock),
		track:    NewTrackSensor(cfg, s, clock),
	}
}

// Board returns the contact board fed by the manager's scans.
func (m *Manager) Board() *contacts.Board { return m.board }

// Step runs one tick: scan for the current job, then set up the next.
func (m *Manager) Step(emitter kinematics.Acceleration) {
	m.Scan(emitter)
	m.Adjust(emitter)
}

// Scan performs the current job's scan and folds the result into the board.
func (m *Manager) Scan(emitter kinematics.Position) {
	if m.index >= len(m.rotation) {
		return
	}

	job := m.rotation[m.index]
	switch job.Kind {
	case JobSearch:
		if c, ok := m.search.Scan(emitter); ok {
			m.board.Add(c)
		}

	case JobTrack:
		target, ok := m.board.Take(job.ID)
		if !ok {
			monitoring.Logf("scheduler: tracked contact %d not on board", job.ID)
			return
		}
		track, hit := m.track.Scan(target, emitter)
		if !hit {
			// A lost track stays off the board. Its region would otherwise keep
			// growing and swallow every later search hit of the same class.
			monitoring.Logf("scheduler: track %d lost", job.ID)
			m.removeCurrentJob()
			return
		}
		m.board.Insert(job.ID, track)
	}
}

// removeCurrentJob deletes the job just scanned so that the next Adjust
// moves on to the job that followed it.
func (m *Manager) removeCurrentJob() {
	m.rotation = append(m.rotation[:m.index], m.rotation[m.index+1:]...)
	if len(m.rotation) == 0 {
		m.index = 0
		return
	}
	m.index = (m.index + len(m.rotation) - 1) % len(m.rotation)
}

// Adjust advances the rotation and sets the beam for the job now current.
// Track jobs whose contact has left the board are dropped from the rotation.
func (m *Manager) Adjust(emitter kinematics.Acceleration) {
	if len(m.rotation) == 0 {
		return
	}
	m.index = (m.index + 1) % len(m.rotation)

	for len(m.rotation) > 0 {
		job := m.rotation[m.index]
		if job.Kind == JobSearch {
			m.search.Adjust(emitter)
			return
		}

		c, _ := m.board.Get(job.ID)
		switch c := c.(type) {
		case *contacts.TrackedContact:
			m.track.Adjust(c, emitter)
			return
		case *contacts.SearchContact:
			m.track.Adjust(contacts.Promote(c), emitter)
			return
		}

		monitoring.Logf("scheduler: dropping %v, contact not on board", job)
		m.rotation = append(m.rotation[:m.index], m.rotation[m.index+1:]...)
		if m.index >= len(m.rotation) {
			m.index = 0
		}
	}
}

// StartTracking adds a track job for id and promotes its contact.
func (m *Manager) StartTracking(id int) error {
	if !m.board.Track(id) {
		return fmt.Errorf("start tracking %d: %w", id, ErrContactNotFound)
	}
	if trackedIDs(m.rotation)[id] {
		return nil
	}
	m.rotation = append(m.rotation, Track(id))
	return nil
}

// StopTracking removes the track job for id, demoting its contact.
func (m *Manager) StopTracking(id int) {
	next := make([]Job, 0, len(m.rotation))
	for _, j := range m.rotation {
		if j.Kind == JobTrack && j.ID == id {
			continue
		}
		next = append(next, j)
	}
	// Every id left in next was already in the rotation and on the board.
	_ = m.SetJobRotation(next)
}

// SetJobRotation replaces the rotation. Contacts tracked by the old rotation
// but absent from the new one are demoted to search contacts, and contacts
// newly named by a track job are promoted. Every tracked id must be on the
// board.
func (m *Manager) SetJobRotation(jobs []Job) error {
	next := trackedIDs(jobs)
	for id := range next {
		if _, ok := m.board.Get(id); !ok {
			return fmt.Errorf("set job rotation: track %d: %w", id, ErrContactNotFound)
		}
	}

	for id := range trackedIDs(m.rotation) {
		if !next[id] {
			m.board.Untrack(id)
		}
	}
	for id := range next {
		m.board.Track(id)
	}

	m.rotation = append([]Job(nil), jobs...)
	if m.index >= len(m.rotation) {
		m.index = 0
	}
	return nil
}

// JobRotation returns a copy of the current rotation.
func (m *Manager) JobRotation() []Job {
	return append([]Job(nil), m.rotation...)
}

// CurrentJob returns the job the next Scan will run.
func (m *Manager) CurrentJob() (Job, bool) {
	if m.index >= len(m.rotation) {
		return Job{}, false
	}
	return m.rotation[m.index], true
}

// Describe summarises the rotation and board for logs.
func (m *Manager) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rotation: %v\n", m.rotation)
	fmt.Fprintf(&sb, "next job: %d\n", m.index)
	sb.WriteString(m.board.Describe())
	return sb.String()
}
