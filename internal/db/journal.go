package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded simulation.
type Run struct {
	ID         string
	Scenario   string
	TickLength float64
	StartedAt  time.Time
}

// ContactSample is one board entry as seen at a journal tick.
type ContactSample struct {
	Tick       int
	Time       float64
	ContactID  int
	Tracked    bool
	Class      string
	X, Y       float64
	VX, VY     float64
	AreaWidth  float64
	AreaHeight float64
}

// SolutionSample is a firing solution or intercept computed at a journal tick.
type SolutionSample struct {
	Tick       int
	Time       float64
	ContactID  int
	Kind       string
	ImpactTime float64
	ImpactX    float64
	ImpactY    float64
}

// StartRun creates a journal run with a fresh id.
func (db *DB) StartRun(scenario string, tickLength float64) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		Scenario:   scenario,
		TickLength: tickLength,
		StartedAt:  time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO journal_runs (run_id, scenario, tick_length, started_unix_ns) VALUES (?, ?, ?, ?)`,
		run.ID, run.Scenario, run.TickLength, run.StartedAt.UnixNano(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to start run: %w", err)
	}
	return run, nil
}

// Runs lists recorded runs, newest first.
func (db *DB) Runs() ([]Run, error) {
	rows, err := db.Query(`SELECT run_id, scenario, tick_length, started_unix_ns
		FROM journal_runs ORDER BY started_unix_ns DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedNs int64
		if err := rows.Scan(&r.ID, &r.Scenario, &r.TickLength, &startedNs); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, startedNs).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun loads the run with id.
func (db *DB) GetRun(id string) (Run, error) {
	var r Run
	var startedNs int64
	err := db.QueryRow(`SELECT run_id, scenario, tick_length, started_unix_ns
		FROM journal_runs WHERE run_id = ?`, id).Scan(&r.ID, &r.Scenario, &r.TickLength, &startedNs)
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	r.StartedAt = time.Unix(0, startedNs).UTC()
	return r, nil
}

// RecordContacts stores one tick's board entries in a single transaction.
func (db *DB) RecordContacts(runID string, samples []ContactSample) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO journal_contacts (
			run_id, tick, time_s, contact_id, tracked, class,
			x, y, vx, vy, area_width, area_height
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range samples {
		_, err := stmt.Exec(runID, s.Tick, s.Time, s.ContactID, s.Tracked, s.Class,
			s.X, s.Y, s.VX, s.VY, s.AreaWidth, s.AreaHeight)
		if err != nil {
			return fmt.Errorf("failed to insert contact %d at tick %d: %w", s.ContactID, s.Tick, err)
		}
	}
	return tx.Commit()
}

// RecordSolution stores a single firing solution or intercept.
func (db *DB) RecordSolution(runID string, s SolutionSample) error {
	_, err := db.Exec(`INSERT INTO journal_solutions (
			run_id, tick, time_s, contact_id, kind, impact_time, impact_x, impact_y
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, s.Tick, s.Time, s.ContactID, s.Kind, s.ImpactTime, s.ImpactX, s.ImpactY)
	if err != nil {
		return fmt.Errorf("failed to insert solution: %w", err)
	}
	return nil
}

// ContactSamples returns every contact sample of a run in tick then id order.
func (db *DB) ContactSamples(runID string) ([]ContactSample, error) {
	rows, err := db.Query(`SELECT tick, time_s, contact_id, tracked, class,
			x, y, vx, vy, area_width, area_height
		FROM journal_contacts WHERE run_id = ? ORDER BY tick, contact_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactSample
	for rows.Next() {
		var s ContactSample
		if err := rows.Scan(&s.Tick, &s.Time, &s.ContactID, &s.Tracked, &s.Class,
			&s.X, &s.Y, &s.VX, &s.VY, &s.AreaWidth, &s.AreaHeight); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SolutionSamples returns every solution of a run in tick order.
func (db *DB) SolutionSamples(runID string) ([]SolutionSample, error) {
	rows, err := db.Query(`SELECT tick, time_s, contact_id, kind, impact_time, impact_x, impact_y
		FROM journal_solutions WHERE run_id = ? ORDER BY tick, contact_id, rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SolutionSample
	for rows.Next() {
		var s SolutionSample
		if err := rows.Scan(&s.Tick, &s.Time, &s.ContactID, &s.Kind,
			&s.ImpactTime, &s.ImpactX, &s.ImpactY); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
