package simulation

import (
	"github.com/banshee-data/targeting/internal/contacts"
	"github.com/banshee-data/targeting/internal/db"
)

// Solution kinds stored in the journal.
const (
	KindFiring    = "firing"
	KindIntercept = "intercept"
)

// Recorder writes every Nth tick of a run to the journal store.
type Recorder struct {
	store *db.DB
	run   db.Run
	every int
}

// NewRecorder starts a journal run for scenario. every < 1 records every tick.
func NewRecorder(store *db.DB, scenario string, tickLength float64, every int) (*Recorder, error) {
	run, err := store.StartRun(scenario, tickLength)
	if err != nil {
		return nil, err
	}
	if every < 1 {
		every = 1
	}
	return &Recorder{store: store, run: run, every: every}, nil
}

func (r *Recorder) Run() db.Run { return r.run }

// Record stores the board and the report's solutions if the tick is due.
func (r *Recorder) Record(report TickReport, board *contacts.Board) error {
	if report.Tick%uint64(r.every) != 0 {
		return nil
	}
	tick := int(report.Tick)

	entries := board.Entries()
	samples := make([]db.ContactSample, 0, len(entries))
	for _, e := range entries {
		area := board.AreaNow(e.Contact)
		pos, vel := e.Contact.Position(), e.Contact.Velocity()
		samples = append(samples, db.ContactSample{
			Tick:       tick,
			Time:       report.Time,
			ContactID:  e.ID,
			Tracked:    contacts.IsTracked(e.Contact),
			Class:      e.Contact.Class().String(),
			X:          pos.X,
			Y:          pos.Y,
			VX:         vel.X,
			VY:         vel.Y,
			AreaWidth:  area.Width(),
			AreaHeight: area.Height(),
		})
	}
	if err := r.store.RecordContacts(r.run.ID, samples); err != nil {
		return err
	}

	for _, sol := range report.Solutions {
		if sol.HasFiring {
			err := r.store.RecordSolution(r.run.ID, db.SolutionSample{
				Tick:       tick,
				Time:       report.Time,
				ContactID:  sol.ContactID,
				Kind:       KindFiring,
				ImpactTime: sol.Firing.ImpactTime,
				ImpactX:    sol.Firing.ImpactPoint.X,
				ImpactY:    sol.Firing.ImpactPoint.Y,
			})
			if err != nil {
				return err
			}
		}
		if sol.HasIntercept {
			err := r.store.RecordSolution(r.run.ID, db.SolutionSample{
				Tick:       tick,
				Time:       report.Time,
				ContactID:  sol.ContactID,
				Kind:       KindIntercept,
				ImpactTime: sol.Intercept.Time,
				ImpactX:    sol.Intercept.Point.X,
				ImpactY:    sol.Intercept.Point.Y,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
