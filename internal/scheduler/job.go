package scheduler

import "fmt"

// JobKind distinguishes sensor duties.
type JobKind int

const (
	JobSearch JobKind = iota
	JobTrack
)

// Job is one slot in the sensor rotation.
type Job struct {
	Kind JobKind
	// ID is the board id of the tracked contact for JobTrack.
	ID int
}

// Search returns a wide-beam search job.
func Search() Job { return Job{Kind: JobSearch} }

// Track returns a narrow-beam job following contact id.
func Track(id int) Job { return Job{Kind: JobTrack, ID: id} }

func (j Job) String() string {
	if j.Kind == JobTrack {
		return fmt.Sprintf("Track(%d)", j.ID)
	}
	return "Search"
}

func trackedIDs(jobs []Job) map[int]bool {
	ids := make(map[int]bool)
	for _, j := range jobs {
		if j.Kind == JobTrack {
			ids[j.ID] = true
		}
	}
	return ids
}
