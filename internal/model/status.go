package model

import "time"

// WorkerStatus represents the current state of the polling worker
type WorkerStatus string

const (
	// WorkerStatusIdle means the worker has not started its first sweep yet
	WorkerStatusIdle WorkerStatus = "Idle"

	// WorkerStatusSweeping means a sweep over the targets is in progress
	WorkerStatusSweeping WorkerStatus = "Sweeping"

	// WorkerStatusSleeping means the worker is waiting for the next sweep
	WorkerStatusSleeping WorkerStatus = "Sleeping"

	// WorkerStatusStopped means the worker loop has exited
	WorkerStatusStopped WorkerStatus = "Stopped"
)

// String returns the string representation of WorkerStatus
func (ws WorkerStatus) String() string {
	return string(ws)
}

// IsActive returns true if the worker is currently fetching
func (ws WorkerStatus) IsActive() bool {
	return ws == WorkerStatusSweeping
}

// IsRunning returns true while the worker loop is alive
func (ws WorkerStatus) IsRunning() bool {
	return ws == WorkerStatusSweeping || ws == WorkerStatusSleeping
}

// WorkerState is a point-in-time view of the worker used by the header
type WorkerState struct {
	Status      WorkerStatus
	SweepID     string    // id of the current or last sweep
	LastSweepAt time.Time // when the last sweep finished
	NextSweepAt time.Time // when the next sweep is scheduled, zero if unknown
	Succeeded   int       // targets updated in the last sweep
	Failed      int       // targets skipped in the last sweep
}

// HasFailures returns true if the last sweep skipped at least one target
func (s WorkerState) HasFailures() bool {
	return s.Failed > 0
}
