package filesync

import "time"

// Status describes the recent health of file syncing.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the writer has succeeded and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Status returns a snapshot of the writer's recent health.
func (w *Writer) Status() Status {
	if w == nil {
		return Status{}
	}
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}

func (w *Writer) recordSuccess(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastAttempt = at
	w.status.LastSuccess = at
}

func (w *Writer) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	if err != nil {
		w.status.LastError = err.Error()
	}
	w.status.LastAttempt = at
}
