package access

// Tracker counts consecutive denied cycles and signals escalation when the
// threshold is reached. The counter resets to zero in the same cycle it
// reaches the threshold, whether or not the alert is delivered.
type Tracker struct {
	count int
	max   int
}

// NewTracker creates a tracker that escalates after max consecutive denials.
func NewTracker(max int) *Tracker {
	return &Tracker{max: max}
}

// Record applies one cycle's decision and reports whether an alert fires.
func (t *Tracker) Record(d Decision) bool {
	if d == Granted {
		t.count = 0
		return false
	}
	t.count++
	if t.count >= t.max {
		t.count = 0
		return true
	}
	return false
}

// Count returns the current consecutive-denial count.
func (t *Tracker) Count() int {
	return t.count
}
