// Package notify holds the polling state machine behind "N new leads"
// notifications. The count itself comes from the repository; this package
// only decides when a polled count warrants surfacing a notification.
package notify

// PollTracker diffs successive new-assignment counts for one session.
// The first observation after login is swallowed because the login response
// already announced that count; it only seeds the baseline.
type PollTracker struct {
	baseline int
	primed   bool
}

// Observe records a polled count and returns the increment to surface.
// notify is false on the first poll and whenever the count has not grown.
func (t *PollTracker) Observe(count int) (delta int, notify bool) {
	if !t.primed {
		t.primed = true
		t.baseline = count
		return 0, false
	}

	if count > t.baseline {
		delta = count - t.baseline
		t.baseline = count
		return delta, true
	}

	t.baseline = count
	return 0, false
}

// Reset clears the tracker, typically on logout or re-login.
func (t *PollTracker) Reset() {
	*t = PollTracker{}
}
