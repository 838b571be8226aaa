package pipeline

import "sync"

// Tracker keeps per-stage state for observers of a single run: the latest
// event for each stage, plus a separate log preserving emission order for
// transports that must replay events exactly as produced.
type Tracker struct {
	mu     sync.Mutex
	latest map[Stage]Event
	log    []Event
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{latest: make(map[Stage]Event)}
}

// Record stores an event, superseding any earlier event for the same stage
// while appending to the emission-order log.
func (t *Tracker) Record(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[ev.Stage] = ev
	t.log = append(t.log, ev)
}

// Latest returns the most recent event recorded for a stage.
func (t *Tracker) Latest(stage Stage) (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ev, ok := t.latest[stage]
	return ev, ok
}

// Log returns a copy of all recorded events in emission order.
func (t *Tracker) Log() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.log))
	copy(out, t.log)
	return out
}
