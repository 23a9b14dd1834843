package trace

import (
	"fmt"
	"sync"
	"time"
)

// Event is one recorded step of a solve run
type Event struct {
	Seq     int       `json:"seq"`
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

func (e Event) String() string {
	return fmt.Sprintf("[%d] %s: %s", e.Seq, e.Stage, e.Message)
}

// Recorder collects ordered stage events emitted during a solve. A nil
// *Recorder is valid and records nothing, so callers only pay for tracing
// when they ask for it. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{events: make([]Event, 0, 16)}
}

// Record appends one event under the given stage label
func (r *Recorder) Record(stage, format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		Seq:     len(r.events) + 1,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		At:      time.Now(),
	})
}

// Events returns a copy of everything recorded so far, in order
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len reports how many events have been recorded
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset discards all recorded events
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = r.events[:0]
}
