package transition

import (
	"fmt"
	"log"

	"github.com/milk9111/starfolio/section"
)

// EventKind enumerates the lifecycle events the engine reports.
type EventKind int

const (
	EventStarted EventKind = iota
	EventCompleted
	EventReversed
	// EventDropped is a scroll signal ignored because a transition is in
	// flight. Expected under fast scrolling.
	EventDropped
	EventDesync
	EventRecovered
	EventMissingHandle
	EventMutationFailed
	// EventSkipped is a request against a no-op timeline.
	EventSkipped
)

var eventKindNames = [...]string{
	"started", "completed", "reversed", "dropped", "desync",
	"recovered", "missing-handle", "mutation-failed", "skipped",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventKindNames[k]
}

type Event struct {
	Kind    EventKind
	Pair    section.Pair
	Section section.Section
	Reverse bool
	Err     error
	Detail  string
}

func (e Event) String() string {
	s := fmt.Sprintf("%s %s", e.Kind, e.Pair)
	if e.Reverse {
		s += " (reverse)"
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Observer receives lifecycle events synchronously on the game loop.
type Observer func(Event)

// Emit delivers e if o is set.
func (o Observer) Emit(e Event) {
	if o != nil {
		o(e)
	}
}

// Multi fans an event out to every non-nil observer in order.
func Multi(observers ...Observer) Observer {
	return func(e Event) {
		for _, o := range observers {
			o.Emit(e)
		}
	}
}

// LogObserver writes events with the standard logger. Dropped signals are
// only logged when verbose is set.
func LogObserver(verbose bool) Observer {
	return func(e Event) {
		switch e.Kind {
		case EventDropped:
			if verbose {
				log.Printf("transition: ignored %s while in flight", e.Detail)
			}
		case EventStarted:
			log.Printf("transition: starting %s (reverse=%v)", e.Pair, e.Reverse)
		case EventCompleted:
			log.Printf("transition: completed %s, now at %s", e.Pair, e.Section)
		case EventReversed:
			log.Printf("transition: reversed %s, back at %s", e.Pair, e.Section)
		case EventDesync:
			log.Printf("transition: state mismatch on %s: %s", e.Pair, e.Detail)
		case EventRecovered:
			log.Printf("transition: force corrected to %s", e.Section)
		case EventMissingHandle, EventMutationFailed:
			log.Printf("transition: warning: %s", e)
		case EventSkipped:
			if verbose {
				log.Printf("transition: skipped no-op timeline %s", e.Pair)
			}
		}
	}
}
