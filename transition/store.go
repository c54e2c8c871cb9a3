package transition

import (
	"fmt"

	"github.com/milk9111/starfolio/section"
)

// Store is the single source of truth for the current section, whether a
// transition is in flight and which sections were fully entered forward.
type Store struct {
	current       section.Section
	transitioning bool
	active        section.Pair
	completed     section.Set
	observe       Observer
}

func NewStore(observe Observer) *Store {
	return &Store{current: section.Hero, observe: observe}
}

func (s *Store) Current() section.Section { return s.current }
func (s *Store) IsTransitioning() bool    { return s.transitioning }

// Active returns the in-flight pair.
func (s *Store) Active() (section.Pair, bool) {
	return s.active, s.transitioning
}

func (s *Store) HasCompleted(sec section.Section) bool {
	return s.completed.Has(sec)
}

func (s *Store) Completed() section.Set { return s.completed }

// MarkTransitionStart claims the single in-flight slot for p. It returns
// false, and reports the attempt as dropped, when a transition already owns
// it.
func (s *Store) MarkTransitionStart(p section.Pair) bool {
	if s.transitioning {
		s.observe.Emit(Event{Kind: EventDropped, Pair: p, Detail: fmt.Sprintf("start %s during %s", p, s.active)})
		return false
	}
	s.transitioning = true
	s.active = p
	return true
}

// MarkTransitionEnd releases the in-flight slot and makes sec current. A
// forward end records sec as completed; a reverse end forgets the *to*
// section of the pair that was in flight.
func (s *Store) MarkTransitionEnd(sec section.Section, forward bool) {
	if forward {
		s.completed = s.completed.With(sec)
	} else if s.transitioning {
		s.completed = s.completed.Without(s.active.To)
	}
	s.current = sec
	s.transitioning = false
	s.active = section.Pair{}
}

// Force overwrites the current section. Only the recovery path calls it.
func (s *Store) Force(sec section.Section) {
	s.current = sec
	s.transitioning = false
	s.active = section.Pair{}
}

// Reset returns to the initial hero state with nothing completed.
func (s *Store) Reset() {
	s.Force(section.Hero)
	s.completed = 0
}

// State is a copy of the store for debug dumps and the HUD.
type State struct {
	Current       section.Section
	Transitioning bool
	Active        section.Pair
	Completed     section.Set
}

func (s *Store) Snapshot() State {
	return State{Current: s.current, Transitioning: s.transitioning, Active: s.active, Completed: s.completed}
}

func (st State) String() string {
	return fmt.Sprintf("section=%s transitioning=%v completed=%s", st.Current, st.Transitioning, st.Completed)
}
