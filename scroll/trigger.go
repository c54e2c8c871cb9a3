package scroll

import "fmt"

// Region is where the scroll offset sits relative to a trigger's range.
type Region int

const (
	Before Region = iota
	Active
	After
)

func (r Region) String() string {
	switch r {
	case Before:
		return "before"
	case Active:
		return "active"
	case After:
		return "after"
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// Signal is one of the four directional crossings of a trigger.
type Signal int

const (
	EnterForward Signal = iota
	LeaveForward
	EnterBackward
	LeaveBackward
)

var signalNames = [...]string{"enter-forward", "leave-forward", "enter-backward", "leave-backward"}

func (s Signal) String() string {
	if s < 0 || int(s) >= len(signalNames) {
		return fmt.Sprintf("signal(%d)", int(s))
	}
	return signalNames[s]
}

// Trigger watches one scroll range [Start, End]. The first observation only
// establishes the region; later ones emit the signals for every edge crossed,
// in crossing order.
type Trigger struct {
	Name  string
	Start float64
	End   float64

	region Region
	primed bool
}

func NewTrigger(name string, start, end float64) *Trigger {
	if end < start {
		end = start
	}
	return &Trigger{Name: name, Start: start, End: end}
}

func (t *Trigger) Region() Region { return t.region }

func (t *Trigger) regionOf(offset float64) Region {
	switch {
	case offset < t.Start:
		return Before
	case offset > t.End:
		return After
	}
	return Active
}

// Observe moves the trigger to offset and returns the crossings.
func (t *Trigger) Observe(offset float64) []Signal {
	next := t.regionOf(offset)
	if !t.primed {
		t.primed = true
		t.region = next
		return nil
	}
	prev := t.region
	t.region = next
	switch {
	case prev == next:
		return nil
	case prev == Before && next == Active:
		return []Signal{EnterForward}
	case prev == Before && next == After:
		return []Signal{EnterForward, LeaveForward}
	case prev == Active && next == After:
		return []Signal{LeaveForward}
	case prev == After && next == Active:
		return []Signal{EnterBackward}
	case prev == After && next == Before:
		return []Signal{EnterBackward, LeaveBackward}
	case prev == Active && next == Before:
		return []Signal{LeaveBackward}
	}
	return nil
}

// Move changes the range and silently re-derives the region for offset.
func (t *Trigger) Move(start, end, offset float64) {
	if end < start {
		end = start
	}
	t.Start, t.End = start, end
	t.region = t.regionOf(offset)
	t.primed = true
}

func (t *Trigger) String() string {
	return fmt.Sprintf("%s[%.0f..%.0f %s]", t.Name, t.Start, t.End, t.region)
}
