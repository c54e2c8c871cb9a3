package transition

import (
	"errors"
	"fmt"
	"strings"
)

// Phase names one step of the transition protocol.
type Phase string

const (
	PhaseSetup       Phase = "setup"
	PhaseShip        Phase = "ship"
	PhaseShow        Phase = "show"
	PhaseOpen        Phase = "open"
	PhaseConsume     Phase = "consume"
	PhaseShake       Phase = "shake"
	PhaseClose       Phase = "close"
	PhaseSwap        Phase = "swap"
	PhaseMaterialize Phase = "materialize"
	PhaseCleanup     Phase = "cleanup"
)

// Phases lists every phase in protocol order.
var Phases = []Phase{
	PhaseSetup, PhaseShip, PhaseShow, PhaseOpen, PhaseConsume,
	PhaseShake, PhaseClose, PhaseSwap, PhaseMaterialize, PhaseCleanup,
}

// discrete phases are instantaneous steps.
var discrete = map[Phase]bool{
	PhaseSetup: true, PhaseShow: true, PhaseSwap: true, PhaseCleanup: true,
}

// PhaseSpec places one phase on the timeline clock. For the shake phase
// Duration is one leg; the out-and-back motion takes twice as long.
type PhaseSpec struct {
	Phase    Phase   `yaml:"phase"`
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

func (p PhaseSpec) End() float64 {
	if p.Phase == PhaseShake {
		return p.Start + 2*p.Duration
	}
	return p.Start + p.Duration
}

// Schedule is the declarative phase list for one timeline type.
type Schedule struct {
	Name   string      `yaml:"name"`
	Phases []PhaseSpec `yaml:"phases"`
}

// Get returns the spec for phase p.
func (s Schedule) Get(p Phase) (PhaseSpec, bool) {
	for _, spec := range s.Phases {
		if spec.Phase == p {
			return spec, true
		}
	}
	return PhaseSpec{}, false
}

func (s Schedule) must(p Phase) PhaseSpec {
	spec, _ := s.Get(p)
	return spec
}

// Duration is the end of the latest phase.
func (s Schedule) Duration() float64 {
	d := 0.0
	for _, spec := range s.Phases {
		if e := spec.End(); e > d {
			d = e
		}
	}
	return d
}

// Validate checks that every phase is present once and that the ordering and
// overlap relationships of the protocol hold.
func (s Schedule) Validate() error {
	var errs []error
	seen := make(map[Phase]bool)
	for _, spec := range s.Phases {
		if seen[spec.Phase] {
			errs = append(errs, fmt.Errorf("phase %s listed twice", spec.Phase))
		}
		seen[spec.Phase] = true
		if spec.Start < 0 || spec.Duration < 0 {
			errs = append(errs, fmt.Errorf("phase %s has negative timing", spec.Phase))
		}
		if discrete[spec.Phase] && spec.Duration != 0 {
			errs = append(errs, fmt.Errorf("phase %s is instantaneous but has duration %v", spec.Phase, spec.Duration))
		}
	}
	var missing []string
	for _, p := range Phases {
		if !seen[p] {
			missing = append(missing, string(p))
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing phases %s", strings.Join(missing, ",")))
		return s.wrap(errors.Join(errs...))
	}

	setup, ship := s.must(PhaseSetup), s.must(PhaseShip)
	show, open := s.must(PhaseShow), s.must(PhaseOpen)
	consume, shake := s.must(PhaseConsume), s.must(PhaseShake)
	closing, swap := s.must(PhaseClose), s.must(PhaseSwap)
	mat, cleanup := s.must(PhaseMaterialize), s.must(PhaseCleanup)

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(setup.Start == 0, "setup must start at 0")
	check(ship.Start == setup.Start, "ship must move for the whole transition from the start")
	check(show.Start <= open.Start, "black hole must be shown before it opens")
	check(consume.Start > open.Start && consume.Start < open.End(), "consume must begin while the black hole is opening")
	check(shake.Start >= consume.Start && shake.Start < consume.End(), "shake must happen during consumption")
	check(closing.Start >= open.End(), "black hole must finish opening before it closes")
	check(closing.Start >= consume.End(), "consumption must finish before the black hole closes")
	check(swap.Start >= consume.End(), "swap must follow consumption")
	check(swap.Start < closing.End(), "swap must overlap the black hole closing")
	check(mat.Start >= swap.Start, "materialize must follow swap")
	for _, spec := range s.Phases {
		if spec.Phase != PhaseCleanup {
			check(cleanup.Start >= spec.End(), "cleanup must come after %s ends", spec.Phase)
		}
	}
	return s.wrap(errors.Join(errs...))
}

func (s Schedule) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("transition: schedule %q: %w", s.Name, err)
}

// DefaultSchedule is the schedule of the generic feature-to-feature
// transition.
func DefaultSchedule() Schedule {
	return Schedule{Name: "default", Phases: []PhaseSpec{
		{Phase: PhaseSetup, Start: 0},
		{Phase: PhaseShip, Start: 0, Duration: 1.2, Ease: "power2.inOut"},
		{Phase: PhaseShow, Start: 0.1},
		{Phase: PhaseOpen, Start: 0.15, Duration: 0.8, Ease: "power2.out"},
		{Phase: PhaseConsume, Start: 0.6, Duration: 0.9, Ease: "power2.in"},
		{Phase: PhaseShake, Start: 0.8, Duration: 0.4, Ease: "power1.out"},
		{Phase: PhaseClose, Start: 1.6, Duration: 0.9, Ease: "power2.inOut"},
		{Phase: PhaseSwap, Start: 2.3},
		{Phase: PhaseMaterialize, Start: 2.4, Duration: 1.0, Ease: "back.out(1.7)"},
		{Phase: PhaseCleanup, Start: 3.5},
	}}
}

// HeroSchedule opens the black hole slightly later so the hero title reads
// before it is pulled in.
func HeroSchedule() Schedule {
	s := DefaultSchedule()
	s.Name = "hero"
	phases := append([]PhaseSpec(nil), s.Phases...)
	for i := range phases {
		switch phases[i].Phase {
		case PhaseShow:
			phases[i].Start = 0.2
		case PhaseOpen:
			phases[i].Start = 0.25
		}
	}
	s.Phases = phases
	return s
}
