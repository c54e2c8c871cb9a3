package scroll

import (
	"fmt"
	"log"

	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/transition"
)

// Transitions starts timelines. Both methods report whether a timeline
// actually started.
type Transitions interface {
	Forward(section.Pair) bool
	Backward(section.Pair) bool
}

// Recoverer forces canonical scene states.
type Recoverer interface {
	Apply(section.Section) error
	Reset() error
}

type Config struct {
	Start     string
	End       string
	HeroStart string
	HeroEnd   string
	// HeroThreshold is the offset at or below which the scene is forced back
	// to the hero state.
	HeroThreshold float64
}

func DefaultConfig() Config {
	return Config{
		Start:         "top center",
		End:           "bottom center",
		HeroStart:     "top 80%",
		HeroEnd:       "bottom 20%",
		HeroThreshold: 100,
	}
}

type lines struct {
	start, end, heroStart, heroEnd Line
}

func (c Config) lines() (lines, error) {
	var ls lines
	var err error
	for _, p := range []struct {
		dst *Line
		src string
	}{
		{&ls.start, c.Start}, {&ls.end, c.End},
		{&ls.heroStart, c.HeroStart}, {&ls.heroEnd, c.HeroEnd},
	} {
		if *p.dst, err = ParseLine(p.src); err != nil {
			return ls, err
		}
	}
	return ls, nil
}

// binding is the trigger on the anchor of pair.To.
type binding struct {
	pair    section.Pair
	trigger *Trigger
}

// Binder turns scroll offsets into transition requests. Every signal is
// dropped while a transition is in flight.
type Binder struct {
	cfg      Config
	lines    lines
	layout   Layout
	store    *transition.Store
	player   Transitions
	recovery Recoverer
	observe  transition.Observer

	bindings []binding
	hero     *Trigger

	offset      float64
	atTop       bool
	pendingHero bool
	inFlight    bool
	killed      bool
}

func NewBinder(cfg Config, layout Layout, store *transition.Store, player Transitions, recovery Recoverer, observe transition.Observer) (*Binder, error) {
	ls, err := cfg.lines()
	if err != nil {
		return nil, err
	}
	b := &Binder{
		cfg:      cfg,
		lines:    ls,
		layout:   layout,
		store:    store,
		player:   player,
		recovery: recovery,
		observe:  observe,
	}
	for _, p := range section.Pairs() {
		a, ok := layout.Anchor(p.To)
		if !ok {
			log.Printf("scroll: warning: no anchor #%s, %s trigger not bound", p.To.Anchor(), p)
			continue
		}
		b.bindings = append(b.bindings, binding{
			pair:    p,
			trigger: NewTrigger(p.To.Anchor(), ls.start.Offset(a, layout.Viewport), ls.end.Offset(a, layout.Viewport)),
		})
	}
	if a, ok := layout.Anchor(section.Hero); ok {
		b.hero = NewTrigger(a.ID, ls.heroStart.Offset(a, layout.Viewport), ls.heroEnd.Offset(a, layout.Viewport))
	} else {
		log.Printf("scroll: warning: no anchor #%s, hero trigger not bound", section.Hero.Anchor())
	}
	return b, nil
}

// Expected is the section the document shows at offset: the *to* section of
// the last boundary whose start line has been passed.
func (b *Binder) Expected(offset float64) section.Section {
	sec := section.Hero
	for _, bd := range b.bindings {
		if offset >= bd.trigger.Start {
			sec = bd.pair.To
		}
	}
	return sec
}

// Prime establishes every trigger's region at offset without firing.
func (b *Binder) Prime(offset float64) {
	b.offset = offset
	for _, bd := range b.bindings {
		bd.trigger.Move(bd.trigger.Start, bd.trigger.End, offset)
	}
	if b.hero != nil {
		b.hero.Move(b.hero.Start, b.hero.End, offset)
	}
	b.atTop = offset <= b.cfg.HeroThreshold
}

// Observe feeds the current scroll offset. It is called once per frame.
func (b *Binder) Observe(offset float64) {
	if b.killed {
		return
	}
	b.offset = offset
	for _, bd := range b.bindings {
		for _, sig := range bd.trigger.Observe(offset) {
			b.handle(bd.pair, sig)
		}
	}
	if b.hero != nil {
		for _, sig := range b.hero.Observe(offset) {
			b.handleHero(sig)
		}
	}
	b.guardTop(offset)
	b.reconcile(offset)
}

func (b *Binder) dropped(p section.Pair, sig Signal) bool {
	if !b.store.IsTransitioning() {
		return false
	}
	b.observe.Emit(transition.Event{Kind: transition.EventDropped, Pair: p, Detail: fmt.Sprintf("%s on %s", sig, p)})
	return true
}

func (b *Binder) handle(p section.Pair, sig Signal) {
	if b.dropped(p, sig) {
		return
	}
	current := b.store.Current()
	switch sig {
	case EnterForward:
		if current == p.From {
			b.player.Forward(p)
			return
		}
		b.observe.Emit(transition.Event{
			Kind:    transition.EventDesync,
			Pair:    p,
			Section: current,
			Detail:  fmt.Sprintf("expected %s, got %s", p.From, current),
		})
		if err := b.recovery.Apply(p.To); err != nil {
			log.Printf("scroll: recovery to %s: %v", p.To, err)
		}
	case LeaveBackward:
		if current == p.To {
			b.player.Backward(p)
		}
	case EnterBackward:
		if current == p.From && b.store.HasCompleted(p.To) {
			b.player.Forward(p)
		}
	case LeaveForward:
	}
}

func (b *Binder) handleHero(sig Signal) {
	p := section.Pair{From: section.Hero, To: section.About}
	if sig != EnterBackward || b.dropped(p, sig) {
		return
	}
	if b.store.Current() == section.About {
		b.player.Backward(p)
	}
}

// guardTop forces the hero state when the offset reaches the top. A reset
// requested while a transition is in flight waits for it to finish.
func (b *Binder) guardTop(offset float64) {
	top := offset <= b.cfg.HeroThreshold
	arrived := top && !b.atTop
	b.atTop = top
	if !top {
		b.pendingHero = false
		return
	}
	if !arrived && !b.pendingHero && b.store.Current() == section.Hero {
		return
	}
	if b.store.IsTransitioning() {
		b.pendingHero = true
		return
	}
	b.pendingHero = false
	if err := b.recovery.Reset(); err != nil {
		log.Printf("scroll: hero reset: %v", err)
	}
}

// reconcile runs once per settled transition. Signals dropped during the
// flight can leave the store behind the document, which is then forced to
// the section shown at offset.
func (b *Binder) reconcile(offset float64) {
	busy := b.store.IsTransitioning()
	settled := b.inFlight && !busy
	b.inFlight = busy
	if !settled {
		return
	}
	current := b.store.Current()
	if b.consistent(current, offset) {
		return
	}
	want := b.Expected(offset)
	b.observe.Emit(transition.Event{
		Kind:    transition.EventDesync,
		Pair:    section.Pair{From: current, To: want},
		Section: current,
		Detail:  fmt.Sprintf("settled at %s, document shows %s", current, want),
	})
	if err := b.recovery.Apply(want); err != nil {
		log.Printf("scroll: recovery to %s: %v", want, err)
	}
}

// consistent reports whether current may be shown at offset. Above the hero
// trigger's end line the hero state is valid next to about, since the hero
// trigger reverses before the about start line is crossed.
func (b *Binder) consistent(current section.Section, offset float64) bool {
	want := b.Expected(offset)
	if current == want {
		return true
	}
	return want == section.About && current == section.Hero && b.hero != nil && offset < b.hero.End
}

// Refresh recomputes every trigger for a new layout, typically after a
// resize, and re-derives regions at the current offset without firing.
func (b *Binder) Refresh(layout Layout, offset float64) {
	b.layout = layout
	for _, bd := range b.bindings {
		a, _ := layout.Anchor(bd.pair.To)
		bd.trigger.Move(b.lines.start.Offset(a, layout.Viewport), b.lines.end.Offset(a, layout.Viewport), offset)
	}
	if b.hero != nil {
		a, _ := layout.Anchor(section.Hero)
		b.hero.Move(b.lines.heroStart.Offset(a, layout.Viewport), b.lines.heroEnd.Offset(a, layout.Viewport), offset)
	}
	b.offset = offset
	b.atTop = offset <= b.cfg.HeroThreshold
}

// Kill unbinds every trigger. Later observations are ignored.
func (b *Binder) Kill() {
	b.killed = true
	b.bindings = nil
	b.hero = nil
}

func (b *Binder) Layout() Layout { return b.layout }

// Triggers lists the bound triggers, hero last.
func (b *Binder) Triggers() []*Trigger {
	out := make([]*Trigger, 0, len(b.bindings)+1)
	for _, bd := range b.bindings {
		out = append(out, bd.trigger)
	}
	if b.hero != nil {
		out = append(out, b.hero)
	}
	return out
}
