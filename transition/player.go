package transition

import (
	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/timeline"
)

// Player starts transition timelines under the store's single-flight guard
// and advances the one in flight.
type Player struct {
	store        *Store
	observe      Observer
	reverseScale float64
	timelines    map[section.Pair]*timeline.Timeline
	active       *timeline.Timeline
}

func NewPlayer(store *Store, observe Observer, reverseScale float64, timelines map[section.Pair]*timeline.Timeline) *Player {
	if reverseScale <= 0 {
		reverseScale = 1
	}
	return &Player{store: store, observe: observe, reverseScale: reverseScale, timelines: timelines}
}

func (p *Player) Timeline(pair section.Pair) (*timeline.Timeline, bool) {
	tl, ok := p.timelines[pair]
	return tl, ok
}

// Forward plays the pair's timeline from the start at normal speed.
func (p *Player) Forward(pair section.Pair) bool {
	return p.start(pair, false)
}

// Backward plays the pair's timeline from its end back to the start at the
// reverse time scale.
func (p *Player) Backward(pair section.Pair) bool {
	return p.start(pair, true)
}

func (p *Player) start(pair section.Pair, reverse bool) bool {
	tl, ok := p.timelines[pair]
	if !ok || tl.IsNoop() {
		p.observe.Emit(Event{Kind: EventSkipped, Pair: pair, Section: p.store.Current(), Reverse: reverse})
		return false
	}
	if !p.store.MarkTransitionStart(pair) {
		return false
	}
	var started bool
	if reverse {
		tl.SetTimeScale(p.reverseScale)
		started = tl.Reverse()
	} else {
		tl.SetTimeScale(1)
		started = tl.Play()
	}
	if !started {
		p.store.Force(p.store.Current())
		return false
	}
	p.active = tl
	return true
}

// Update advances the in-flight timeline by dt seconds.
func (p *Player) Update(dt float64) {
	if p.active == nil {
		return
	}
	p.active.Advance(dt)
	if !p.active.IsActive() {
		p.active = nil
	}
}

// Active returns the in-flight timeline, if any.
func (p *Player) Active() (*timeline.Timeline, bool) {
	return p.active, p.active != nil
}

// Kill stops every timeline and releases the in-flight slot.
func (p *Player) Kill() {
	for _, tl := range p.timelines {
		tl.Kill()
	}
	p.active = nil
	if p.store.IsTransitioning() {
		p.store.Force(p.store.Current())
	}
}
