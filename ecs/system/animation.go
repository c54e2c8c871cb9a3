package system

import (
	"github.com/milk9111/starfolio/animation"
	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
	"github.com/milk9111/starfolio/transition"
)

// TransitionEventType tags world events carrying a transition.Event.
const TransitionEventType = "transition"

// AnimationSystem feeds the scroll offset to the mounted manager, advances
// the in-flight transition and mirrors the engine state into
// TransitionRuntime for the HUD.
type AnimationSystem struct {
	manager  *animation.Manager
	observed float64
	primed   bool
	pending  []transition.Event
}

func NewAnimationSystem(m *animation.Manager) *AnimationSystem {
	return &AnimationSystem{manager: m}
}

// SetManager swaps the manager after a reload. The caller tears down the
// old one.
func (a *AnimationSystem) SetManager(m *animation.Manager) {
	a.manager = m
	a.primed = false
}

func (a *AnimationSystem) Manager() *animation.Manager { return a.manager }

// Record is a transition.Observer. Recorded events are published on the
// world event queue during the next Update.
func (a *AnimationSystem) Record(e transition.Event) {
	a.pending = append(a.pending, e)
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil || a.manager == nil || a.manager.TornDown() {
		return
	}

	if e, ok := ecs.First(w, component.ScrollStateComponent.Kind()); ok {
		st, _ := ecs.Get(w, e, component.ScrollStateComponent.Kind())
		layout := a.manager.Layout()
		st.Max = layout.MaxOffset()
		st.Viewport = layout.Viewport
		if !a.primed || st.Offset != a.observed {
			a.manager.Observe(st.Offset)
			a.observed = st.Offset
			a.primed = true
		}
	}

	a.manager.Update(common.FrameDelta)

	for _, e := range a.pending {
		w.Events().Push(ecs.Event{Type: TransitionEventType, Data: e})
	}
	a.pending = a.pending[:0]

	ecs.ForEach(w, component.TransitionRuntimeComponent.Kind(), func(e ecs.Entity, rt *component.TransitionRuntime) {
		state := a.manager.State()
		rt.Current = state.Current.String()
		rt.Transitioning = state.Transitioning
		rt.Completed = state.Completed.String()
		rt.Active = ""
		rt.Progress = 0
		rt.Reversing = false
		if tl, ok := a.manager.Active(); ok {
			rt.Active = state.Active.String()
			rt.Progress = tl.Progress()
			rt.Reversing = tl.Reversed()
		}
	})
}
