package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
	"github.com/milk9111/starfolio/transition"
)

const hudEventLines = 4

// HUDSystem draws the scroll bar and, in debug mode, the engine state and
// the latest transition events.
type HUDSystem struct {
	debug  bool
	recent []string
}

func NewHUDSystem(debug bool) *HUDSystem {
	return &HUDSystem{debug: debug}
}

func (h *HUDSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		if evt.Type != TransitionEventType {
			continue
		}
		te, ok := evt.Data.(transition.Event)
		if !ok || te.Kind == transition.EventDropped {
			continue
		}
		h.recent = append(h.recent, te.String())
	}
	if n := len(h.recent); n > hudEventLines {
		h.recent = append(h.recent[:0], h.recent[n-hudEventLines:]...)
	}
}

// Recent returns the latest transition events, oldest first.
func (h *HUDSystem) Recent() []string {
	return append([]string(nil), h.recent...)
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	sw, sh := float32(bounds.Dx()), float32(bounds.Dy())

	if e, ok := ecs.First(w, component.ScrollStateComponent.Kind()); ok {
		st, _ := ecs.Get(w, e, component.ScrollStateComponent.Kind())
		if st.Max > 0 && st.Viewport > 0 {
			total := st.Max + st.Viewport
			thumb := sh * float32(st.Viewport/total)
			top := (sh - thumb) * float32(st.Offset/st.Max)
			vector.DrawFilledRect(screen, sw-6, 0, 6, sh, colornames.Black, false)
			vector.DrawFilledRect(screen, sw-5, top, 4, thumb, colornames.Dimgray, false)
		}
		if h.debug {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("offset %.0f / %.0f  viewport %.0f", st.Offset, st.Max, st.Viewport), 8, int(sh)-48)
		}
	}

	if !h.debug {
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()), 8, int(sh)-64)
	ecs.ForEach(w, component.TransitionRuntimeComponent.Kind(), func(e ecs.Entity, rt *component.TransitionRuntime) {
		line := fmt.Sprintf("section %s  completed %s", rt.Current, rt.Completed)
		if rt.Transitioning {
			dir := "forward"
			if rt.Reversing {
				dir = "reverse"
			}
			line += fmt.Sprintf("  %s %s %.0f%%", rt.Active, dir, rt.Progress*100)
		}
		ebitenutil.DebugPrintAt(screen, line, 8, int(sh)-32)
	})
	for i, line := range h.recent {
		ebitenutil.DebugPrintAt(screen, line, 8, 40+i*16)
	}
}
