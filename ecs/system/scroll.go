package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
)

// ScrollInput is one frame of scroll intent.
type ScrollInput struct {
	Wheel float64 // wheel delta, positive scrolls up
	Step  int     // arrow keys, positive scrolls down
	Page  int
	Home  bool
	End   bool
}

func (in ScrollInput) empty() bool {
	return in.Wheel == 0 && in.Step == 0 && in.Page == 0 && !in.Home && !in.End
}

// ScrollSystem turns wheel and keyboard input into a smoothed document
// offset on every ScrollState.
type ScrollSystem struct {
	read func() ScrollInput

	wheelSpeed float64
	lineStep   float64
	follow     float64
	glideEase  common.Ease
}

func NewScrollSystem() *ScrollSystem {
	return &ScrollSystem{
		read:       readScrollInput,
		wheelSpeed: 90,
		lineStep:   60,
		follow:     0.18,
		glideEase:  common.PowerInOut(2),
	}
}

func (s *ScrollSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := s.read()

	ecs.ForEach(w, component.ScrollStateComponent.Kind(), func(e ecs.Entity, st *component.ScrollState) {
		if !in.empty() {
			// Manual input always wins over a header jump.
			st.Glide = nil
			s.apply(st, in)
		}

		if g := st.Glide; g != nil {
			g.Elapsed += common.FrameDelta
			p := 1.0
			if g.Duration > 0 {
				p = common.Clamp01(g.Elapsed / g.Duration)
			}
			st.Offset = common.Lerp(g.From, g.To, s.glideEase(p))
			st.Target = st.Offset
			if p >= 1 {
				st.Glide = nil
			}
			return
		}

		st.Offset += (st.Target - st.Offset) * s.follow
		if math.Abs(st.Target-st.Offset) < 0.5 {
			st.Offset = st.Target
		}
	})
}

func (s *ScrollSystem) apply(st *component.ScrollState, in ScrollInput) {
	target := st.Target
	target -= in.Wheel * s.wheelSpeed
	target += float64(in.Step) * s.lineStep
	target += float64(in.Page) * st.Viewport * 0.9
	if in.Home {
		target = 0
	}
	if in.End {
		target = st.Max
	}
	st.Target = common.Clamp(target, 0, st.Max)
}

// GlideTo starts a timed jump from the current offset to `to`.
func GlideTo(st *component.ScrollState, to, duration float64) {
	if st == nil {
		return
	}
	to = common.Clamp(to, 0, st.Max)
	st.Glide = &component.ScrollGlide{From: st.Offset, To: to, Duration: duration}
	st.Target = to
}

func readScrollInput() ScrollInput {
	_, dy := ebiten.Wheel()
	in := ScrollInput{Wheel: dy}

	if keyRepeat(ebiten.KeyArrowDown) || keyRepeat(ebiten.KeyJ) {
		in.Step++
	}
	if keyRepeat(ebiten.KeyArrowUp) || keyRepeat(ebiten.KeyK) {
		in.Step--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.Page++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		in.Page--
	}
	in.Home = inpututil.IsKeyJustPressed(ebiten.KeyHome)
	in.End = inpututil.IsKeyJustPressed(ebiten.KeyEnd)
	return in
}

// keyRepeat fires on press and then every few ticks while held.
func keyRepeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 20 && d%4 == 0)
}
