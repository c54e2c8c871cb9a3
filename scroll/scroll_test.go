package scroll

import (
	"testing"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/transition"
)

const viewport = 720

func TestTriggerSignals(t *testing.T) {
	cases := []struct {
		name  string
		from  float64
		to    float64
		wants []Signal
	}{
		{"still before", 0, 50, nil},
		{"enter", 50, 150, []Signal{EnterForward}},
		{"leave", 150, 250, []Signal{LeaveForward}},
		{"jump over", 50, 250, []Signal{EnterForward, LeaveForward}},
		{"enter back", 250, 150, []Signal{EnterBackward}},
		{"leave back", 150, 50, []Signal{LeaveBackward}},
		{"jump back over", 250, 50, []Signal{EnterBackward, LeaveBackward}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := NewTrigger("t", 100, 200)
			if got := tr.Observe(c.from); got != nil {
				t.Fatalf("priming observation fired %v", got)
			}
			got := tr.Observe(c.to)
			if len(got) != len(c.wants) {
				t.Fatalf("got %v, want %v", got, c.wants)
			}
			for i := range got {
				if got[i] != c.wants[i] {
					t.Fatalf("got %v, want %v", got, c.wants)
				}
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		want Line
	}{
		{"top center", Line{0, 0.5}},
		{"bottom center", Line{1, 0.5}},
		{"top 80%", Line{0, 0.8}},
		{"Bottom 20%", Line{1, 0.2}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseLine(c.in)
			if err != nil || got != c.want {
				t.Fatalf("ParseLine(%q) = %v, %v", c.in, got, err)
			}
		})
	}
	for _, bad := range []string{"top", "middle center", "top 8x%"} {
		if _, err := ParseLine(bad); err == nil {
			t.Fatalf("ParseLine(%q) should fail", bad)
		}
	}
}

func TestLayoutAnchors(t *testing.T) {
	l := NewLayout(viewport, DefaultSpans())
	a, ok := l.Anchor(section.About)
	if !ok || a.Top != 720 || a.Bottom != 1800 || a.ID != "about-section" {
		t.Fatalf("about anchor = %+v", a)
	}
	if l.MaxOffset() != l.Height()-viewport {
		t.Fatalf("max offset = %v", l.MaxOffset())
	}
	start := Line{0, 0.5}.Offset(a, viewport)
	if start != 360 {
		t.Fatalf("about start = %v", start)
	}
}

type harness struct {
	store    *transition.Store
	player   *transition.Player
	recovery *transition.Recovery
	binder   *Binder
	registry *scene.Registry
	events   []transition.Event
}

func newHarness(t *testing.T, spans []Span) *harness {
	t.Helper()
	h := &harness{registry: scene.NewRegistry()}
	observe := func(e transition.Event) { h.events = append(h.events, e) }
	cfg := transition.DefaultConfig()
	roles := append(scene.FeatureRoles(), scene.RoleShip, scene.RoleBlackHole, scene.RoleRingedPlanet)
	for _, role := range roles {
		if err := h.registry.Register(role, scene.NewNode(string(role))); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	cam := scene.NewCameraNode(common.V3(0, 2, 12))
	h.store = transition.NewStore(observe)
	h.recovery = transition.NewRecovery(cfg, h.registry, cam, h.store, observe)
	h.recovery.Reset()
	timelines, err := transition.NewBuilder(cfg, h.registry, cam, h.store, observe).BuildAll()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	h.player = transition.NewPlayer(h.store, observe, cfg.ReverseScale, timelines)
	h.binder, err = NewBinder(DefaultConfig(), NewLayout(viewport, spans), h.store, h.player, h.recovery, observe)
	if err != nil {
		t.Fatalf("binder: %v", err)
	}
	h.binder.Prime(0)
	return h
}

func (h *harness) settle() {
	for i := 0; i < 10000 && h.store.IsTransitioning(); i++ {
		h.player.Update(common.FrameDelta)
	}
}

func (h *harness) count(kind transition.EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestScrollDownThenBack(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	h.binder.Observe(400)
	if active, ok := h.store.Active(); !ok || active.To != section.About {
		t.Fatalf("expected hero->about in flight, got %s", h.store.Snapshot())
	}
	h.settle()
	if h.store.Current() != section.About {
		t.Fatalf("current = %s", h.store.Current())
	}

	h.binder.Observe(300)
	if !h.store.IsTransitioning() {
		t.Fatalf("leaving backward did not reverse")
	}
	tl, _ := h.player.Timeline(section.Pair{From: section.Hero, To: section.About})
	if !tl.Reversed() || tl.TimeScale() != 1.5 {
		t.Fatalf("reverse not at 1.5x: %s", tl)
	}
	h.settle()
	if h.store.Current() != section.Hero || h.store.Completed().Len() != 0 {
		t.Fatalf("after reverse: %s", h.store.Snapshot())
	}
}

func TestSignalsDroppedWhileTransitioning(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	h.binder.Observe(400)
	h.player.Update(0.5)

	h.binder.Observe(1500)
	if h.count(transition.EventDropped) == 0 {
		t.Fatalf("projects entry was not dropped")
	}
	if tl, _ := h.player.Timeline(section.Pair{From: section.About, To: section.Projects}); tl.IsActive() {
		t.Fatalf("a second timeline started")
	}
	h.settle()
	if h.store.Current() != section.About {
		t.Fatalf("current = %s", h.store.Current())
	}
}

func TestSettledTransitionCatchesUpWithScroll(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	max := h.binder.Layout().MaxOffset()
	h.binder.Observe(400)
	h.player.Update(0.5)
	h.binder.Observe(max)
	h.settle()
	if h.store.Current() != section.About {
		t.Fatalf("current before catch-up = %s", h.store.Current())
	}

	h.binder.Observe(max)
	if h.store.Current() != section.Contact || h.count(transition.EventDesync) != 1 {
		t.Fatalf("after settle: %s, desyncs %d", h.store.Snapshot(), h.count(transition.EventDesync))
	}
	if got := h.registry.VisibleFeatures(); len(got) != 1 || got[0] != section.Contact {
		t.Fatalf("visible = %v", got)
	}
}

func TestHeroReverseInsideOverlapIsKept(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	h.binder.Observe(400)
	h.settle()
	h.binder.Observe(1000)

	h.binder.Observe(500)
	if active, ok := h.store.Active(); !ok || active.From != section.Hero {
		t.Fatalf("expected hero reverse in flight, got %s", h.store.Snapshot())
	}
	h.settle()
	h.binder.Observe(500)
	if h.store.Current() != section.Hero || h.count(transition.EventDesync) != 0 {
		t.Fatalf("hero reverse undone: %s", h.store.Snapshot())
	}
}

func TestEnterForwardMismatchRecovers(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	h.binder.Prime(1000)

	h.binder.Observe(1500)
	if h.count(transition.EventDesync) != 1 || h.count(transition.EventRecovered) != 1 {
		t.Fatalf("expected one desync and one recovery")
	}
	if h.store.Current() != section.Projects || h.store.IsTransitioning() {
		t.Fatalf("state after recovery: %s", h.store.Snapshot())
	}
	if got := h.registry.VisibleFeatures(); len(got) != 1 || got[0] != section.Projects {
		t.Fatalf("visible = %v", got)
	}
}

func TestEnterBackwardReplaysCompleted(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	h.binder.Observe(400)
	h.settle()
	h.recovery.Apply(section.Hero)
	h.binder.Prime(1500)

	h.binder.Observe(1000)
	active, ok := h.store.Active()
	if !ok || active != (section.Pair{From: section.Hero, To: section.About}) {
		t.Fatalf("expected replay of hero->about, got %s", h.store.Snapshot())
	}
}

func TestScrollToTopRestoresHero(t *testing.T) {
	for _, from := range section.All {
		t.Run(from.String(), func(t *testing.T) {
			h := newHarness(t, DefaultSpans())
			h.recovery.Apply(from)
			h.binder.Prime(h.binder.Layout().MaxOffset())

			h.binder.Observe(0)
			h.settle()
			h.binder.Observe(0)

			if h.store.Current() != section.Hero || h.store.IsTransitioning() {
				t.Fatalf("state = %s", h.store.Snapshot())
			}
			if got := h.registry.VisibleFeatures(); len(got) != 1 || got[0] != section.Hero {
				t.Fatalf("visible = %v", got)
			}
			bh, _ := h.registry.Get(scene.RoleBlackHole)
			ship, _ := h.registry.Get(scene.RoleShip)
			want := transition.DefaultConfig().Ships[section.Hero].Pose()
			if bh.Visible() || !scene.Snapshot(ship).ApproxEqual(want, 1e-9) {
				t.Fatalf("black hole visible or ship misplaced")
			}
		})
	}
}

func TestMissingAnchorSkipsTrigger(t *testing.T) {
	spans := DefaultSpans()[:4]
	h := newHarness(t, spans)
	if got := len(h.binder.Triggers()); got != 4 {
		t.Fatalf("expected 3 boundary triggers plus hero, got %d", got)
	}
}

func TestRefreshDoesNotFire(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	h.binder.Prime(1000)
	before := len(h.events)

	h.binder.Refresh(h.binder.Layout().WithViewport(1080), 1500)
	if len(h.events) != before || h.store.IsTransitioning() {
		t.Fatalf("refresh fired events")
	}
	if got := h.binder.Expected(1500); got != section.About {
		t.Fatalf("expected section at 1500 after resize = %s", got)
	}
}

func TestKilledBinderIgnoresScroll(t *testing.T) {
	h := newHarness(t, DefaultSpans())
	h.binder.Kill()
	h.binder.Observe(400)
	if h.store.IsTransitioning() {
		t.Fatalf("killed binder started a transition")
	}
}
