package transition

import (
	"errors"
	"testing"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/section"
)

type fixture struct {
	cfg      Config
	registry *scene.Registry
	camera   *scene.CameraNode
	store    *Store
	events   []Event
	player   *Player
	recovery *Recovery
	nodes    map[scene.Role]*scene.Node
}

func newFixture(t *testing.T, skip ...scene.Role) *fixture {
	t.Helper()
	f := &fixture{
		cfg:      DefaultConfig(),
		registry: scene.NewRegistry(),
		camera:   scene.NewCameraNode(common.V3(0, 2, 12)),
		nodes:    make(map[scene.Role]*scene.Node),
	}
	observe := func(e Event) { f.events = append(f.events, e) }
	f.store = NewStore(observe)

	skipped := make(map[scene.Role]bool)
	for _, r := range skip {
		skipped[r] = true
	}
	roles := append(scene.FeatureRoles(), scene.RoleShip, scene.RoleBlackHole, scene.RoleRingedPlanet)
	for _, role := range roles {
		if skipped[role] {
			continue
		}
		n := scene.NewNode(string(role))
		f.nodes[role] = n
		if err := f.registry.Register(role, n); err != nil {
			t.Fatalf("register %s: %v", role, err)
		}
	}

	f.recovery = NewRecovery(f.cfg, f.registry, f.camera, f.store, observe)
	if err := f.recovery.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	timelines, err := NewBuilder(f.cfg, f.registry, f.camera, f.store, observe).BuildAll()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f.player = NewPlayer(f.store, observe, f.cfg.ReverseScale, timelines)
	return f
}

func (f *fixture) snapshot() map[scene.Role]scene.Pose {
	out := make(map[scene.Role]scene.Pose)
	for role, n := range f.nodes {
		out[role] = scene.Snapshot(n)
	}
	return out
}

// settle advances the in-flight transition to its end and returns the number
// of frames it took.
func (f *fixture) settle(t *testing.T) int {
	t.Helper()
	frames := 0
	for f.store.IsTransitioning() {
		f.player.Update(common.FrameDelta)
		frames++
		if frames > 10000 {
			t.Fatalf("transition never finished")
		}
	}
	return frames
}

func (f *fixture) count(kind EventKind) int {
	n := 0
	for _, e := range f.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestDefaultSchedulesValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if d := cfg.Default.Duration(); d != 3.5 {
		t.Fatalf("default duration = %v", d)
	}
}

func TestScheduleValidateRejectsBrokenOrdering(t *testing.T) {
	cases := []struct {
		name  string
		phase Phase
		edit  func(*PhaseSpec)
	}{
		{"close before open ends", PhaseClose, func(p *PhaseSpec) { p.Start = 0.5 }},
		{"swap before consume ends", PhaseSwap, func(p *PhaseSpec) { p.Start = 1.0 }},
		{"show after open", PhaseShow, func(p *PhaseSpec) { p.Start = 0.3 }},
		{"instant phase with duration", PhaseCleanup, func(p *PhaseSpec) { p.Duration = 1 }},
		{"cleanup not last", PhaseCleanup, func(p *PhaseSpec) { p.Start = 3.0 }},
		{"consume outside open", PhaseConsume, func(p *PhaseSpec) { p.Start = 0.1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultSchedule()
			s.Phases = append([]PhaseSpec(nil), s.Phases...)
			for i := range s.Phases {
				if s.Phases[i].Phase == c.phase {
					c.edit(&s.Phases[i])
				}
			}
			if err := s.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	s := DefaultSchedule()
	s.Phases = s.Phases[1:]
	if err := s.Validate(); err == nil {
		t.Fatalf("missing setup phase accepted")
	}
}

func TestStoreSingleFlight(t *testing.T) {
	var dropped int
	s := NewStore(func(e Event) {
		if e.Kind == EventDropped {
			dropped++
		}
	})
	first := section.Pair{From: section.Hero, To: section.About}
	if !s.MarkTransitionStart(first) {
		t.Fatalf("first start refused")
	}
	if s.MarkTransitionStart(section.Pair{From: section.About, To: section.Projects}) {
		t.Fatalf("second start accepted while in flight")
	}
	if dropped != 1 {
		t.Fatalf("dropped events = %d", dropped)
	}
	s.MarkTransitionEnd(section.About, true)
	if s.IsTransitioning() || s.Current() != section.About || !s.HasCompleted(section.About) {
		t.Fatalf("unexpected state %s", s.Snapshot())
	}

	s.MarkTransitionStart(first)
	s.MarkTransitionEnd(section.Hero, false)
	if s.HasCompleted(section.About) || s.Current() != section.Hero {
		t.Fatalf("reverse end did not forget about: %s", s.Snapshot())
	}
}

func TestRoundTripRestoresEveryPair(t *testing.T) {
	for _, pair := range section.Pairs() {
		t.Run(pair.String(), func(t *testing.T) {
			f := newFixture(t)
			if err := f.recovery.Apply(pair.From); err != nil {
				t.Fatalf("recover: %v", err)
			}
			before := f.snapshot()
			shakeBefore := f.camera.Shake()

			if !f.player.Forward(pair) {
				t.Fatalf("forward did not start")
			}
			f.settle(t)
			if f.store.Current() != pair.To {
				t.Fatalf("current = %s after forward", f.store.Current())
			}
			if got := f.registry.VisibleFeatures(); len(got) != 1 || got[0] != pair.To {
				t.Fatalf("visible features after forward = %v", got)
			}

			if !f.player.Backward(pair) {
				t.Fatalf("backward did not start")
			}
			f.settle(t)
			if f.store.Current() != pair.From || f.store.HasCompleted(pair.To) {
				t.Fatalf("state after reverse: %s", f.store.Snapshot())
			}
			after := f.snapshot()
			for role, want := range before {
				if got := after[role]; !got.ApproxEqual(want, 1e-9) {
					t.Fatalf("%s: got %+v, want %+v", role, got, want)
				}
			}
			if f.camera.Shake() != shakeBefore {
				t.Fatalf("camera shake left at %v", f.camera.Shake())
			}
		})
	}
}

func TestScenarioAHeroToAbout(t *testing.T) {
	f := newFixture(t)
	pair := section.Pair{From: section.Hero, To: section.About}
	f.player.Forward(pair)
	f.settle(t)

	ship := f.cfg.Ships[section.About]
	checks := []struct {
		role scene.Role
		want scene.Pose
	}{
		{scene.RoleShip, ship.Pose()},
		{scene.RoleAbout, f.cfg.Feature},
	}
	for _, c := range checks {
		if got := scene.Snapshot(f.nodes[c.role]); !got.ApproxEqual(c.want, 1e-9) {
			t.Fatalf("%s = %+v, want %+v", c.role, got, c.want)
		}
	}
	if f.nodes[scene.RoleHero].Visible() || f.nodes[scene.RoleBlackHole].Visible() {
		t.Fatalf("hero or black hole still visible")
	}
	if got := f.store.Completed(); got != section.Set(0).With(section.About) {
		t.Fatalf("completed = %s", got)
	}
}

func TestScenarioBReverseIsFaster(t *testing.T) {
	f := newFixture(t)
	pair := section.Pair{From: section.Hero, To: section.About}
	f.player.Forward(pair)
	forward := f.settle(t)

	f.player.Backward(pair)
	tl, _ := f.player.Timeline(pair)
	if tl.TimeScale() != 1.5 {
		t.Fatalf("reverse time scale = %v", tl.TimeScale())
	}
	backward := f.settle(t)
	if backward >= forward {
		t.Fatalf("reverse took %d frames, forward %d", backward, forward)
	}

	hero := scene.Snapshot(f.nodes[scene.RoleHero])
	if !hero.ApproxEqual(f.cfg.Hero, 1e-9) {
		t.Fatalf("hero = %+v", hero)
	}
	if f.nodes[scene.RoleAbout].Visible() {
		t.Fatalf("about still visible")
	}
	if ship := scene.Snapshot(f.nodes[scene.RoleShip]); !ship.ApproxEqual(f.cfg.Ships[section.Hero].Pose(), 1e-9) {
		t.Fatalf("ship = %+v", ship)
	}
	if f.store.Completed().Len() != 0 {
		t.Fatalf("completed = %s", f.store.Completed())
	}
}

func TestScenarioCSecondStartDropped(t *testing.T) {
	f := newFixture(t)
	f.player.Forward(section.Pair{From: section.Hero, To: section.About})
	f.player.Update(0.5)

	next := section.Pair{From: section.About, To: section.Projects}
	if f.player.Forward(next) {
		t.Fatalf("second transition started while in flight")
	}
	if tl, _ := f.player.Timeline(next); tl.IsActive() {
		t.Fatalf("second timeline is playing")
	}
	if f.store.Current() != section.Hero {
		t.Fatalf("current changed mid-flight to %s", f.store.Current())
	}
	f.settle(t)
	if f.store.Current() != section.About {
		t.Fatalf("in-flight transition did not complete")
	}
}

func TestScenarioDMissingHandles(t *testing.T) {
	f := newFixture(t, scene.RoleContact)
	if f.count(EventMissingHandle) != 1 {
		t.Fatalf("missing handle events = %d", f.count(EventMissingHandle))
	}
	if err := f.recovery.Apply(section.Skills); err != nil {
		t.Fatalf("recover: %v", err)
	}

	pair := section.Pair{From: section.Skills, To: section.Contact}
	tl, _ := f.player.Timeline(pair)
	if !tl.IsNoop() {
		t.Fatalf("expected no-op timeline")
	}
	if f.player.Forward(pair) {
		t.Fatalf("no-op timeline reported as started")
	}
	if f.store.IsTransitioning() || f.store.Current() != section.Skills {
		t.Fatalf("state changed: %s", f.store.Snapshot())
	}
}

func TestBuildReportsMissingHandleError(t *testing.T) {
	f := newFixture(t, scene.RoleBlackHole)
	b := NewBuilder(f.cfg, f.registry, nil, f.store, nil)
	tl, err := b.Build(section.Pair{From: section.About, To: section.Projects})
	var missing *MissingHandleError
	if !errors.As(err, &missing) || len(missing.Roles) != 1 || missing.Roles[0] != scene.RoleBlackHole {
		t.Fatalf("unexpected error %v", err)
	}
	if !tl.IsNoop() {
		t.Fatalf("expected no-op timeline")
	}
}

func TestDisposedObjectDoesNotAbortFrame(t *testing.T) {
	f := newFixture(t)
	pair := section.Pair{From: section.About, To: section.Projects}
	f.recovery.Apply(pair.From)
	f.nodes[scene.RoleBlackHole].Dispose()

	f.player.Forward(pair)
	f.settle(t)
	if f.count(EventMutationFailed) == 0 {
		t.Fatalf("expected mutation failures to be reported")
	}
	if f.store.Current() != section.Projects || !f.nodes[scene.RoleProjects].Visible() {
		t.Fatalf("transition did not complete around the disposed object")
	}
}

func TestCameraShakeOnlyForConfiguredPairs(t *testing.T) {
	f := newFixture(t)
	f.recovery.Apply(section.About)
	f.player.Forward(section.Pair{From: section.About, To: section.Projects})
	f.player.Update(1.0)
	if f.camera.Shake() == (common.Vec3{}) {
		t.Fatalf("expected camera shake into projects")
	}
	f.settle(t)

	f.player.Forward(section.Pair{From: section.Projects, To: section.Skills})
	for f.store.IsTransitioning() {
		f.player.Update(common.FrameDelta)
		if f.camera.Shake() != (common.Vec3{}) {
			t.Fatalf("camera shook during projects->skills")
		}
	}
}

func TestRecoveryIsIdempotent(t *testing.T) {
	for _, target := range section.All {
		t.Run(target.String(), func(t *testing.T) {
			f := newFixture(t)
			f.player.Forward(section.Pair{From: section.Hero, To: section.About})
			f.player.Update(1.3)
			f.player.Kill()

			f.recovery.Apply(target)
			once := f.snapshot()
			f.recovery.Apply(target)
			twice := f.snapshot()
			for role, want := range once {
				if got := twice[role]; !got.ApproxEqual(want, 0) {
					t.Fatalf("%s changed on second recovery: %+v vs %+v", role, got, want)
				}
			}
			if got := f.registry.VisibleFeatures(); len(got) != 1 || got[0] != target {
				t.Fatalf("visible features = %v", got)
			}
			if f.nodes[scene.RoleBlackHole].Visible() || f.store.Current() != target {
				t.Fatalf("black hole visible or store not forced")
			}
		})
	}
}

func TestKilledPlayerIgnoresRequests(t *testing.T) {
	f := newFixture(t)
	f.player.Kill()
	if f.player.Forward(section.Pair{From: section.Hero, To: section.About}) {
		t.Fatalf("killed timeline started")
	}
	if f.store.IsTransitioning() {
		t.Fatalf("store left in flight")
	}
}
