package transition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/timeline"
)

// EaseResolver turns an ease name from a schedule into a curve.
type EaseResolver func(name string) (common.Ease, error)

// MissingHandleError reports the roles that were not mounted when a
// transition was built.
type MissingHandleError struct {
	Pair  section.Pair
	Roles []scene.Role
}

func (e *MissingHandleError) Error() string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("transition %s: missing handles %s", e.Pair, strings.Join(names, ","))
}

// Builder constructs one timeline per adjacent section pair.
type Builder struct {
	cfg      Config
	registry *scene.Registry
	camera   scene.Camera
	store    *Store
	observe  Observer
	ease     EaseResolver
}

type BuilderOption func(*Builder)

// WithEaseResolver replaces the built-in ease names, e.g. to add scripted
// curves.
func WithEaseResolver(r EaseResolver) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.ease = r
		}
	}
}

// NewBuilder returns a builder. camera may be nil, which disables the shake
// phase.
func NewBuilder(cfg Config, registry *scene.Registry, camera scene.Camera, store *Store, observe Observer, opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:      cfg,
		registry: registry,
		camera:   camera,
		store:    store,
		observe:  observe,
		ease:     common.ParseEase,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func requiredRoles(p section.Pair) []scene.Role {
	roles := []scene.Role{scene.RoleShip, scene.RoleBlackHole, scene.FeatureRole(p.From), scene.FeatureRole(p.To)}
	if p.From == section.Hero {
		roles = append(roles, scene.RoleRingedPlanet)
	}
	return roles
}

// Build returns the transition timeline of p. When a required handle is
// missing it returns a no-op timeline together with a *MissingHandleError;
// the no-op timeline is safe to keep and never plays.
func (b *Builder) Build(p section.Pair) (*timeline.Timeline, error) {
	name := p.String()
	if missing := b.registry.Missing(requiredRoles(p)...); len(missing) > 0 {
		err := &MissingHandleError{Pair: p, Roles: missing}
		b.observe.Emit(Event{Kind: EventMissingHandle, Pair: p, Err: err})
		return timeline.Noop(name), err
	}

	tl := timeline.New(name)
	if err := b.populate(tl, p); err != nil {
		return timeline.Noop(name), err
	}
	if err := tl.Err(); err != nil {
		return timeline.Noop(name), err
	}
	tl.SetCallbacks(b.callbacks(p))
	return tl, nil
}

// BuildAll builds every adjacent pair. Pairs with missing handles get no-op
// timelines; other errors abort.
func (b *Builder) BuildAll() (map[section.Pair]*timeline.Timeline, error) {
	out := make(map[section.Pair]*timeline.Timeline)
	for _, p := range section.Pairs() {
		tl, err := b.Build(p)
		if err != nil {
			var missing *MissingHandleError
			if !errors.As(err, &missing) {
				return nil, err
			}
		}
		out[p] = tl
	}
	return out, nil
}

type easedPhase struct {
	PhaseSpec
	curve common.Ease
}

func (b *Builder) phases(s Schedule) (map[Phase]easedPhase, error) {
	out := make(map[Phase]easedPhase, len(s.Phases))
	for _, spec := range s.Phases {
		curve, err := b.ease(spec.Ease)
		if err != nil {
			return nil, fmt.Errorf("transition: schedule %q phase %s: %w", s.Name, spec.Phase, err)
		}
		out[spec.Phase] = easedPhase{PhaseSpec: spec, curve: curve}
	}
	return out, nil
}

func (b *Builder) populate(tl *timeline.Timeline, p section.Pair) error {
	ph, err := b.phases(b.cfg.ScheduleFor(p))
	if err != nil {
		return err
	}
	setup, ship := ph[PhaseSetup], ph[PhaseShip]
	show, open, closing := ph[PhaseShow], ph[PhaseOpen], ph[PhaseClose]
	consume, shake := ph[PhaseConsume], ph[PhaseShake]
	swap, mat, cleanup := ph[PhaseSwap], ph[PhaseMaterialize], ph[PhaseCleanup]

	shipObj, _ := b.registry.Get(scene.RoleShip)
	bh, _ := b.registry.Get(scene.RoleBlackHole)
	from, _ := b.registry.Feature(p.From)
	to, _ := b.registry.Feature(p.To)

	fromPose := b.cfg.Feature
	if p.From == section.Hero {
		fromPose = b.cfg.Hero
	}
	toPose := b.cfg.Feature
	hidden := b.cfg.HiddenFeature()
	target := b.cfg.BlackHole.ConsumeTarget()
	infall := common.Uniform(b.cfg.BlackHole.InfallScale)

	// ship
	shipFrom, _ := b.cfg.ShipAt(p.From)
	shipTo, _ := b.cfg.ShipAt(p.To)
	tl.Vec3("ship.position", shipObj.SetPosition).
		To(ship.Start, ship.Duration, shipFrom.Position, shipTo.Position, ship.curve)
	tl.Vec3("ship.scale", shipObj.SetScale).
		To(ship.Start, ship.Duration, common.Uniform(shipFrom.Scale), common.Uniform(shipTo.Scale), ship.curve)

	// black hole
	openScale := common.Uniform(b.cfg.BlackHole.OpenScale)
	tl.Vec3("black_hole.position", bh.SetPosition).
		Set(setup.Start, b.cfg.BlackHole.Position, b.cfg.BlackHole.Position)
	tl.Bool("black_hole.visible", bh.SetVisible).
		Set(show.Start, false, true).
		Set(cleanup.Start, true, false)
	tl.Vec3("black_hole.scale", bh.SetScale).
		To(open.Start, open.Duration, common.Vec3{}, openScale, open.curve).
		To(closing.Start, closing.Duration, openScale, common.Vec3{}, closing.curve)

	// outgoing feature
	tl.Bool("from.visible", from.SetVisible).
		Set(setup.Start, true, true).
		Set(swap.Start, true, false).
		Set(cleanup.Start, false, false)
	tl.Vec3("from.position", from.SetPosition).
		To(consume.Start, consume.Duration, fromPose.Position, target, consume.curve).
		Set(swap.Start, target, fromPose.Position)
	tl.Vec3("from.scale", from.SetScale).
		To(consume.Start, consume.Duration, fromPose.Scale, infall, consume.curve)

	// incoming feature
	tl.Bool("to.visible", to.SetVisible).
		Set(setup.Start, false, false).
		Set(swap.Start, false, true).
		Set(cleanup.Start, true, true)
	tl.Vec3("to.position", to.SetPosition).
		Set(swap.Start, toPose.Position, toPose.Position)
	tl.Vec3("to.scale", to.SetScale).
		Set(setup.Start, hidden.Scale, hidden.Scale).
		Set(swap.Start, hidden.Scale, hidden.Scale).
		To(mat.Start, mat.Duration, hidden.Scale, toPose.Scale, mat.curve)

	if p.From == section.Hero {
		rp, _ := b.registry.Get(scene.RoleRingedPlanet)
		ring := b.cfg.RingedPlanet
		tl.Vec3("ringed_planet.position", rp.SetPosition).
			To(consume.Start, consume.Duration, ring.Position, target, consume.curve)
		tl.Vec3("ringed_planet.scale", rp.SetScale).
			To(consume.Start, consume.Duration, ring.Scale, infall, consume.curve)
		tl.Bool("ringed_planet.visible", rp.SetVisible).
			Set(setup.Start, ring.Visible, ring.Visible).
			Set(swap.Start, ring.Visible, false)
	}

	if b.camera != nil && b.cfg.ShakeInto.Has(p.To) {
		tl.Vec3("camera.shake", b.camera.SetShake).
			Yoyo(shake.Start, 2*shake.Duration, common.Vec3{}, b.cfg.Shake, shake.curve)
	}
	return nil
}

func (b *Builder) callbacks(p section.Pair) timeline.Callbacks {
	return timeline.Callbacks{
		OnStart: func(reversed bool) {
			b.observe.Emit(Event{Kind: EventStarted, Pair: p, Section: b.store.Current(), Reverse: reversed})
		},
		OnComplete: func() {
			b.store.MarkTransitionEnd(p.To, true)
			b.observe.Emit(Event{Kind: EventCompleted, Pair: p, Section: p.To})
		},
		OnReverseComplete: func() {
			b.store.MarkTransitionEnd(p.From, false)
			if p.From == section.Hero {
				b.restoreHero(p)
			}
			b.observe.Emit(Event{Kind: EventReversed, Pair: p, Section: p.From, Reverse: true})
		},
		OnError: func(key string, err error) {
			b.observe.Emit(Event{Kind: EventMutationFailed, Pair: p, Detail: key, Err: err})
		},
	}
}

// restoreHero puts the hero group and ringed planet back at their canonical
// transforms after the hero transition has been reversed.
func (b *Builder) restoreHero(p section.Pair) {
	restore := []struct {
		role scene.Role
		pose scene.Pose
	}{
		{scene.FeatureRole(section.Hero), b.cfg.Hero},
		{scene.RoleRingedPlanet, b.cfg.RingedPlanet},
		{scene.FeatureRole(p.To), b.cfg.HiddenFeature()},
	}
	for _, r := range restore {
		obj, ok := b.registry.Get(r.role)
		if !ok {
			continue
		}
		if err := scene.Apply(obj, r.pose); err != nil {
			b.observe.Emit(Event{Kind: EventMutationFailed, Pair: p, Detail: string(r.role), Err: err})
		}
	}
}
