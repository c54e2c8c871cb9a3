// Package animation mounts the scroll-driven scene engine onto a registry of
// scene objects and a camera, and tears it down again.
package animation

import (
	"fmt"
	"log"

	"github.com/milk9111/starfolio/camera"
	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/scroll"
	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/timeline"
	"github.com/milk9111/starfolio/transition"
)

type Config struct {
	Transition transition.Config
	Scroll     scroll.Config
	Spans      []scroll.Span
	Camera     camera.Config
}

func DefaultConfig() Config {
	return Config{
		Transition: transition.DefaultConfig(),
		Scroll:     scroll.DefaultConfig(),
		Spans:      scroll.DefaultSpans(),
		Camera:     camera.DefaultConfig(),
	}
}

type options struct {
	observers     []transition.Observer
	resolve       func(string) (common.Ease, error)
	verbose       bool
	debugInterval float64
}

type Option func(*options)

// WithObserver adds a lifecycle observer next to the default log observer.
func WithObserver(o transition.Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observers = append(opts.observers, o)
		}
	}
}

// WithEaseResolver resolves ease names in schedules and camera config.
func WithEaseResolver(r func(string) (common.Ease, error)) Option {
	return func(opts *options) { opts.resolve = r }
}

// WithDebug logs dropped signals and dumps the in-flight state every
// interval seconds while a transition plays.
func WithDebug(interval float64) Option {
	return func(opts *options) {
		opts.verbose = true
		opts.debugInterval = interval
	}
}

// Manager is a mounted engine. All methods run on the game loop.
type Manager struct {
	registry *scene.Registry
	store    *transition.Store
	player   *transition.Player
	recovery *transition.Recovery
	binder   *scroll.Binder
	director *camera.Director
	observe  transition.Observer

	offset        float64
	debugInterval float64
	debugElapsed  float64
	torn          bool
}

// Mount builds every timeline and trigger, puts the scene in the canonical
// state of the section shown at offset, and returns the running manager.
// cam may be nil, which disables the camera director and the shake phase.
func Mount(cfg Config, registry *scene.Registry, cam scene.Camera, viewport, offset float64, opts ...Option) (*Manager, error) {
	o := options{resolve: common.ParseEase}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Transition.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, fmt.Errorf("animation: no registry")
	}

	observe := transition.Multi(append([]transition.Observer{transition.LogObserver(o.verbose)}, o.observers...)...)
	m := &Manager{registry: registry, observe: observe, debugInterval: o.debugInterval, offset: offset}

	m.store = transition.NewStore(observe)
	m.recovery = transition.NewRecovery(cfg.Transition, registry, cam, m.store, observe)
	builder := transition.NewBuilder(cfg.Transition, registry, cam, m.store, observe, transition.WithEaseResolver(o.resolve))
	timelines, err := builder.BuildAll()
	if err != nil {
		return nil, err
	}
	m.player = transition.NewPlayer(m.store, observe, cfg.Transition.ReverseScale, timelines)

	layout := scroll.NewLayout(viewport, cfg.Spans)
	m.binder, err = scroll.NewBinder(cfg.Scroll, layout, m.store, m.player, m.recovery, observe)
	if err != nil {
		return nil, err
	}
	if cam != nil {
		m.director, err = camera.NewDirector(cfg.Camera, layout, cam, observe, o.resolve)
		if err != nil {
			return nil, err
		}
		if err := m.director.Place(); err != nil {
			log.Printf("animation: place camera: %v", err)
		}
	}

	if err := m.recovery.Reset(); err != nil {
		log.Printf("animation: initial state: %v", err)
	}
	if sec := m.binder.Expected(offset); sec != section.Hero {
		if err := m.recovery.Apply(sec); err != nil {
			log.Printf("animation: mount at %s: %v", sec, err)
		}
	}
	m.binder.Prime(offset)
	if m.director != nil {
		m.director.Update(offset)
	}
	return m, nil
}

// Observe feeds the scroll offset to the triggers and the camera director.
func (m *Manager) Observe(offset float64) {
	if m.torn {
		return
	}
	m.offset = offset
	m.binder.Observe(offset)
	if m.director != nil {
		m.director.Update(offset)
	}
}

// Update advances the in-flight transition by dt seconds.
func (m *Manager) Update(dt float64) {
	if m.torn {
		return
	}
	m.player.Update(dt)
	// A reset deferred by the hero guard runs once the timeline is done.
	m.binder.Observe(m.offset)

	if m.debugInterval <= 0 {
		return
	}
	m.debugElapsed += dt
	if m.debugElapsed < m.debugInterval {
		return
	}
	m.debugElapsed = 0
	if m.store.IsTransitioning() {
		log.Printf("animation: current state: %s", m.store.Snapshot())
	}
}

// Resize rescales the document for a new viewport height. Triggers are
// re-derived at offset without firing.
func (m *Manager) Resize(viewport, offset float64) {
	if m.torn {
		return
	}
	layout := m.binder.Layout().WithViewport(viewport)
	m.offset = offset
	m.binder.Refresh(layout, offset)
	if m.director != nil {
		m.director.Refresh(layout)
		m.director.Update(offset)
	}
}

// Teardown kills every timeline and trigger and forces the hero state. It is
// safe to call more than once.
func (m *Manager) Teardown() {
	if m == nil || m.torn {
		return
	}
	m.torn = true
	m.player.Kill()
	m.binder.Kill()
	if m.director != nil {
		m.director.Kill()
	}
	if err := m.recovery.Reset(); err != nil {
		log.Printf("animation: teardown reset: %v", err)
	}
}

func (m *Manager) Layout() scroll.Layout       { return m.binder.Layout() }
func (m *Manager) State() transition.State     { return m.store.Snapshot() }
func (m *Manager) Triggers() []*scroll.Trigger { return m.binder.Triggers() }
func (m *Manager) TornDown() bool              { return m.torn }

// Active returns the in-flight timeline for progress display.
func (m *Manager) Active() (*timeline.Timeline, bool) {
	return m.player.Active()
}

// SectionOffset is the scroll offset that brings sec's trigger fully into
// view, used for header navigation.
func (m *Manager) SectionOffset(sec section.Section) (float64, bool) {
	layout := m.binder.Layout()
	a, ok := layout.Anchor(sec)
	if !ok {
		return 0, false
	}
	return common.Clamp(a.Top, 0, layout.MaxOffset()), true
}
