package main

import (
	"fmt"
	"log"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/starfolio/animation"
	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
	"github.com/milk9111/starfolio/ecs/entity"
	"github.com/milk9111/starfolio/ecs/system"
	"github.com/milk9111/starfolio/prefabs"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/section"
)

const glideSeconds = 0.8

type Game struct {
	debug bool

	world   *ecs.World
	scroll  ecs.Entity
	anim    *system.AnimationSystem
	header  *Header
	ui      *ebitenui.UI
	contact *ContactCopier
	watcher *prefabs.Watcher

	width, height float64
}

func NewGame(debug bool, startSection string) (*Game, error) {
	g := &Game{
		debug:  debug,
		width:  common.BaseWidth,
		height: common.BaseHeight,
	}

	if err := g.load(0); err != nil {
		return nil, err
	}

	if startSection != "" {
		sec, err := section.Parse(startSection)
		if err != nil {
			return nil, err
		}
		// Mounting at the anchor puts the scene straight into that section.
		if off, ok := g.anim.Manager().SectionOffset(sec); ok && off > 0 {
			if err := g.load(off); err != nil {
				return nil, err
			}
		}
	}

	g.header = NewHeader(g)
	g.ui = g.header.UI

	if w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err != nil {
		log.Printf("hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}
	return g, nil
}

// load builds a fresh world from the scene spec and mounts the engine at
// offset.
func (g *Game) load(offset float64) error {
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	cfg, err := spec.AnimationConfig()
	if err != nil {
		return fmt.Errorf("scene config: %w", err)
	}

	w := ecs.NewWorld()
	if _, err := entity.BuildScene(w, spec.Objects); err != nil {
		return err
	}
	registry, cam, err := entity.MountScene(w)
	if err != nil {
		// A partial scene still mounts; missing roles become no-op transitions.
		log.Printf("mount scene: %v", err)
	}

	resolver := prefabs.NewEaseResolver()
	pw := ecs.NewPhysicsWorld(spec.Ambient.Pull, spec.Ambient.Damping)
	if hole, ok := registry.Get(scene.RoleBlackHole); ok {
		pw.SetAttractor(hole.Position())
	}
	if err := entity.SpawnAmbient(w, pw, spec.Ambient); err != nil {
		return fmt.Errorf("spawn ambient: %w", err)
	}
	twinkle, err := resolver.Resolve(spec.Ambient.TwinkleEase)
	if err != nil {
		log.Printf("twinkle ease %q: %v", spec.Ambient.TwinkleEase, err)
		twinkle = nil
	}

	anim := system.NewAnimationSystem(nil)
	opts := []animation.Option{animation.WithEaseResolver(resolver.Resolve), animation.WithObserver(anim.Record)}
	if g.debug {
		opts = append(opts, animation.WithDebug(2))
	}
	var camera scene.Camera
	if cam != nil {
		camera = cam
	}
	m, err := animation.Mount(cfg, registry, camera, g.height, offset, opts...)
	if err != nil {
		return fmt.Errorf("mount animation: %w", err)
	}

	scrollEntity := ecs.CreateEntity(w)
	layout := m.Layout()
	if err := ecs.Add(w, scrollEntity, component.ScrollStateComponent.Kind(), &component.ScrollState{
		Offset:   offset,
		Target:   offset,
		Max:      layout.MaxOffset(),
		Viewport: layout.Viewport,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, scrollEntity, component.TransitionRuntimeComponent.Kind(), &component.TransitionRuntime{}); err != nil {
		return err
	}

	if g.anim != nil {
		if old := g.anim.Manager(); old != nil {
			old.Teardown()
		}
	}
	anim.SetManager(m)
	g.anim = anim

	w.AddSystem(system.NewScrollSystem())
	w.AddSystem(anim)
	w.AddSystem(system.NewAmbientSystem(pw, twinkle))
	w.AddSystem(system.NewRenderSystem())
	w.AddSystem(system.NewHUDSystem(g.debug))

	g.world = w
	g.scroll = scrollEntity
	if g.contact == nil {
		g.contact = NewContactCopier(spec.Contact)
	} else {
		g.contact.address = spec.Contact
	}
	return nil
}

func (g *Game) scrollState() *component.ScrollState {
	st, _ := ecs.Get(g.world, g.scroll, component.ScrollStateComponent.Kind())
	return st
}

// jumpTo glides the scroll offset to sec's anchor.
func (g *Game) jumpTo(sec section.Section, duration float64) {
	m := g.anim.Manager()
	off, ok := m.SectionOffset(sec)
	st := g.scrollState()
	if !ok || st == nil {
		log.Printf("jump to %s: no anchor", sec)
		return
	}
	system.GlideTo(st, off, duration)
}

func (g *Game) currentSection() section.Section {
	return g.anim.Manager().State().Current
}

func (g *Game) reload() {
	offset := 0.0
	if st := g.scrollState(); st != nil {
		offset = st.Offset
	}
	if err := g.load(offset); err != nil {
		log.Printf("reload: %v", err)
		return
	}
	log.Printf("reloaded scene at offset %.0f", offset)
}

func (g *Game) Update() error {
	if g.watcher != nil {
		if names := g.watcher.Drain(); len(names) > 0 {
			log.Printf("changed: %v", names)
			g.reload()
		}
		select {
		case err := <-g.watcher.Errors:
			log.Printf("watch: %v", err)
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.currentSection() == section.Contact {
		g.contact.Copy()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload()
	}

	g.world.Update()
	g.header.Refresh(g.currentSection(), g.contact)
	g.ui.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	g.world.Draw(screen)
	g.ui.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := math.Max(outsideWidth, 1), math.Max(outsideHeight, 1)
	if h != g.height {
		g.resize(w, h)
	}
	g.width = w
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// resize keeps the reader at the same relative position in the document.
func (g *Game) resize(width, height float64) {
	st := g.scrollState()
	m := g.anim.Manager()
	if st == nil || m == nil {
		g.width, g.height = width, height
		return
	}
	ratio := 0.0
	if old := m.Layout().MaxOffset(); old > 0 {
		ratio = st.Offset / old
	}
	g.width, g.height = width, height
	layout := m.Layout().WithViewport(height)
	offset := ratio * layout.MaxOffset()
	m.Resize(height, offset)

	st.Offset, st.Target, st.Glide = offset, offset, nil
	st.Max = layout.MaxOffset()
	st.Viewport = layout.Viewport
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.anim != nil {
		if m := g.anim.Manager(); m != nil {
			m.Teardown()
		}
	}
}
