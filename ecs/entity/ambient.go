package entity

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
	"github.com/milk9111/starfolio/prefabs"
)

var (
	asteroidColor = color.RGBA{R: 120, G: 110, B: 100, A: 255}
	starColor     = color.RGBA{R: 230, G: 230, B: 255, A: 255}
)

// SpawnAmbient scatters the asteroid field into pw and the star backdrop
// around the scene. The layout is deterministic for a given seed.
func SpawnAmbient(w *ecs.World, pw *ecs.PhysicsWorld, spec prefabs.AmbientSpec) error {
	rng := rand.New(rand.NewPCG(spec.Seed, spec.Seed^0x9e3779b97f4a7c15))
	radius := spec.FieldRadius
	if radius <= 0 {
		radius = 20
	}

	for i := 0; i < spec.Asteroids; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := radius * (0.4 + 0.6*rng.Float64())
		pos := pw.Attractor().Add(common.V3(math.Cos(angle)*dist, math.Sin(angle)*dist, 0))
		// Start on a rough orbit around the attractor.
		vel := common.V3(-math.Sin(angle), math.Cos(angle), 0).Mul(2 + 2*rng.Float64())
		size := 0.1 + 0.25*rng.Float64()
		depth := -4 - 8*rng.Float64()

		e := ecs.CreateEntity(w)
		body := pw.AddBody(pos, vel, size)
		if err := addAll(w, e,
			func() error { return ecs.Add(w, e, component.AsteroidTagComponent.Kind(), &component.AsteroidTag{}) },
			func() error {
				return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
					Position: common.V3(pos.X, pos.Y, depth),
					Scale:    common.Uniform(1),
					Spin:     rng.Float64() * 2 * math.Pi,
				})
			},
			func() error {
				return ecs.Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Visible: true})
			},
			func() error {
				return ecs.Add(w, e, component.SceneObjectComponent.Kind(), &component.SceneObject{
					Name:   "asteroid",
					Shape:  component.ShapeSphere,
					Color:  asteroidColor,
					Radius: size,
				})
			},
			func() error {
				return ecs.Add(w, e, component.AmbientBodyComponent.Kind(), &component.AmbientBody{Body: body, Depth: depth, Radius: size})
			},
		); err != nil {
			pw.RemoveBody(body)
			return err
		}
	}

	for i := 0; i < spec.Stars; i++ {
		// Stars sit on a far shell behind everything else.
		theta := rng.Float64() * 2 * math.Pi
		y := rng.Float64()*2 - 1
		r := math.Sqrt(1 - y*y)
		pos := common.V3(r*math.Cos(theta), y, r*math.Sin(theta)).Mul(90)

		e := ecs.CreateEntity(w)
		if err := addAll(w, e,
			func() error { return ecs.Add(w, e, component.StarTagComponent.Kind(), &component.StarTag{}) },
			func() error {
				return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
					Position: pos,
					Scale:    common.Uniform(1),
					Spin:     rng.Float64(),
				})
			},
			func() error {
				return ecs.Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Visible: true})
			},
			func() error {
				return ecs.Add(w, e, component.SceneObjectComponent.Kind(), &component.SceneObject{
					Name:   "star",
					Shape:  component.ShapeSphere,
					Color:  starColor,
					Radius: 0.15 + 0.2*rng.Float64(),
				})
			},
			func() error {
				return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: -1})
			},
		); err != nil {
			return err
		}
	}
	return nil
}

func addAll(w *ecs.World, e ecs.Entity, adds ...func() error) error {
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return err
		}
	}
	return nil
}
