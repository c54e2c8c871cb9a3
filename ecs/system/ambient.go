package system

import (
	"math"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
)

const twinklePeriod = 3.0

// AmbientSystem drifts the asteroid field toward the black hole and
// twinkles the stars. It never touches registered scene objects.
type AmbientSystem struct {
	physics *ecs.PhysicsWorld
	twinkle common.Ease
	elapsed float64
}

func NewAmbientSystem(pw *ecs.PhysicsWorld, twinkle common.Ease) *AmbientSystem {
	if twinkle == nil {
		twinkle = common.SineInOut
	}
	return &AmbientSystem{physics: pw, twinkle: twinkle}
}

func (a *AmbientSystem) Update(w *ecs.World) {
	if w == nil || a.physics == nil {
		return
	}
	a.elapsed += common.FrameDelta

	ecs.ForEach2(w, component.SceneObjectComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, so *component.SceneObject, t *component.Transform) {
		if so.Role == "black_hole" {
			a.physics.SetAttractor(t.Position)
		}
	})

	a.physics.Step(common.FrameDelta)

	ecs.ForEach2(w, component.AmbientBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.AmbientBody, t *component.Transform) {
		if body.Body == nil {
			return
		}
		p := body.Body.Position()
		t.Position = common.V3(p.X, p.Y, body.Depth)
		t.Spin += common.FrameDelta * 0.8
	})

	ecs.ForEach2(w, component.StarTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.StarTag, t *component.Transform) {
		// Spin holds the star's phase offset.
		phase := math.Mod(a.elapsed/twinklePeriod+t.Spin, 1)
		tri := 1 - math.Abs(2*phase-1)
		t.Scale = common.Uniform(0.4 + 0.6*a.twinkle(tri))
	})
}
