package entity

import (
	"fmt"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
	"github.com/milk9111/starfolio/scene"
)

// EntityRef exposes an ECS entity carrying Transform and Visibility as a
// scene.Transformable. Once the entity is destroyed every setter returns
// scene.ErrDisposed and getters return zero values.
type EntityRef struct {
	w *ecs.World
	e ecs.Entity
}

// NewEntityRef validates that e carries the components the core mutates.
func NewEntityRef(w *ecs.World, e ecs.Entity) (*EntityRef, error) {
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return nil, fmt.Errorf("entity %s has no transform", e)
	}
	if !ecs.Has(w, e, component.VisibilityComponent.Kind()) {
		return nil, fmt.Errorf("entity %s has no visibility", e)
	}
	return &EntityRef{w: w, e: e}, nil
}

func (r *EntityRef) Entity() ecs.Entity { return r.e }

func (r *EntityRef) transform() (*component.Transform, error) {
	t, ok := ecs.Get(r.w, r.e, component.TransformComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: entity %s", scene.ErrDisposed, r.e)
	}
	return t, nil
}

func (r *EntityRef) Position() common.Vec3 {
	if t, err := r.transform(); err == nil {
		return t.Position
	}
	return common.Vec3{}
}

func (r *EntityRef) SetPosition(v common.Vec3) error {
	t, err := r.transform()
	if err != nil {
		return err
	}
	t.Position = v
	return nil
}

func (r *EntityRef) Scale() common.Vec3 {
	if t, err := r.transform(); err == nil {
		return t.Scale
	}
	return common.Vec3{}
}

func (r *EntityRef) SetScale(v common.Vec3) error {
	t, err := r.transform()
	if err != nil {
		return err
	}
	t.Scale = v
	return nil
}

func (r *EntityRef) Visible() bool {
	v, ok := ecs.Get(r.w, r.e, component.VisibilityComponent.Kind())
	return ok && v.Visible
}

func (r *EntityRef) SetVisible(visible bool) error {
	v, ok := ecs.Get(r.w, r.e, component.VisibilityComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: entity %s", scene.ErrDisposed, r.e)
	}
	v.Visible = visible
	return nil
}

// EntityCamera adapts the ECS camera entity to scene.Camera.
type EntityCamera struct {
	w *ecs.World
	e ecs.Entity
}

func NewEntityCamera(w *ecs.World, e ecs.Entity) (*EntityCamera, error) {
	if !ecs.Has(w, e, component.CameraComponent.Kind()) {
		return nil, fmt.Errorf("entity %s has no camera", e)
	}
	return &EntityCamera{w: w, e: e}, nil
}

func (c *EntityCamera) camera() (*component.Camera, error) {
	cam, ok := ecs.Get(c.w, c.e, component.CameraComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: camera %s", scene.ErrDisposed, c.e)
	}
	return cam, nil
}

func (c *EntityCamera) Position() common.Vec3 {
	if cam, err := c.camera(); err == nil {
		return cam.Position
	}
	return common.Vec3{}
}

func (c *EntityCamera) SetPosition(v common.Vec3) error {
	cam, err := c.camera()
	if err != nil {
		return err
	}
	cam.Position = v
	return nil
}

func (c *EntityCamera) LookAt(target common.Vec3) error {
	cam, err := c.camera()
	if err != nil {
		return err
	}
	cam.Target = target
	return nil
}

func (c *EntityCamera) SetShake(offset common.Vec3) error {
	cam, err := c.camera()
	if err != nil {
		return err
	}
	cam.Shake = offset
	return nil
}
