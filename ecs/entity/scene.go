package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
	"github.com/milk9111/starfolio/scene"
)

// MountScene registers every built scene object under its role and returns
// the camera entity adapted for the engine. Objects without a role are
// decoration and are skipped.
func MountScene(w *ecs.World) (*scene.Registry, *EntityCamera, error) {
	reg := scene.NewRegistry()
	var errs []error

	ecs.ForEach(w, component.SceneObjectComponent.Kind(), func(e ecs.Entity, so *component.SceneObject) {
		if so.Role == "" {
			return
		}
		ref, err := NewEntityRef(w, e)
		if err != nil {
			errs = append(errs, fmt.Errorf("mount %q: %w", so.Name, err))
			return
		}
		if err := reg.Register(scene.Role(so.Role), ref); err != nil {
			errs = append(errs, fmt.Errorf("mount %q: %w", so.Name, err))
		}
	})

	camEntity, ok := ecs.First(w, component.CameraTagComponent.Kind())
	if !ok {
		errs = append(errs, errors.New("mount scene: no camera entity"))
		return reg, nil, errors.Join(errs...)
	}
	cam, err := NewEntityCamera(w, camEntity)
	if err != nil {
		errs = append(errs, err)
	}
	return reg, cam, errors.Join(errs...)
}
