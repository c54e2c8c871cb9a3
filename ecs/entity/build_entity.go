package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
	"github.com/milk9111/starfolio/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"camera_tag":   addCameraTag,
	"transform":    addTransform,
	"visibility":   addVisibility,
	"scene_object": addSceneObject,
	"render_layer": addRenderLayer,
	"camera":       addCamera,
}

var componentBuildOrder = []string{
	"camera_tag",
	"transform",
	"visibility",
	"scene_object",
	"render_layer",
	"camera",
}

// BuildEntity creates one entity from its scene spec. On failure the
// half-built entity is destroyed.
func BuildEntity(w *ecs.World, spec entityPrefabSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", spec.Name, strings.Join(names, ","))
	}

	if so, ok := ecs.Get(w, e, component.SceneObjectComponent.Kind()); ok && so.Name == "" {
		so.Name = spec.Name
	}
	return e, nil
}

// BuildScene creates every entity in specs, stopping at the first error.
func BuildScene(w *ecs.World, specs []entityPrefabSpec) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(specs))
	for _, spec := range specs {
		e, err := BuildEntity(w, spec)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	scale := common.Uniform(1)
	if spec.Scale != nil {
		scale = *spec.Scale
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position,
		Scale:    scale,
		Spin:     spec.Spin,
	})
}

type visibilitySpec = prefabs.VisibilityComponentSpec

func addVisibility(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[visibilitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode visibility spec: %w", err)
	}
	visible := true
	if spec.Visible != nil {
		visible = *spec.Visible
	}
	return ecs.Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Visible: visible})
}

type sceneObjectSpec = prefabs.SceneObjectComponentSpec

var shapeNames = map[string]component.ShapeKind{
	"sphere":   component.ShapeSphere,
	"ring":     component.ShapeRing,
	"monolith": component.ShapeMonolith,
	"ship":     component.ShapeShip,
	"vortex":   component.ShapeVortex,
	"title":    component.ShapeTitle,
	"binary":   component.ShapeBinary,
}

func addSceneObject(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[sceneObjectSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scene object spec: %w", err)
	}
	shape, ok := shapeNames[strings.ToLower(spec.Shape)]
	if !ok {
		return fmt.Errorf("unknown shape %q", spec.Shape)
	}
	c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if spec.Color != "" {
		if c, err = parseColor(spec.Color); err != nil {
			return fmt.Errorf("parse scene object color: %w", err)
		}
	}
	if spec.Radius <= 0 {
		spec.Radius = 1
	}
	return ecs.Add(w, e, component.SceneObjectComponent.Kind(), &component.SceneObject{
		Role:   spec.Role,
		Shape:  shape,
		Color:  c,
		Radius: spec.Radius,
		Label:  spec.Label,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.FOV <= 0 {
		spec.FOV = 60
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Position: spec.Position,
		Target:   spec.Target,
		FOV:      spec.FOV,
	})
}

// parseColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
func parseColor(v string) (color.RGBA, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(v))]; ok {
		return named, nil
	}
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		n, err := parse(i * 2)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", v, err)
		}
		rgba[i] = n
	}
	return color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
