package prefabs

import (
	"gopkg.in/yaml.v3"

	"github.com/milk9111/starfolio/common"
)

// EntityBuildSpec is one entity in a scene file: a name and the raw YAML of
// each component, decoded later by the component's builder.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position common.Vec3  `yaml:"position"`
	Scale    *common.Vec3 `yaml:"scale"`
	Spin     float64      `yaml:"spin"`
}

type VisibilityComponentSpec struct {
	Visible *bool `yaml:"visible"`
}

// SceneObjectComponentSpec describes how a prop is drawn and which registry
// role it fills.
type SceneObjectComponentSpec struct {
	Role   string  `yaml:"role"`
	Shape  string  `yaml:"shape"`
	Color  string  `yaml:"color"`
	Radius float64 `yaml:"radius"`
	Label  string  `yaml:"label"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	Position common.Vec3 `yaml:"position"`
	Target   common.Vec3 `yaml:"target"`
	FOV      float64     `yaml:"fov"`
}
