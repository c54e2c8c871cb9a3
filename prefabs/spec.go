package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/starfolio/animation"
	"github.com/milk9111/starfolio/camera"
	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/scroll"
	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/transition"
)

// SceneFile is the scene spec shipped with the binary.
const SceneFile = "scene.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SpanSpec struct {
	Section section.Section `yaml:"section"`
	Height  float64         `yaml:"height"`
}

type ShipSpec struct {
	Position common.Vec3 `yaml:"position"`
	Scale    float64     `yaml:"scale"`
}

type PoseSpec struct {
	Position common.Vec3 `yaml:"position"`
	Scale    common.Vec3 `yaml:"scale"`
}

func (p PoseSpec) pose() scene.Pose {
	return scene.Pose{Position: p.Position, Scale: p.Scale, Visible: true}
}

type BlackHoleSpec struct {
	Position      common.Vec3 `yaml:"position"`
	OpenScale     float64     `yaml:"open_scale"`
	ConsumeOffset common.Vec3 `yaml:"consume_offset"`
	InfallScale   float64     `yaml:"infall_scale"`
}

type ShakeSpec struct {
	Offset common.Vec3       `yaml:"offset"`
	Into   []section.Section `yaml:"into"`
}

type PresetSpec struct {
	Position common.Vec3 `yaml:"position"`
	LookAt   common.Vec3 `yaml:"look_at"`
	Duration float64     `yaml:"duration"`
}

type CameraDirectorSpec struct {
	Initial common.Vec3                    `yaml:"initial"`
	LookAt  common.Vec3                    `yaml:"look_at"`
	Ease    string                         `yaml:"ease"`
	Presets map[section.Section]PresetSpec `yaml:"presets"`
}

type TriggerSpec struct {
	Start         string  `yaml:"start"`
	End           string  `yaml:"end"`
	HeroStart     string  `yaml:"hero_start"`
	HeroEnd       string  `yaml:"hero_end"`
	HeroThreshold float64 `yaml:"hero_threshold"`
}

// AmbientSpec tunes the decorative asteroid field and star backdrop.
type AmbientSpec struct {
	Asteroids   int     `yaml:"asteroids"`
	Stars       int     `yaml:"stars"`
	Pull        float64 `yaml:"pull"`
	Damping     float64 `yaml:"damping"`
	FieldRadius float64 `yaml:"field_radius"`
	Seed        uint64  `yaml:"seed"`
	TwinkleEase string  `yaml:"twinkle_ease"`
}

// SceneSpec is the whole scene: tuning of the engine plus the entities the
// desktop renderer mounts.
type SceneSpec struct {
	Sections     []SpanSpec                        `yaml:"sections"`
	Ships        map[section.Section]ShipSpec      `yaml:"ships"`
	BlackHole    BlackHoleSpec                     `yaml:"black_hole"`
	Hero         PoseSpec                          `yaml:"hero"`
	Feature      PoseSpec                          `yaml:"feature"`
	RingedPlanet PoseSpec                          `yaml:"ringed_planet"`
	Shake        ShakeSpec                         `yaml:"camera_shake"`
	ReverseScale float64                           `yaml:"reverse_scale"`
	Triggers     TriggerSpec                       `yaml:"triggers"`
	Camera       CameraDirectorSpec                `yaml:"camera"`
	Schedules    map[string][]transition.PhaseSpec `yaml:"schedules"`
	Contact      string                            `yaml:"contact"`
	Ambient      AmbientSpec                       `yaml:"ambient"`
	Objects      []EntityBuildSpec                 `yaml:"objects"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// AnimationConfig converts the spec into engine configuration. Values the
// spec leaves out keep their defaults.
func (s *SceneSpec) AnimationConfig() (animation.Config, error) {
	cfg := animation.DefaultConfig()

	if len(s.Sections) > 0 {
		cfg.Spans = cfg.Spans[:0:0]
		for _, sp := range s.Sections {
			if sp.Height <= 0 {
				return cfg, fmt.Errorf("prefabs: section %s: height must be positive", sp.Section)
			}
			cfg.Spans = append(cfg.Spans, scroll.Span{Section: sp.Section, Height: sp.Height})
		}
	}

	tc := &cfg.Transition
	for sec, ship := range s.Ships {
		tc.Ships[sec] = transition.ShipPosition{Position: ship.Position, Scale: ship.Scale}
	}
	if s.BlackHole.OpenScale > 0 {
		tc.BlackHole = transition.BlackHole{
			Position:      s.BlackHole.Position,
			OpenScale:     s.BlackHole.OpenScale,
			ConsumeOffset: s.BlackHole.ConsumeOffset,
			InfallScale:   s.BlackHole.InfallScale,
		}
	}
	if s.Hero.Scale != (common.Vec3{}) {
		tc.Hero = s.Hero.pose()
	}
	if s.Feature.Scale != (common.Vec3{}) {
		tc.Feature = s.Feature.pose()
	}
	if s.RingedPlanet.Scale != (common.Vec3{}) {
		tc.RingedPlanet = s.RingedPlanet.pose()
	}
	if s.Shake.Offset != (common.Vec3{}) || len(s.Shake.Into) > 0 {
		tc.Shake = s.Shake.Offset
		tc.ShakeInto = 0
		for _, sec := range s.Shake.Into {
			tc.ShakeInto = tc.ShakeInto.With(sec)
		}
	}
	if s.ReverseScale > 0 {
		tc.ReverseScale = s.ReverseScale
	}
	if phases, ok := s.Schedules["default"]; ok {
		tc.Default = transition.Schedule{Name: "default", Phases: phases}
	}
	if phases, ok := s.Schedules["hero"]; ok {
		tc.HeroSchedule = transition.Schedule{Name: "hero", Phases: phases}
	}

	t := s.Triggers
	if t.Start != "" {
		cfg.Scroll.Start = t.Start
	}
	if t.End != "" {
		cfg.Scroll.End = t.End
	}
	if t.HeroStart != "" {
		cfg.Scroll.HeroStart = t.HeroStart
	}
	if t.HeroEnd != "" {
		cfg.Scroll.HeroEnd = t.HeroEnd
	}
	if t.HeroThreshold > 0 {
		cfg.Scroll.HeroThreshold = t.HeroThreshold
	}

	c := s.Camera
	if c.Initial != (common.Vec3{}) {
		cfg.Camera.Initial = c.Initial
		cfg.Camera.InitialLookAt = c.LookAt
	}
	if c.Ease != "" {
		cfg.Camera.Ease = c.Ease
	}
	for sec, p := range c.Presets {
		cfg.Camera.Presets[sec] = camera.Preset{Position: p.Position, LookAt: p.LookAt, Duration: p.Duration}
	}

	if err := tc.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
