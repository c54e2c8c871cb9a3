package transition

import (
	"fmt"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/section"
)

// ShipPosition is where the starship rests while a section is current.
type ShipPosition struct {
	Position common.Vec3
	Scale    float64
}

func (s ShipPosition) Pose() scene.Pose {
	return scene.Pose{Position: s.Position, Scale: common.Uniform(s.Scale), Visible: true}
}

// BlackHole describes the shared effect object.
type BlackHole struct {
	Position common.Vec3
	// OpenScale is the uniform scale at the end of the open phase.
	OpenScale float64
	// ConsumeOffset is added to Position to get the infall target.
	ConsumeOffset common.Vec3
	// InfallScale is what consumed objects shrink to.
	InfallScale float64
}

func (b BlackHole) ConsumeTarget() common.Vec3 {
	return b.Position.Add(b.ConsumeOffset)
}

func (b BlackHole) Rest() scene.Pose {
	return scene.Pose{Position: b.Position, Scale: common.Vec3{}, Visible: false}
}

type Config struct {
	Ships        map[section.Section]ShipPosition
	BlackHole    BlackHole
	Hero         scene.Pose
	RingedPlanet scene.Pose
	// Feature is the canonical pose of the current section's feature object.
	Feature scene.Pose
	// Shake is the peak camera offset of the shake phase.
	Shake common.Vec3
	// ShakeInto lists the sections whose incoming transition shakes the camera.
	ShakeInto    section.Set
	ReverseScale float64
	Default      Schedule
	HeroSchedule Schedule
}

// DefaultConfig returns the tuned values of the shipped scene.
func DefaultConfig() Config {
	side := ShipPosition{Position: common.V3(-13, 4, 0), Scale: 0.2}
	return Config{
		Ships: map[section.Section]ShipPosition{
			section.Hero:     {Position: common.V3(0, 4, -10), Scale: 2.5},
			section.About:    side,
			section.Projects: side,
			section.Skills:   side,
			section.Contact:  side,
		},
		BlackHole: BlackHole{
			Position:      common.V3(16, 0, 0),
			OpenScale:     1.8,
			ConsumeOffset: common.V3(0, 0, -1),
			InfallScale:   0.01,
		},
		Hero:         scene.Pose{Scale: common.Uniform(1), Visible: true},
		RingedPlanet: scene.Pose{Position: common.V3(-12, 5, 0), Scale: common.Uniform(0.1), Visible: true},
		Feature:      scene.Pose{Scale: common.Uniform(1), Visible: true},
		Shake:        common.V3(0, -0.25, 0),
		ShakeInto:    section.Set(0).With(section.Projects).With(section.Contact),
		ReverseScale: 1.5,
		Default:      DefaultSchedule(),
		HeroSchedule: HeroSchedule(),
	}
}

// ScheduleFor picks the schedule of pair p.
func (c Config) ScheduleFor(p section.Pair) Schedule {
	if p.From == section.Hero {
		return c.HeroSchedule
	}
	return c.Default
}

// ShipAt returns the ship resting pose of sec.
func (c Config) ShipAt(sec section.Section) (ShipPosition, bool) {
	s, ok := c.Ships[sec]
	return s, ok
}

// HiddenFeature is the pose of a feature object whose section is not current.
func (c Config) HiddenFeature() scene.Pose {
	p := c.Feature
	p.Scale = common.Vec3{}
	p.Visible = false
	return p
}

func (c Config) Validate() error {
	for _, sec := range section.All {
		if _, ok := c.Ships[sec]; !ok {
			return fmt.Errorf("transition: no ship position for %s", sec)
		}
	}
	if c.ReverseScale <= 0 {
		return fmt.Errorf("transition: reverse scale must be positive, got %v", c.ReverseScale)
	}
	if c.BlackHole.OpenScale <= 0 {
		return fmt.Errorf("transition: black hole open scale must be positive")
	}
	if err := c.Default.Validate(); err != nil {
		return err
	}
	return c.HeroSchedule.Validate()
}
