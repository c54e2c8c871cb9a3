package transition

import (
	"errors"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/scene"
	"github.com/milk9111/starfolio/section"
)

// Recovery forces the canonical visual state of a section. Applying it twice
// for the same section leaves the same attributes as applying it once.
type Recovery struct {
	cfg      Config
	registry *scene.Registry
	camera   scene.Camera
	store    *Store
	observe  Observer
}

func NewRecovery(cfg Config, registry *scene.Registry, camera scene.Camera, store *Store, observe Observer) *Recovery {
	return &Recovery{cfg: cfg, registry: registry, camera: camera, store: store, observe: observe}
}

// Apply hard-resets the scene to target and overwrites the current section.
func (r *Recovery) Apply(target section.Section) error {
	err := r.apply(target)
	r.store.Force(target)
	r.observe.Emit(Event{Kind: EventRecovered, Section: target, Err: err})
	return err
}

// Reset restores the initial hero state and forgets every completed section.
func (r *Recovery) Reset() error {
	err := r.apply(section.Hero)
	r.store.Reset()
	return err
}

// Canonical returns the pose every mounted role has when target is current.
func (r *Recovery) Canonical(target section.Section) map[scene.Role]scene.Pose {
	out := make(map[scene.Role]scene.Pose)
	for _, sec := range section.All {
		pose := r.cfg.HiddenFeature()
		if sec == target {
			pose = r.cfg.Feature
			if sec == section.Hero {
				pose = r.cfg.Hero
			}
		}
		out[scene.FeatureRole(sec)] = pose
	}
	if ship, ok := r.cfg.ShipAt(target); ok {
		out[scene.RoleShip] = ship.Pose()
	}
	out[scene.RoleBlackHole] = r.cfg.BlackHole.Rest()
	ring := r.cfg.RingedPlanet
	if target != section.Hero {
		ring.Visible = false
	}
	out[scene.RoleRingedPlanet] = ring
	return out
}

func (r *Recovery) apply(target section.Section) error {
	var errs []error
	for role, pose := range r.Canonical(target) {
		obj, ok := r.registry.Get(role)
		if !ok {
			continue
		}
		if err := scene.Apply(obj, pose); err != nil {
			r.observe.Emit(Event{Kind: EventMutationFailed, Section: target, Detail: string(role), Err: err})
			errs = append(errs, err)
		}
	}
	if r.camera != nil {
		if err := r.camera.SetShake(common.Vec3{}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
