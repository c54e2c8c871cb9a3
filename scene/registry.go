package scene

import (
	"fmt"
	"sort"

	"github.com/milk9111/starfolio/section"
)

// Role names a slot in the registry.
type Role string

const (
	RoleShip         Role = "ship"
	RoleHero         Role = "hero"
	RoleAbout        Role = "about"
	RoleProjects     Role = "projects"
	RoleSkills       Role = "skills"
	RoleContact      Role = "contact"
	RoleBlackHole    Role = "black_hole"
	RoleRingedPlanet Role = "ringed_planet"
)

// FeatureRole returns the role of the feature object that represents sec.
// The hero section's feature is the hero title group.
func FeatureRole(sec section.Section) Role {
	return Role(sec.String())
}

// Registry maps roles to the handles mounted by the rendering layer.
type Registry struct {
	objects map[Role]Transformable
}

func NewRegistry() *Registry {
	return &Registry{objects: make(map[Role]Transformable)}
}

// Register mounts obj under role, replacing any previous handle.
func (r *Registry) Register(role Role, obj Transformable) error {
	if role == "" {
		return fmt.Errorf("scene: register: empty role")
	}
	if obj == nil {
		return fmt.Errorf("scene: register %s: nil object", role)
	}
	if r.objects == nil {
		r.objects = make(map[Role]Transformable)
	}
	r.objects[role] = obj
	return nil
}

// Unregister drops the handle for role, if any.
func (r *Registry) Unregister(role Role) {
	delete(r.objects, role)
}

func (r *Registry) Get(role Role) (Transformable, bool) {
	if r == nil {
		return nil, false
	}
	obj, ok := r.objects[role]
	return obj, ok && obj != nil
}

// Feature returns the feature object of sec.
func (r *Registry) Feature(sec section.Section) (Transformable, bool) {
	return r.Get(FeatureRole(sec))
}

// Missing lists the roles among want that have no handle, in the given order.
func (r *Registry) Missing(want ...Role) []Role {
	var out []Role
	for _, role := range want {
		if _, ok := r.Get(role); !ok {
			out = append(out, role)
		}
	}
	return out
}

// Roles lists every mounted role, sorted.
func (r *Registry) Roles() []Role {
	if r == nil {
		return nil
	}
	out := make([]Role, 0, len(r.objects))
	for role := range r.objects {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FeatureRoles lists the feature role of every section in document order.
func FeatureRoles() []Role {
	out := make([]Role, 0, len(section.All))
	for _, sec := range section.All {
		out = append(out, FeatureRole(sec))
	}
	return out
}

// VisibleFeatures lists the sections whose feature object is currently shown.
func (r *Registry) VisibleFeatures() []section.Section {
	var out []section.Section
	for _, sec := range section.All {
		if obj, ok := r.Feature(sec); ok && obj.Visible() {
			out = append(out, sec)
		}
	}
	return out
}
