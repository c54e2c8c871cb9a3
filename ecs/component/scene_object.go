package component

import "image/color"

// ShapeKind selects how the renderer draws a passive prop.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeRing
	ShapeMonolith
	ShapeShip
	ShapeVortex
	ShapeTitle
	ShapeBinary
)

// SceneObject describes a passive renderable prop. Role is the registry role
// the object was mounted under ("ship", "hero", "black_hole", ...).
type SceneObject struct {
	Name   string
	Role   string
	Shape  ShapeKind
	Color  color.RGBA
	Radius float64
	Label  string
}

var SceneObjectComponent = NewComponent[SceneObject]()
