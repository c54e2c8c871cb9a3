package component

import "github.com/milk9111/starfolio/common"

// Transform is the mutable pose of a scene object. Spin is a purely
// decorative rotation (radians around Y) advanced by the render layer.
type Transform struct {
	Position common.Vec3
	Scale    common.Vec3
	Spin     float64
}

var TransformComponent = NewComponent[Transform]()
