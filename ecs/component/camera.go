package component

import "github.com/milk9111/starfolio/common"

// Camera holds the base pose written by the camera director. Shake is an
// additive offset owned by transition timelines; the rendered eye position is
// Position+Shake.
type Camera struct {
	Position common.Vec3
	Target   common.Vec3
	FOV      float64
	Shake    common.Vec3
}

var CameraComponent = NewComponent[Camera]()
