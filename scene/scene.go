// Package scene is the table of renderable handles the animation core mutates.
// The core never creates or destroys objects; it only reads and writes the
// attributes exposed by Transformable.
package scene

import (
	"errors"

	"github.com/milk9111/starfolio/common"
)

// ErrDisposed is returned when mutating an object the rendering layer has
// already torn down.
var ErrDisposed = errors.New("scene: object disposed")

// Transformable is the capability every scene object handle implements.
type Transformable interface {
	Position() common.Vec3
	SetPosition(common.Vec3) error
	Scale() common.Vec3
	SetScale(common.Vec3) error
	Visible() bool
	SetVisible(bool) error
}

// Camera is the rendering camera as seen by the camera director and the
// camera-shake phase of transitions.
type Camera interface {
	Position() common.Vec3
	SetPosition(common.Vec3) error
	LookAt(target common.Vec3) error
	SetShake(offset common.Vec3) error
}

// Pose is a complete attribute snapshot of one object.
type Pose struct {
	Position common.Vec3
	Scale    common.Vec3
	Visible  bool
}

// Snapshot reads the current pose of obj.
func Snapshot(obj Transformable) Pose {
	return Pose{Position: obj.Position(), Scale: obj.Scale(), Visible: obj.Visible()}
}

// Apply writes every attribute of p to obj. All three setters are attempted;
// the first error is returned.
func Apply(obj Transformable, p Pose) error {
	var first error
	if err := obj.SetPosition(p.Position); err != nil {
		first = err
	}
	if err := obj.SetScale(p.Scale); err != nil && first == nil {
		first = err
	}
	if err := obj.SetVisible(p.Visible); err != nil && first == nil {
		first = err
	}
	return first
}

// ApproxEqual compares poses with a tolerance on the vector attributes.
func (p Pose) ApproxEqual(o Pose, eps float64) bool {
	return p.Visible == o.Visible && p.Position.ApproxEqual(o.Position, eps) && p.Scale.ApproxEqual(o.Scale, eps)
}
