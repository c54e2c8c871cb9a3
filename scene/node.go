package scene

import "github.com/milk9111/starfolio/common"

// Node is a plain in-memory Transformable. It backs headless mounts and the
// fake objects used in tests. A disposed node rejects every mutation.
type Node struct {
	Name     string
	position common.Vec3
	scale    common.Vec3
	visible  bool
	disposed bool
}

// NewNode returns a visible node at the origin with unit scale.
func NewNode(name string) *Node {
	return &Node{Name: name, scale: common.Uniform(1), visible: true}
}

func (n *Node) Position() common.Vec3 { return n.position }
func (n *Node) Scale() common.Vec3    { return n.scale }
func (n *Node) Visible() bool         { return n.visible }

func (n *Node) SetPosition(v common.Vec3) error {
	if n.disposed {
		return ErrDisposed
	}
	n.position = v
	return nil
}

func (n *Node) SetScale(v common.Vec3) error {
	if n.disposed {
		return ErrDisposed
	}
	n.scale = v
	return nil
}

func (n *Node) SetVisible(v bool) error {
	if n.disposed {
		return ErrDisposed
	}
	n.visible = v
	return nil
}

// Dispose simulates the rendering layer destroying the object.
func (n *Node) Dispose() {
	n.disposed = true
}

// CameraNode is an in-memory Camera.
type CameraNode struct {
	position common.Vec3
	target   common.Vec3
	shake    common.Vec3
}

func NewCameraNode(position common.Vec3) *CameraNode {
	return &CameraNode{position: position}
}

func (c *CameraNode) Position() common.Vec3 { return c.position }
func (c *CameraNode) Target() common.Vec3   { return c.target }
func (c *CameraNode) Shake() common.Vec3    { return c.shake }

func (c *CameraNode) SetPosition(v common.Vec3) error {
	c.position = v
	return nil
}

func (c *CameraNode) LookAt(target common.Vec3) error {
	c.target = target
	return nil
}

func (c *CameraNode) SetShake(offset common.Vec3) error {
	c.shake = offset
	return nil
}
