package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs"
	"github.com/milk9111/starfolio/ecs/component"
)

const (
	nearPlane     = 0.1
	propSpinSpeed = 0.5
)

// Projector maps scene coordinates to screen pixels for one camera pose.
type Projector struct {
	eye, right, up, forward common.Vec3
	focal, cx, cy           float64
}

func NewProjector(cam component.Camera, width, height float64) Projector {
	eye := cam.Position.Add(cam.Shake)
	forward := cam.Target.Sub(eye).Normalize()
	if forward == (common.Vec3{}) {
		forward = common.V3(0, 0, -1)
	}
	right := forward.Cross(common.V3(0, 1, 0)).Normalize()
	if right == (common.Vec3{}) {
		right = common.V3(1, 0, 0)
	}
	up := right.Cross(forward)

	fov := cam.FOV
	if fov <= 0 {
		fov = 60
	}
	return Projector{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   (height / 2) / math.Tan(fov*math.Pi/360),
		cx:      width / 2,
		cy:      height / 2,
	}
}

// Project returns the screen position of p, its view depth and the pixel
// size of one scene unit at that depth. ok is false behind the camera.
func (pr Projector) Project(p common.Vec3) (x, y, depth, unit float64, ok bool) {
	d := p.Sub(pr.eye)
	depth = d.Dot(pr.forward)
	if depth <= nearPlane {
		return 0, 0, depth, 0, false
	}
	unit = pr.focal / depth
	x = pr.cx + d.Dot(pr.right)*unit
	y = pr.cy - d.Dot(pr.up)*unit
	return x, y, depth, unit, true
}

type drawItem struct {
	e      ecs.Entity
	x, y   float64
	depth  float64
	radius float64
	layer  int
	obj    *component.SceneObject
	spin   float64
}

// RenderSystem draws every visible scene object as a projected vector shape.
type RenderSystem struct {
	camEntity ecs.Entity
	face      text.Face
	items     []drawItem
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Update turns the mounted props. Spin is decoration only; transitions
// never read it.
func (r *RenderSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.SceneObjectComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, so *component.SceneObject, t *component.Transform) {
		if so.Role != "" {
			t.Spin += common.FrameDelta * propSpinSpeed
		}
	})
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if !r.camEntity.Valid() || !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	bounds := screen.Bounds()
	pr := NewProjector(*cam, float64(bounds.Dx()), float64(bounds.Dy()))

	r.items = r.collect(w, pr, r.items[:0])
	for _, it := range r.items {
		r.drawShape(screen, it)
	}
}

func (r *RenderSystem) collect(w *ecs.World, pr Projector, out []drawItem) []drawItem {
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.VisibilityComponent.Kind(), component.SceneObjectComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, vis *component.Visibility, so *component.SceneObject) {
			if !vis.Visible {
				return
			}
			scale := math.Max(math.Max(t.Scale.X, t.Scale.Y), t.Scale.Z)
			if scale <= 0 {
				return
			}
			x, y, depth, unit, ok := pr.Project(t.Position)
			if !ok {
				return
			}
			layer := 0
			if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
				layer = rl.Index
			}
			out = append(out, drawItem{e: e, x: x, y: y, depth: depth, radius: so.Radius * scale * unit, layer: layer, obj: so, spin: t.Spin})
		})

	// Far to near; layer breaks ties.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].depth != out[j].depth {
			return out[i].depth > out[j].depth
		}
		if out[i].layer != out[j].layer {
			return out[i].layer < out[j].layer
		}
		return uint64(out[i].e) < uint64(out[j].e)
	})
	return out
}

func (r *RenderSystem) drawShape(screen *ebiten.Image, it drawItem) {
	x, y, rad := float32(it.x), float32(it.y), float32(it.radius)
	if rad < 0.5 {
		rad = 0.5
	}
	c := it.obj.Color

	switch it.obj.Shape {
	case component.ShapeSphere:
		vector.DrawFilledCircle(screen, x, y, rad, c, true)
	case component.ShapeRing:
		vector.DrawFilledCircle(screen, x, y, rad*0.55, c, true)
		vector.StrokeCircle(screen, x, y, rad, max(float32(1), rad*0.08), shade(c, 0.8), true)
	case component.ShapeMonolith:
		for i := -1; i <= 1; i++ {
			h := rad * (1.4 - 0.3*float32(i*i))
			vector.DrawFilledRect(screen, x+float32(i)*rad*0.7-rad*0.15, y-h/2, rad*0.3, h, c, true)
		}
	case component.ShapeShip:
		nose := float64(rad) * 1.2
		a := it.spin
		vector.StrokeLine(screen, x, y, x+float32(math.Cos(a)*nose), y-float32(math.Sin(a)*nose), max(float32(1), rad*0.3), c, true)
		vector.DrawFilledCircle(screen, x, y, rad*0.5, c, true)
	case component.ShapeVortex:
		for i := 3; i >= 1; i-- {
			vector.StrokeCircle(screen, x, y, rad*float32(i)/3, max(float32(1), rad*0.1), shade(c, float64(i)/3), true)
		}
		vector.DrawFilledCircle(screen, x, y, rad*0.3, color.RGBA{A: 255}, true)
	case component.ShapeBinary:
		dx := float32(math.Cos(it.spin)) * rad
		dy := float32(math.Sin(it.spin)) * rad * 0.3
		vector.DrawFilledCircle(screen, x+dx, y+dy, rad*0.45, c, true)
		vector.DrawFilledCircle(screen, x-dx, y-dy, rad*0.3, shade(c, 0.7), true)
	case component.ShapeTitle:
	}

	if it.obj.Label != "" {
		r.drawLabel(screen, it)
	}
}

func (r *RenderSystem) drawLabel(screen *ebiten.Image, it drawItem) {
	label := it.obj.Label
	w, h := text.Measure(label, r.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(-w/2, 0)
	if it.obj.Shape == component.ShapeTitle {
		s := math.Max(1, it.radius/h)
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(it.x, it.y-h*s/2)
	} else {
		op.GeoM.Translate(it.x, it.y+it.radius+4)
	}
	op.ColorScale.ScaleWithColor(it.obj.Color)
	text.Draw(screen, label, r.face, op)
}

func shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * k), G: uint8(float64(c.G) * k), B: uint8(float64(c.B) * k), A: c.A}
}
