package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/soulslike/scene"
)

// drawPlanarSpace overlays the chipmunk contact space (walls and character
// circles) on the top-down view. cp's y axis is world z.
func drawPlanarSpace(screen *ebiten.Image, s *scene.Scene) {
	if s == nil || s.Physics == nil || screen == nil {
		return
	}
	cp.DrawSpace(s.Physics.Space(), &planarDrawer{screen: screen, view: topDown{center: s.PlayerPosition()}})
}

type planarDrawer struct {
	screen *ebiten.Image
	view   topDown
}

func (d *planarDrawer) point(v cp.Vector) (float32, float32) {
	return d.view.point(mgl64.Vec3{v.X, 0, v.Y})
}

func (d *planarDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	cx, cy := d.point(pos)
	c := fcolorToRGBA(outline)
	vector.StrokeCircle(d.screen, cx, cy, float32(radius*pixelsPerMeter), 1, c, true)
}

func (d *planarDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	ax, ay := d.point(a)
	bx, by := d.point(b)
	vector.StrokeLine(d.screen, ax, ay, bx, by, 1, fcolorToRGBA(fill), true)
}

func (d *planarDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	ax, ay := d.point(a)
	bx, by := d.point(b)
	width := max(1, float32(2*radius*pixelsPerMeter))
	vector.StrokeLine(d.screen, ax, ay, bx, by, width, fcolorToRGBA(outline), true)
}

func (d *planarDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		ax, ay := d.point(verts[i])
		bx, by := d.point(verts[(i+1)%count])
		vector.StrokeLine(d.screen, ax, ay, bx, by, 1, c, true)
	}
}

func (d *planarDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.point(pos)
	vector.FillCircle(d.screen, x, y, float32(size/2), fcolorToRGBA(fill), true)
}

func (d *planarDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *planarDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

// ShapeColor tells static walls apart from character bodies.
func (d *planarDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *planarDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *planarDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *planarDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
