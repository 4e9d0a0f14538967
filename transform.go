package embroidery

import (
	"math"

	mt "github.com/rustyoz/Mtransform"
)

type pointFunc func(x, y float64) (float64, float64)

// scaling returns a pointFunc applying an axis aligned scale matrix.
func scaling(sx, sy float64) pointFunc {
	m := mt.Identity()
	m.Scale(sx, sy)
	return func(x, y float64) (float64, float64) {
		return m.Apply(x, y)
	}
}

func offset(dx, dy float64) pointFunc {
	return func(x, y float64) (float64, float64) {
		return x + dx, y + dy
	}
}

func (fn pointFunc) point(p *Point) {
	p.X, p.Y = fn(p.X, p.Y)
}

func (fn pointFunc) points(ps []Point) {
	for i := range ps {
		fn.point(&ps[i])
	}
}

// Scale multiplies every stitch coordinate by factor. The stitch count is
// unchanged, so scaling up lowers the stitch density. Shape objects are
// left alone; see ScaleObjects.
func (p *Pattern) Scale(factor float64) {
	p.mapStitches(scaling(factor, factor))
}

// ScaleObjects multiplies the coordinates of every shape object by factor.
// Radii scale by the magnitude of factor.
func (p *Pattern) ScaleObjects(factor float64) {
	p.mapObjects(scaling(factor, factor), math.Abs(factor), math.Abs(factor))
}

// FlipHorizontal mirrors the pattern about the Y axis.
func (p *Pattern) FlipHorizontal() {
	p.Flip(true, false)
}

// FlipVertical mirrors the pattern about the X axis.
func (p *Pattern) FlipVertical() {
	p.Flip(false, true)
}

// Flip negates the X coordinates of stitches and shape objects if
// horizontal is set and the Y coordinates if vertical is set. Rectangles
// keep Left <= Right and Top <= Bottom.
func (p *Pattern) Flip(horizontal, vertical bool) {
	if !horizontal && !vertical {
		return
	}
	sx, sy := 1.0, 1.0
	if horizontal {
		sx = -1
	}
	if vertical {
		sy = -1
	}
	fn := scaling(sx, sy)
	p.mapStitches(fn)
	p.mapObjects(fn, 1, 1)
}

// Center moves stitches and shape objects so that the bounding box is
// centered on the origin.
func (p *Pattern) Center() {
	if p.stitches.Empty() && !p.hasObjects() {
		return
	}
	bb := p.CalcBoundingBox()
	fn := offset(-(bb.Left+bb.Right)/2, -(bb.Top+bb.Bottom)/2)
	p.mapStitches(fn)
	p.mapObjects(fn, 1, 1)
}

func (p *Pattern) mapStitches(fn pointFunc) {
	items := p.stitches.All()
	for i := range items {
		s := &items[i]
		s.X, s.Y = fn(s.X, s.Y)
	}
	p.syncLast()
}

// mapObjects applies fn to every coordinate of every shape object. rx and
// ry are the factors radii are multiplied by.
func (p *Pattern) mapObjects(fn pointFunc, rx, ry float64) {
	for i, items := 0, p.arcs.All(); i < len(items); i++ {
		a := &items[i].Arc
		fn.point(&a.Start)
		fn.point(&a.Mid)
		fn.point(&a.End)
	}
	for i, items := 0, p.circles.All(); i < len(items); i++ {
		c := &items[i].Circle
		fn.point(&c.Center)
		c.Radius *= rx
	}
	for i, items := 0, p.ellipses.All(); i < len(items); i++ {
		e := &items[i].Ellipse
		fn.point(&e.Center)
		e.RadiusX *= rx
		e.RadiusY *= ry
	}
	for i, items := 0, p.lines.All(); i < len(items); i++ {
		l := &items[i].Line
		fn.point(&l.Start)
		fn.point(&l.End)
	}
	for _, path := range p.paths.All() {
		for i := range path.Commands {
			fn.points(path.Commands[i].Points)
		}
	}
	for i, items := 0, p.points.All(); i < len(items); i++ {
		fn.point(&items[i].Point)
	}
	for _, poly := range p.polygons.All() {
		fn.points(poly.Points)
	}
	for _, poly := range p.polylines.All() {
		fn.points(poly.Points)
	}
	for i, items := 0, p.rects.All(); i < len(items); i++ {
		r := &items[i].Rect
		r.Left, r.Top = fn(r.Left, r.Top)
		r.Right, r.Bottom = fn(r.Right, r.Bottom)
		*r = r.normalized()
	}
	for i, items := 0, p.splines.All(); i < len(items); i++ {
		b := &items[i].Bezier
		fn.point(&b.Start)
		fn.point(&b.Control1)
		fn.point(&b.Control2)
		fn.point(&b.End)
	}
}
