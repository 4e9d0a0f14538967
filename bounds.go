package embroidery

import "math"

// CalcBoundingBox returns the rectangle enclosing every non trim stitch
// and every shape object. A pattern with nothing in it, or with nothing
// that contributes, yields the unit rectangle {0, 0, 1, 1}.
func (p *Pattern) CalcBoundingBox() Rect {
	unit := Rect{Left: 0, Top: 0, Right: 1, Bottom: 1}
	if p.stitches.Empty() && !p.hasObjects() {
		return unit
	}

	r := invertedRect()
	for _, s := range p.stitches.All() {
		if !s.Flags.Has(Trim) {
			r.extend(s.X, s.Y)
		}
	}
	for _, a := range p.arcs.All() {
		r = r.Union(a.Arc.Bounds())
	}
	for _, c := range p.circles.All() {
		c := c.Circle
		r.extend(c.Center.X-c.Radius, c.Center.Y-c.Radius)
		r.extend(c.Center.X+c.Radius, c.Center.Y+c.Radius)
	}
	for _, e := range p.ellipses.All() {
		e := e.Ellipse
		r.extend(e.Center.X-e.RadiusX, e.Center.Y-e.RadiusY)
		r.extend(e.Center.X+e.RadiusX, e.Center.Y+e.RadiusY)
	}
	for _, l := range p.lines.All() {
		r.extend(l.Line.Start.X, l.Line.Start.Y)
		r.extend(l.Line.End.X, l.Line.End.Y)
	}
	for _, path := range p.paths.All() {
		r = r.Union(path.Bounds())
	}
	for _, pt := range p.points.All() {
		r.extend(pt.Point.X, pt.Point.Y)
	}
	for _, poly := range p.polygons.All() {
		for _, pt := range poly.Points {
			r.extend(pt.X, pt.Y)
		}
	}
	for _, poly := range p.polylines.All() {
		for _, pt := range poly.Points {
			r.extend(pt.X, pt.Y)
		}
	}
	for _, rect := range p.rects.All() {
		rect := rect.Rect.normalized()
		r.extend(rect.Left, rect.Top)
		r.extend(rect.Right, rect.Bottom)
	}
	for _, s := range p.splines.All() {
		r = r.Union(s.Bezier.Bounds())
	}

	if r.Empty() || math.IsInf(r.Left, 0) {
		return unit
	}
	return r
}

// FitsHoop reports whether the bounding box fits the hoop in the pattern
// settings. A zero hoop accepts any size.
func (p *Pattern) FitsHoop() bool {
	h := p.Settings.Hoop
	if h.Width == 0 && h.Height == 0 {
		return true
	}
	bb := p.CalcBoundingBox()
	return bb.Width() <= h.Width && bb.Height() <= h.Height
}
