// Package embroidery is the in-memory model of a machine embroidery
// design: an ordered stitch timeline, a thread palette and a set of vector
// shape objects, plus the algorithms that normalize and transform them.
//
// Coordinates are absolute millimeters with positive Y up. A Pattern is not
// safe for concurrent use; distinct patterns are independent.
package embroidery

// Pattern owns a stitch timeline, a thread palette and one list per shape
// object kind.
type Pattern struct {
	Settings Settings

	stitches List[Stitch]
	threads  List[Thread]

	arcs      List[ArcObject]
	circles   List[CircleObject]
	ellipses  List[EllipseObject]
	lines     List[LineObject]
	paths     List[*PathObject]
	points    List[PointObject]
	polygons  List[*PolygonObject]
	polylines List[*PolylineObject]
	rects     List[RectObject]
	splines   List[SplineObject]

	currentColor int
	last         Point
}

// New returns an empty pattern with default settings.
func New() *Pattern {
	return &Pattern{Settings: DefaultSettings()}
}

// Reset releases every stitch, thread and shape object and rewinds the
// color and position cursors. Settings are kept.
func (p *Pattern) Reset() {
	p.stitches.Clear()
	p.threads.Clear()
	p.arcs.Clear()
	p.circles.Clear()
	p.ellipses.Clear()
	p.lines.Clear()
	p.paths.Clear()
	p.points.Clear()
	p.polygons.Clear()
	p.polylines.Clear()
	p.rects.Clear()
	p.splines.Clear()
	p.currentColor = 0
	p.last = Point{}
}

// Stitches returns the stitch timeline.
func (p *Pattern) Stitches() *List[Stitch] { return &p.stitches }

// Threads returns the thread palette.
func (p *Pattern) Threads() *List[Thread] { return &p.threads }

// Arcs returns the arc objects.
func (p *Pattern) Arcs() *List[ArcObject] { return &p.arcs }

// Circles returns the circle objects.
func (p *Pattern) Circles() *List[CircleObject] { return &p.circles }

// Ellipses returns the ellipse objects.
func (p *Pattern) Ellipses() *List[EllipseObject] { return &p.ellipses }

// Lines returns the line objects.
func (p *Pattern) Lines() *List[LineObject] { return &p.lines }

// Paths returns the path objects.
func (p *Pattern) Paths() *List[*PathObject] { return &p.paths }

// Points returns the point objects.
func (p *Pattern) Points() *List[PointObject] { return &p.points }

// Polygons returns the polygon objects.
func (p *Pattern) Polygons() *List[*PolygonObject] { return &p.polygons }

// Polylines returns the polyline objects.
func (p *Pattern) Polylines() *List[*PolylineObject] { return &p.polylines }

// Rects returns the rectangle objects.
func (p *Pattern) Rects() *List[RectObject] { return &p.rects }

// Splines returns the spline objects.
func (p *Pattern) Splines() *List[SplineObject] { return &p.splines }

// CurrentColor returns the thread index given to the next added stitch.
func (p *Pattern) CurrentColor() int { return p.currentColor }

// LastPosition returns the coordinates of the tail stitch, or the origin
// for an empty timeline.
func (p *Pattern) LastPosition() Point { return p.last }

// AddThread appends a thread to the palette.
func (p *Pattern) AddThread(t Thread) {
	p.threads.Append(t)
}

// ChangeColor sets the thread index given to subsequently added stitches.
func (p *Pattern) ChangeColor(index int) {
	p.currentColor = index
}

func (p *Pattern) hasObjects() bool {
	return !p.arcs.Empty() || !p.circles.Empty() || !p.ellipses.Empty() ||
		!p.lines.Empty() || !p.paths.Empty() || !p.points.Empty() ||
		!p.polygons.Empty() || !p.polylines.Empty() || !p.rects.Empty() ||
		!p.splines.Empty()
}

// syncLast restores the position cursor from the tail stitch after an
// algorithm rewrote coordinates in place.
func (p *Pattern) syncLast() {
	if s, ok := p.stitches.Last(); ok {
		p.last = s.Point()
		return
	}
	p.last = Point{}
}
