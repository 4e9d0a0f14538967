package embroidery

import "fmt"

// CircleObject is a circle annotation.
type CircleObject struct {
	Circle Circle
	Color  Color
}

// EllipseObject is an ellipse annotation.
type EllipseObject struct {
	Ellipse Ellipse
	Color   Color
}

// LineObject is a straight line annotation.
type LineObject struct {
	Line  Line
	Color Color
}

// PointObject is a single point annotation.
type PointObject struct {
	Point Point
	Color Color
}

// RectObject is a rectangle annotation.
type RectObject struct {
	Rect  Rect
	Color Color
}

// ArcObject is a three point arc annotation.
type ArcObject struct {
	Arc   Arc
	Color Color
}

// SplineObject is a cubic spline annotation.
type SplineObject struct {
	Bezier Bezier
	Color  Color
}

// PolygonObject is a closed shape. It owns its points.
type PolygonObject struct {
	Points   []Point
	Color    Color
	LineType int
}

// PolylineObject is an open run of connected points. It owns its points.
type PolylineObject struct {
	Points   []Point
	Color    Color
	LineType int
}

// AddCircleObject adds a circle centered at (cx,cy) with radius r.
func (p *Pattern) AddCircleObject(cx, cy, r float64) {
	p.circles.Append(CircleObject{Circle: Circle{Center: Point{cx, cy}, Radius: r}})
}

// AddEllipseObject adds an ellipse centered at (cx,cy) with radii rx, ry.
func (p *Pattern) AddEllipseObject(cx, cy, rx, ry float64) {
	p.ellipses.Append(EllipseObject{Ellipse: Ellipse{Center: Point{cx, cy}, RadiusX: rx, RadiusY: ry}})
}

// AddLineObject adds a line from (x1,y1) to (x2,y2).
func (p *Pattern) AddLineObject(x1, y1, x2, y2 float64) {
	p.lines.Append(LineObject{Line: Line{Start: Point{x1, y1}, End: Point{x2, y2}}})
}

// AddPointObject adds a point at (x,y).
func (p *Pattern) AddPointObject(x, y float64) {
	p.points.Append(PointObject{Point: Point{x, y}})
}

// AddRectObject adds a rectangle with its corner at (x,y), a width w and a
// height h.
func (p *Pattern) AddRectObject(x, y, w, h float64) {
	r := Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
	p.rects.Append(RectObject{Rect: r.normalized()})
}

// AddArcObject adds an arc running from start through mid to end.
func (p *Pattern) AddArcObject(start, mid, end Point) {
	p.arcs.Append(ArcObject{Arc: Arc{Start: start, Mid: mid, End: end}})
}

// AddSplineObject adds a cubic spline segment.
func (p *Pattern) AddSplineObject(b Bezier) {
	p.splines.Append(SplineObject{Bezier: b})
}

// AddPolygonObject adds a polygon. The pattern takes ownership of obj.
func (p *Pattern) AddPolygonObject(obj *PolygonObject) error {
	const op = "Pattern.AddPolygonObject"
	if obj == nil {
		return invalidArgument(op, "nil polygon")
	}
	if len(obj.Points) == 0 {
		return invalidArgument(op, "polygon has no points")
	}
	p.polygons.Append(obj)
	return nil
}

// AddPolylineObject adds a polyline. The pattern takes ownership of obj.
func (p *Pattern) AddPolylineObject(obj *PolylineObject) error {
	const op = "Pattern.AddPolylineObject"
	if obj == nil {
		return invalidArgument(op, "nil polyline")
	}
	if len(obj.Points) == 0 {
		return invalidArgument(op, "polyline has no points")
	}
	p.polylines.Append(obj)
	return nil
}

// AddPathObject adds a path. The pattern takes ownership of obj.
func (p *Pattern) AddPathObject(obj *PathObject) error {
	const op = "Pattern.AddPathObject"
	if obj == nil {
		return invalidArgument(op, "nil path")
	}
	if len(obj.Commands) == 0 {
		return invalidArgument(op, "path has no commands")
	}
	for i, c := range obj.Commands {
		if !c.valid() {
			return invalidArgument(op, fmt.Sprintf("command %d (%s) has %d points", i, c.Kind, len(c.Points)))
		}
	}
	p.paths.Append(obj)
	return nil
}
