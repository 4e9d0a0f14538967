package embroidery

import "math"

// PathCommandKind tells which drawing operation a PathCommand performs.
type PathCommandKind int

// These are the commands a PathObject is made of.
const (
	MoveTo PathCommandKind = iota
	LineTo
	CurveTo
	Close
)

func (k PathCommandKind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CurveTo:
		return "C"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// PathCommand is one step of a path in absolute coordinates. MoveTo and
// LineTo carry one point, CurveTo carries the two control points and the
// end point, Close carries none.
type PathCommand struct {
	Kind   PathCommandKind
	Points []Point
}

// PathObject is a vector path annotation. It owns its commands.
type PathObject struct {
	Commands []PathCommand
	Color    Color
}

// pointCount is the number of points a command of kind k carries, or -1
// for an unknown kind.
func (k PathCommandKind) pointCount() int {
	switch k {
	case MoveTo, LineTo:
		return 1
	case CurveTo:
		return 3
	case Close:
		return 0
	default:
		return -1
	}
}

func (c PathCommand) valid() bool {
	return len(c.Points) == c.Kind.pointCount()
}

// Bounds returns the exact bounds of the path, curves included. Malformed
// commands are ignored.
func (o *PathObject) Bounds() Rect {
	r := invertedRect()
	var cur, start Point
	for _, c := range o.Commands {
		if !c.valid() {
			continue
		}
		switch c.Kind {
		case MoveTo:
			cur, start = c.Points[0], c.Points[0]
			r.extend(cur.X, cur.Y)
		case LineTo:
			cur = c.Points[0]
			r.extend(cur.X, cur.Y)
		case CurveTo:
			b := Bezier{Start: cur, Control1: c.Points[0], Control2: c.Points[1], End: c.Points[2]}
			r = r.Union(b.Bounds())
			cur = b.End
		case Close:
			cur = start
		}
	}
	return r
}

// Flatten converts the path into one point list per sub-path. Curves are
// subdivided until their control points lie within tolerance of the chord.
// A closed sub-path repeats its first point at the end. Malformed commands
// are ignored.
func (o *PathObject) Flatten(tolerance float64) [][]Point {
	if !(tolerance > 0) {
		tolerance = 0.1
	}
	var (
		out     [][]Point
		segment []Point
		cur     Point
	)
	flush := func() {
		if len(segment) > 1 {
			out = append(out, segment)
		}
		segment = nil
	}
	for _, c := range o.Commands {
		if !c.valid() {
			continue
		}
		switch c.Kind {
		case MoveTo:
			flush()
			cur = c.Points[0]
			segment = []Point{cur}
		case LineTo:
			if segment == nil {
				segment = []Point{cur}
			}
			cur = c.Points[0]
			segment = append(segment, cur)
		case CurveTo:
			if segment == nil {
				segment = []Point{cur}
			}
			b := Bezier{Start: cur, Control1: c.Points[0], Control2: c.Points[1], End: c.Points[2]}
			segment = b.flatten(tolerance, 0, segment)
			cur = b.End
		case Close:
			if len(segment) > 0 {
				cur = segment[0]
				segment = append(segment, cur)
			}
			flush()
		}
	}
	flush()
	return out
}

const maxSubdivision = 10

// flatten appends the curve, minus its start point, to out.
func (b Bezier) flatten(tolerance float64, depth int, out []Point) []Point {
	if depth >= maxSubdivision || b.flat(tolerance) {
		return append(out, b.End)
	}
	left, right := b.split()
	out = left.flatten(tolerance, depth+1, out)
	return right.flatten(tolerance, depth+1, out)
}

func (b Bezier) flat(tolerance float64) bool {
	return distanceToLine(b.Control1, b.Start, b.End) <= tolerance &&
		distanceToLine(b.Control2, b.Start, b.End) <= tolerance
}

// split divides the curve at t = 0.5.
func (b Bezier) split() (Bezier, Bezier) {
	mid := func(p, q Point) Point { return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2} }
	p01 := mid(b.Start, b.Control1)
	p12 := mid(b.Control1, b.Control2)
	p23 := mid(b.Control2, b.End)
	p012 := mid(p01, p12)
	p123 := mid(p12, p23)
	m := mid(p012, p123)
	return Bezier{Start: b.Start, Control1: p01, Control2: p012, End: m},
		Bezier{Start: m, Control1: p123, Control2: p23, End: b.End}
}

func distanceToLine(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := dx*dx + dy*dy
	if l == 0 {
		ex, ey := p.X-a.X, p.Y-a.Y
		return math.Hypot(ex, ey)
	}
	cross := (p.X-a.X)*dy - (p.Y-a.Y)*dx
	if cross < 0 {
		cross = -cross
	}
	return cross / math.Sqrt(l)
}
