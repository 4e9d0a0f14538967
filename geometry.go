package embroidery

import "math"

// Point is an X,Y coordinate in millimeters. Positive Y is up.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Line is a straight segment between two points.
type Line struct {
	Start, End Point
}

// Rect is an axis aligned rectangle. Top holds the smaller Y value and
// Bottom the larger one.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Empty reports whether the rectangle is inverted, which is the state of an
// accumulator that has not seen any point yet.
func (r Rect) Empty() bool { return r.Right < r.Left || r.Bottom < r.Top }

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if o.Empty() {
		return r
	}
	if r.Empty() {
		return o
	}
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

func invertedRect() Rect {
	return Rect{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
}

func (r *Rect) extend(x, y float64) {
	r.Left = math.Min(r.Left, x)
	r.Top = math.Min(r.Top, y)
	r.Right = math.Max(r.Right, x)
	r.Bottom = math.Max(r.Bottom, y)
}

// normalized swaps edges so that Left <= Right and Top <= Bottom.
func (r Rect) normalized() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Circle is defined by its center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// Ellipse is an axis aligned ellipse.
type Ellipse struct {
	Center           Point
	RadiusX, RadiusY float64
}

// Arc is a circular arc running from Start through Mid to End.
type Arc struct {
	Start, Mid, End Point
}

// circle returns the center, radius, start angle and counter clockwise
// sweep of the arc. ok is false for collinear points.
func (a Arc) circle() (c Point, radius, start, sweep float64, ok bool) {
	ax, ay := a.Start.X, a.Start.Y
	mx, my := a.Mid.X, a.Mid.Y
	bx, by := a.End.X, a.End.Y
	d := 2 * (ax*(my-by) + mx*(by-ay) + bx*(ay-my))
	if math.Abs(d) < 1e-12 {
		return Point{}, 0, 0, 0, false
	}
	a2 := ax*ax + ay*ay
	m2 := mx*mx + my*my
	b2 := bx*bx + by*by
	c.X = (a2*(my-by) + m2*(by-ay) + b2*(ay-my)) / d
	c.Y = (a2*(bx-mx) + m2*(ax-bx) + b2*(mx-ax)) / d
	radius = math.Hypot(ax-c.X, ay-c.Y)

	start = math.Atan2(ay-c.Y, ax-c.X)
	end := math.Atan2(by-c.Y, bx-c.X)
	sweep = normAngle(end - start)
	if normAngle(math.Atan2(my-c.Y, mx-c.X)-start) > sweep {
		// clockwise: walk it from the other end
		start, sweep = end, 2*math.Pi-sweep
	}
	return c, radius, start, sweep, true
}

// Bounds returns the exact bounds of the arc. Collinear points describe a
// straight segment and are bounded by their hull.
func (a Arc) Bounds() Rect {
	r := invertedRect()
	r.extend(a.Start.X, a.Start.Y)
	r.extend(a.Mid.X, a.Mid.Y)
	r.extend(a.End.X, a.End.Y)

	c, radius, start, sweep, ok := a.circle()
	if !ok {
		return r
	}
	for k := 0; k < 4; k++ {
		theta := float64(k) * math.Pi / 2
		if normAngle(theta-start) <= sweep {
			r.extend(c.X+radius*math.Cos(theta), c.Y+radius*math.Sin(theta))
		}
	}
	return r
}

// Sample returns n+1 points along the arc from Start to End.
func (a Arc) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	c, radius, start, sweep, ok := a.circle()
	if !ok {
		return []Point{a.Start, a.Mid, a.End}
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := start + sweep*float64(i)/float64(n)
		pts = append(pts, Point{X: c.X + radius*math.Cos(theta), Y: c.Y + radius*math.Sin(theta)})
	}
	// the walk may run End to Start; keep the arc's own direction
	first := pts[0]
	if math.Hypot(first.X-a.Start.X, first.Y-a.Start.Y) > math.Hypot(first.X-a.End.X, first.Y-a.End.Y) {
		for i, j := 0, n; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	pts[0], pts[n] = a.Start, a.End
	return pts
}

func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Bezier is a cubic spline segment.
type Bezier struct {
	Start, Control1, Control2, End Point
}

// At evaluates the curve at t in [0, 1].
func (b Bezier) At(t float64) Point {
	u := 1 - t
	w0 := u * u * u
	w1 := 3 * u * u * t
	w2 := 3 * u * t * t
	w3 := t * t * t
	return Point{
		X: w0*b.Start.X + w1*b.Control1.X + w2*b.Control2.X + w3*b.End.X,
		Y: w0*b.Start.Y + w1*b.Control1.Y + w2*b.Control2.Y + w3*b.End.Y,
	}
}

// Bounds returns the exact bounds of the curve, found from the roots of its
// derivative on each axis.
func (b Bezier) Bounds() Rect {
	r := invertedRect()
	r.extend(b.Start.X, b.Start.Y)
	r.extend(b.End.X, b.End.Y)
	ts := cubicExtrema(b.Start.X, b.Control1.X, b.Control2.X, b.End.X)
	ts = append(ts, cubicExtrema(b.Start.Y, b.Control1.Y, b.Control2.Y, b.End.Y)...)
	for _, t := range ts {
		p := b.At(t)
		r.extend(p.X, p.Y)
	}
	return r
}

// cubicExtrema returns the parameters in (0, 1) where the derivative of the
// one dimensional cubic with control values p0..p3 vanishes.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0

	var roots []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			roots = append(roots, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
		}
	}

	ts := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}
