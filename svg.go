package embroidery

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// svgFormat reads and writes the vector shape objects of a pattern as SVG.
// SVG is Y down, so Y is negated in both directions. The stitch timeline is
// written as one polyline per color run; reading an SVG yields shape
// objects only.
type svgFormat struct{}

type svgPaint struct {
	Stroke string `xml:"stroke,attr,omitempty"`
	Fill   string `xml:"fill,attr,omitempty"`
}

// color resolves the paint of an element, falling back to the paint
// inherited from enclosing groups and finally to black.
func (sp svgPaint) color(inherited svgPaint) Color {
	for _, v := range []string{sp.Stroke, sp.Fill, inherited.Stroke, inherited.Fill} {
		if v == "" || v == "none" {
			continue
		}
		if c, err := ParseColor(v); err == nil {
			return c
		}
	}
	return Color{}
}

func (sp svgPaint) inherit(parent svgPaint) svgPaint {
	if sp.Stroke == "" {
		sp.Stroke = parent.Stroke
	}
	if sp.Fill == "" {
		sp.Fill = parent.Fill
	}
	return sp
}

func strokeOf(c Color) svgPaint {
	return svgPaint{Stroke: c.Hex(), Fill: "none"}
}

// svgCircle is an SVG circle element. A zero radius circle stands for a point
// object.
type svgCircle struct {
	Cx     string `xml:"cx,attr"`
	Cy     string `xml:"cy,attr"`
	Radius string `xml:"r,attr"`
	svgPaint
}

type svgEllipse struct {
	Cx string `xml:"cx,attr"`
	Cy string `xml:"cy,attr"`
	Rx string `xml:"rx,attr"`
	Ry string `xml:"ry,attr"`
	svgPaint
}

type svgLine struct {
	X1 string `xml:"x1,attr"`
	Y1 string `xml:"y1,attr"`
	X2 string `xml:"x2,attr"`
	Y2 string `xml:"y2,attr"`
	svgPaint
}

type svgRect struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	svgPaint
}

// svgPoly is a polygon or polyline element.
type svgPoly struct {
	Points string `xml:"points,attr"`
	svgPaint
}

type svgPath struct {
	D string `xml:"d,attr"`
	svgPaint
}

type svgGroup struct {
	svgPaint
}

type svgDocument struct {
	XMLName   xml.Name     `xml:"svg"`
	Xmlns     string       `xml:"xmlns,attr"`
	Version   string       `xml:"version,attr"`
	Width     string       `xml:"width,attr"`
	Height    string       `xml:"height,attr"`
	ViewBox   string       `xml:"viewBox,attr"`
	Circles   []svgCircle  `xml:"circle"`
	Ellipses  []svgEllipse `xml:"ellipse"`
	Lines     []svgLine    `xml:"line"`
	Rects     []svgRect    `xml:"rect"`
	Polygons  []svgPoly    `xml:"polygon"`
	Polylines []svgPoly    `xml:"polyline"`
	Paths     []svgPath    `xml:"path"`
}

// svgReader walks the element tree and adds shape objects to p.
type svgReader struct {
	p *Pattern
}

func (svgFormat) Read(p *Pattern, r io.Reader) error {
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return errors.New("svg: no svg element")
		}
		if err != nil {
			return err
		}
		if start, ok := token.(xml.StartElement); ok {
			if start.Name.Local != "svg" {
				return fmt.Errorf("svg: unexpected root element %q", start.Name.Local)
			}
			return svgReader{p: p}.decodeChildren(decoder, svgPaint{})
		}
	}
}

func (sr svgReader) decodeChildren(decoder *xml.Decoder, paint svgPaint) error {
	for {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("svg: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if err := sr.decodeElement(decoder, tok, paint); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (sr svgReader) decodeElement(decoder *xml.Decoder, tok xml.StartElement, paint svgPaint) error {
	p := sr.p
	switch tok.Name.Local {
	case "g":
		var g svgGroup
		for _, attr := range tok.Attr {
			switch attr.Name.Local {
			case "stroke":
				g.Stroke = attr.Value
			case "fill":
				g.Fill = attr.Value
			}
		}
		return sr.decodeChildren(decoder, g.inherit(paint))
	case "circle":
		var c svgCircle
		if err := decoder.DecodeElement(&c, &tok); err != nil {
			return fmt.Errorf("error decoding circle element: %w", err)
		}
		v, err := lengths(c.Cx, c.Cy, c.Radius)
		if err != nil {
			return fmt.Errorf("circle: %w", err)
		}
		color := c.color(paint)
		if v[2] == 0 {
			p.points.Append(PointObject{Point: Point{X: v[0], Y: -v[1]}, Color: color})
			return nil
		}
		p.circles.Append(CircleObject{Circle: Circle{Center: Point{X: v[0], Y: -v[1]}, Radius: v[2]}, Color: color})
	case "ellipse":
		var e svgEllipse
		if err := decoder.DecodeElement(&e, &tok); err != nil {
			return fmt.Errorf("error decoding ellipse element: %w", err)
		}
		v, err := lengths(e.Cx, e.Cy, e.Rx, e.Ry)
		if err != nil {
			return fmt.Errorf("ellipse: %w", err)
		}
		p.ellipses.Append(EllipseObject{
			Ellipse: Ellipse{Center: Point{X: v[0], Y: -v[1]}, RadiusX: v[2], RadiusY: v[3]},
			Color:   e.color(paint),
		})
	case "line":
		var l svgLine
		if err := decoder.DecodeElement(&l, &tok); err != nil {
			return fmt.Errorf("error decoding line element: %w", err)
		}
		v, err := lengths(l.X1, l.Y1, l.X2, l.Y2)
		if err != nil {
			return fmt.Errorf("line: %w", err)
		}
		p.lines.Append(LineObject{
			Line:  Line{Start: Point{X: v[0], Y: -v[1]}, End: Point{X: v[2], Y: -v[3]}},
			Color: l.color(paint),
		})
	case "rect":
		var rc svgRect
		if err := decoder.DecodeElement(&rc, &tok); err != nil {
			return fmt.Errorf("error decoding rect element: %w", err)
		}
		v, err := lengths(rc.X, rc.Y, rc.Width, rc.Height)
		if err != nil {
			return fmt.Errorf("rect: %w", err)
		}
		r := Rect{Left: v[0], Top: -(v[1] + v[3]), Right: v[0] + v[2], Bottom: -v[1]}
		p.rects.Append(RectObject{Rect: r.normalized(), Color: rc.color(paint)})
	case "polygon", "polyline":
		var poly svgPoly
		if err := decoder.DecodeElement(&poly, &tok); err != nil {
			return fmt.Errorf("error decoding %s element: %w", tok.Name.Local, err)
		}
		pts, err := parsePoints(poly.Points)
		if err != nil {
			return fmt.Errorf("%s: %w", tok.Name.Local, err)
		}
		if len(pts) == 0 {
			return nil
		}
		for i := range pts {
			pts[i].Y = -pts[i].Y
		}
		if tok.Name.Local == "polygon" {
			p.polygons.Append(&PolygonObject{Points: pts, Color: poly.color(paint)})
		} else {
			p.polylines.Append(&PolylineObject{Points: pts, Color: poly.color(paint), LineType: 1})
		}
	case "path":
		var sp svgPath
		if err := decoder.DecodeElement(&sp, &tok); err != nil {
			return fmt.Errorf("error decoding path element: %w", err)
		}
		path, err := ParsePathData(sp.D)
		if err != nil {
			return err
		}
		if len(path.Commands) == 0 {
			return nil
		}
		flipY := scaling(1, -1)
		for i := range path.Commands {
			flipY.points(path.Commands[i].Points)
		}
		path.Color = sp.color(paint)
		p.paths.Append(path)
	default:
		return decoder.Skip()
	}
	return nil
}

func (svgFormat) Write(p *Pattern, w io.Writer) error {
	stitchLines, err := p.stitchPolylines()
	if err != nil {
		return err
	}

	bb := p.CalcBoundingBox()
	doc := svgDocument{
		Xmlns:   "http://www.w3.org/2000/svg",
		Version: "1.1",
		Width:   svgNum(bb.Width()) + "mm",
		Height:  svgNum(bb.Height()) + "mm",
		ViewBox: strings.Join([]string{svgNum(bb.Left), svgNum(-bb.Bottom), svgNum(bb.Width()), svgNum(bb.Height())}, " "),
	}

	for _, c := range p.circles.All() {
		doc.Circles = append(doc.Circles, svgCircle{
			Cx: svgNum(c.Circle.Center.X), Cy: svgNum(-c.Circle.Center.Y), Radius: svgNum(c.Circle.Radius),
			svgPaint: strokeOf(c.Color),
		})
	}
	for _, pt := range p.points.All() {
		doc.Circles = append(doc.Circles, svgCircle{
			Cx: svgNum(pt.Point.X), Cy: svgNum(-pt.Point.Y), Radius: "0",
			svgPaint: strokeOf(pt.Color),
		})
	}
	for _, e := range p.ellipses.All() {
		doc.Ellipses = append(doc.Ellipses, svgEllipse{
			Cx: svgNum(e.Ellipse.Center.X), Cy: svgNum(-e.Ellipse.Center.Y),
			Rx: svgNum(e.Ellipse.RadiusX), Ry: svgNum(e.Ellipse.RadiusY),
			svgPaint: strokeOf(e.Color),
		})
	}
	for _, l := range p.lines.All() {
		doc.Lines = append(doc.Lines, svgLine{
			X1: svgNum(l.Line.Start.X), Y1: svgNum(-l.Line.Start.Y),
			X2: svgNum(l.Line.End.X), Y2: svgNum(-l.Line.End.Y),
			svgPaint: strokeOf(l.Color),
		})
	}
	for _, rc := range p.rects.All() {
		r := rc.Rect.normalized()
		doc.Rects = append(doc.Rects, svgRect{
			X: svgNum(r.Left), Y: svgNum(-r.Bottom), Width: svgNum(r.Width()), Height: svgNum(r.Height()),
			svgPaint: strokeOf(rc.Color),
		})
	}
	for _, poly := range p.polygons.All() {
		doc.Polygons = append(doc.Polygons, svgPoly{Points: svgPoints(poly.Points), svgPaint: strokeOf(poly.Color)})
	}
	for _, poly := range p.polylines.All() {
		doc.Polylines = append(doc.Polylines, svgPoly{Points: svgPoints(poly.Points), svgPaint: strokeOf(poly.Color)})
	}
	for _, poly := range stitchLines {
		doc.Polylines = append(doc.Polylines, svgPoly{Points: svgPoints(poly.Points), svgPaint: strokeOf(poly.Color)})
	}
	for _, path := range p.paths.All() {
		doc.Paths = append(doc.Paths, svgPath{D: svgPathData(path.Commands), svgPaint: strokeOf(path.Color)})
	}
	for _, s := range p.splines.All() {
		b := s.Bezier
		cmds := []PathCommand{
			{Kind: MoveTo, Points: []Point{b.Start}},
			{Kind: CurveTo, Points: []Point{b.Control1, b.Control2, b.End}},
		}
		doc.Paths = append(doc.Paths, svgPath{D: svgPathData(cmds), svgPaint: strokeOf(s.Color)})
	}
	for _, a := range p.arcs.All() {
		pts := a.Arc.Sample(32)
		cmds := []PathCommand{{Kind: MoveTo, Points: pts[:1]}}
		for _, pt := range pts[1:] {
			cmds = append(cmds, PathCommand{Kind: LineTo, Points: []Point{pt}})
		}
		doc.Paths = append(doc.Paths, svgPath{D: svgPathData(cmds), svgPaint: strokeOf(a.Color)})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// svgNum formats v without trailing zeros and without a negative zero.
func svgNum(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func svgPoints(pts []Point) string {
	parts := make([]string, len(pts))
	for i, pt := range pts {
		parts[i] = svgNum(pt.X) + "," + svgNum(-pt.Y)
	}
	return strings.Join(parts, " ")
}

func svgPathData(cmds []PathCommand) string {
	var sb strings.Builder
	for i, c := range cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Kind.String())
		for _, pt := range c.Points {
			sb.WriteString(" " + svgNum(pt.X) + " " + svgNum(-pt.Y))
		}
	}
	return sb.String()
}

// lengths parses SVG length attributes. Units are ignored; a missing
// attribute is zero.
func lengths(vals ...string) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		v = strings.TrimSpace(v)
		v = strings.TrimSuffix(strings.TrimSuffix(v, "px"), "mm")
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
