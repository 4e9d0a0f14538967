package embroidery

import (
	"math"
	"strings"
	"testing"

	"github.com/cheekybits/is"
)

const testSvg = `<?xml version="1.0" encoding="utf-8"?>
<!-- Generator: Adobe Illustrator 15.0.2, SVG Export Plug-In . SVG Version: 6.00 Build 0)  -->
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg version="1.1" id="Layer_1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" x="0px" y="0px"
	 width="595.201px" height="841.922px" viewBox="0 0 595.201 841.922" enable-background="new 0 0 595.201 841.922"
	 xml:space="preserve">
<rect x="10" y="20" fill="#009FE3" width="30px" height="40px"/>
<text transform="matrix(1 0 0 1 232.3306 107.5952)" fill="#FFFFFF" font-family="'ArialMT'" font-size="31.9752">PODIUM</text>
<g stroke="red">
	<circle cx="5" cy="6" r="2"/>
	<circle cx="7" cy="8" r="0"/>
	<g>
		<line x1="1" y1="2" x2="3" y2="4" stroke="blue"/>
	</g>
</g>
<ellipse cx="50" cy="60" rx="3" ry="4" stroke="none" fill="lime"/>
<polygon points="0,0 10,0 10,10" stroke="#000"/>
<polyline points="1,1 2,2"/>
<path d="M0 0 L10 20 Z" stroke="#00ff00"/>
</svg>`

func readTestSvg(t *testing.T, src string) *Pattern {
	is := is.New(t)
	p := New()
	err := svgFormat{}.Read(p, strings.NewReader(src))
	is.NoErr(err)
	return p
}

func TestParse(t *testing.T) {
	is := is.New(t)

	p := readTestSvg(t, testSvg)
	is.Equal(p.Rects().Len(), 1)
	is.Equal(p.Circles().Len(), 1)
	is.Equal(p.Points().Len(), 1)
	is.Equal(p.Lines().Len(), 1)
	is.Equal(p.Ellipses().Len(), 1)
	is.Equal(p.Polygons().Len(), 1)
	is.Equal(p.Polylines().Len(), 1)
	is.Equal(p.Paths().Len(), 1)
	is.Equal(p.Stitches().Len(), 0)
}

func TestParseFlipsY(t *testing.T) {
	is := is.New(t)

	p := readTestSvg(t, testSvg)

	rect := p.Rects().At(0)
	is.Equal(rect.Rect, Rect{Left: 10, Top: -60, Right: 40, Bottom: -20})
	is.Equal(rect.Color, Color{R: 0x00, G: 0x9f, B: 0xe3})

	circle := p.Circles().At(0).Circle
	is.Equal(circle, Circle{Center: Point{X: 5, Y: -6}, Radius: 2})

	is.Equal(p.Points().At(0).Point, Point{X: 7, Y: -8})

	line := p.Lines().At(0).Line
	is.Equal(line.Start, Point{X: 1, Y: -2})
	is.Equal(line.End, Point{X: 3, Y: -4})

	poly := p.Polygons().At(0)
	is.Equal(len(poly.Points), 3)
	is.Equal(poly.Points[2], Point{X: 10, Y: -10})

	path := p.Paths().At(0)
	is.Equal(len(path.Commands), 3)
	is.Equal(path.Commands[1].Points[0], Point{X: 10, Y: -20})
}

func TestParseColors(t *testing.T) {
	is := is.New(t)

	p := readTestSvg(t, testSvg)
	red := Color{R: 0xff}

	is.Equal(p.Circles().At(0).Color, red)
	is.Equal(p.Points().At(0).Color, red)
	is.Equal(p.Lines().At(0).Color, Color{B: 0xff})
	is.Equal(p.Ellipses().At(0).Color, Color{G: 0xff})
	is.Equal(p.Polygons().At(0).Color, Color{})
	is.Equal(p.Polylines().At(0).Color, Color{})
	is.Equal(p.Paths().At(0).Color, Color{G: 0xff})
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)

	tests := []string{
		``,
		`<html></html>`,
		`<svg><circle cx="a" cy="1" r="1"/></svg>`,
		`<svg><path d="M0 0 Q1 1 2 2"/></svg>`,
		`<svg><polyline points="1,2 3"/></svg>`,
		`<svg><rect x="1"`,
	}
	for _, src := range tests {
		err := svgFormat{}.Read(New(), strings.NewReader(src))
		is.Err(err)
	}
}

func TestWriteSvg(t *testing.T) {
	is := is.New(t)

	p := New()
	p.AddCircleObject(10, -10, 2)
	p.AddRectObject(0, -5, 4, 3)
	p.AddPointObject(1, -1)
	p.AddSplineObject(Bezier{Start: Point{0, -1}, Control1: Point{1, -2}, Control2: Point{2, -2}, End: Point{3, -1}})
	p.AddArcObject(Point{0, -10}, Point{10, -20}, Point{20, -10})
	p.AddThread(Thread{Color: Color{R: 0xff}})
	p.AddStitchAbs(0, -1, Normal, true)
	p.AddStitchAbs(5, -1, Normal, true)

	var sb strings.Builder
	is.NoErr(svgFormat{}.Write(p, &sb))
	out := sb.String()
	is.OK(strings.HasPrefix(out, "<?xml"))
	is.OK(strings.Contains(out, `<circle cx="10" cy="10" r="2" stroke="#000000" fill="none"></circle>`))
	is.OK(strings.Contains(out, `<polyline points="0,1 5,1" stroke="#ff0000" fill="none"></polyline>`))
	is.OK(strings.Contains(out, `d="M 0 1 C 1 2 2 2 3 1"`))

	back := readTestSvg(t, out)
	is.Equal(back.Circles().Len(), 1)
	is.Equal(back.Circles().At(0).Circle, Circle{Center: Point{X: 10, Y: -10}, Radius: 2})
	is.Equal(back.Rects().At(0).Rect, Rect{Left: 0, Top: -5, Right: 4, Bottom: -2})
	is.Equal(back.Points().At(0).Point, Point{X: 1, Y: -1})
	is.Equal(back.Polylines().Len(), 1)
	is.Equal(back.Polylines().At(0).Color, Color{R: 0xff})
	// the spline and the sampled arc both come back as paths
	is.Equal(back.Paths().Len(), 2)

	arc := back.Paths().At(1)
	first := arc.Commands[0].Points[0]
	last := arc.Commands[len(arc.Commands)-1].Points[0]
	is.OK(math.Abs(first.X) < 1e-9 && math.Abs(first.Y+10) < 1e-9)
	is.OK(math.Abs(last.X-20) < 1e-9 && math.Abs(last.Y+10) < 1e-9)
}
