package embroidery

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/cheekybits/is"
	"golang.org/x/image/colornames"
)

func TestRectUnion(t *testing.T) {
	is := is.New(t)

	a := Rect{Left: 0, Top: 0, Right: 2, Bottom: 2}
	b := Rect{Left: -1, Top: 1, Right: 1, Bottom: 5}
	is.Equal(a.Union(b), Rect{Left: -1, Top: 0, Right: 2, Bottom: 5})
	is.Equal(a.Union(invertedRect()), a)
	is.Equal(invertedRect().Union(b), b)
	is.OK(invertedRect().Empty())
	is.Equal(b.Width(), 2.0)
	is.Equal(b.Height(), 4.0)
}

func TestArcSample(t *testing.T) {
	is := is.New(t)

	for _, a := range []Arc{
		{Start: Point{-1, 0}, Mid: Point{0, 1}, End: Point{1, 0}},
		{Start: Point{1, 0}, Mid: Point{0, 1}, End: Point{-1, 0}},
	} {
		pts := a.Sample(8)
		is.Equal(len(pts), 9)
		is.Equal(pts[0], a.Start)
		is.Equal(pts[8], a.End)
		for _, pt := range pts {
			is.OK(math.Abs(math.Hypot(pt.X, pt.Y)-1) < 1e-9)
			is.OK(pt.Y >= -1e-9)
		}
	}

	straight := Arc{Start: Point{0, 0}, Mid: Point{1, 1}, End: Point{2, 2}}
	is.Equal(len(straight.Sample(8)), 3)
}

func TestBezierAt(t *testing.T) {
	is := is.New(t)

	b := Bezier{Start: Point{0, 0}, Control1: Point{0, 10}, Control2: Point{10, 10}, End: Point{10, 0}}
	is.Equal(b.At(0), b.Start)
	is.Equal(b.At(1), b.End)
	is.Equal(b.At(0.5), Point{5, 7.5})
}

func TestParseColor(t *testing.T) {
	is := is.New(t)

	tests := []struct {
		In   string
		Want Color
	}{
		{"#ff8000", Color{R: 0xff, G: 0x80}},
		{"#FF8000", Color{R: 0xff, G: 0x80}},
		{"#f80", Color{R: 0xff, G: 0x88}},
		{" Navy ", ColorFrom(colornames.Navy)},
	}
	for _, test := range tests {
		c, err := ParseColor(test.In)
		is.NoErr(err)
		is.Equal(c, test.Want)
	}

	for _, in := range []string{"", "#12", "#gggggg", "notacolor"} {
		_, err := ParseColor(in)
		is.Err(err)
	}
}

func TestColorHex(t *testing.T) {
	is := is.New(t)

	c := Color{R: 1, G: 0xab, B: 0xff}
	is.Equal(c.Hex(), "#01abff")
	back, err := ParseColor(c.Hex())
	is.NoErr(err)
	is.Equal(back, c)

	_, _, _, a := c.RGBA()
	is.Equal(a, uint32(0xffff))
}

func TestPlaceholderThreadsCycle(t *testing.T) {
	is := is.New(t)

	first := placeholderThread(0)
	is.Equal(first.Description, "black")
	is.Equal(placeholderThread(len(placeholderNames)), first)
	for _, name := range placeholderNames {
		_, ok := colornames.Map[name]
		is.OK(ok)
	}
}

func TestList(t *testing.T) {
	is := is.New(t)

	var l List[int]
	is.OK(l.Empty())
	_, ok := l.Last()
	is.OK(!ok)

	l.Append(1, 2)
	l.Append(3)
	is.Equal(l.Len(), 3)
	is.Equal(l.At(1), 2)
	last, ok := l.Last()
	is.OK(ok)
	is.Equal(last, 3)

	l.All()[0] = 10
	is.Equal(l.At(0), 10)

	l.Clear()
	is.OK(l.Empty())
}

func TestStitchFlag(t *testing.T) {
	is := is.New(t)

	f := Jump | Trim
	is.OK(f.Has(Jump))
	is.OK(f.Has(Jump | Trim))
	is.OK(!f.Has(Stop))
	is.OK(!f.Has(Normal))
	is.OK(f.Any(Trim | End))
	is.Equal(f.String(), "JUMP|TRIM")
	is.Equal(Normal.String(), "NORMAL")
}

func TestError(t *testing.T) {
	is := is.New(t)

	var err error = &Error{Op: "Registry.Read", Kind: KindIO, Path: "a.csv", Err: errors.New("boom")}
	is.Equal(err.Error(), "Registry.Read [io] a.csv: boom")
	is.OK(IsKind(err, KindIO))
	is.OK(!IsKind(err, KindFormat))
	is.OK(!IsKind(errors.New("plain"), KindIO))

	err = invalidArgument("Pattern.Op", "bad")
	is.Equal(err.Error(), "Pattern.Op [invalid argument]: bad")
}

func TestSetLogger(t *testing.T) {
	is := is.New(t)
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	p := New()
	p.AddStitchAbs(0, 0, End, true)
	is.OK(bytes.Contains(buf.Bytes(), []byte("placeholder threads added")))

	SetLogger(nil)
	buf.Reset()
	p.Reset()
	p.FixColorCount()
	is.Equal(buf.Len(), 0)
	is.OK(!Logger().Enabled(context.Background(), slog.LevelError))
}
