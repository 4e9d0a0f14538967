package embroidery

import (
	"fmt"
	"strconv"

	gl "github.com/rustyoz/genericlexer"
)

type pathDataParser struct {
	lex    *gl.Lexer
	x, y   float64
	startX float64
	startY float64
	path   *PathObject
}

// ParsePathData interprets SVG path data (the d attribute) into a
// PathObject with absolute coordinates. The commands M, L, H, V, C and Z
// are understood in both their absolute and relative forms.
func ParsePathData(d string) (*PathObject, error) {
	l, release := lex("path", d)
	defer release()
	pdp := &pathDataParser{lex: l, path: &PathObject{}}
	for {
		i := pdp.lex.NextItem()
		switch {
		case i.Type == gl.ItemError:
			return nil, &Error{Op: "ParsePathData", Kind: KindFormat, Err: fmt.Errorf("lexing %q: %s", d, i.Value)}
		case i.Type == gl.ItemEOS:
			return pdp.path, nil
		case i.Type == gl.ItemLetter:
			if err := pdp.parseCommand(i); err != nil {
				return nil, &Error{Op: "ParsePathData", Kind: KindFormat, Err: err}
			}
		default:
		}
	}
}

func (pdp *pathDataParser) parseCommand(i gl.Item) error {
	switch i.Value {
	case "M":
		return pdp.parseMoveTo(false)
	case "m":
		return pdp.parseMoveTo(true)
	case "L":
		return pdp.parseLineTo(false)
	case "l":
		return pdp.parseLineTo(true)
	case "H":
		return pdp.parseHLineTo(false)
	case "h":
		return pdp.parseHLineTo(true)
	case "V":
		return pdp.parseVLineTo(false)
	case "v":
		return pdp.parseVLineTo(true)
	case "C":
		return pdp.parseCurveTo(false)
	case "c":
		return pdp.parseCurveTo(true)
	case "z", "Z":
		return pdp.parseClose()
	}
	return fmt.Errorf("unsupported path command %q", i.Value)
}

func (pdp *pathDataParser) emit(kind PathCommandKind, pts ...Point) {
	pdp.path.Commands = append(pdp.path.Commands, PathCommand{Kind: kind, Points: pts})
}

// moveBy resolves (x,y) against the current point when rel is set and
// makes it the new current point.
func (pdp *pathDataParser) moveBy(x, y float64, rel bool) Point {
	if rel {
		x += pdp.x
		y += pdp.y
	}
	pdp.x, pdp.y = x, y
	return Point{X: x, Y: y}
}

func (pdp *pathDataParser) parseMoveTo(rel bool) error {
	ns, err := pdp.numbers(2, "MoveTo")
	if err != nil {
		return err
	}
	p := pdp.moveBy(ns[0], ns[1], rel)
	pdp.startX, pdp.startY = p.X, p.Y
	pdp.emit(MoveTo, p)

	// further pairs are implicit line-to commands
	for j := 2; j < len(ns); j += 2 {
		pdp.emit(LineTo, pdp.moveBy(ns[j], ns[j+1], rel))
	}
	return nil
}

func (pdp *pathDataParser) parseLineTo(rel bool) error {
	ns, err := pdp.numbers(2, "LineTo")
	if err != nil {
		return err
	}
	for j := 0; j < len(ns); j += 2 {
		pdp.emit(LineTo, pdp.moveBy(ns[j], ns[j+1], rel))
	}
	return nil
}

func (pdp *pathDataParser) parseHLineTo(rel bool) error {
	ns, err := pdp.numbers(1, "HLineTo")
	if err != nil {
		return err
	}
	for _, n := range ns {
		if rel {
			n += pdp.x
		}
		pdp.emit(LineTo, pdp.moveBy(n, pdp.y, false))
	}
	return nil
}

func (pdp *pathDataParser) parseVLineTo(rel bool) error {
	ns, err := pdp.numbers(1, "VLineTo")
	if err != nil {
		return err
	}
	for _, n := range ns {
		if rel {
			n += pdp.y
		}
		pdp.emit(LineTo, pdp.moveBy(pdp.x, n, false))
	}
	return nil
}

func (pdp *pathDataParser) parseCurveTo(rel bool) error {
	ns, err := pdp.numbers(6, "CurveTo")
	if err != nil {
		return err
	}
	for j := 0; j < len(ns); j += 6 {
		ox, oy := 0.0, 0.0
		if rel {
			ox, oy = pdp.x, pdp.y
		}
		c1 := Point{X: ox + ns[j], Y: oy + ns[j+1]}
		c2 := Point{X: ox + ns[j+2], Y: oy + ns[j+3]}
		end := pdp.moveBy(ox+ns[j+4], oy+ns[j+5], false)
		pdp.emit(CurveTo, c1, c2, end)
	}
	return nil
}

func (pdp *pathDataParser) parseClose() error {
	pdp.lex.ConsumeWhiteSpace()
	pdp.emit(Close)
	pdp.x, pdp.y = pdp.startX, pdp.startY
	return nil
}

// numbers reads every number up to the next command. The count must be a
// positive multiple of group.
func (pdp *pathDataParser) numbers(group int, command string) ([]float64, error) {
	ns, err := lexNumbers(pdp.lex)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", command, err)
	}
	if len(ns) == 0 || len(ns)%group != 0 {
		return nil, fmt.Errorf("error parsing %s: expected a multiple of %d numbers, got %d", command, group, len(ns))
	}
	return ns, nil
}

// lex starts a lexer over input. release consumes whatever the lexer has
// not delivered yet so its goroutine can finish; call it once done.
func lex(name, input string) (*gl.Lexer, func()) {
	l, items := gl.Lex(name, input)
	return l, func() {
		for range items {
		}
	}
}

func lexNumbers(l *gl.Lexer) ([]float64, error) {
	var ns []float64
	skipSeparators(l)
	for l.PeekItem().Type == gl.ItemNumber {
		n, err := parseNumber(l.NextItem())
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
		skipSeparators(l)
	}
	return ns, nil
}

func skipSeparators(l *gl.Lexer) {
	l.ConsumeWhiteSpace()
	l.ConsumeComma()
	l.ConsumeWhiteSpace()
}

func parseNumber(i gl.Item) (float64, error) {
	return strconv.ParseFloat(i.Value, 64)
}

// parsePoints reads a list of coordinate pairs such as the points
// attribute of an SVG polyline.
func parsePoints(s string) ([]Point, error) {
	l, release := lex("points", s)
	defer release()
	ns, err := lexNumbers(l)
	if err != nil {
		return nil, err
	}
	if len(ns)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in %q", s)
	}
	pts := make([]Point, 0, len(ns)/2)
	for j := 0; j < len(ns); j += 2 {
		pts = append(pts, Point{X: ns[j], Y: ns[j+1]})
	}
	return pts, nil
}
