package embroidery

import (
	"fmt"
	"math"
)

// AddStitchAbs adds a stitch at the absolute position (x,y). Positive y is
// up. Units are in millimeters.
//
// An End stitch first repairs the thread palette with FixColorCount. A Stop
// stitch on an empty timeline is dropped, since a design cannot begin with
// a color change. With autoColor set, a Stop stitch advances the current
// color before it is built, so the Stop stitch and every later stitch get
// the new color.
func (p *Pattern) AddStitchAbs(x, y float64, flags StitchFlag, autoColor bool) {
	if flags.Has(End) {
		p.FixColorCount()
	}
	if flags.Has(Stop) && p.stitches.Empty() {
		return
	}

	if flags.Has(Stop) && autoColor {
		p.currentColor++
	}
	p.stitches.Append(Stitch{X: x, Y: y, Flags: flags, Color: p.currentColor})
	p.last = Point{X: x, Y: y}
}

// AddStitchRel adds a stitch at (dx,dy) relative to the previous stitch.
// On an empty timeline the start is assumed to be the origin.
func (p *Pattern) AddStitchRel(dx, dy float64, flags StitchFlag, autoColor bool) {
	x, y := dx, dy
	if !p.stitches.Empty() {
		x += p.last.X
		y += p.last.Y
	}
	p.AddStitchAbs(x, y, flags, autoColor)
}

// FixColorCount appends placeholder threads until every stitch color index
// refers to a thread. The palette always ends up with at least one thread
// and is never shrunk.
func (p *Pattern) FixColorCount() {
	maxColor := 0
	for _, s := range p.stitches.All() {
		if s.Color > maxColor {
			maxColor = s.Color
		}
	}
	added := 0
	for p.threads.Len() <= maxColor {
		p.threads.Append(placeholderThread(p.threads.Len()))
		added++
	}
	if added > 0 {
		Logger().Debug("embroidery: placeholder threads added", "count", added, "threads", p.threads.Len())
	}
}

// HideStitchesOverLength turns every stitch that moves more than length
// on either axis from its predecessor into a Trim. The first stitch is
// measured from the origin. Positions and order are unchanged.
func (p *Pattern) HideStitchesOverLength(length float64) error {
	if length < 0 || math.IsNaN(length) {
		return invalidArgument("Pattern.HideStitchesOverLength", "length must not be negative")
	}
	var prevX, prevY float64
	items := p.stitches.All()
	for i := range items {
		s := &items[i]
		if math.Abs(s.X-prevX) > length || math.Abs(s.Y-prevY) > length {
			// Normal is the zero flag.
			s.Flags |= Trim
		}
		prevX, prevY = s.X, s.Y
	}
	return nil
}

// maxInterpolated bounds the stitches a single CorrectForMaxStitchLength
// call may insert.
const maxInterpolated = 1 << 20

// CorrectForMaxStitchLength splits every move that exceeds the applicable
// maximum on either axis into evenly spaced stitches. maxJump applies when
// the later stitch of a pair is a Jump or Trim, maxStitch otherwise.
// Inserted stitches take the color and move flags of the later stitch; the
// Stop and End markers are not copied. Afterwards the timeline is closed
// with an End stitch if it is not already.
//
// The thresholds limit the movement per axis, not the euclidean length.
// Non-finite coordinates, or thresholds so small that more than
// maxInterpolated stitches would be inserted, are rejected before anything
// changes.
func (p *Pattern) CorrectForMaxStitchLength(maxStitch, maxJump float64) error {
	const op = "Pattern.CorrectForMaxStitchLength"
	if !(maxStitch > 0) || !(maxJump > 0) {
		return invalidArgument(op, "maximum lengths must be positive")
	}

	src := p.stitches.All()
	if len(src) > 1 {
		out := make([]Stitch, 0, len(src))
		out = append(out, src[0])
		inserted := 0
		for i := 1; i < len(src); i++ {
			prev, cur := src[i-1], src[i]
			dx := cur.X - prev.X
			dy := cur.Y - prev.Y

			limit := maxStitch
			if cur.Flags.Any(Jump | Trim) {
				limit = maxJump
			}
			maxXY := math.Max(math.Abs(dx), math.Abs(dy))
			if math.IsNaN(maxXY) || math.IsInf(maxXY, 0) {
				return invalidArgument(op, fmt.Sprintf("stitch %d has a non-finite move", i))
			}
			if maxXY > limit {
				n := math.Ceil(maxXY / limit)
				if n-1 > float64(maxInterpolated-inserted) {
					return invalidArgument(op, fmt.Sprintf("more than %d stitches would be inserted", maxInterpolated))
				}
				splits := int(n)
				addX := dx / float64(splits)
				addY := dy / float64(splits)
				flags := cur.Flags &^ (Stop | End)
				for j := 1; j < splits; j++ {
					out = append(out, Stitch{
						X:     prev.X + addX*float64(j),
						Y:     prev.Y + addY*float64(j),
						Flags: flags,
						Color: cur.Color,
					})
				}
				inserted += splits - 1
			}
			out = append(out, cur)
		}
		p.stitches.replace(out)
		if inserted > 0 {
			Logger().Debug("embroidery: stitches interpolated", "inserted", inserted, "stitches", len(out))
		}
	}

	if tail, ok := p.stitches.Last(); ok && !tail.Flags.Has(End) {
		p.AddStitchAbs(tail.X, tail.Y, End, true)
	}
	return nil
}

// CombineJumpStitches collapses every run of consecutive Jump stitches
// into the first stitch of the run, moved to the position of the stitch
// that follows the run. A run at the very end of the timeline has no such
// stitch; it collapses onto the position of its last jump instead, so the
// travel it describes is kept.
func (p *Pattern) CombineJumpStitches() {
	src := p.stitches.All()
	out := make([]Stitch, 0, len(src))
	for i := 0; i < len(src); {
		if !src[i].Flags.Has(Jump) {
			out = append(out, src[i])
			i++
			continue
		}
		j := i
		for j < len(src) && src[j].Flags.Has(Jump) {
			j++
		}
		first := src[i]
		anchor := src[len(src)-1]
		if j < len(src) {
			anchor = src[j]
		}
		first.X, first.Y = anchor.X, anchor.Y
		out = append(out, first)
		i = j
	}
	p.stitches.replace(out)
	p.syncLast()
}

// Normalize applies the pattern settings: jumps are combined when
// CombineJumps is set, long moves are split when the maximum lengths are
// set, and stitches over HideStitchesOverLength become trims. Invalid
// settings are rejected before anything changes.
func (p *Pattern) Normalize() error {
	s := p.Settings
	if err := s.Validate(); err != nil {
		Logger().Warn("embroidery: settings rejected", "err", err)
		return err
	}
	if s.CombineJumps {
		p.CombineJumpStitches()
	}
	if s.MaxStitchLength > 0 {
		if err := p.CorrectForMaxStitchLength(s.MaxStitchLength, s.MaxJumpLength); err != nil {
			return err
		}
	}
	if s.HideStitchesOverLength > 0 {
		if err := p.HideStitchesOverLength(s.HideStitchesOverLength); err != nil {
			return err
		}
	}
	return nil
}
