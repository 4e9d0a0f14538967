package embroidery

import "fmt"

// StitchesToPolylines derives polyline objects from the stitch timeline and
// makes them the pattern's polyline list. Every Stop or Trim stitch ends a
// polyline without being part of it; Jump and End stitches contribute no
// point. Each polyline takes the color of the thread of its first stitch.
// Runs without any point produce no polyline. The stitch timeline is left
// untouched.
func (p *Pattern) StitchesToPolylines() error {
	polys, err := p.stitchPolylines()
	if err != nil {
		return err
	}
	p.polylines.replace(polys)
	return nil
}

// stitchPolylines computes the polylines of StitchesToPolylines without
// storing them.
func (p *Pattern) stitchPolylines() ([]*PolylineObject, error) {
	var (
		out   []*PolylineObject
		cur   *PolylineObject
		start = true
		color int
	)
	flush := func() error {
		if cur != nil && len(cur.Points) > 0 {
			if color < 0 || color >= p.threads.Len() {
				return &Error{
					Op:   "Pattern.StitchesToPolylines",
					Kind: KindInvalidArgument,
					Err:  fmt.Errorf("%w: %d", ErrNoThread, color),
				}
			}
			cur.Color = p.threads.At(color).Color
			out = append(out, cur)
		}
		cur = nil
		start = true
		return nil
	}

	for _, s := range p.stitches.All() {
		if s.Flags.Any(Stop | Trim) {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if start {
			color = s.Color
			start = false
		}
		if s.Flags.Any(Jump | End) {
			continue
		}
		if cur == nil {
			cur = &PolylineObject{LineType: 1}
		}
		cur.Points = append(cur.Points, s.Point())
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// PolylinesToStitches appends the polyline list to the stitch timeline.
// Each polyline registers a thread for its color and is stitched with
// Normal stitches in that color. Every polyline after the first is
// preceded by a Trim and a Stop at its own first point. The timeline is
// closed with an End stitch. The polyline list is left untouched; without
// polylines nothing happens.
func (p *Pattern) PolylinesToStitches() {
	if p.polylines.Empty() {
		return
	}
	separate := false
	for _, poly := range p.polylines.All() {
		index := p.threads.Len()
		p.AddThread(Thread{Color: poly.Color})
		if len(poly.Points) == 0 {
			continue
		}
		first := poly.Points[0]
		if separate {
			p.AddStitchAbs(first.X, first.Y, Trim, false)
			p.AddStitchAbs(first.X, first.Y, Stop, false)
		}
		separate = true
		p.ChangeColor(index)
		for _, pt := range poly.Points {
			p.AddStitchAbs(pt.X, pt.Y, Normal, true)
		}
	}
	p.AddStitchRel(0, 0, End, true)
}
