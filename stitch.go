package embroidery

import "strings"

// StitchFlag describes the move type of a stitch and carries the
// structural Stop and End markers.
type StitchFlag int

// Normal is the zero value: a plain needle penetration.
const (
	Normal StitchFlag = 0
	Jump   StitchFlag = 1 << (iota - 1)
	Trim
	Stop
	End
)

// Has reports whether all bits of f2 are set in f.
func (f StitchFlag) Has(f2 StitchFlag) bool {
	return f2 != Normal && f&f2 == f2
}

// Any reports whether at least one bit of f2 is set in f.
func (f StitchFlag) Any(f2 StitchFlag) bool {
	return f&f2 != 0
}

func (f StitchFlag) String() string {
	if f == Normal {
		return "NORMAL"
	}
	var parts []string
	for _, n := range []struct {
		flag StitchFlag
		name string
	}{{Jump, "JUMP"}, {Trim, "TRIM"}, {Stop, "STOP"}, {End, "END"}} {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Stitch is one entry of the stitch timeline. Color is an index into the
// pattern's thread list.
type Stitch struct {
	X, Y  float64
	Flags StitchFlag
	Color int
}

// Point returns the stitch position.
func (s Stitch) Point() Point { return Point{X: s.X, Y: s.Y} }

// Thread is one entry of the thread palette. A zero CatalogNumber and an
// empty Description mean the value is unknown.
type Thread struct {
	Color         Color
	Description   string
	CatalogNumber int
}
