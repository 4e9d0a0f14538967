package embroidery

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// csvFormat is the human readable embroidery CSV layout. The first field
// of every record selects its kind:
//
//	#  comment
//	>  variable (STITCH_COUNT:, THREAD_COUNT:, EXTENTS_...:)
//	$  thread: number, red, green, blue, description, catalog number
//	*  stitch: STITCH, JUMP, TRIM, COLOR or END, then x and y
type csvFormat struct{}

var csvStitchNames = []struct {
	flag StitchFlag
	name string
}{
	{End, "END"},
	{Stop, "COLOR"},
	{Trim, "TRIM"},
	{Jump, "JUMP"},
}

func csvStitchName(f StitchFlag) string {
	for _, n := range csvStitchNames {
		if f.Has(n.flag) {
			return n.name
		}
	}
	return "STITCH"
}

func csvStitchFlag(name string) (StitchFlag, bool) {
	if name == "STITCH" {
		return Normal, true
	}
	for _, n := range csvStitchNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return Normal, false
}

func (csvFormat) Read(p *Pattern, r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(rec) == 0 {
			continue
		}
		switch rec[0] {
		case "$":
			t, err := csvThread(rec)
			if err != nil {
				return fmt.Errorf("csv line %d: %w", line, err)
			}
			p.AddThread(t)
		case "*":
			if len(rec) < 4 {
				return fmt.Errorf("csv line %d: stitch record needs 4 fields", line)
			}
			flags, ok := csvStitchFlag(rec[1])
			if !ok {
				return fmt.Errorf("csv line %d: unknown stitch type %q", line, rec[1])
			}
			x, err := strconv.ParseFloat(rec[2], 64)
			if err != nil {
				return fmt.Errorf("csv line %d: %w", line, err)
			}
			y, err := strconv.ParseFloat(rec[3], 64)
			if err != nil {
				return fmt.Errorf("csv line %d: %w", line, err)
			}
			p.AddStitchAbs(x, y, flags, true)
		default:
			// comments, variables and unknown records carry nothing to load
		}
	}
}

func csvThread(rec []string) (Thread, error) {
	if len(rec) < 5 {
		return Thread{}, errors.New("thread record needs at least 5 fields")
	}
	var rgb [3]uint8
	for i, f := range rec[2:5] {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return Thread{}, fmt.Errorf("invalid color component %q: %w", f, err)
		}
		rgb[i] = uint8(v)
	}
	t := Thread{Color: Color{R: rgb[0], G: rgb[1], B: rgb[2]}}
	if len(rec) > 5 {
		t.Description = rec[5]
	}
	if len(rec) > 6 && rec[6] != "" {
		n, err := strconv.Atoi(rec[6])
		if err != nil {
			return Thread{}, fmt.Errorf("invalid catalog number %q: %w", rec[6], err)
		}
		t.CatalogNumber = n
	}
	return t, nil
}

func (csvFormat) Write(p *Pattern, w io.Writer) error {
	cw := csv.NewWriter(w)
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	bb := p.CalcBoundingBox()
	records := [][]string{
		{"#", "[VAR_NAME]", "[VAR_VALUE]"},
		{">", "STITCH_COUNT:", strconv.Itoa(p.stitches.Len())},
		{">", "THREAD_COUNT:", strconv.Itoa(p.threads.Len())},
		{">", "EXTENTS_LEFT:", num(bb.Left)},
		{">", "EXTENTS_TOP:", num(bb.Top)},
		{">", "EXTENTS_RIGHT:", num(bb.Right)},
		{">", "EXTENTS_BOTTOM:", num(bb.Bottom)},
		{">", "EXTENTS_WIDTH:", num(bb.Width())},
		{">", "EXTENTS_HEIGHT:", num(bb.Height())},
		{"#", "[THREAD_NUMBER]", "[RED]", "[GREEN]", "[BLUE]", "[DESCRIPTION]", "[CATALOG_NUMBER]"},
	}
	for i, t := range p.threads.All() {
		catalog := ""
		if t.CatalogNumber != 0 {
			catalog = strconv.Itoa(t.CatalogNumber)
		}
		records = append(records, []string{
			"$", strconv.Itoa(i + 1),
			strconv.Itoa(int(t.Color.R)), strconv.Itoa(int(t.Color.G)), strconv.Itoa(int(t.Color.B)),
			t.Description, catalog,
		})
	}
	records = append(records, []string{"#", "[STITCH_TYPE]", "[X]", "[Y]"})
	for _, s := range p.stitches.All() {
		records = append(records, []string{"*", csvStitchName(s.Flags), num(s.X), num(s.Y)})
	}
	return cw.WriteAll(records)
}
