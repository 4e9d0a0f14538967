package embroidery

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatForFile(t *testing.T) {
	tests := []struct {
		Name string
		Want Format
	}{
		{"design.csv", FormatCSV},
		{"DESIGN.SVG", FormatSVG},
		{"dir.d/colors.Col", FormatCOL},
		{"a.edr", FormatEDR},
		{"a.rgb", FormatRGB},
		{"a.inf", FormatINF},
		{"a.dst", FormatUnknown},
		{"noext", FormatUnknown},
	}
	for _, test := range tests {
		require.Equal(t, test.Want, FormatForFile(test.Name), test.Name)
	}
	require.Equal(t, "CSV", FormatCSV.String())
	require.Equal(t, ".inf", FormatINF.Extension())
	require.Equal(t, "unknown", FormatUnknown.String())
}

func TestUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "design.xyz")

	_, err := Read(name)
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.True(t, IsKind(err, KindFormat))

	err = New().Write(name)
	require.ErrorIs(t, err, ErrUnknownFormat)
	_, statErr := os.Stat(name)
	require.True(t, os.IsNotExist(statErr))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.True(t, IsKind(err, KindIO))
}

func testThreads() []Thread {
	return []Thread{
		{Color: Color{R: 255, G: 0, B: 0}, Description: "Red", CatalogNumber: 1800},
		{Color: Color{R: 0, G: 128, B: 255}, Description: "Sky"},
		{Color: Color{R: 1, G: 2, B: 3}},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	p := New()
	for _, th := range testThreads() {
		p.AddThread(th)
	}
	p.AddStitchAbs(0, 0, Normal, true)
	p.AddStitchAbs(1.5, -2.25, Jump, true)
	p.AddStitchAbs(3, 4, Trim, true)
	p.AddStitchAbs(3, 4, Stop, true)
	p.AddStitchAbs(5, 6, Normal, true)
	p.AddStitchAbs(5, 6, Stop, true)
	p.AddStitchAbs(7, 8, Normal, true)
	p.AddStitchAbs(7, 8, End, true)

	name := filepath.Join(t.TempDir(), "design.csv")
	require.NoError(t, p.Write(name))

	q, err := Read(name)
	require.NoError(t, err)
	require.Equal(t, p.Threads().All(), q.Threads().All())
	require.Equal(t, p.Stitches().All(), q.Stitches().All())
	require.Equal(t, Point{7, 8}, q.LastPosition())
}

func TestCSVRead(t *testing.T) {
	src := strings.Join([]string{
		`"#","[VAR_NAME]","[VAR_VALUE]"`,
		`">","STITCH_COUNT:","3"`,
		`"$","1","10","20","30","Thread, with comma","77"`,
		`"*","STITCH","1","2"`,
		`"*","JUMP","3","4"`,
		`"*","END","3","4"`,
	}, "\n")
	p := New()
	require.NoError(t, csvFormat{}.Read(p, strings.NewReader(src)))
	require.Equal(t, []Thread{{Color: Color{R: 10, G: 20, B: 30}, Description: "Thread, with comma", CatalogNumber: 77}}, p.Threads().All())
	require.Equal(t, []StitchFlag{Normal, Jump, End}, stitchFlags(p))
}

func TestCSVReadErrors(t *testing.T) {
	for _, src := range []string{
		`"*","WOBBLE","1","2"`,
		`"*","STITCH","1"`,
		`"*","STITCH","x","2"`,
		`"$","1","300","0","0"`,
		`"$","1","0"`,
	} {
		err := csvFormat{}.Read(New(), strings.NewReader(src))
		require.Error(t, err, src)
	}
}

func TestColorFileRoundTrip(t *testing.T) {
	for _, ext := range []string{".col", ".edr", ".rgb", ".inf"} {
		p := New()
		for _, th := range testThreads() {
			p.AddThread(th)
		}
		name := filepath.Join(t.TempDir(), "colors"+ext)
		require.NoError(t, p.Write(name), ext)

		q, err := Read(name)
		require.NoError(t, err, ext)
		require.Equal(t, p.Threads().Len(), q.Threads().Len(), ext)
		for i, want := range p.Threads().All() {
			require.Equal(t, want.Color, q.Threads().At(i).Color, ext)
		}
	}
}

func TestINFKeepsNames(t *testing.T) {
	p := New()
	for _, th := range testThreads() {
		p.AddThread(th)
	}
	var buf bytes.Buffer
	require.NoError(t, infFormat{}.Write(p, &buf))

	data := buf.Bytes()
	require.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 8}, data[:8])
	require.Equal(t, byte(len(data)), data[11])
	require.Equal(t, byte(3), data[15])

	q := New()
	require.NoError(t, infFormat{}.Read(q, bytes.NewReader(data)))
	require.Equal(t, "Red", q.Threads().At(0).Description)
	require.Equal(t, "Sky", q.Threads().At(1).Description)
	require.Equal(t, "RA ACS 2", q.Threads().At(2).Description)
}

func TestColorFileReadErrors(t *testing.T) {
	tests := []struct {
		Description string
		Format      ReaderWriter
		Data        string
	}{
		{"col count mismatch", colFormat{}, "2\r\n0,1,2,3\r\n"},
		{"col bad line", colFormat{}, "1\r\n0,1,2\r\n"},
		{"col empty", colFormat{}, ""},
		{"rgb odd length", rgbaColorFormat{}, "\x01\x02\x03"},
		{"inf short header", infFormat{}, "\x00\x00\x00\x01"},
		{"inf truncated record", infFormat{}, "\x00\x00\x00\x01\x00\x00\x00\x08\x00\x00\x00\x14\x00\x00\x00\x01\x00\x20\x00"},
	}
	for _, test := range tests {
		err := test.Format.Read(New(), strings.NewReader(test.Data))
		require.Error(t, err, test.Description)
	}
}

func TestSVGFileRoundTrip(t *testing.T) {
	p := New()
	p.AddCircleObject(10, -10, 2)
	p.AddLineObject(1, -1, 5, -6)

	name := filepath.Join(t.TempDir(), "shapes.svg")
	require.NoError(t, p.Write(name))

	q, err := Read(name)
	require.NoError(t, err)
	require.Equal(t, p.Circles().All()[0].Circle, q.Circles().All()[0].Circle)
	require.Equal(t, p.Lines().All()[0].Line, q.Lines().All()[0].Line)
}

func TestLoadExternalColorFile(t *testing.T) {
	dir := t.TempDir()
	design := filepath.Join(dir, "design.csv")

	p := New()
	require.False(t, p.LoadExternalColorFile(design))
	require.Equal(t, 0, p.Threads().Len())

	// .rgb is probed before .col
	require.NoError(t, os.WriteFile(filepath.Join(dir, "design.col"), []byte("1\r\n0,9,9,9\r\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "design.rgb"), []byte{1, 2, 3, 0, 4, 5, 6, 0}, 0o644))

	p.AddThread(Thread{Color: Color{R: 100}})
	require.True(t, p.LoadExternalColorFile(design))
	require.Equal(t, []Thread{
		{Color: Color{R: 100}},
		{Color: Color{R: 1, G: 2, B: 3}},
		{Color: Color{R: 4, G: 5, B: 6}},
	}, p.Threads().All())
}

func TestLoadExternalColorFileSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "design.edr"), []byte{1, 2}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "design.col"), []byte("1\r\n0,9,9,9\r\n"), 0o644))

	p := New()
	require.True(t, p.LoadExternalColorFile(filepath.Join(dir, "design.dst")))
	require.Equal(t, []Thread{{Color: Color{R: 9, G: 9, B: 9}}}, p.Threads().All())
}

func TestRegistryOverride(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("a.csv")
	require.ErrorIs(t, err, ErrUnknownFormat)

	r.Register(FormatCSV, colFormat{})
	rw, err := r.Lookup("A.CSV")
	require.NoError(t, err)
	require.Equal(t, colFormat{}, rw)
}

func TestINFRejectsImpossibleThreadCount(t *testing.T) {
	header := []byte{0, 0, 0, 1, 0, 0, 0, 8, 0, 0, 0, 16, 0x7f, 0xff, 0xff, 0xff}
	err := infFormat{}.Read(New(), bytes.NewReader(header))
	require.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "design.inf"), header, 0o644))
	p := New()
	require.False(t, p.LoadExternalColorFile(filepath.Join(dir, "design.csv")))
	require.Equal(t, 0, p.Threads().Len())
}
