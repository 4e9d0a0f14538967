package embroidery

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a file format by its extension.
type Format int

// Known formats.
const (
	FormatUnknown Format = iota
	FormatCSV
	FormatSVG
	FormatCOL
	FormatEDR
	FormatRGB
	FormatINF
)

var formatExtensions = map[Format]string{
	FormatCSV: ".csv",
	FormatSVG: ".svg",
	FormatCOL: ".col",
	FormatEDR: ".edr",
	FormatRGB: ".rgb",
	FormatINF: ".inf",
}

// Extension returns the file extension of the format, dot included.
func (f Format) Extension() string {
	return formatExtensions[f]
}

func (f Format) String() string {
	if ext, ok := formatExtensions[f]; ok {
		return strings.ToUpper(ext[1:])
	}
	return "unknown"
}

// FormatForFile picks the format from the extension of fileName. Case is
// ignored.
func FormatForFile(fileName string) Format {
	ext := strings.ToLower(filepath.Ext(fileName))
	for f, e := range formatExtensions {
		if e == ext {
			return f
		}
	}
	return FormatUnknown
}

// ReaderWriter translates one file format into or out of a Pattern. Read
// adds what it decodes to p; Write must not modify p.
type ReaderWriter interface {
	Read(p *Pattern, r io.Reader) error
	Write(p *Pattern, w io.Writer) error
}

// Registry maps formats to their ReaderWriter.
type Registry struct {
	formats map[Format]ReaderWriter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[Format]ReaderWriter)}
}

// DefaultRegistry holds every format implemented by this package. It is
// populated once at init.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(FormatCSV, csvFormat{})
	DefaultRegistry.Register(FormatSVG, svgFormat{})
	DefaultRegistry.Register(FormatCOL, colFormat{})
	DefaultRegistry.Register(FormatEDR, rgbaColorFormat{})
	DefaultRegistry.Register(FormatRGB, rgbaColorFormat{})
	DefaultRegistry.Register(FormatINF, infFormat{})
}

// Register installs rw for format f, replacing any previous entry.
func (r *Registry) Register(f Format, rw ReaderWriter) {
	r.formats[f] = rw
}

// Lookup returns the ReaderWriter for the extension of fileName.
func (r *Registry) Lookup(fileName string) (ReaderWriter, error) {
	rw, ok := r.formats[FormatForFile(fileName)]
	if !ok {
		return nil, &Error{Op: "Registry.Lookup", Kind: KindFormat, Path: fileName, Err: ErrUnknownFormat}
	}
	return rw, nil
}

// Read decodes fileName into a new pattern. Nothing is returned unless the
// whole file was read.
func (r *Registry) Read(fileName string) (*Pattern, error) {
	const op = "Registry.Read"
	rw, err := r.Lookup(fileName)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindIO, Path: fileName, Err: err}
	}
	defer f.Close()

	p := New()
	if err := rw.Read(p, f); err != nil {
		return nil, wrapFormat(op, fileName, err)
	}
	return p, nil
}

// Write encodes p into fileName. A partially written file is removed.
func (r *Registry) Write(p *Pattern, fileName string) error {
	const op = "Registry.Write"
	rw, err := r.Lookup(fileName)
	if err != nil {
		return err
	}
	f, err := os.Create(fileName)
	if err != nil {
		return &Error{Op: op, Kind: KindIO, Path: fileName, Err: err}
	}
	if err := rw.Write(p, f); err != nil {
		f.Close()
		os.Remove(fileName)
		return wrapFormat(op, fileName, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fileName)
		return &Error{Op: op, Kind: KindIO, Path: fileName, Err: err}
	}
	return nil
}

// colorFileExtensions are probed in order by LoadExternalColorFile.
var colorFileExtensions = []string{".edr", ".rgb", ".col", ".inf"}

// LoadExternalColorFile looks for a color file next to fileName, trying the
// extensions .edr, .rgb, .col and .inf in that order, and appends the
// threads of the first one that reads successfully to p. It reports
// whether a file was loaded; finding none is not an error.
func (r *Registry) LoadExternalColorFile(p *Pattern, fileName string) bool {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	for _, ext := range colorFileExtensions {
		candidate := base + ext
		colors, err := r.Read(candidate)
		if err != nil {
			Logger().Debug("embroidery: color file skipped", "file", candidate, "err", err)
			continue
		}
		p.threads.Append(colors.threads.All()...)
		Logger().Debug("embroidery: color file loaded", "file", candidate, "threads", colors.threads.Len())
		return true
	}
	return false
}

// Read decodes fileName into a new pattern using DefaultRegistry.
func Read(fileName string) (*Pattern, error) {
	return DefaultRegistry.Read(fileName)
}

// Write encodes the pattern into fileName using DefaultRegistry.
func (p *Pattern) Write(fileName string) error {
	return DefaultRegistry.Write(p, fileName)
}

// LoadExternalColorFile loads threads from a color file next to fileName
// using DefaultRegistry.
func (p *Pattern) LoadExternalColorFile(fileName string) bool {
	return DefaultRegistry.LoadExternalColorFile(p, fileName)
}

func wrapFormat(op, path string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Path == "" {
			e.Path = path
		}
		return e
	}
	return &Error{Op: op, Kind: KindFormat, Path: path, Err: err}
}
