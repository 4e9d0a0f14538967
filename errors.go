package embroidery

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidArgument indicates a missing or out of range argument.
	KindInvalidArgument
	// KindFormat indicates a file that could not be parsed or produced.
	KindFormat
	// KindIO indicates a failure opening, reading or writing a file.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

var (
	// ErrUnknownFormat is returned when no reader or writer is registered
	// for a file extension.
	ErrUnknownFormat = errors.New("unknown file format")
	// ErrNoThread is returned when a stitch refers to a thread that does
	// not exist.
	ErrNoThread = errors.New("color index has no thread")
)

// Error is the structured error returned by fallible pattern operations.
// An operation that returns an Error has not modified the pattern.
type Error struct {
	// Op is the operation that failed (e.g., "Pattern.AddPolygonObject").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Path is the file involved, if any.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] %s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func invalidArgument(op, msg string) error {
	return &Error{Op: op, Kind: KindInvalidArgument, Err: errors.New(msg)}
}
