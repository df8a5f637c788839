package tga

import (
	"errors"
	"io"
)

// ErrorKind classifies why a decode failed.
type ErrorKind int

// Error kinds, numbered as the LibTarga error codes.
const (
	None ErrorKind = iota
	BadHeader
	OpenFails
	BadFormat
	UnexpectedEOF
	NoDataImage
	ColormapForGray
	BadColorMapEntrySize
	BadColorMap
	ReadFails
	BadImageType
	BadDimensions
)

var errorMessages = [...]string{
	None:                 "no error",
	BadHeader:            "bad image header",
	OpenFails:            "cannot open file",
	BadFormat:            "bad format argument",
	UnexpectedEOF:        "unexpected end-of-file",
	NoDataImage:          "image contains no data",
	ColormapForGray:      "found colormap for a grayscale image",
	BadColorMapEntrySize: "unsupported colormap entry size",
	BadColorMap:          "bad colormap",
	ReadFails:            "cannot read from file",
	BadImageType:         "unknown image type",
	BadDimensions:        "image has size 0 width or height (or both)",
}

// ErrorMessage returns the human readable text for k.
func ErrorMessage(k ErrorKind) string {
	if k < 0 || int(k) >= len(errorMessages) {
		return "unknown error"
	}
	return errorMessages[k]
}

func (k ErrorKind) String() string {
	return ErrorMessage(k)
}

// Error is returned by every failing decode. Err optionally carries the
// underlying I/O error.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "tga: " + e.Kind.String() + ": " + e.Err.Error()
	}
	return "tga: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the sentinels
// below match regardless of any wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors for use with errors.Is. Failing calls return their own
// *Error, never one of these.
var (
	ErrBadHeader            = &Error{Kind: BadHeader}
	ErrOpenFails            = &Error{Kind: OpenFails}
	ErrBadFormat            = &Error{Kind: BadFormat}
	ErrUnexpectedEOF        = &Error{Kind: UnexpectedEOF}
	ErrNoDataImage          = &Error{Kind: NoDataImage}
	ErrColormapForGray      = &Error{Kind: ColormapForGray}
	ErrBadColorMapEntrySize = &Error{Kind: BadColorMapEntrySize}
	ErrBadColorMap          = &Error{Kind: BadColorMap}
	ErrReadFails            = &Error{Kind: ReadFails}
	ErrBadImageType         = &Error{Kind: BadImageType}
	ErrBadDimensions        = &Error{Kind: BadDimensions}
)

// KindOf returns the kind of err. A nil error is None and any error not
// produced by this package is ReadFails.
func KindOf(err error) ErrorKind {
	if err == nil {
		return None
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ReadFails
}

// readError maps a failed read to kind when the stream ended early and to
// ReadFails otherwise.
func readError(err error, kind ErrorKind) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &Error{Kind: kind}
	}
	return &Error{Kind: ReadFails, Err: err}
}
