package formats

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrIO        = errors.New("io error")
	ErrParse     = errors.New("parse error")
	ErrReference = errors.New("reference error")
	ErrDecode    = errors.New("decode error")
)

// ParseError reports a field token that could not be converted.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return "parse error: " + e.Reason
	}
	return fmt.Sprintf("parse error: %q: %s", e.Token, e.Reason)
}

// Unwrap lets errors.Is(err, ErrParse) match.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// LineError attaches the file position and line content to a failure.
type LineError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d: %v (line %q)", path, e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func parseErrorf(token, format string, args ...any) error {
	return &ParseError{Token: token, Reason: fmt.Sprintf(format, args...)}
}
