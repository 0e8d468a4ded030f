// Package formats provides parsers for the Wavefront OBJ and MTL text
// formats. Parsers return raw file content; validation against mesh
// invariants happens in the loader.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"strconv"
	"strings"
)

// Parse errors. They are wrapped in a *ParseError carrying the location.
var (
	ErrFieldCount      = errors.New("unexpected field count")
	ErrMalformedNumber = errors.New("malformed numeric literal")
	ErrFaceArity       = errors.New("face must have exactly 3 vertices")
	ErrLineTooLong     = errors.New("line too long")
)

// maxLineSize is the longest line the parsers accept.
const maxLineSize = 1024 * 1024

// ParseError reports a malformed directive line.
type ParseError struct {
	File      string // Source name, empty for anonymous streams
	Line      int    // 1-based line number
	Directive string // Directive keyword, e.g. "v" or "f"
	Err       error
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Directive != "" {
		msg = e.Directive + ": " + msg
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseFloats(fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil || gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q", ErrMalformedNumber, f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// newScanner returns a line scanner limited to maxLineSize.
func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// scanError converts a scanner failure. An overlong line is reported as a
// ParseError on the line that follows the last one read.
func scanError(err error, name string, lineNo int, what string) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return &ParseError{
			File: name,
			Line: lineNo + 1,
			Err:  fmt.Errorf("%w: exceeds %d bytes", ErrLineTooLong, maxLineSize),
		}
	}
	return fmt.Errorf("reading %s: %w", what, err)
}
