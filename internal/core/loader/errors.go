package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the dictionary file does not exist.
	ErrFileNotFound = errors.New("dictionary file not found")
	// ErrLiteralNotLocated is returned when no exported object literal is found.
	ErrLiteralNotLocated = errors.New("dictionary object literal not found")
	// ErrParseFailure is returned when the located literal is not valid data.
	ErrParseFailure = errors.New("dictionary literal is not valid data")
)

// ParseError describes where the literal stopped being valid data. Line and
// Col are 1-based positions in the source file. It unwraps to
// ErrParseFailure.
type ParseError struct {
	Offset int
	Line   int
	Col    int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d, col %d: %s", ErrParseFailure, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s: %s", ErrParseFailure, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

func parseErrorf(offset int, format string, args ...any) *ParseError {
	return &ParseError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
