package htmldoc

import "fmt"

// ParseErrorKind discriminates parse failures.
type ParseErrorKind string

const (
	// ErrInvalidEncoding means the input is not decodable as UTF-8 text.
	ErrInvalidEncoding ParseErrorKind = "invalid_encoding"
	// ErrMalformed means tree construction itself failed. The tolerant
	// parser almost never produces this; it exists for completeness.
	ErrMalformed ParseErrorKind = "malformed"
)

// ParseError is fatal: the document cannot be turned into a tree.
// Line is 1-based when the failing position is known, 0 otherwise.
type ParseError struct {
	Kind ParseErrorKind
	Line int
	Err  error
}

func (pe *ParseError) Error() string {
	if pe.Line > 0 {
		return fmt.Sprintf("parse error (%s) at line %d: %v", pe.Kind, pe.Line, pe.Err)
	}
	return fmt.Sprintf("parse error (%s): %v", pe.Kind, pe.Err)
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}
