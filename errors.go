package glterm

import (
	"errors"
	"strconv"
)

type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindEndOfInput
	KindUnterminated
	KindNumberRange
	KindTrailingInput
)

var errorKindNames = [...]string{
	KindGeneric:       "generic",
	KindEndOfInput:    "end of input",
	KindUnterminated:  "unterminated",
	KindNumberRange:   "number range",
	KindTrailingInput: "trailing input",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return errorKindNames[k]
}

// ParseError is the only error type returned by parsers in this package.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, msg string) *ParseError {
	return &ParseError{Kind: kind, Message: msg}
}

// Generic returns a KindGeneric ParseError carrying msg.
func Generic(msg string) *ParseError {
	return newError(KindGeneric, msg)
}

// IsKind reports whether err is, or wraps, a ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Kind == kind
}
