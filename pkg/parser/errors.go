package parser

import "github.com/sandrolain/golambda/pkg/combinator"

// Error is returned when source fails to parse. It carries every failure
// message collected by the grammar, in the order the grammar produced them.
type Error struct {
	Source string
	Errors combinator.ErrorList
}

func newError(source string, errs combinator.ErrorList) *Error {
	return &Error{
		Source: source,
		Errors: errs,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if err := e.Errors.Err(); err != nil {
		return err.Error()
	}
	return "parse failed"
}

// Unwrap returns the failures folded into a single error, so errors.As can
// reach an individual combinator.ParseError.
func (e *Error) Unwrap() error {
	return e.Errors.Err()
}

// Offset returns the position of the first failure, or -1 if there is none.
func (e *Error) Offset() int {
	if len(e.Errors) == 0 {
		return -1
	}
	return e.Errors[0].Index
}

// Furthest returns the largest offset among the failures, or -1 if there is
// none. It is usually the point the parser got furthest before giving up.
func (e *Error) Furthest() int {
	furthest := -1
	for _, pe := range e.Errors {
		if pe.Index > furthest {
			furthest = pe.Index
		}
	}
	return furthest
}
