package combinator

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Messages emitted by the primitive and derived combinators.
const (
	MsgUnexpectedEOF  = "unexpected end-of-file"
	MsgUnexpectedChar = "unexpected character: '%s'"
)

// ParseError is a single positioned failure message.
// Index is a byte offset into the parsed text.
type ParseError struct {
	Message string
	Index   int
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Index)
}

// ErrorList is the ordered list of failures carried by a failed Result.
type ErrorList []ParseError

// Err folds the list into a single error, or nil when the list is empty.
func (l ErrorList) Err() error {
	var merr *multierror.Error
	for _, e := range l {
		merr = multierror.Append(merr, e)
	}
	return merr.ErrorOrNil()
}

// Messages returns the message of every entry, in order.
func (l ErrorList) Messages() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Message
	}
	return out
}

// Result is the outcome of running a Parser at a position.
//
// On success Value holds the parsed value and Index the position right after
// the consumed input. On failure Errors lists what went wrong; it is empty only
// for results produced by Fail.
type Result[T any] struct {
	OK     bool
	Value  T
	Index  int
	Errors ErrorList
}

// Success builds a successful result.
func Success[T any](value T, index int) Result[T] {
	return Result[T]{OK: true, Value: value, Index: index}
}

// Failure builds a failed result carrying errs.
func Failure[T any](errs ...ParseError) Result[T] {
	return Result[T]{Errors: ErrorList(errs)}
}

// failWith converts a failure of one value type into another.
func failWith[T, K any](r Result[T]) Result[K] {
	return Result[K]{Errors: r.Errors}
}
