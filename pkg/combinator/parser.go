// Package combinator implements a small generic parser-combinator core.
//
// A Parser is an immutable value wrapping a pure function from
// (text, position) to a Result. Parsers are built once and reused for every
// parse call; composing two parsers never mutates either of them.
//
// # Building blocks
//
// The core operations are:
//   - FlatMap: sequencing, threading the position of the first parse into the next
//   - Parser.Union: ordered choice with backtracking, merging errors on double failure
//   - Parser.FlatMapErrors: error-driven recovery from the original position
//
// On top of the primitives (Increment, Value, Error, Fail) the package provides
// Match, Word, Repeat, Join and Lazy.
//
// # Example
//
//	digit := combinator.Match(unicode.IsDigit)
//	number := combinator.Map(combinator.Repeat(digit, 1), func(ds []string) string {
//	    return strings.Join(ds, "")
//	})
//	res := number.Parse("42abc", 0) // res.Value == "42", res.Index == 2
//
// # Positions
//
// Positions are byte offsets into the UTF-8 text. One character is one
// Unicode code point.
//
// There is no cut operator and no memoization: alternatives that share a
// prefix re-parse it.
package combinator

import "unicode/utf8"

// ParseFunc is the function wrapped by a Parser.
type ParseFunc[T any] func(text string, index int) Result[T]

// Parser parses a value of type T from text starting at a position.
type Parser[T any] struct {
	fn ParseFunc[T]
}

// New wraps fn into a Parser.
func New[T any](fn ParseFunc[T]) Parser[T] {
	return Parser[T]{fn: fn}
}

// Parse runs the parser on text starting at index.
func (p Parser[T]) Parse(text string, index int) Result[T] {
	return p.fn(text, index)
}

// FlatMap runs p and, on success, feeds its value to f and runs the returned
// parser from the position p stopped at. Failures of p are returned unchanged.
func FlatMap[T, K any](p Parser[T], f func(T) Parser[K]) Parser[K] {
	return New(func(text string, index int) Result[K] {
		res := p.Parse(text, index)
		if !res.OK {
			return failWith[T, K](res)
		}
		return f(res.Value).Parse(text, res.Index)
	})
}

// Map transforms the value of a successful parse.
func Map[T, K any](p Parser[T], f func(T) K) Parser[K] {
	return FlatMap(p, func(v T) Parser[K] {
		return Value(f(v))
	})
}

// Then runs p and then next, keeping the value of next.
func Then[T, K any](p Parser[T], next Parser[K]) Parser[K] {
	return FlatMap(p, func(T) Parser[K] {
		return next
	})
}

// FlatMapErrors runs p and, on failure, hands its errors to f and runs the
// returned parser from the original position. Successes pass through.
func (p Parser[T]) FlatMapErrors(f func(ErrorList) Parser[T]) Parser[T] {
	return New(func(text string, index int) Result[T] {
		res := p.Parse(text, index)
		if res.OK {
			return res
		}
		return f(res.Errors).Parse(text, index)
	})
}

// Union tries p and, if it fails, other from the same position.
// When both fail the errors of both branches are returned, p's first.
func (p Parser[T]) Union(other Parser[T]) Parser[T] {
	return New(func(text string, index int) Result[T] {
		left := p.Parse(text, index)
		if left.OK {
			return left
		}
		right := other.Parse(text, index)
		if right.OK {
			return right
		}
		var errs ErrorList
		errs = append(errs, left.Errors...)
		errs = append(errs, right.Errors...)
		return Failure[T](errs...)
	})
}

// Choice is Union folded over alternatives, left to right.
func Choice[T any](first Parser[T], rest ...Parser[T]) Parser[T] {
	p := first
	for _, alt := range rest {
		p = p.Union(alt)
	}
	return p
}

// Increment consumes exactly one character and yields it.
func Increment() Parser[string] {
	return increment
}

var increment = New(func(text string, index int) Result[string] {
	if index < 0 || index >= len(text) {
		return Failure[string](ParseError{Message: MsgUnexpectedEOF, Index: index})
	}
	_, size := utf8.DecodeRuneInString(text[index:])
	return Success(text[index:index+size], index+size)
})

// Value always succeeds with v without consuming input.
func Value[T any](v T) Parser[T] {
	return New(func(_ string, index int) Result[T] {
		return Success(v, index)
	})
}

// Error always fails with message at the current position.
func Error[T any](message string) Parser[T] {
	return New(func(_ string, index int) Result[T] {
		return Failure[T](ParseError{Message: message, Index: index})
	})
}

// Fail always fails without any error message. It only exists to make a
// branch of Union losable without adding noise to the error list.
func Fail[T any]() Parser[T] {
	return New(func(string, int) Result[T] {
		return Result[T]{}
	})
}
