package combinator

import (
	"fmt"
	"unicode/utf8"
)

// Match consumes one character and succeeds with it when pred holds.
// A rejected character is reported at its own position.
func Match(pred func(rune) bool) Parser[string] {
	return New(func(text string, index int) Result[string] {
		res := increment.Parse(text, index)
		if !res.OK {
			return res
		}
		r, _ := utf8.DecodeRuneInString(res.Value)
		if !pred(r) {
			return Failure[string](ParseError{
				Message: fmt.Sprintf(MsgUnexpectedChar, res.Value),
				Index:   index,
			})
		}
		return res
	})
}

// Word matches literal character by character and yields the literal.
func Word(literal string) Parser[string] {
	p := Value(literal)
	// Build back to front so the first character is matched first.
	runes := []rune(literal)
	for i := len(runes) - 1; i >= 0; i-- {
		want := runes[i]
		p = Then(Match(func(r rune) bool { return r == want }), p)
	}
	return p
}

// Repeat collects values of p greedily. It fails unless p matches at least
// minTimes times; with minTimes <= 0 it always succeeds, yielding an empty
// slice and consuming nothing when p does not match at all.
func Repeat[T any](p Parser[T], minTimes int) Parser[[]T] {
	more := FlatMap(p, func(head T) Parser[[]T] {
		return Map(Repeat(p, minTimes-1), func(tail []T) []T {
			return prepend(head, tail)
		})
	})
	return more.Union(stop[T](minTimes))
}

// Join is Repeat with sep required between consecutive values.
// Separator values are discarded.
func Join[T, S any](p Parser[T], sep Parser[S], minTimes int) Parser[[]T] {
	more := FlatMap(p, func(head T) Parser[[]T] {
		return Map(Repeat(Then(sep, p), minTimes-1), func(tail []T) []T {
			return prepend(head, tail)
		})
	})
	return more.Union(stop[T](minTimes))
}

// Lazy defers calling get until the returned parser runs. Rules that refer to
// themselves, or to rules defined later, go through Lazy.
func Lazy[T any](get func() Parser[T]) Parser[T] {
	return FlatMap(Value(struct{}{}), func(struct{}) Parser[T] {
		return get()
	})
}

// stop is the fallback branch of a repetition: an empty success once enough
// values were collected, a silent failure otherwise.
func stop[T any](remaining int) Parser[[]T] {
	if remaining > 0 {
		return Fail[[]T]()
	}
	return Value([]T{})
}

func prepend[T any](head T, tail []T) []T {
	out := make([]T, 0, len(tail)+1)
	out = append(out, head)
	return append(out, tail...)
}
