// Package golambda parses a minimal typed lambda calculus.
//
// The language has identifiers, typed lambda abstractions, left-associative
// application and let...in blocks:
//
//	let id = \x : T . x in id y
//
// # Quick Start
//
//	expr, err := golambda.Parse(`\x : T . f x`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	lam := expr.(ast.Lambda)
//
//	// Reuse a configured parser
//	p := parser.New(parser.WithCaching(1024))
//	expr, err = p.Parse(src)
//
// # More Information
//
// For detailed documentation, see:
//   - Combinators: github.com/sandrolain/golambda/pkg/combinator
//   - Grammar: github.com/sandrolain/golambda/pkg/grammar
//   - Parser: github.com/sandrolain/golambda/pkg/parser
//   - AST: github.com/sandrolain/golambda/pkg/ast
package golambda

import (
	"fmt"

	"github.com/sandrolain/golambda/pkg/ast"
	"github.com/sandrolain/golambda/pkg/parser"
)

// Version returns the current version of golambda.
func Version() string {
	return "v0.1.0-dev"
}

// Parse parses a whole program into an expression.
//
// Example:
//
//	expr, err := golambda.Parse("f a b")
//	// expr == ast.Call{Func: ast.Call{Func: f, Argument: a}, Argument: b}
func Parse(source string, opts ...parser.ParseOption) (ast.Expression, error) {
	if len(opts) == 0 {
		return parser.Parse(source)
	}
	return parser.New(opts...).Parse(source)
}

// MustParse is like Parse but panics if the source cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(source string) ast.Expression {
	expr, err := Parse(source)
	if err != nil {
		panic(fmt.Sprintf("golambda: Parse(%q): %v", source, err))
	}
	return expr
}
