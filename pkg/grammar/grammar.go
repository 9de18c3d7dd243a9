// Package grammar implements the lambda-calculus grammar on top of the
// combinator core.
//
// Every rule is a combinator.Parser built once by New. Whitespace between
// tokens is consumed explicitly by the rules; there is no separate lexer.
//
//	identifier = name (not "let" or "in")
//	lambda     = "\" name ":" expression "." expression
//	parens     = "(" expression ")"
//	unit       = identifier | lambda | in-block | parens
//	call       = unit { unit }            (left-associative)
//	expression = call
//	statement  = "let" name "=" expression
//	in-block   = statement { statement } "in" expression
//
// The grammar does not require the whole input to be consumed; see package
// parser for that.
package grammar

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/sandrolain/golambda/pkg/ast"
	"github.com/sandrolain/golambda/pkg/combinator"
)

// Reserved words that cannot be used as identifiers.
const (
	KeywordLet = "let"
	KeywordIn  = "in"
)

// MsgReserved is the message used when a reserved word is found where an
// identifier was expected.
const MsgReserved = "'%s' is a reserved keyword"

// Option configures grammar construction.
type Option func(*Options)

// Options holds grammar configuration.
type Options struct {
	// InBlocks adds let...in blocks to the units of an expression.
	InBlocks bool
}

// WithInBlocks enables or disables let...in blocks inside expressions.
func WithInBlocks(enable bool) Option {
	return func(opts *Options) {
		opts.InBlocks = enable
	}
}

// Grammar holds the rules of the language. It is immutable and safe for
// concurrent use.
type Grammar struct {
	opts Options

	whitespace     combinator.Parser[[]string]
	identifierName combinator.Parser[string]
	identifier     combinator.Parser[ast.Expression]
	lambda         combinator.Parser[ast.Expression]
	parens         combinator.Parser[ast.Expression]
	inBlock        combinator.Parser[ast.Expression]
	unit           combinator.Parser[ast.Expression]
	call           combinator.Parser[ast.Expression]
	statement      combinator.Parser[ast.Statement]
}

// New builds a grammar.
func New(opts ...Option) *Grammar {
	options := Options{
		InBlocks: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	g := &Grammar{opts: options}
	g.build()
	return g
}

var (
	defaultGrammar     *Grammar
	defaultGrammarOnce sync.Once
)

// Default returns the shared grammar built with default options.
func Default() *Grammar {
	defaultGrammarOnce.Do(func() {
		defaultGrammar = New()
	})
	return defaultGrammar
}

// Options returns the options the grammar was built with.
func (g *Grammar) Options() Options {
	return g.opts
}

// Whitespace matches zero or more whitespace characters.
func (g *Grammar) Whitespace() combinator.Parser[[]string] { return g.whitespace }

// IdentifierName matches a name that is not a reserved word.
func (g *Grammar) IdentifierName() combinator.Parser[string] { return g.identifierName }

// Identifier matches a name as an ast.Identifier.
func (g *Grammar) Identifier() combinator.Parser[ast.Expression] { return g.identifier }

// Lambda matches \x : T . body.
func (g *Grammar) Lambda() combinator.Parser[ast.Expression] { return g.lambda }

// Parens matches a parenthesized expression and yields the inner expression.
func (g *Grammar) Parens() combinator.Parser[ast.Expression] { return g.parens }

// InBlock matches let statements followed by "in" and an expression.
func (g *Grammar) InBlock() combinator.Parser[ast.Expression] { return g.inBlock }

// Unit matches a single operand of an application.
func (g *Grammar) Unit() combinator.Parser[ast.Expression] { return g.unit }

// Call matches a left-associative application chain.
func (g *Grammar) Call() combinator.Parser[ast.Expression] { return g.call }

// Expression is the entry point for expressions.
func (g *Grammar) Expression() combinator.Parser[ast.Expression] { return g.call }

// Statement matches a let statement.
func (g *Grammar) Statement() combinator.Parser[ast.Statement] { return g.statement }

func (g *Grammar) build() {
	// Rules refer to each other recursively; forward references go through
	// combinator.Lazy so nothing is dereferenced before build returns.
	expression := combinator.Lazy(func() combinator.Parser[ast.Expression] { return g.call })
	statement := combinator.Lazy(func() combinator.Parser[ast.Statement] { return g.statement })

	g.whitespace = combinator.Repeat(combinator.Match(unicode.IsSpace), 0)
	g.identifierName = identifierName()

	g.identifier = combinator.Map(g.identifierName, func(name string) ast.Expression {
		return ast.Identifier{Name: name}
	})

	g.lambda = combinator.FlatMap(g.lead(`\`), func(string) combinator.Parser[ast.Expression] {
		return combinator.FlatMap(g.identifierName, func(argument string) combinator.Parser[ast.Expression] {
			return combinator.FlatMap(combinator.Then(g.sym(":"), expression), func(argumentType ast.Expression) combinator.Parser[ast.Expression] {
				return combinator.Map(combinator.Then(g.sym("."), expression), func(result ast.Expression) ast.Expression {
					return ast.Lambda{Argument: argument, ArgumentType: argumentType, Result: result}
				})
			})
		})
	})

	g.parens = combinator.FlatMap(combinator.Then(g.lead("("), expression), func(value ast.Expression) combinator.Parser[ast.Expression] {
		return combinator.Then(g.whitespace, combinator.Then(combinator.Word(")"), combinator.Value(value)))
	})

	g.inBlock = combinator.FlatMap(combinator.Join(statement, g.whitespace, 1), func(statements []ast.Statement) combinator.Parser[ast.Expression] {
		return combinator.Map(combinator.Then(g.sym(KeywordIn), expression), func(value ast.Expression) ast.Expression {
			return ast.In{Statements: statements, Value: value}
		})
	})

	units := []combinator.Parser[ast.Expression]{g.identifier, g.lambda}
	if g.opts.InBlocks {
		units = append(units, g.inBlock)
	}
	units = append(units, g.parens)
	g.unit = combinator.Choice(units[0], units[1:]...)

	g.call = combinator.FlatMap(g.unit, func(head ast.Expression) combinator.Parser[ast.Expression] {
		return combinator.Map(combinator.Repeat(combinator.Then(g.whitespace, g.unit), 0), func(tail []ast.Expression) ast.Expression {
			return ast.Apply(head, tail...)
		})
	})

	g.statement = combinator.FlatMap(g.lead(KeywordLet), func(string) combinator.Parser[ast.Statement] {
		return combinator.FlatMap(g.identifierName, func(name string) combinator.Parser[ast.Statement] {
			return combinator.Map(combinator.Then(g.sym("="), expression), func(value ast.Expression) ast.Statement {
				return ast.Let{Name: name, Value: value}
			})
		})
	})
}

// lead matches a literal that starts a rule, followed by whitespace.
func (g *Grammar) lead(literal string) combinator.Parser[string] {
	return combinator.FlatMap(combinator.Word(literal), func(w string) combinator.Parser[string] {
		return combinator.Then(g.whitespace, combinator.Value(w))
	})
}

// sym matches a literal between two runs of whitespace.
func (g *Grammar) sym(literal string) combinator.Parser[string] {
	return combinator.Then(g.whitespace, g.lead(literal))
}

func identifierName() combinator.Parser[string] {
	chars := combinator.Repeat(combinator.Match(isNameChar), 1)
	return combinator.FlatMap(chars, func(cs []string) combinator.Parser[string] {
		name := strings.Join(cs, "")
		switch name {
		case KeywordLet, KeywordIn:
			return combinator.Error[string](fmt.Sprintf(MsgReserved, name))
		}
		return combinator.Value(name)
	})
}

func isNameChar(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '\\', ':', '.', '(', ')':
		return false
	}
	return true
}
