// Package parser parses lambda-calculus programs.
//
// It drives the grammar from package grammar and adds what the grammar leaves
// to its callers: the whole input must be consumed (trailing whitespace is
// allowed), failures are returned as a Go error, and parsed programs can be
// cached.
//
// # Example
//
//	expr, err := parser.Parse(`let id = \x : T . x in id y`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// When several alternatives fail at the same point, every alternative
// contributes its messages, so an *Error usually holds more than one
// candidate message at the same or nearby offsets.
package parser

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sandrolain/golambda/pkg/ast"
	"github.com/sandrolain/golambda/pkg/cache"
	"github.com/sandrolain/golambda/pkg/combinator"
	"github.com/sandrolain/golambda/pkg/grammar"
)

// MsgTrailingInput is reported when a program parses but input remains.
const MsgTrailingInput = "unexpected trailing input"

// ParseOption configures a Parser.
type ParseOption func(*ParseOptions)

// ParseOptions holds parser configuration.
type ParseOptions struct {
	// InBlocks allows let...in blocks inside expressions.
	InBlocks bool
	// CacheSize enables an LRU cache of parsed programs when > 0.
	CacheSize int
	// Logger receives debug events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// WithInBlocks enables or disables let...in blocks inside expressions.
func WithInBlocks(enable bool) ParseOption {
	return func(opts *ParseOptions) {
		opts.InBlocks = enable
	}
}

// WithCaching caches up to size successfully parsed programs.
func WithCaching(size int) ParseOption {
	return func(opts *ParseOptions) {
		opts.CacheSize = size
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) ParseOption {
	return func(opts *ParseOptions) {
		opts.Logger = logger
	}
}

// Parser parses whole programs with a fixed grammar. It is safe for
// concurrent use.
type Parser struct {
	grammar *grammar.Grammar
	cache   *cache.Cache
	logger  *zap.Logger
	opts    ParseOptions
}

// New creates a parser.
func New(opts ...ParseOption) *Parser {
	options := ParseOptions{
		InBlocks: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	p := &Parser{
		logger: options.Logger.Named("parser"),
		opts:   options,
	}
	if options.InBlocks {
		p.grammar = grammar.Default()
	} else {
		p.grammar = grammar.New(grammar.WithInBlocks(false))
	}
	if options.CacheSize > 0 {
		p.cache = cache.New(options.CacheSize)
	}
	return p
}

var (
	defaultParser     *Parser
	defaultParserOnce sync.Once
)

func getDefault() *Parser {
	defaultParserOnce.Do(func() {
		defaultParser = New()
	})
	return defaultParser
}

// Parse parses source as a single expression using the default parser.
func Parse(source string) (ast.Expression, error) {
	return getDefault().Parse(source)
}

// ParseStatement parses source as a single let statement using the default
// parser.
func ParseStatement(source string) (ast.Statement, error) {
	return getDefault().ParseStatement(source)
}

// Options returns the options the parser was created with.
func (p *Parser) Options() ParseOptions {
	return p.opts
}

// Grammar returns the grammar used by the parser.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse parses source as a single expression. Whitespace may surround the
// expression; anything else left over is an error.
func (p *Parser) Parse(source string) (ast.Expression, error) {
	if p.cache == nil {
		return p.parseExpression(source)
	}
	hit := true
	expr, err := p.cache.GetOrParse(source, func() (ast.Expression, error) {
		hit = false
		return p.parseExpression(source)
	})
	if hit {
		p.logger.Debug("cache hit", zap.Int("length", len(source)))
	}
	return expr, err
}

// ParseStatement parses source as a single let statement. Whitespace may
// surround the statement; anything else left over is an error.
func (p *Parser) ParseStatement(source string) (ast.Statement, error) {
	return parseAll(p, source, p.grammar.Statement())
}

// ParsePrefix runs the expression grammar at index without requiring the
// rest of source to be consumed.
func (p *Parser) ParsePrefix(source string, index int) combinator.Result[ast.Expression] {
	return p.grammar.Expression().Parse(source, index)
}

func (p *Parser) parseExpression(source string) (ast.Expression, error) {
	return parseAll(p, source, p.grammar.Expression())
}

// parseAll runs rule from the start of source and requires that only
// whitespace follows it.
func parseAll[T any](p *Parser, source string, rule combinator.Parser[T]) (T, error) {
	var zero T

	// Leading whitespace is skipped here; the grammar rules themselves start
	// at their first token.
	start := p.grammar.Whitespace().Parse(source, 0).Index
	res := rule.Parse(source, start)
	if !res.OK {
		return zero, p.fail(source, res.Errors)
	}

	end := p.grammar.Whitespace().Parse(source, res.Index).Index
	if end != len(source) {
		return zero, p.fail(source, combinator.ErrorList{{Message: MsgTrailingInput, Index: end}})
	}
	return res.Value, nil
}

func (p *Parser) fail(source string, errs combinator.ErrorList) error {
	err := newError(source, errs)
	p.logger.Debug("parse failed",
		zap.Int("length", len(source)),
		zap.Int("errors", len(errs)),
		zap.Int("offset", err.Offset()),
	)
	return err
}
