package parser_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sandrolain/golambda/pkg/ast"
	"github.com/sandrolain/golambda/pkg/combinator"
	"github.com/sandrolain/golambda/pkg/parser"
)

func id(name string) ast.Expression { return ast.Identifier{Name: name} }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Expression
	}{
		{"identifier", "x", id("x")},
		{"surrounding whitespace", "  f a \n", ast.Apply(id("f"), id("a"))},
		{"lambda", `\x: T . x`, ast.Lambda{Argument: "x", ArgumentType: id("T"), Result: id("x")}},
		{"let in", "let x = a in x", ast.In{
			Statements: []ast.Statement{ast.Let{Name: "x", Value: id("a")}},
			Value:      id("x"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTrailingInput(t *testing.T) {
	_, err := parser.Parse("f a )")
	require.Error(t, err)

	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "f a )", perr.Source)
	assert.Equal(t, combinator.ErrorList{{Message: parser.MsgTrailingInput, Index: 4}}, perr.Errors)
	assert.Equal(t, 4, perr.Offset())
	assert.Contains(t, err.Error(), "unexpected trailing input at position 4")
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		_, err := parser.Parse(input)
		require.Error(t, err)

		var perr *parser.Error
		require.True(t, errors.As(err, &perr))
		require.Len(t, perr.Errors, 4)
		for _, e := range perr.Errors {
			assert.Equal(t, combinator.MsgUnexpectedEOF, e.Message)
			assert.Equal(t, len(input), e.Index)
		}
	}
}

func TestErrorUnwrapsToParseError(t *testing.T) {
	_, err := parser.Parse("let")
	require.Error(t, err)

	var pe combinator.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "'let' is a reserved keyword", pe.Message)

	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Furthest())
	assert.Contains(t, err.Error(), "'let' is a reserved keyword")
}

func TestErrorWithoutMessages(t *testing.T) {
	err := &parser.Error{Source: "x"}
	assert.Equal(t, "parse failed", err.Error())
	assert.Equal(t, -1, err.Offset())
	assert.Equal(t, -1, err.Furthest())
	assert.NoError(t, err.Unwrap())
}

func TestParseStatement(t *testing.T) {
	got, err := parser.ParseStatement(" let f = g x ")
	require.NoError(t, err)
	want := ast.Let{Name: "f", Value: ast.Apply(id("g"), id("x"))}
	if diff := cmp.Diff(ast.Statement(want), got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}

	_, err = parser.ParseStatement("f x")
	require.Error(t, err)

	_, err = parser.ParseStatement("let f = g x in f")
	require.Error(t, err)
	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 12, perr.Offset())
}

func TestParsePrefix(t *testing.T) {
	p := parser.New()
	res := p.ParsePrefix("f a ) b", 0)
	require.True(t, res.OK)
	assert.Equal(t, 3, res.Index)
	if diff := cmp.Diff(ast.Apply(id("f"), id("a")), res.Value); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestWithInBlocks(t *testing.T) {
	p := parser.New(parser.WithInBlocks(false))
	assert.False(t, p.Options().InBlocks)
	assert.False(t, p.Grammar().Options().InBlocks)

	_, err := p.Parse("let x = a in x")
	require.Error(t, err)

	_, err = p.Parse("f (g x)")
	require.NoError(t, err)

	_, err = p.ParseStatement("let x = f a")
	require.NoError(t, err)
}

func TestCaching(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := parser.New(parser.WithCaching(2), parser.WithLogger(zap.New(core)))

	first, err := p.Parse("f a")
	require.NoError(t, err)
	second, err := p.Parse("f a")
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached AST differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, 1, logs.FilterMessage("cache hit").Len())

	// Failures are not cached.
	_, err = p.Parse("f )")
	require.Error(t, err)
	_, err = p.Parse("f )")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("cache hit").Len())
	assert.Equal(t, 2, logs.FilterMessage("parse failed").Len())
}

func TestLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := parser.New(parser.WithLogger(zap.New(core)))

	_, err := p.Parse("(f a")
	require.Error(t, err)

	entries := logs.FilterMessage("parse failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "parser", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 4, fields["length"])
	assert.EqualValues(t, 4, fields["errors"])
}

func TestConcurrentParse(t *testing.T) {
	p := parser.New(parser.WithCaching(8))
	sources := []string{"f a b", `\x : T . x`, "let x = a in x", "(f) (g)"}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				if _, err := p.Parse(sources[(i+j)%len(sources)]); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	var msgs []string
	for err := range errs {
		msgs = append(msgs, err.Error())
	}
	assert.Empty(t, msgs, strings.Join(msgs, "\n"))
}
