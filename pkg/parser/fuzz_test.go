package parser_test

import (
	"testing"

	"github.com/sandrolain/golambda/pkg/parser"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		`x`,
		`f a b c`,
		`\x : T . x`,
		`let id = \x : T . x in id y`,
		`(f (g x))`,
		``,
		`(`,
		`\x :`,
		`let in`,
		`λ α β`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	p := parser.New()
	f.Fuzz(func(t *testing.T, input string) {
		_, _ = p.Parse(input)

		res := p.ParsePrefix(input, 0)
		if res.OK && (res.Index < 0 || res.Index > len(input)) {
			t.Fatalf("index %d out of range for %q", res.Index, input)
		}
		if !res.OK && len(res.Errors) == 0 {
			t.Fatalf("failure without errors for %q", input)
		}
	})
}
