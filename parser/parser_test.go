package parser_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/pdk/sev/parser"
)

// sexpr parses a single-statement program and renders the statement.
func sexpr(c *qt.C, src string) string {
	root, err := parser.NewFromString("test", src).Parse()
	c.Assert(err, qt.IsNil)
	c.Assert(root.Children, qt.HasLen, 1)
	return root.Children[0].String()
}

func TestParsePrecedence(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "1 + 2 * 3"), qt.Equals, "(+ 1 (* 2 3))")
	c.Assert(sexpr(c, "1 * 2 + 3"), qt.Equals, "(+ (* 1 2) 3)")
	c.Assert(sexpr(c, "1 + 2 < 3 * 4"), qt.Equals, "(< (+ 1 2) (* 3 4))")
	c.Assert(sexpr(c, "a && b == c"), qt.Equals, "(&& a (== b c))")
	c.Assert(sexpr(c, "(1 + 2) * 3"), qt.Equals, "(* (+ 1 2) 3)")
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "a = b = 2"), qt.Equals, "(= a (= b 2))")
	c.Assert(sexpr(c, "a += b * 2"), qt.Equals, "(+= a (* b 2))")
}

func TestParseUnary(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "-x + 1"), qt.Equals, "(+ (- x) 1)")
	c.Assert(sexpr(c, "!a && b"), qt.Equals, "(&& (! a) b)")
}

func TestParseFuncApply(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "f(1, 2)"), qt.Equals, "(apply f 1 2)")
	c.Assert(sexpr(c, "f()"), qt.Equals, "(apply f)")
	c.Assert(sexpr(c, "f(1)(2, 3)"), qt.Equals, "(apply (apply f 1) 2 3)")
	c.Assert(sexpr(c, "f(g(x), 1 + 2)"), qt.Equals, "(apply f (apply g x) (+ 1 2))")
}

func TestParseList(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "[1, 2 + 3]"), qt.Equals, "([ 1 (+ 2 3))")
	c.Assert(sexpr(c, "[]"), qt.Equals, "[")
}

func TestParseFunction(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "fn(a, b) { a + b }"), qt.Equals, "(fn (( a b) ({ (+ a b)))")
	c.Assert(sexpr(c, "fn() { 1 }"), qt.Equals, "(fn ( ({ 1))")
}

func TestParseReturn(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "fn() { return 7 }"), qt.Equals, "(fn ( ({ (return 7)))")
}

func TestParseBinders(t *testing.T) {
	c := qt.New(t)

	c.Assert(sexpr(c, "let (q, r = divmod(7, 2)) { q }"),
		qt.Equals, "(let (group q r (apply divmod 7 2)) ({ q))")

	c.Assert(sexpr(c, "par (x = 1) (y = x) { y }"),
		qt.Equals, "(par (group x 1) (group y x) ({ y))")

	// a group missing its source still parses; the compiler's
	// splitter is where the shape is checked
	c.Assert(sexpr(c, "let (a) { a }"),
		qt.Equals, "(let (group a) ({ a))")
}

func TestParseStatements(t *testing.T) {
	c := qt.New(t)

	root, err := parser.NewFromString("test", "a = 1\na + 2; a * 3").Parse()
	c.Assert(err, qt.IsNil)
	c.Assert(root.Children, qt.HasLen, 3)
	c.Assert(root.Children[0].String(), qt.Equals, "(= a 1)")
	c.Assert(root.Children[2].String(), qt.Equals, "(* a 3)")
}

func TestParseErrors(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name    string
		program string
		match   string
	}{
		{"dangling operator", "1 +", ".*unexpected.*"},
		{"unclosed call", "f(1", ".*expected , or RightParen.*"},
		{"binder without groups", "let { 1 }", ".*at least one.*"},
		{"two expressions without separator", "1 2", ".*unexpected.*after statement.*"},
		{"lex error surfaces", "@", ".*unrecognized rune.*"},
	}

	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			_, err := parser.NewFromString("test", test.program).Parse()
			c.Assert(err, qt.ErrorMatches, test.match)
		})
	}
}
