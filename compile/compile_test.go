package compile_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/pdk/sev/compile"
	"github.com/pdk/sev/multi"
	"github.com/pdk/sev/split"
)

func run(c *qt.C, program string) compile.Value {
	v, err := compile.RunString("test", program)
	c.Assert(err, qt.IsNil, qt.Commentf("program: %s", program))
	return v
}

func TestArithmetic(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		program string
		want    compile.Value
	}{
		{"1 + 2 * 3", int64(7)},
		{"(1 + 2) * 3", int64(9)},
		{"10 % 3", int64(1)},
		{"1 + 2.5", 3.5},
		{"-(3) + 10", int64(7)},
		{`"foo" + "bar"`, "foobar"},
		{"1 < 2", true},
		{"2 == 2 && 3 != 4", true},
		{"'single' + `tick`", "singletick"},
	}

	for _, test := range tests {
		c.Assert(run(c, test.program), qt.Equals, test.want,
			qt.Commentf("program: %s", test.program))
	}
}

func TestAssignmentAndBlocks(t *testing.T) {
	c := qt.New(t)

	c.Assert(run(c, "x = 4\nx + 1"), qt.Equals, int64(5))
	c.Assert(run(c, "a = 1; b = 2; a + b"), qt.Equals, int64(3))
}

func TestValuesAndDivmod(t *testing.T) {
	c := qt.New(t)

	c.Assert(run(c, "values(1, 2, 3)"), qt.DeepEquals,
		multi.NewTuple(int64(1), int64(2), int64(3)))

	c.Assert(run(c, "divmod(42, 10)"), qt.DeepEquals,
		multi.NewTuple(int64(4), int64(2)))
}

func TestSequentialBinding(t *testing.T) {
	c := qt.New(t)

	c.Assert(run(c, "let (q, r = divmod(42, 10)) { q * 10 + r }"),
		qt.Equals, int64(42))

	// later groups see earlier names
	c.Assert(run(c, "let (q, r = divmod(7, 2)) (s = q + r) { s }"),
		qt.Equals, int64(4))

	// a single-valued binder body collapses to a plain value; a
	// multi-valued body stays multi-valued
	c.Assert(run(c, "let (q, r = divmod(42, 10)) { values(r, q) }"),
		qt.DeepEquals, multi.NewTuple(int64(2), int64(4)))
}

func TestParallelBinding(t *testing.T) {
	c := qt.New(t)

	// sources evaluate against the scope outside the par
	c.Assert(run(c, "let (x = 100) { par (x = 1) (y = x) { y } }"),
		qt.Equals, int64(100))

	c.Assert(run(c, "let (x = 100) { par (x = 1) (y = x) { x + y } }"),
		qt.Equals, int64(101))

	c.Assert(run(c, "let (a = 1) (b = 2) { par (a = b) (b = a) { [a, b] } }"),
		qt.DeepEquals, []compile.Value{int64(2), int64(1)})
}

func TestBindingPadsAndTruncates(t *testing.T) {
	c := qt.New(t)

	v := run(c, "let (a, b = values(1)) { b }")
	c.Assert(multi.IsAbsent(v), qt.IsTrue)

	c.Assert(run(c, "let (a = values(1, 2, 3)) { a }"), qt.Equals, int64(1))
}

func TestMapN(t *testing.T) {
	c := qt.New(t)

	c.Assert(run(c, "mapn(2, divmod, [12, 23, 34], [10, 10, 10])"),
		qt.DeepEquals, multi.NewTuple(
			[]compile.Value{int64(1), int64(2), int64(3)},
			[]compile.Value{int64(2), int64(3), int64(4)},
		))

	// shortest input wins
	c.Assert(run(c, "let (d, m = mapn(2, divmod, [12, 23, 34], [10, 10])) { d }"),
		qt.DeepEquals, []compile.Value{int64(1), int64(2)})

	// asking for more outputs than the function produces pads
	c.Assert(run(c, "let (a, b = mapn(2, fn(x) { x }, [5])) { b }"),
		qt.DeepEquals, []compile.Value{multi.Absent})

	c.Assert(run(c, "len(mapn(0, divmod, [1], [1]))"), qt.Equals, int64(0))
}

func TestListBuiltins(t *testing.T) {
	c := qt.New(t)

	c.Assert(run(c, "len([10, 20, 30])"), qt.Equals, int64(3))
	c.Assert(run(c, "nth([10, 20, 30], 1)"), qt.Equals, int64(20))
	c.Assert(run(c, `len("four")`), qt.Equals, int64(4))
}

func TestFunctions(t *testing.T) {
	c := qt.New(t)

	c.Assert(run(c, "f = fn(a, b) { a * b }\nf(6, 7)"), qt.Equals, int64(42))

	// return short circuits the rest of the body
	c.Assert(run(c, "f = fn(x) { return x * 2\n99 }\nf(3)"), qt.Equals, int64(6))

	// closures capture the scope they were defined in
	program := `
adder = let (n = 10) { fn(x) { x + n } }
n = 1
adder(5)
`
	c.Assert(run(c, program), qt.Equals, int64(15))
}

func TestFunctionArity(t *testing.T) {
	c := qt.New(t)

	_, err := compile.RunString("test", "f = fn(a, b) { a }\nf(1)")
	c.Assert(err, qt.ErrorMatches, ".*received 1 arguments for 2 parameters.*")
}

func TestLogicalShortCircuit(t *testing.T) {
	c := qt.New(t)

	// zz is unbound; && must not evaluate it
	c.Assert(run(c, "false && zz"), qt.Equals, false)
	c.Assert(run(c, "true || zz"), qt.Equals, true)
	c.Assert(run(c, "!false"), qt.Equals, true)
}

func TestBindingShapeError(t *testing.T) {
	c := qt.New(t)

	for _, program := range []string{
		"let (a) { a }",
		"let () { 1 }",
		"par (a) { a }",
	} {
		_, err := compile.RunString("test", program)

		var shapeErr *split.ShapeError
		c.Assert(errors.As(err, &shapeErr), qt.IsTrue,
			qt.Commentf("program: %s, err: %v", program, err))
	}
}

func TestMapNCountErrors(t *testing.T) {
	c := qt.New(t)

	for _, program := range []string{
		"mapn(-1, divmod, [1], [1])",
		"mapn(divmod, divmod, [1], [1])",
	} {
		_, err := compile.RunString("test", program)

		var arityErr *multi.ArityError
		c.Assert(errors.As(err, &arityErr), qt.IsTrue,
			qt.Commentf("program: %s, err: %v", program, err))
	}
}

func TestRuntimeErrors(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		program string
		match   string
	}{
		{"zz + 1", ".*unknown variable \"zz\".*"},
		{"let (f = 5) { f(1) }", ".*cannot invoke non-function.*"},
		{"divmod(1, 0)", ".*division by zero.*"},
		{"mapn(1, fn(x) { x(1) }, [3])", ".*cannot invoke non-function.*"},
		{`1 + "one"`, ".*cannot apply operator.*"},
	}

	for _, test := range tests {
		_, err := compile.RunString("test", test.program)
		c.Assert(err, qt.ErrorMatches, test.match,
			qt.Commentf("program: %s", test.program))
	}
}

func TestRunStringInKeepsBindings(t *testing.T) {
	c := qt.New(t)

	env := compile.NewTopEnv()

	_, err := compile.RunStringIn("repl", "x = 4", env)
	c.Assert(err, qt.IsNil)

	v, err := compile.RunStringIn("repl", "x + 1", env)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, int64(5))
}

func TestFormat(t *testing.T) {
	c := qt.New(t)

	c.Assert(compile.Format(nil), qt.Equals, "nil")
	c.Assert(compile.Format(int64(5)), qt.Equals, "5")
	c.Assert(compile.Format(true), qt.Equals, "true")
	c.Assert(compile.Format("hi"), qt.Equals, "hi")
	c.Assert(compile.Format(multi.NewTuple(int64(4), int64(2))), qt.Equals, "(4, 2)")
	c.Assert(compile.Format([]compile.Value{int64(1), int64(2)}), qt.Equals, "[1, 2]")

	v := run(c, "fn(x) { x }")
	c.Assert(compile.Format(v), qt.Equals, "<fn>")
}
