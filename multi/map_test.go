package multi_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/pdk/sev/multi"
)

func divmod(args ...multi.Value) (multi.Tuple, error) {
	i := args[0].(int)
	j := args[1].(int)
	return multi.NewTuple(i/j, i%j), nil
}

func vals(vs ...multi.Value) []multi.Value {
	return vs
}

func TestMapNDivmod(t *testing.T) {
	c := qt.New(t)

	out, err := multi.MapN(2, divmod, vals(12, 23, 34), vals(10, 10, 10))
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.DeepEquals, [][]multi.Value{
		{1, 2, 3},
		{2, 3, 4},
	})
}

func TestMapNTruncatesToShortest(t *testing.T) {
	c := qt.New(t)

	calls := 0
	add := func(args ...multi.Value) (multi.Tuple, error) {
		calls++
		return multi.NewTuple(args[0].(int) + args[1].(int)), nil
	}

	out, err := multi.MapN(1, add, vals(1, 2, 3), vals(10, 20))
	c.Assert(err, qt.IsNil)
	c.Assert(calls, qt.Equals, 2)
	c.Assert(out, qt.DeepEquals, [][]multi.Value{{11, 22}})
}

func TestMapNPadsWithAbsent(t *testing.T) {
	c := qt.New(t)

	ident := func(args ...multi.Value) (multi.Tuple, error) {
		return multi.NewTuple(args[0]), nil
	}

	out, err := multi.MapN(3, ident, vals(1, 2, 3))
	c.Assert(err, qt.IsNil)
	c.Assert(out[0], qt.DeepEquals, vals(1, 2, 3))

	for _, k := range []int{1, 2} {
		c.Assert(out[k], qt.HasLen, 3)
		for _, v := range out[k] {
			c.Assert(multi.IsAbsent(v), qt.IsTrue)
		}
	}
}

func TestMapNZeroSequences(t *testing.T) {
	c := qt.New(t)

	called := false
	f := func(args ...multi.Value) (multi.Tuple, error) {
		called = true
		return multi.NewTuple(), nil
	}

	out, err := multi.MapN(2, f)
	c.Assert(err, qt.IsNil)
	c.Assert(called, qt.IsFalse)
	c.Assert(out, qt.HasLen, 2)
	c.Assert(out[0], qt.HasLen, 0)
	c.Assert(out[1], qt.HasLen, 0)
}

func TestMapNZeroSlots(t *testing.T) {
	c := qt.New(t)

	out, err := multi.MapN(0, divmod, vals(12), vals(10))
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.HasLen, 0)
}

func TestMapNNegativeSlotCount(t *testing.T) {
	c := qt.New(t)

	_, err := multi.MapN(-1, divmod, vals(1), vals(1))

	var arityErr *multi.ArityError
	c.Assert(errors.As(err, &arityErr), qt.IsTrue)
	c.Assert(arityErr.Count, qt.Equals, -1)
}

func TestMapNPropagatesCallErrors(t *testing.T) {
	c := qt.New(t)

	boom := errors.New("boom")
	f := func(args ...multi.Value) (multi.Tuple, error) {
		if args[0].(int) == 2 {
			return multi.Tuple{}, boom
		}
		return multi.NewTuple(args[0]), nil
	}

	_, err := multi.MapN(1, f, vals(1, 2, 3))
	c.Assert(err, qt.Equals, boom)
}

func TestMapNOutputLengthsAlwaysEqual(t *testing.T) {
	c := qt.New(t)

	// the call count varies per step; output lengths must not
	varying := func(args ...multi.Value) (multi.Tuple, error) {
		n := args[0].(int)
		out := make([]multi.Value, n)
		for i := range out {
			out[i] = i
		}
		return multi.NewTuple(out...), nil
	}

	out, err := multi.MapN(4, varying, vals(0, 1, 2, 3, 4))
	c.Assert(err, qt.IsNil)
	for _, seq := range out {
		c.Assert(seq, qt.HasLen, 5)
	}
}
