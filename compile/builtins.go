package compile

import (
	"fmt"

	"github.com/pdk/sev/multi"
)

// NewTopEnv returns a top scope with the builtin functions bound.
func NewTopEnv() *multi.Env {
	env := multi.NewEnv(nil)
	for name, fn := range builtins {
		env.Set(name, fn)
	}
	return env
}

var builtins = map[string]Callable{
	"values": builtinValues,
	"divmod": builtinDivmod,
	"mapn":   builtinMapN,
	"len":    builtinLen,
	"nth":    builtinNth,
}

// builtinValues packages its arguments as one multi-valued result.
func builtinValues(env *multi.Env, args ...Value) (Value, error) {
	vals := make([]Value, len(args))
	for i, a := range args {
		vals[i] = one(a)
	}
	return multi.NewTuple(vals...), nil
}

// builtinDivmod returns quotient and remainder.
func builtinDivmod(env *multi.Env, args ...Value) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("divmod requires 2 arguments, got %d", len(args))
	}

	i, iok := one(args[0]).(int64)
	j, jok := one(args[1]).(int64)
	if !iok || !jok {
		return nil, fmt.Errorf("divmod requires integers, got %T, %T", args[0], args[1])
	}
	if j == 0 {
		return nil, fmt.Errorf("divmod: division by zero")
	}

	return multi.NewTuple(i/j, i%j), nil
}

// builtinMapN applies a function elementwise across lists, collecting
// its first n outputs into n result lists.
func builtinMapN(env *multi.Env, args ...Value) (Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("mapn requires a count and a function")
	}

	n, ok := one(args[0]).(int64)
	if !ok || n < 0 {
		return nil, &multi.ArityError{Count: one(args[0])}
	}

	fn, ok := one(args[1]).(Callable)
	if !ok {
		return nil, fmt.Errorf("mapn: second argument must be a function, got %T", args[1])
	}

	seqs := make([][]Value, 0, len(args)-2)
	for _, a := range args[2:] {
		list, ok := one(a).([]Value)
		if !ok {
			return nil, fmt.Errorf("mapn: inputs must be lists, got %T", a)
		}
		seqs = append(seqs, list)
	}

	f := func(callArgs ...multi.Value) (multi.Tuple, error) {
		v, err := fn(env, callArgs...)
		if err != nil {
			return multi.Tuple{}, err
		}
		return multi.Lift(v), nil
	}

	out, err := multi.MapN(int(n), f, seqs...)
	if err != nil {
		return nil, err
	}

	lists := make([]Value, len(out))
	for i, s := range out {
		lists[i] = s
	}
	return multi.NewTuple(lists...), nil
}

func builtinLen(env *multi.Env, args ...Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len requires 1 argument, got %d", len(args))
	}

	// a tuple argument means its own length, not its first value's
	if t, ok := args[0].(multi.Tuple); ok {
		return int64(t.Len()), nil
	}

	switch v := one(args[0]).(type) {
	case []Value:
		return int64(len(v)), nil
	case string:
		return int64(len(v)), nil
	}
	return nil, fmt.Errorf("len: cannot take length of %T", args[0])
}

func builtinNth(env *multi.Env, args ...Value) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("nth requires a list and an index, got %d argument(s)", len(args))
	}

	list, lok := one(args[0]).([]Value)
	i, iok := one(args[1]).(int64)
	if !lok || !iok {
		return nil, fmt.Errorf("nth requires a list and an integer index, got %T, %T", args[0], args[1])
	}
	if i < 0 || i >= int64(len(list)) {
		return nil, fmt.Errorf("nth: index %d out of range for list of %d", i, len(list))
	}

	return list[i], nil
}
