package multi

import "github.com/pdk/sev/split"

// Expr is a deferred multi-valued computation evaluated in a scope.
type Expr func(*Env) (Tuple, error)

// Group is one destructuring unit: the names to bind plus the single
// source whose outputs populate them.
type Group struct {
	Names  []string
	Source Expr
}

// checkGroups rejects malformed groups before anything is evaluated.
// Uninitialized bindings are not supported.
func checkGroups(groups []Group) error {
	for _, g := range groups {
		if len(g.Names) == 0 || g.Source == nil {
			got := len(g.Names)
			if g.Source != nil {
				got++
			}
			return &split.ShapeError{Got: got, MinHead: 1}
		}
	}
	return nil
}

// bindTuple installs the group's names left to right. Names beyond the
// tuple's length get Absent; extra tuple values are discarded.
func bindTuple(env *Env, names []string, tup Tuple) {
	for i, name := range names {
		v, _ := tup.At(i)
		env.Set(name, v)
	}
}

// BindSeq evaluates and binds groups one at a time, each source seeing
// every name bound by earlier groups, then evaluates body with all
// names in scope and forwards its result.
func BindSeq(env *Env, groups []Group, body Expr) (Tuple, error) {
	if err := checkGroups(groups); err != nil {
		return Tuple{}, err
	}

	scope := NewEnv(env)
	for _, g := range groups {
		tup, err := g.Source(scope)
		if err != nil {
			return Tuple{}, err
		}
		bindTuple(scope, g.Names, tup)
	}

	return body(scope)
}

// BindPar evaluates every source against the scope as it existed
// before any group here bound a name: no source observes a sibling's
// new binding.
//
// Each user name is stood in for by a fresh temporary, and the
// temporaries are run through BindSeq with the original sources.
// Sequential visibility between temporaries is unobservable because no
// source can name one. The real names are installed only around body.
func BindPar(env *Env, groups []Group, body Expr) (Tuple, error) {
	if err := checkGroups(groups); err != nil {
		return Tuple{}, err
	}

	temps := make([][]string, len(groups))
	seq := make([]Group, len(groups))
	for i, g := range groups {
		t := make([]string, len(g.Names))
		for j, name := range g.Names {
			t[j] = FreshName(name)
		}
		temps[i] = t
		seq[i] = Group{Names: t, Source: g.Source}
	}

	return BindSeq(env, seq, func(scope *Env) (Tuple, error) {
		inner := NewEnv(scope)
		for i, g := range groups {
			for j, name := range g.Names {
				v, _ := scope.Get(temps[i][j])
				inner.Set(name, v)
			}
		}
		return body(inner)
	})
}
