package multi

// Func is a callable producing a Tuple per invocation.
type Func func(args ...Value) (Tuple, error)

// MapN applies f elementwise across seqs, collecting the first n
// outputs of each call into n parallel result sequences.
//
// Iteration is lockstep and stops at the shortest input, so with no
// inputs f is never called. Output slots the call did not fill are
// padded with Absent; all n results always share one length.
func MapN(n int, f Func, seqs ...[]Value) ([][]Value, error) {
	if n < 0 {
		return nil, &ArityError{Count: n}
	}

	steps := 0
	if len(seqs) > 0 {
		steps = len(seqs[0])
		for _, s := range seqs[1:] {
			if len(s) < steps {
				steps = len(s)
			}
		}
	}

	out := make([][]Value, n)
	for k := range out {
		out[k] = make([]Value, 0, steps)
	}

	args := make([]Value, len(seqs))
	for i := 0; i < steps; i++ {
		for j, s := range seqs {
			args[j] = s[i]
		}

		tup, err := f(args...)
		if err != nil {
			return nil, err
		}

		for k := 0; k < n; k++ {
			v, _ := tup.At(k)
			out[k] = append(out[k], v)
		}
	}

	return out, nil
}
