package multi

// AbsentValue marks an output slot the producing call supplied no
// value for. It is distinct from nil, false, and every legitimately
// returned value.
type AbsentValue struct{}

// Absent is the padding marker appended when a call produces fewer
// values than the requested slots or named variables.
var Absent Value = AbsentValue{}

func (AbsentValue) String() string {
	return "<absent>"
}

// IsAbsent reports whether v is the padding marker.
func IsAbsent(v Value) bool {
	_, ok := v.(AbsentValue)
	return ok
}
