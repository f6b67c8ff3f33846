package multi

import (
	"fmt"
	"sync/atomic"
)

// freshSep is not a legal identifier rune in the lexer, so no source
// program can name a generated temporary.
const freshSep = "·"

// freshCounter is process-wide and monotonic, so temporaries never
// repeat, including across concurrent or nested binder invocations.
var freshCounter atomic.Int64

// FreshName returns an identifier guaranteed never to collide with any
// user-visible name or with another generated name. The hint is purely
// cosmetic.
func FreshName(hint string) string {
	return fmt.Sprintf("%s%s%d", hint, freshSep, freshCounter.Add(1))
}
