package multi

import "fmt"

// ArityError reports an invalid output-slot count given to MapN.
type ArityError struct {
	Count Value
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("output slot count must be a non-negative integer, got %v", e.Count)
}
