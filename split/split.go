// Package split separates the name part of a flat binding list from its
// trailing source element.
package split

import "fmt"

// ShapeError reports a binding list too short to hold the required
// names plus one source.
type ShapeError struct {
	Got     int
	MinHead int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("binding requires at least %d name(s) and one source expression, got %d element(s)",
		e.MinHead, e.Got)
}

// Final splits list into its final element and the preceding head. The
// head must hold at least minHead elements, i.e. list must hold at
// least minHead+1.
func Final[T any](list []T, minHead int) ([]T, T, error) {
	if len(list) < minHead+1 {
		var zero T
		return nil, zero, &ShapeError{Got: len(list), MinHead: minHead}
	}

	return list[:len(list)-1], list[len(list)-1], nil
}
