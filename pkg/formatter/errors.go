package formatter

import (
	"errors"
	"fmt"
)

// ErrStaleReference marks stored settings that point at a field which is no
// longer an image candidate of the bundle.
var ErrStaleReference = errors.New("formatter: stale settings reference")

// StaleReferenceError carries the offending settings key and field name.
type StaleReferenceError struct {
	Key   string
	Field string
	Group string
}

func (e *StaleReferenceError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("formatter: group %q setting %q references field %q which is not an image field of the bundle", e.Group, e.Key, e.Field)
	}
	return fmt.Sprintf("formatter: setting %q references field %q which is not an image field of the bundle", e.Key, e.Field)
}

// Unwrap lets errors.Is match ErrStaleReference.
func (e *StaleReferenceError) Unwrap() error {
	return ErrStaleReference
}
