package hub

import "fmt"

// NotFoundError is returned when a referenced item name has no definition.
type NotFoundError struct {
	Name string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %q", e.Name)
}

// AlreadyDefinedError is returned when a component contributes an item name
// that collides with an existing definition.
type AlreadyDefinedError struct {
	Name string
}

// Error implements the error interface for AlreadyDefinedError.
func (e *AlreadyDefinedError) Error() string {
	return fmt.Sprintf("item already defined: %q", e.Name)
}
