package flow

import "fmt"

// ConfigurationError reports an entity type with no usable table mapping
// on any registered connection.
type ConfigurationError struct {
	Entity string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Entity, e.Reason)
}

// ArgumentError reports an arity or shape mismatch in caller supplied
// values, detected before any rendering or backend round-trip.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument error in %s: %s", e.Op, e.Reason)
}

// StructuralError reports an incomplete statement tree, such as a join
// without an ON condition, detected at render time.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error: %s", e.Reason)
}

// ExecutionError wraps a backend failure for an executed statement.
type ExecutionError struct {
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error for %q: %s", e.Query, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// ResourceError reports a failure releasing a cursor. Release failures are
// best-effort and logged, they never replace a primary result.
type ResourceError struct {
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s", e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
