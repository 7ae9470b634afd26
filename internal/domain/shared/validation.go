package shared

import "fmt"

// ValidationError reports a malformed request. It is returned synchronously,
// before any simulated latency and before any state is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is implements the errors.Is interface for ValidationError
func (e ValidationError) Is(target error) bool {
	t, ok := target.(ValidationError)
	if !ok {
		return false
	}
	// An empty target Field matches any ValidationError
	if t.Field == "" {
		return true
	}
	return e.Field == t.Field
}

// Required returns a ValidationError for a missing field.
func Required(field string) ValidationError {
	return ValidationError{Field: field, Reason: "is required"}
}
