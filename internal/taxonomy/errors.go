package taxonomy

import "fmt"

// LoadError reports a taxonomy document that could not be loaded.
// Source is the file path, or "embedded" for the built-in document.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
