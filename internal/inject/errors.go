package inject

import "fmt"

// MutationError records one failed mutation. The target node is left
// untouched and the rest of the plan continues.
type MutationError struct {
	Phase  string
	Target string
	Err    error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutation failed in phase %q on %s: %v", e.Phase, e.Target, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
