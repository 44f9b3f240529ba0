package mutate

import "fmt"

// ValidationError reports a required field that was empty at create/update
// time. Raised client-side, before any network call.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
