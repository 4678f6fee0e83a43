package inventory

import "fmt"

// NotFoundError reports an operation on a list or item id that does not
// exist (any more). Nothing is changed when it is returned.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
