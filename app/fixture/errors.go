package fixture

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("fixture not found")

// ResponseError represents an unexpected HTTP status from the test-data API.
type ResponseError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("fixture: HTTP %d", e.StatusCode)
}
