// Package validation holds the request-size limit checks shared by the
// arithmetic sequence and polynomial domains.
package validation

import (
	"errors"
	"fmt"
)

// ErrLimitExceeded matches every *LimitError through errors.Is.
var ErrLimitExceeded = errors.New("limit exceeded")

// LimitError reports a request value above its configured maximum.
type LimitError struct {
	Name  string
	Value int
	Max   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s %d exceeds maximum allowed %d", e.Name, e.Value, e.Max)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitExceeded
}

// CheckLimit returns a *LimitError when value > max.
func CheckLimit(name string, value, max int) error {
	if value > max {
		return &LimitError{Name: name, Value: value, Max: max}
	}
	return nil
}
