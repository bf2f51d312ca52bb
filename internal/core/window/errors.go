package window

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is matched by every validation failure returned
// from the SessionWindows factories.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a window parameter that failed
// validation. It carries the parameter name and the offending value so
// callers can surface a precise configuration error.
type InvalidArgumentError struct {
	Param  string
	Value  time.Duration
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Param, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
