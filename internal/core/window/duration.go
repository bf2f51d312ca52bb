package window

import "time"

// toMillis converts d to a whole millisecond count. Durations with a
// sub-millisecond remainder are rejected rather than truncated, so a
// caller can never silently lose precision.
func toMillis(d time.Duration, param string) (int64, error) {
	if d%time.Millisecond != 0 {
		return 0, &InvalidArgumentError{
			Param:  param,
			Value:  d,
			Reason: "not a whole number of milliseconds",
		}
	}
	return d.Milliseconds(), nil
}

// validatePositiveMillis converts d and requires a strictly positive
// millisecond count.
func validatePositiveMillis(d time.Duration, param string) (int64, error) {
	ms, err := toMillis(d, param)
	if err != nil {
		return 0, err
	}
	if ms <= 0 {
		return 0, &InvalidArgumentError{
			Param:  param,
			Value:  d,
			Reason: "must not be zero or negative",
		}
	}
	return ms, nil
}

// validateNonNegativeMillis converts d and requires a non-negative
// millisecond count.
func validateNonNegativeMillis(d time.Duration, param string) (int64, error) {
	ms, err := toMillis(d, param)
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, &InvalidArgumentError{
			Param:  param,
			Value:  d,
			Reason: "must not be negative",
		}
	}
	return ms, nil
}
