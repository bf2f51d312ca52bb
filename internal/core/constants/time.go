package constants

import "time"

const (
	// Default upper bound on the total span of a merged session.
	DefaultMaxSpan = 10 * time.Minute

	// NoGracePeriod closes a window exactly at its end; out-of-order
	// records arriving after the window end are dropped.
	NoGracePeriod = time.Duration(0)
)
