package window

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/penwyp/go-session-window/internal/core/constants"
)

// SessionWindows is a session based window specification used for
// aggregating events into sessions.
//
// Sessions represent a period of activity separated by a defined gap of
// inactivity. Events that fall within the inactivity gap of an existing
// session are merged into it; an event outside the gap starts a new
// session. The length of a session is driven by the timestamps of the
// data within it, so session windows have no fixed size.
//
// SessionWindows itself performs no windowing: it only carries the
// validated parameters a windowing engine reads. Values are immutable
// after construction and safe to copy, compare, and read from any
// number of goroutines without coordination.
type SessionWindows struct {
	gapMs     int64
	maxSpanMs int64
	graceMs   int64
}

// OfInactivityGapWithNoGrace creates a window specification with the
// given inactivity gap, the default maximum span, and no grace period.
//
// New events may move session window boundaries, so an aggressive close
// time can reject an out-of-order event that a later event would have
// pulled inside the window. With no grace period, any out-of-order
// record arriving after the window end is considered late and dropped.
func OfInactivityGapWithNoGrace(inactivityGap time.Duration) (SessionWindows, error) {
	return OfInactivityGapAndGrace(inactivityGap, constants.NoGracePeriod)
}

// OfInactivityGapAndGrace creates a window specification with the given
// inactivity gap and the default maximum span.
//
// The afterWindowEnd argument is validated for representability and
// non-negativity but is not applied: the returned specification always
// carries a zero grace period. Callers that need a non-zero grace
// period must use OfInactivityGapMaxSpanAndGrace.
//
// TODO: apply afterWindowEnd instead of discarding it once consumers
// relying on the zero default have been audited.
func OfInactivityGapAndGrace(inactivityGap, afterWindowEnd time.Duration) (SessionWindows, error) {
	w, err := OfInactivityGapAndMaxSpan(inactivityGap, constants.DefaultMaxSpan)
	if err != nil {
		return SessionWindows{}, err
	}
	if _, err := validateNonNegativeMillis(afterWindowEnd, "afterWindowEnd"); err != nil {
		return SessionWindows{}, err
	}
	return w, nil
}

// OfInactivityGapAndMaxSpan creates a window specification with the
// given inactivity gap and maximum session span, and no grace period.
func OfInactivityGapAndMaxSpan(inactivityGap, maxSpan time.Duration) (SessionWindows, error) {
	return OfInactivityGapMaxSpanAndGrace(inactivityGap, maxSpan, constants.NoGracePeriod)
}

// OfInactivityGapMaxSpanAndGrace creates a window specification with
// the given inactivity gap, maximum session span, and grace period. It
// is the general constructor the other factories delegate to.
//
// The window close, after which incoming records are considered late
// and rejected, is windowEnd + afterWindowEnd.
//
// Parameters are validated in order: inactivityGap, maxSpan,
// afterWindowEnd. Each must be a whole number of milliseconds; the gap
// must be positive, the other two non-negative.
func OfInactivityGapMaxSpanAndGrace(inactivityGap, maxSpan, afterWindowEnd time.Duration) (SessionWindows, error) {
	gapMs, err := validatePositiveMillis(inactivityGap, "inactivityGap")
	if err != nil {
		return SessionWindows{}, err
	}
	maxSpanMs, err := validateNonNegativeMillis(maxSpan, "maxSpan")
	if err != nil {
		return SessionWindows{}, err
	}
	graceMs, err := validateNonNegativeMillis(afterWindowEnd, "afterWindowEnd")
	if err != nil {
		return SessionWindows{}, err
	}

	return SessionWindows{
		gapMs:     gapMs,
		maxSpanMs: maxSpanMs,
		graceMs:   graceMs,
	}, nil
}

// InactivityGap returns the gap of inactivity between sessions in
// milliseconds.
func (w SessionWindows) InactivityGap() int64 {
	return w.gapMs
}

// GracePeriod returns the grace period in milliseconds. The window
// close for late-arriving records is windowEnd + GracePeriod.
func (w SessionWindows) GracePeriod() int64 {
	return w.graceMs
}

// MaxSpan returns the upper bound on the total duration of a merged
// session, in milliseconds.
func (w SessionWindows) MaxSpan() int64 {
	return w.maxSpanMs
}

// Equal reports whether both specifications carry the same gap, max
// span, and grace period.
func (w SessionWindows) Equal(other SessionWindows) bool {
	return w == other
}

// Hash returns a digest of the three parameters, consistent with Equal:
// equal specifications always hash identically.
func (w SessionWindows) Hash() uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(w.gapMs))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(w.maxSpanMs))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(w.graceMs))

	h := fnv.New64a()
	h.Write(buf[:])
	return h.Sum64()
}

func (w SessionWindows) String() string {
	return fmt.Sprintf("SessionWindows{gapMs=%d, maxSpanMs=%d, graceMs=%d}",
		w.gapMs, w.maxSpanMs, w.graceMs)
}
