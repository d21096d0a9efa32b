package ptimer

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// newItimerSpec expands millisecond durations into the two
// (sec, nsec) pairs timer_settime(2) takes: initial expiration and
// recurrence interval. intervalMs 0 yields a one-shot timer. A pure
// precondition check, no kernel interaction.
func newItimerSpec(startMs, intervalMs int64) (unix.ItimerSpec, error) {
	var ts unix.ItimerSpec
	if startMs < 0 || intervalMs < 0 {
		return ts, fmt.Errorf("%w: timer values must be 0 or positive", ErrArgument)
	}
	ts.Value = unix.NsecToTimespec(startMs * int64(time.Millisecond))
	ts.Interval = unix.NsecToTimespec(intervalMs * int64(time.Millisecond))
	return ts, nil
}
