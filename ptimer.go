// Package ptimer arms kernel interval timers (POSIX per-process timers)
// and configures how their expiry is delivered: as a signal to the
// process, as a signal aimed at one specific thread, or not at all, in
// which case the timer is purely pollable.
//
// A Timer owns exactly one kernel timer slot. Construction and Close
// must be paired; Reconfigure releases the previous slot before taking
// a new one, so repeated reconfiguration never leaks kernel resources.
//
// Only Linux has the timer_create(2) family. On other platforms every
// entry point returns ErrUnsupported.
package ptimer

// TimerStatus is the raw itimerspec read back from the kernel:
// time until the next expiry plus the recurrence interval.
type TimerStatus struct {
	ValueSec     int64
	ValueNsec    int64
	IntervalSec  int64
	IntervalNsec int64
}

// LoggerFunc receives debug traces when installed via WithLogger.
type LoggerFunc func(format string, args ...any)

// Detecting illegal struct copies using `go vet`
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
