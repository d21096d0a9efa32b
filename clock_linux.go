package ptimer

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// Clock sources accepted by WithClock. Refer to clock_getres(2).
const (
	ClockRealtime         = ClockID(unix.CLOCK_REALTIME)
	ClockMonotonic        = ClockID(unix.CLOCK_MONOTONIC)
	ClockProcessCPUTimeID = ClockID(unix.CLOCK_PROCESS_CPUTIME_ID)
	ClockThreadCPUTimeID  = ClockID(unix.CLOCK_THREAD_CPUTIME_ID)

	// ClockBoottime counts time spent suspended; the *Alarm variants
	// additionally wake the system from suspend (CAP_WAKE_ALARM).
	ClockBoottime      = ClockID(unix.CLOCK_BOOTTIME)
	ClockRealtimeAlarm = ClockID(unix.CLOCK_REALTIME_ALARM)
	ClockBoottimeAlarm = ClockID(unix.CLOCK_BOOTTIME_ALARM)
)

func (c ClockID) String() string {
	switch c {
	case ClockRealtime:
		return "CLOCK_REALTIME"
	case ClockMonotonic:
		return "CLOCK_MONOTONIC"
	case ClockProcessCPUTimeID:
		return "CLOCK_PROCESS_CPUTIME_ID"
	case ClockThreadCPUTimeID:
		return "CLOCK_THREAD_CPUTIME_ID"
	case ClockBoottime:
		return "CLOCK_BOOTTIME"
	case ClockRealtimeAlarm:
		return "CLOCK_REALTIME_ALARM"
	case ClockBoottimeAlarm:
		return "CLOCK_BOOTTIME_ALARM"
	}
	return "CLOCK_" + strconv.Itoa(int(c))
}

// CurrentThreadID returns the caller's kernel thread id for use with
// WithThreadID. Pin the goroutine with runtime.LockOSThread first,
// otherwise the id may stop referring to the goroutine that asked.
func CurrentThreadID() int {
	return unix.Gettid()
}
