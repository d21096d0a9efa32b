//go:build !linux

package ptimer

// Stand-in for platforms without the timer_create(2) family (notably
// darwin). The surface matches the Linux build so callers need no
// platform branches of their own; every operation reports
// ErrUnsupported and touches no kernel state.

// Clock ids keep their Linux values so cross-platform code can still
// name them; they are never handed to a kernel here.
const (
	ClockRealtime         = ClockID(0)
	ClockMonotonic        = ClockID(1)
	ClockProcessCPUTimeID = ClockID(2)
	ClockThreadCPUTimeID  = ClockID(3)
	ClockBoottime         = ClockID(7)
	ClockRealtimeAlarm    = ClockID(8)
	ClockBoottimeAlarm    = ClockID(9)
)

func (c ClockID) String() string {
	return "CLOCK_UNSUPPORTED"
}

// Timer is never constructible on this platform.
type Timer struct {
	noCopy
}

func New(opts ...Option) (*Timer, error) {
	return nil, ErrUnsupported
}

func (t *Timer) Reconfigure(opts ...Option) error { return ErrUnsupported }

func (t *Timer) Start(startMs int64) error { return ErrUnsupported }

func (t *Timer) StartInterval(startMs, intervalMs int64) error { return ErrUnsupported }

func (t *Timer) Stop() error { return ErrUnsupported }

func (t *Timer) Status() (TimerStatus, error) { return TimerStatus{}, ErrUnsupported }

func (t *Timer) Running() (bool, error) { return false, ErrUnsupported }

func (t *Timer) Overrun() (int, error) { return 0, ErrUnsupported }

func (t *Timer) Signo() (int, bool) { return 0, false }

func (t *Timer) Clock() ClockID { return ClockRealtime }

func (t *Timer) Close() error { return ErrUnsupported }

func LookupSignal(name string) (int, error) { return 0, ErrUnsupported }

func RTSignal(idx int) (int, error) { return 0, ErrUnsupported }

func CurrentThreadID() int { return 0 }
