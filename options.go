package ptimer

// ClockID selects the clock source that drives timer expiry.
// The constants are defined per platform in clock_linux.go / timer_stub.go.
type ClockID int32

// SignalSpec names the signal a timer delivers on expiry, either by
// name ("USR1", "SIGUSR1", "RT3") or by raw number. The zero value is
// not usable; build one with SignalName or SignalNumber.
type SignalSpec struct {
	name  string
	num   int
	byNum bool
	set   bool
}

// SignalName specifies a signal by name. The "SIG" prefix is optional.
func SignalName(name string) SignalSpec {
	return SignalSpec{name: name, set: true}
}

// SignalNumber specifies a signal by raw platform number.
func SignalNumber(n int) SignalSpec {
	return SignalSpec{num: n, byNum: true, set: true}
}

type options struct {
	clock    ClockID
	signal   SignalSpec // absent unless signal.set
	noSignal bool       // explicit none, distinct from absent
	threadID int
	hasTID   bool
	logf     LoggerFunc
}

// Option configures timer construction.
type Option func(*options)

// WithClock selects the clock source. Default is ClockRealtime.
func WithClock(id ClockID) Option {
	return func(o *options) {
		o.clock = id
	}
}

// WithSignal makes expiry deliver the given signal to the process.
func WithSignal(s SignalSpec) Option {
	return func(o *options) {
		o.signal = s
		o.noSignal = false
	}
}

// WithoutSignal disables expiry notification entirely; the timer can
// still be polled via Status/Running. This is an explicit "none", not
// the same as omitting WithSignal (which leaves the kernel default,
// the alarm signal, in place).
func WithoutSignal() Option {
	return func(o *options) {
		o.noSignal = true
		o.signal = SignalSpec{}
	}
}

// WithThreadID directs the expiry signal at one kernel thread instead
// of the whole process. tid is a kernel thread id as returned by
// CurrentThreadID. When no WithSignal is given the alarm signal is
// used. Combining WithThreadID with WithoutSignal is a configuration
// error.
func WithThreadID(tid int) Option {
	return func(o *options) {
		o.threadID = tid
		o.hasTID = true
	}
}

// WithLogger installs a debug trace sink. Silent when unset.
func WithLogger(logf LoggerFunc) Option {
	return func(o *options) {
		o.logf = logf
	}
}

func newOptions(optL ...Option) options {
	o := options{clock: ClockRealtime}
	for _, opt := range optL {
		opt(&o)
	}
	return o
}
