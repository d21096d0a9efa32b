package ptimer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// notifyContext pins the thread-delivery target for one timer. The
// fields are immutable after construction and the record is owned by
// exactly one Timer, released with it.
type notifyContext struct {
	tid   int32
	signo int32
}

// Timer owns one kernel interval timer slot and, in thread-delivery
// mode, its notifyContext. Not safe for concurrent use and must not
// be copied.
type Timer struct {
	noCopy

	k     kernelTimers
	id    int32
	valid bool

	clock ClockID
	signo int32 // 0 = no notification
	tctx  *notifyContext
	logf  LoggerFunc
}

// New creates a kernel timer. With no options it is bound to
// ClockRealtime and expiry delivers the alarm signal to the process.
func New(opts ...Option) (*Timer, error) {
	return newTimer(sysTimers{}, opts...)
}

func newTimer(k kernelTimers, opts ...Option) (*Timer, error) {
	t := &Timer{k: k, id: -1}
	if err := t.init(opts...); err != nil {
		return nil, err
	}
	return t, nil
}

// resolveNotify maps options onto a sigevent. A nil sigevent keeps
// the kernel default. Returns the signal that will actually be
// raised (0 when notification is off) and, for thread delivery, the
// context the Timer takes ownership of.
func resolveNotify(o *options) (*sigevent, int32, *notifyContext, error) {
	if o.noSignal && o.hasTID {
		// Explicit none does not silently upgrade to SIGALRM the way
		// an absent signal does.
		return nil, 0, nil, fmt.Errorf("%w: thread delivery with notification disabled", ErrArgument)
	}
	if o.noSignal {
		return &sigevent{notify: sigevNone}, 0, nil, nil
	}

	signo := int32(unix.SIGALRM)
	var sev *sigevent
	if o.signal.set {
		n, err := o.signal.resolve()
		if err != nil {
			return nil, 0, nil, err
		}
		if n <= 0 {
			return nil, 0, nil, fmt.Errorf("%w: signal %d cannot be raised", ErrArgument, n)
		}
		signo = int32(n)
		sev = &sigevent{notify: sigevSignal, signo: signo}
	}

	if o.hasTID {
		if o.threadID <= 0 {
			return nil, 0, nil, fmt.Errorf("%w: bad thread id %d", ErrArgument, o.threadID)
		}
		ctx := &notifyContext{tid: int32(o.threadID), signo: signo}
		sev = &sigevent{notify: sigevThreadID, signo: ctx.signo, tid: ctx.tid}
		return sev, signo, ctx, nil
	}
	return sev, signo, nil, nil
}

func (t *Timer) init(opts ...Option) error {
	o := newOptions(opts...)

	sev, signo, ctx, err := resolveNotify(&o)
	if err != nil {
		return err
	}
	id, err := t.k.create(o.clock, sev)
	if err != nil {
		return err
	}

	t.id = id
	t.valid = true
	t.clock = o.clock
	t.signo = signo
	t.tctx = ctx
	t.logf = o.logf
	t.debugf("created timer %d on %v signo=%d", id, o.clock, signo)
	return nil
}

// Reconfigure tears the current kernel timer (and any notification
// context) down and builds a fresh one from opts, so a handle can be
// reused without leaking timer slots. A delete failure is logged and
// does not stop the rebuild; the old slot is gone either way.
func (t *Timer) Reconfigure(opts ...Option) error {
	if t.valid {
		if err := t.k.delete(t.id); err != nil {
			t.debugf("reconfigure: delete timer %d: %v", t.id, err)
		}
		t.valid = false
		t.id = -1
		t.tctx = nil
	}
	return t.init(opts...)
}

// Start arms the timer to expire once after startMs milliseconds.
func (t *Timer) Start(startMs int64) error {
	return t.settime(startMs, 0)
}

// StartInterval arms the timer to expire after startMs milliseconds
// and then every intervalMs thereafter.
func (t *Timer) StartInterval(startMs, intervalMs int64) error {
	return t.settime(startMs, intervalMs)
}

// Stop disarms the timer without destroying it. Arming with all-zero
// values is how the kernel spells cancellation.
func (t *Timer) Stop() error {
	return t.settime(0, 0)
}

func (t *Timer) settime(startMs, intervalMs int64) error {
	if !t.valid {
		return ErrClosed
	}
	ts, err := newItimerSpec(startMs, intervalMs)
	if err != nil {
		return err
	}
	if err := t.k.settime(t.id, &ts); err != nil {
		return err
	}
	t.debugf("timer %d armed start=%dms interval=%dms", t.id, startMs, intervalMs)
	return nil
}

// Status reads the live kernel state: time to the next expiry and the
// recurrence interval, each as a (sec, nsec) pair.
func (t *Timer) Status() (TimerStatus, error) {
	var st TimerStatus
	if !t.valid {
		return st, ErrClosed
	}
	ts, err := t.k.gettime(t.id)
	if err != nil {
		return st, err
	}
	st.ValueSec = int64(ts.Value.Sec)
	st.ValueNsec = int64(ts.Value.Nsec)
	st.IntervalSec = int64(ts.Interval.Sec)
	st.IntervalNsec = int64(ts.Interval.Nsec)
	return st, nil
}

// Running reports whether the timer is armed, i.e. the time to the
// next expiry is non-zero.
func (t *Timer) Running() (bool, error) {
	st, err := t.Status()
	if err != nil {
		return false, err
	}
	return st.ValueSec != 0 || st.ValueNsec != 0, nil
}

// Overrun returns how many expirations were missed since the last
// delivered notification, per timer_getoverrun(2).
func (t *Timer) Overrun() (int, error) {
	if !t.valid {
		return 0, ErrClosed
	}
	return t.k.getoverrun(t.id)
}

// Signo returns the signal raised on expiry. ok is false when the
// timer was built with WithoutSignal.
func (t *Timer) Signo() (signo int, ok bool) {
	if t.signo <= 0 {
		return 0, false
	}
	return int(t.signo), true
}

// Clock returns the clock the timer was constructed with.
func (t *Timer) Clock() ClockID {
	return t.clock
}

// Close releases the kernel timer slot and then the notification
// context. The handle is invalid afterwards; any further operation
// returns ErrClosed. A kernel delete failure is still reported, but
// the context is released regardless.
func (t *Timer) Close() error {
	if !t.valid {
		return ErrClosed
	}
	err := t.k.delete(t.id)
	t.valid = false
	t.id = -1
	t.tctx = nil
	if err != nil {
		t.debugf("close: %v", err)
		return err
	}
	return nil
}

func (t *Timer) debugf(format string, args ...any) {
	if t.logf != nil {
		t.logf("ptimer: "+format, args...)
	}
}
