package ptimer

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/sys/unix"
)

// fakeKernel stands in for the timer_create(2) family so tests can
// count live kernel resources and inspect the sigevent handed over.
type fakeKernel struct {
	nextID  int32
	live    map[int32]unix.ItimerSpec
	created int
	deleted int

	lastSev   *sigevent
	sawNilSev bool
}

func newFakeKernel() *fakeKernel {
	return &fakeKernel{live: map[int32]unix.ItimerSpec{}}
}

func (f *fakeKernel) create(clock ClockID, sev *sigevent) (int32, error) {
	if sev == nil {
		f.sawNilSev = true
		f.lastSev = nil
	} else {
		cp := *sev
		f.lastSev = &cp
	}
	id := f.nextID
	f.nextID++
	f.live[id] = unix.ItimerSpec{}
	f.created++
	return id, nil
}

func (f *fakeKernel) settime(id int32, ts *unix.ItimerSpec) error {
	if _, ok := f.live[id]; !ok {
		return syscall.EINVAL
	}
	f.live[id] = *ts
	return nil
}

func (f *fakeKernel) gettime(id int32) (unix.ItimerSpec, error) {
	ts, ok := f.live[id]
	if !ok {
		return ts, syscall.EINVAL
	}
	return ts, nil
}

func (f *fakeKernel) getoverrun(id int32) (int, error) {
	if _, ok := f.live[id]; !ok {
		return 0, syscall.EINVAL
	}
	return 0, nil
}

func (f *fakeKernel) delete(id int32) error {
	if _, ok := f.live[id]; !ok {
		return syscall.EINVAL
	}
	delete(f.live, id)
	f.deleted++
	return nil
}

func TestDefaultNotification(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk)
	require.NoError(t, err)

	// Absent signal means kernel default: nil sigevent, SIGALRM.
	assert.True(t, fk.sawNilSev)
	signo, ok := tm.Signo()
	assert.True(t, ok)
	assert.Equal(t, int(unix.SIGALRM), signo)
	assert.Equal(t, ClockRealtime, tm.Clock())
	assert.Nil(t, tm.tctx)
	assert.NoError(t, tm.Close())
}

func TestNoSignalNotification(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithoutSignal(), WithClock(ClockMonotonic))
	require.NoError(t, err)

	require.NotNil(t, fk.lastSev)
	assert.EqualValues(t, sigevNone, fk.lastSev.notify)

	_, ok := tm.Signo()
	assert.False(t, ok)
	assert.Equal(t, ClockMonotonic, tm.Clock())
	assert.NoError(t, tm.Close())
}

func TestSignalNotification(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithSignal(SignalName("USR1")))
	require.NoError(t, err)

	require.NotNil(t, fk.lastSev)
	assert.EqualValues(t, sigevSignal, fk.lastSev.notify)
	assert.EqualValues(t, unix.SIGUSR1, fk.lastSev.signo)

	signo, ok := tm.Signo()
	assert.True(t, ok)
	assert.Equal(t, int(unix.SIGUSR1), signo)
	assert.NoError(t, tm.Close())
}

func TestThreadNotification(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithThreadID(1234), WithSignal(SignalName("USR2")))
	require.NoError(t, err)

	require.NotNil(t, fk.lastSev)
	assert.EqualValues(t, sigevThreadID, fk.lastSev.notify)
	assert.EqualValues(t, unix.SIGUSR2, fk.lastSev.signo)
	assert.EqualValues(t, 1234, fk.lastSev.tid)

	require.NotNil(t, tm.tctx)
	assert.EqualValues(t, 1234, tm.tctx.tid)
	assert.EqualValues(t, unix.SIGUSR2, tm.tctx.signo)

	assert.NoError(t, tm.Close())
	assert.Nil(t, tm.tctx)
}

func TestThreadNotificationDefaultsToAlarm(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithThreadID(1234))
	require.NoError(t, err)

	require.NotNil(t, fk.lastSev)
	assert.EqualValues(t, sigevThreadID, fk.lastSev.notify)
	assert.EqualValues(t, unix.SIGALRM, fk.lastSev.signo)
	assert.NoError(t, tm.Close())
}

func TestBadNotificationOptions(t *testing.T) {
	fk := newFakeKernel()

	// Explicit none plus a thread target is contradictory.
	_, err := newTimer(fk, WithoutSignal(), WithThreadID(1234))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = newTimer(fk, WithThreadID(0))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = newTimer(fk, WithSignal(SignalName("NOSUCHSIGNAL")))
	assert.ErrorIs(t, err, ErrArgument)

	// EXIT resolves to the 0 sentinel, which cannot be raised.
	_, err = newTimer(fk, WithSignal(SignalName("EXIT")))
	assert.ErrorIs(t, err, ErrArgument)

	// Nothing reached the kernel.
	assert.Equal(t, 0, fk.created)
	assert.Empty(t, fk.live)
}

func TestStartStop(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithoutSignal())
	require.NoError(t, err)

	require.NoError(t, tm.StartInterval(1500, 250))
	st, err := tm.Status()
	require.NoError(t, err)
	assert.Equal(t, TimerStatus{ValueSec: 1, ValueNsec: 500_000_000, IntervalNsec: 250_000_000}, st)

	running, err := tm.Running()
	require.NoError(t, err)
	assert.True(t, running)

	require.NoError(t, tm.Stop())
	st, err = tm.Status()
	require.NoError(t, err)
	assert.Equal(t, TimerStatus{}, st)

	running, err = tm.Running()
	require.NoError(t, err)
	assert.False(t, running)

	assert.NoError(t, tm.Close())
}

func TestStartRejectsNegative(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithoutSignal())
	require.NoError(t, err)

	assert.ErrorIs(t, tm.Start(-1), ErrArgument)
	assert.ErrorIs(t, tm.StartInterval(0, -1), ErrArgument)

	// Validation failed before the kernel was involved.
	st, err := tm.Status()
	require.NoError(t, err)
	assert.Equal(t, TimerStatus{}, st)
	assert.NoError(t, tm.Close())
}

func TestReconfigureDoesNotLeak(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithThreadID(1234))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		require.NoError(t, tm.Reconfigure(WithThreadID(1234), WithSignal(SignalName("USR1"))))
		assert.Len(t, fk.live, 1)
		require.NotNil(t, tm.tctx)
	}
	assert.Equal(t, 51, fk.created)
	assert.Equal(t, 50, fk.deleted)

	require.NoError(t, tm.Close())
	assert.Empty(t, fk.live)
}

func TestReconfigureSwitchesMode(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithThreadID(1234))
	require.NoError(t, err)
	require.NotNil(t, tm.tctx)

	require.NoError(t, tm.Reconfigure(WithoutSignal()))
	assert.Nil(t, tm.tctx)
	_, ok := tm.Signo()
	assert.False(t, ok)
	assert.NoError(t, tm.Close())
}

func TestClosedTimer(t *testing.T) {
	fk := newFakeKernel()
	tm, err := newTimer(fk, WithoutSignal())
	require.NoError(t, err)
	require.NoError(t, tm.Close())

	assert.ErrorIs(t, tm.Start(10), ErrClosed)
	assert.ErrorIs(t, tm.Stop(), ErrClosed)
	_, err = tm.Status()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = tm.Running()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = tm.Overrun()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, tm.Close(), ErrClosed)
}

// The tests below exercise the real kernel.

func TestKernelPollableTimer(t *testing.T) {
	tm, err := New(WithoutSignal(), WithClock(ClockMonotonic))
	require.NoError(t, err)
	defer tm.Close()

	require.NoError(t, tm.Start(5000))
	running, err := tm.Running()
	require.NoError(t, err)
	assert.True(t, running)

	st, err := tm.Status()
	require.NoError(t, err)
	assert.True(t, st.ValueSec != 0 || st.ValueNsec != 0)

	require.NoError(t, tm.Stop())
	running, err = tm.Running()
	require.NoError(t, err)
	assert.False(t, running)

	st, err = tm.Status()
	require.NoError(t, err)
	assert.Equal(t, TimerStatus{}, st)
}

func TestKernelRejectsBadClock(t *testing.T) {
	_, err := New(WithClock(ClockID(9999)))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrArgument)
}

func TestKernelSignalDelivery(t *testing.T) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGUSR1)
	defer signal.Stop(ch)

	tm, err := New(WithSignal(SignalName("USR1")))
	require.NoError(t, err)
	defer tm.Close()

	require.NoError(t, tm.Start(50))
	select {
	case got := <-ch:
		assert.Equal(t, unix.SIGUSR1, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no SIGUSR1 within 2s")
	}
}

func TestKernelThreadSignalDelivery(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGUSR2)
	defer signal.Stop(ch)

	tm, err := New(WithSignal(SignalName("USR2")), WithThreadID(CurrentThreadID()))
	require.NoError(t, err)
	defer tm.Close()

	require.NoError(t, tm.Start(50))
	select {
	case got := <-ch:
		assert.Equal(t, unix.SIGUSR2, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no SIGUSR2 within 2s")
	}
}
