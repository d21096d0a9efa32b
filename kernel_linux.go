package ptimer

import (
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// sigev_notify values, asm-generic/siginfo.h. SIGEV_THREAD_ID is the
// kernel-level "deliver straight to one thread" mode; glibc does not
// expose it, which is why the struct below is laid out by hand.
const (
	sigevSignal   = 0
	sigevNone     = 1
	sigevThreadID = 4
)

// Mirrors the kernel struct sigevent ABI (SIGEV_MAX_SIZE, 64 bytes).
// tid occupies the first slot of the _sigev_un union.
type sigevent struct {
	value  uintptr // sigev_value, unused here
	signo  int32
	notify int32
	tid    int32
	_      [64 - unsafe.Sizeof(uintptr(0)) - 12]byte
}

func errnoErr(e syscall.Errno) error {
	switch e {
	case 0:
		return nil
	case unix.EAGAIN:
		return syscall.EAGAIN
	case unix.EINVAL:
		return syscall.EINVAL
	case unix.ENOENT:
		return syscall.ENOENT
	}
	return e
}

// kernelTimers is the timer_create(2) syscall family. Narrow on
// purpose so tests can count live kernel resources with a fake.
type kernelTimers interface {
	create(clock ClockID, sev *sigevent) (int32, error)
	settime(id int32, ts *unix.ItimerSpec) error
	gettime(id int32) (unix.ItimerSpec, error)
	getoverrun(id int32) (int, error)
	delete(id int32) error
}

// sysTimers calls the real kernel. x/sys/unix has no wrappers for the
// per-process timer family, only the syscall numbers.
type sysTimers struct{}

func (sysTimers) create(clock ClockID, sev *sigevent) (int32, error) {
	var id int32
	// A nil sigevent keeps the kernel default: SIGALRM to the process.
	_, _, e1 := unix.Syscall(unix.SYS_TIMER_CREATE,
		uintptr(clock), uintptr(unsafe.Pointer(sev)), uintptr(unsafe.Pointer(&id)))
	if e1 != 0 {
		return -1, os.NewSyscallError("timer_create", errnoErr(e1))
	}
	return id, nil
}

func (sysTimers) settime(id int32, ts *unix.ItimerSpec) error {
	_, _, e1 := unix.Syscall6(unix.SYS_TIMER_SETTIME,
		uintptr(id), 0, uintptr(unsafe.Pointer(ts)), 0, 0, 0)
	if e1 != 0 {
		return os.NewSyscallError("timer_settime", errnoErr(e1))
	}
	return nil
}

func (sysTimers) gettime(id int32) (unix.ItimerSpec, error) {
	var ts unix.ItimerSpec
	_, _, e1 := unix.Syscall(unix.SYS_TIMER_GETTIME,
		uintptr(id), uintptr(unsafe.Pointer(&ts)), 0)
	if e1 != 0 {
		return ts, os.NewSyscallError("timer_gettime", errnoErr(e1))
	}
	return ts, nil
}

func (sysTimers) getoverrun(id int32) (int, error) {
	n, _, e1 := unix.Syscall(unix.SYS_TIMER_GETOVERRUN, uintptr(id), 0, 0)
	if e1 != 0 {
		return 0, os.NewSyscallError("timer_getoverrun", errnoErr(e1))
	}
	return int(n), nil
}

func (sysTimers) delete(id int32) error {
	_, _, e1 := unix.Syscall(unix.SYS_TIMER_DELETE, uintptr(id), 0, 0)
	if e1 != 0 {
		return os.NewSyscallError("timer_delete", errnoErr(e1))
	}
	return nil
}
