package ptimer

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Realtime signals are a contiguous kernel range whose bounds are a
// platform property, so RT offsets are resolved at runtime against
// these and never hard-coded by callers. Base 34 is the glibc
// convention (the first two kernel slots are reserved for the runtime).
const (
	sigRTMin = 34
	sigRTMax = 64
)

// Immutable name table, read-only after init. "EXIT" maps to 0 as a
// sentinel meaning "no real signal", mirroring kill(1) usage.
var sigList = map[string]int{
	"EXIT":   0,
	"HUP":    int(unix.SIGHUP),
	"INT":    int(unix.SIGINT),
	"QUIT":   int(unix.SIGQUIT),
	"ILL":    int(unix.SIGILL),
	"TRAP":   int(unix.SIGTRAP),
	"ABRT":   int(unix.SIGABRT),
	"IOT":    int(unix.SIGIOT),
	"FPE":    int(unix.SIGFPE),
	"KILL":   int(unix.SIGKILL),
	"BUS":    int(unix.SIGBUS),
	"SEGV":   int(unix.SIGSEGV),
	"SYS":    int(unix.SIGSYS),
	"PIPE":   int(unix.SIGPIPE),
	"ALRM":   int(unix.SIGALRM),
	"TERM":   int(unix.SIGTERM),
	"URG":    int(unix.SIGURG),
	"STOP":   int(unix.SIGSTOP),
	"TSTP":   int(unix.SIGTSTP),
	"CONT":   int(unix.SIGCONT),
	"CHLD":   int(unix.SIGCHLD),
	"CLD":    int(unix.SIGCLD),
	"TTIN":   int(unix.SIGTTIN),
	"TTOU":   int(unix.SIGTTOU),
	"IO":     int(unix.SIGIO),
	"XCPU":   int(unix.SIGXCPU),
	"XFSZ":   int(unix.SIGXFSZ),
	"VTALRM": int(unix.SIGVTALRM),
	"PROF":   int(unix.SIGPROF),
	"WINCH":  int(unix.SIGWINCH),
	"USR1":   int(unix.SIGUSR1),
	"USR2":   int(unix.SIGUSR2),
	"PWR":    int(unix.SIGPWR),
	"POLL":   int(unix.SIGPOLL),
}

// LookupSignal resolves a signal name to its platform number. The
// "SIG" prefix is optional. "EXIT" resolves to 0 (a sentinel, not an
// error). "RT<n>" resolves to the n-th realtime signal, range-checked
// against the platform maximum.
func LookupSignal(name string) (int, error) {
	nm := strings.TrimPrefix(name, "SIG")
	if signo, ok := sigList[nm]; ok {
		return signo, nil
	}

	// RT0 first: the generic path below rejects offset 0.
	if nm == "RT0" {
		return sigRTMin, nil
	}
	if strings.HasPrefix(nm, "RT") {
		n, err := strconv.Atoi(nm[2:])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: bad realtime signal %q", ErrArgument, name)
		}
		return RTSignal(n)
	}
	return 0, fmt.Errorf("%w: unsupported signal %q", ErrArgument, name)
}

// RTSignal returns the idx-th realtime signal number. idx 0 is the
// platform base. Fails when the result falls outside the realtime
// range.
func RTSignal(idx int) (int, error) {
	if idx < 0 || sigRTMin+idx > sigRTMax {
		return 0, fmt.Errorf("%w: realtime signal index %d out of range", ErrArgument, idx)
	}
	return sigRTMin + idx, nil
}

// resolve turns a SignalSpec into a concrete signal number. Raw
// numbers are accepted as-is but bounds-checked.
func (s SignalSpec) resolve() (int, error) {
	if !s.set {
		return 0, fmt.Errorf("%w: empty signal spec", ErrArgument)
	}
	if s.byNum {
		if s.num < 0 || s.num >= sigRTMax {
			return 0, fmt.Errorf("%w: invalid signal number %d", ErrArgument, s.num)
		}
		return s.num, nil
	}
	return LookupSignal(s.name)
}
