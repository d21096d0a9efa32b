package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ptlabs/ptimer"
)

// Directs the expiry signal at one pinned thread instead of the whole
// process (SIGEV_THREAD_ID under the hood).
func main() {
	runtime.LockOSThread()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR2)

	tm, err := ptimer.New(
		ptimer.WithClock(ptimer.ClockMonotonic),
		ptimer.WithSignal(ptimer.SignalName("USR2")),
		ptimer.WithThreadID(ptimer.CurrentThreadID()),
		ptimer.WithLogger(func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tm.Close()

	if err = tm.Start(200); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("waiting on thread %d\n", ptimer.CurrentThreadID())
	fmt.Println("got", <-ch)
}
