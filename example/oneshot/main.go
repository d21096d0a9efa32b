package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ptlabs/ptimer"
)

// Arms a periodic kernel timer that raises SIGUSR1 and prints the
// first three deliveries.
func main() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)

	tm, err := ptimer.New(ptimer.WithSignal(ptimer.SignalName("USR1")))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tm.Close()

	if err = tm.StartInterval(500, 1000); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	signo, _ := tm.Signo()
	fmt.Printf("armed on %v, waiting for signal %d\n", tm.Clock(), signo)

	for i := 0; i < 3; i++ {
		s := <-ch
		st, _ := tm.Status()
		fmt.Printf("got %v, next expiry in %d.%09ds\n", s, st.ValueSec, st.ValueNsec)
	}
	if err = tm.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	running, _ := tm.Running()
	fmt.Println("stopped, running =", running)
}
