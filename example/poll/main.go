package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ptlabs/ptimer"
)

// A timer with notification disabled is purely pollable: no signal is
// ever raised, callers watch Status/Running instead.
func main() {
	tm, err := ptimer.New(
		ptimer.WithoutSignal(),
		ptimer.WithClock(ptimer.ClockMonotonic),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tm.Close()

	if err = tm.Start(300); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for {
		running, err := tm.Running()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if !running {
			fmt.Println("expired")
			return
		}
		st, _ := tm.Status()
		fmt.Printf("remaining %d.%09ds\n", st.ValueSec, st.ValueNsec)
		time.Sleep(50 * time.Millisecond)
	}
}
