package ptimer

import "errors"

var (
	// ErrArgument reports malformed caller input: a negative duration,
	// an unknown signal name, a realtime index outside the platform
	// range. Raised before any kernel call.
	ErrArgument = errors.New("ptimer: invalid argument")

	// ErrUnsupported is returned by every operation on platforms
	// without the timer_create(2) family.
	ErrUnsupported = errors.New("ptimer: interval timers not supported on this platform")

	// ErrClosed is returned when a Timer is used after Close.
	ErrClosed = errors.New("ptimer: timer closed")
)
