//go:build !linux

package ptimer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEverythingUnsupported(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = LookupSignal("INT")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = RTSignal(0)
	assert.ErrorIs(t, err, ErrUnsupported)

	var tm Timer
	assert.ErrorIs(t, tm.Start(10), ErrUnsupported)
	assert.ErrorIs(t, tm.Stop(), ErrUnsupported)
	assert.ErrorIs(t, tm.Close(), ErrUnsupported)
	_, err = tm.Status()
	assert.ErrorIs(t, err, ErrUnsupported)
}
