package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVirtualAccumulates(t *testing.T) {
	v := &Virtual{}
	v.Wait(200 * time.Millisecond)
	v.Wait(100 * time.Millisecond)
	assert.Equal(t, 300*time.Millisecond, v.Now())
	assert.Equal(t, 2, v.Waits())
}

func TestSleepBlocks(t *testing.T) {
	start := time.Now()
	Sleep{}.Wait(2 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
}
