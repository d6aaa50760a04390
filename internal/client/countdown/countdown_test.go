package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldown_CountsDownToZero(t *testing.T) {
	c := New(30)
	gen := c.Start()

	assert.Equal(t, 30, c.Remaining())
	assert.False(t, c.Permitted())

	for i := 0; i < 29; i++ {
		require.True(t, c.Tick(gen), "tick %d should request another tick", i)
	}
	assert.Equal(t, 1, c.Remaining())
	assert.False(t, c.Permitted())

	// The final tick reaches zero: resend becomes permitted exactly here.
	assert.False(t, c.Tick(gen))
	assert.Equal(t, 0, c.Remaining())
	assert.True(t, c.Permitted())
}

func TestCooldown_RemainingIsMonotonicallyNonIncreasing(t *testing.T) {
	c := New(5)
	gen := c.Start()

	prev := c.Remaining()
	for i := 0; i < 10; i++ {
		c.Tick(gen)
		cur := c.Remaining()
		require.LessOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, 0, c.Remaining())
}

func TestCooldown_ResetSnapsBackToFull(t *testing.T) {
	c := New(30)
	gen := c.Start()
	for i := 0; i < 10; i++ {
		c.Tick(gen)
	}
	require.Equal(t, 20, c.Remaining())

	gen2 := c.Reset()
	assert.Equal(t, 30, c.Remaining())
	assert.NotEqual(t, gen, gen2)

	// A tick scheduled before the reset must not decrement the fresh counter.
	assert.False(t, c.Tick(gen))
	assert.Equal(t, 30, c.Remaining())
}

func TestCooldown_CancelMakesTicksStale(t *testing.T) {
	c := New(30)
	gen := c.Start()
	c.Cancel()

	assert.False(t, c.Tick(gen))
	assert.Equal(t, 0, c.Remaining())
	assert.True(t, c.Permitted())
}

func TestCooldown_InactiveIsPermitted(t *testing.T) {
	c := New(30)
	assert.True(t, c.Permitted())
	assert.Equal(t, 0, c.Remaining())
	assert.False(t, c.Tick(0))
}
