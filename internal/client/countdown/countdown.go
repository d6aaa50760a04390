// Package countdown implements the cooldown state machine behind
// rate-limited actions such as "resend code". It holds no goroutines and no
// timers of its own: the owner schedules ticks (tea.Tick in the UI, manual
// calls in tests) and the generation counter lets it drop ticks scheduled
// before the most recent Start/Reset/Cancel. That keeps the whole thing on
// the single UI thread.
package countdown

// Cooldown counts seconds down from a fixed starting value. The action it
// guards becomes permitted exactly when the counter reaches zero.
type Cooldown struct {
	seconds    int
	remaining  int
	active     bool
	generation int
}

// New returns an inactive Cooldown that counts down from seconds.
func New(seconds int) *Cooldown {
	return &Cooldown{seconds: seconds}
}

// Start arms the countdown at its full value and returns the generation to
// tag scheduled ticks with.
func (c *Cooldown) Start() int {
	c.remaining = c.seconds
	c.active = true
	c.generation++
	return c.generation
}

// Reset is Start under a different name, for call sites where the countdown
// is already running and the counter must snap back to full.
func (c *Cooldown) Reset() int {
	return c.Start()
}

// Cancel disarms the countdown. Ticks from earlier generations become stale.
func (c *Cooldown) Cancel() {
	c.active = false
	c.generation++
}

// Tick consumes one scheduled tick of the given generation and decrements
// the counter, clamping at zero. It reports whether another tick should be
// scheduled: false for stale generations, inactive countdowns, and once the
// counter has hit zero.
func (c *Cooldown) Tick(generation int) bool {
	if !c.active || generation != c.generation {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining > 0
}

// Remaining returns the seconds left; zero when expired or never started.
func (c *Cooldown) Remaining() int {
	if !c.active {
		return 0
	}
	return c.remaining
}

// Permitted reports whether the guarded action is allowed: the countdown is
// not running, or it has reached zero.
func (c *Cooldown) Permitted() bool {
	return !c.active || c.remaining == 0
}

// Generation returns the current generation for tagging scheduled ticks.
func (c *Cooldown) Generation() int {
	return c.generation
}
