package game

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown is the shared bomb timer for a round. It does not tick on
// its own; the host samples it when words come in and decides when it
// has run out. Remaining time shrinks only when a player overruns the
// grace period, so quick answers keep the round alive indefinitely.
//
// Grace and full length track the live settings, so mid-round setting
// changes take effect immediately.
type Countdown struct {
	settings *Settings
	clock    clockwork.Clock

	remaining time.Duration
	startedAt time.Time
}

func NewCountdown(settings *Settings, clock clockwork.Clock) *Countdown {
	return &Countdown{
		settings:  settings,
		clock:     clock,
		remaining: time.Duration(settings.Timer) * time.Second,
	}
}

func (c *Countdown) length() time.Duration {
	return time.Duration(c.settings.Timer) * time.Second
}

func (c *Countdown) grace() time.Duration {
	return time.Duration(c.settings.Grace) * time.Second
}

// Rearm restarts the per-turn stopwatch without touching the
// remaining time. Called on every turn change.
func (c *Countdown) Rearm() {
	c.startedAt = c.clock.Now()
}

// Disarm clears the stopwatch so elapsed time reads as zero.
func (c *Countdown) Disarm() {
	c.startedAt = time.Time{}
}

func (c *Countdown) Armed() bool {
	return !c.startedAt.IsZero()
}

// Elapsed is the time the current turn has been running.
func (c *Countdown) Elapsed() time.Duration {
	if !c.Armed() {
		return 0
	}
	return c.clock.Since(c.startedAt)
}

// Refill restores the full round length from settings.
func (c *Countdown) Refill() {
	c.remaining = c.length()
}

// OnWordUsed burns down the remaining time by however much of the
// elapsed turn exceeded the grace period. Both the overrun and the
// resulting remainder floor at zero.
func (c *Countdown) OnWordUsed(elapsed time.Duration) {
	overrun := elapsed - c.grace()
	if overrun < 0 {
		overrun = 0
	}
	c.remaining -= overrun
	if c.remaining < 0 {
		c.remaining = 0
	}
}

// OnExplode resets the timer for the next round of turns: full length
// restored, stopwatch cleared until the next turn starts.
func (c *Countdown) OnExplode() {
	c.Refill()
	c.Disarm()
}

func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// SecondsLeft is the longest the current turn could possibly last:
// whatever remains on the shared timer plus the grace period every
// turn gets for free.
func (c *Countdown) SecondsLeft() time.Duration {
	return c.remaining + c.grace()
}

// StartingTime is the fuse for the turn that is about to begin. It is
// the same quantity as SecondsLeft, named for when it is asked for.
func (c *Countdown) StartingTime() time.Duration {
	return c.remaining + c.grace()
}
