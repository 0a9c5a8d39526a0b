package testfixtures

import (
	"sort"
	"sync"
	"time"
)

// Clock provides a controllable time source for tests. It also acts as a
// manual timer scheduler: callbacks registered with AfterFunc only run when
// Advance or Set moves the clock past their deadline.
type Clock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*manualTimer
	nextID  uint64
}

type manualTimer struct {
	id      uint64
	at      time.Time
	fn      func()
	stopped bool
}

// NewClock returns a clock initialised to the supplied time. When start is the
// zero value, the shared ReferenceTime is used.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set moves the clock to t and fires any timers that became due.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	due := c.collectDueLocked()
	c.mu.Unlock()
	run(due)
}

// Advance moves the clock forward, fires due timers in deadline order and
// returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	due := c.collectDueLocked()
	c.mu.Unlock()
	run(due)
	return updated
}

// AfterFunc schedules fn to run once the clock reaches now+d. The returned
// function cancels the timer and reports whether it was still pending.
func (c *Clock) AfterFunc(d time.Duration, fn func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	timer := &manualTimer{id: c.nextID, at: c.current.Add(d), fn: fn}
	c.timers = append(c.timers, timer)

	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, pending := range c.timers {
			if pending == timer {
				c.timers = append(c.timers[:i], c.timers[i+1:]...)
				timer.stopped = true
				return true
			}
		}
		return false
	}
}

// Pending returns how many timers are waiting to fire.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *Clock) collectDueLocked() []*manualTimer {
	var due, waiting []*manualTimer
	for _, timer := range c.timers {
		if timer.at.After(c.current) {
			waiting = append(waiting, timer)
			continue
		}
		due = append(due, timer)
	}
	c.timers = waiting

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].id < due[j].id
		}
		return due[i].at.Before(due[j].at)
	})
	return due
}

func run(timers []*manualTimer) {
	for _, timer := range timers {
		timer.fn()
	}
}
