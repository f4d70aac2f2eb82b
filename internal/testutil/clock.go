package testutil

import (
	"sort"
	"time"

	"github.com/atomicstack/pullmenu/internal/backend"
)

// Clock is a manual scheduler for tests. Tasks run only when the clock is
// advanced past their due time, in due-time then scheduling order.
type Clock struct {
	now   time.Duration
	seq   int
	tasks []*clockTask
}

type clockTask struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Schedule implements backend.Scheduler.
func (c *Clock) Schedule(delay time.Duration, fn func()) backend.CancelFunc {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	task := &clockTask{at: c.now + delay, seq: c.seq, fn: fn}
	c.tasks = append(c.tasks, task)
	return func() { task.cancelled = true }
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of tasks that are scheduled and not cancelled.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every task that became due,
// including tasks scheduled by those tasks. It returns how many ran.
func (c *Clock) Advance(d time.Duration) int {
	target := c.now + d
	ran := 0
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.cancelled = true
		next.fn()
		ran++
	}
	c.now = target
	c.compact()
	return ran
}

// Tick runs tasks scheduled with no delay.
func (c *Clock) Tick() int {
	return c.Advance(0)
}

func (c *Clock) nextDue(target time.Duration) *clockTask {
	var due []*clockTask
	for _, t := range c.tasks {
		if !t.cancelled && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (c *Clock) compact() {
	live := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	c.tasks = live
}
