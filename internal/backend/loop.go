package backend

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a serialized execution context: every posted or scheduled callback
// runs on a single goroutine, in order. Hosts that receive input on several
// goroutines post their events here before they reach the pull controller.
type Loop struct {
	ctx    context.Context
	cancel context.CancelFunc

	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

// NewLoop starts a loop with the given queue depth.
func NewLoop(depth int) *Loop {
	if depth <= 0 {
		depth = 16
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan func(), depth),
		timers: make(map[*time.Timer]struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.tasks:
			// Stop may race with a queued task; drop it once cancelled.
			if l.ctx.Err() != nil {
				return
			}
			fn()
		}
	}
}

// Post queues fn. It reports false when the loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil || l.ctx.Err() != nil {
		return false
	}
	select {
	case <-l.ctx.Done():
		return false
	case l.tasks <- fn:
		return true
	}
}

// Schedule queues fn after delay. The returned CancelFunc prevents fn from
// running if it has not started yet.
func (l *Loop) Schedule(delay time.Duration, fn func()) CancelFunc {
	if fn == nil || l.ctx.Err() != nil {
		return noopCancel
	}
	var cancelled atomic.Bool
	task := func() {
		if !cancelled.Load() {
			fn()
		}
	}
	if delay <= 0 {
		if !l.Post(task) {
			return noopCancel
		}
		return func() { cancelled.Store(true) }
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx.Err() != nil {
		return noopCancel
	}
	// The callback reads timer only under l.mu, which is held until the
	// assignment and the registration below are done.
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		l.mu.Lock()
		delete(l.timers, timer)
		l.mu.Unlock()
		l.Post(task)
	})
	l.timers[timer] = struct{}{}

	return func() {
		cancelled.Store(true)
		if timer.Stop() {
			l.forget(timer)
		}
	}
}

func (l *Loop) forget(t *time.Timer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

// Stop cancels the loop and every pending timer. Callbacks already queued are
// discarded.
func (l *Loop) Stop() {
	l.cancel()
	l.mu.Lock()
	for t := range l.timers {
		t.Stop()
		delete(l.timers, t)
	}
	l.mu.Unlock()
}

// Wait blocks until the loop goroutine has exited. Call after Stop.
func (l *Loop) Wait() {
	l.wg.Wait()
}

// Do runs fn on the loop and waits for it to finish. It reports false when the
// loop stopped before fn could run.
func (l *Loop) Do(fn func()) bool {
	if fn == nil {
		return false
	}
	done := make(chan struct{})
	if !l.Post(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.ctx.Done():
		return false
	}
}
