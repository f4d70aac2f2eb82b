// Package backend holds the deferred-execution plumbing shared by pull
// controller hosts. Scheduler is what the controller and menu order consume.
// Loop is the serialized execution context for embedders that receive input
// on several goroutines; the bundled terminal host schedules through Bubble
// Tea ticks instead and does not use it.
package backend

import "time"

// CancelFunc cancels a scheduled task. Calling it after the task ran, or more
// than once, is a no-op.
type CancelFunc func()

// Scheduler runs deferred callbacks on the owner's sequential context.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) CancelFunc
}

// noopCancel is returned for tasks that were never queued.
func noopCancel() {}
