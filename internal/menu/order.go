package menu

import (
	"time"

	"github.com/atomicstack/pullmenu/internal/backend"
	"github.com/atomicstack/pullmenu/internal/logging/events"
)

// DefaultReorderDelay lets a release animation settle before the strip is
// redrawn in its new order.
const DefaultReorderDelay = 200 * time.Millisecond

// Observer receives the label order after a debounced reorder.
type Observer func(labels []string)

// Order is the ordered list of pull menu labels. Selecting a label moves it to
// the front; observers hear about the new order after a short delay. A second
// selection before the delay elapses replaces the pending notification, so
// observers only see the latest order.
type Order struct {
	labels    []string
	sched     backend.Scheduler
	delay     time.Duration
	observers []Observer
	pending   backend.CancelFunc
	stopped   bool
}

// NewOrder copies labels into a new order.
func NewOrder(labels []string, sched backend.Scheduler, delay time.Duration) *Order {
	if delay < 0 {
		delay = 0
	}
	return &Order{
		labels: cloneLabels(labels),
		sched:  sched,
		delay:  delay,
	}
}

// Len returns the number of labels.
func (o *Order) Len() int {
	if o == nil {
		return 0
	}
	return len(o.labels)
}

// Labels returns a copy of the current order.
func (o *Order) Labels() []string {
	if o == nil {
		return nil
	}
	return cloneLabels(o.labels)
}

// Label returns the label at index i.
func (o *Order) Label(i int) (string, bool) {
	if o == nil || i < 0 || i >= len(o.labels) {
		return "", false
	}
	return o.labels[i], true
}

// Observe registers fn for reorder notifications.
func (o *Order) Observe(fn Observer) {
	if fn == nil {
		return
	}
	o.observers = append(o.observers, fn)
}

// Select promotes the label at index i to the front and schedules the
// observer notification. Out of range indices are ignored.
func (o *Order) Select(i int) bool {
	if o == nil || o.stopped || i < 0 || i >= len(o.labels) {
		return false
	}
	label := o.labels[i]
	events.Menu.Select(i, label)
	copy(o.labels[1:i+1], o.labels[:i])
	o.labels[0] = label
	o.schedule()
	return true
}

// Restore replaces the order with labels when they are a permutation of the
// current labels. It does not notify observers.
func (o *Order) Restore(labels []string) bool {
	if o == nil || !samePermutation(o.labels, labels) {
		return false
	}
	o.labels = cloneLabels(labels)
	return true
}

// Pending reports whether a notification is scheduled.
func (o *Order) Pending() bool {
	return o != nil && o.pending != nil
}

// Stop cancels any pending notification; later selections are ignored.
func (o *Order) Stop() {
	if o == nil {
		return
	}
	o.stopped = true
	o.cancelPending()
}

func (o *Order) schedule() {
	o.cancelPending()
	if o.sched == nil {
		o.notify()
		return
	}
	o.pending = o.sched.Schedule(o.delay, func() {
		o.pending = nil
		if o.stopped {
			return
		}
		o.notify()
	})
}

func (o *Order) cancelPending() {
	if o.pending != nil {
		o.pending()
		o.pending = nil
	}
}

func (o *Order) notify() {
	labels := cloneLabels(o.labels)
	events.Menu.Reorder(labels)
	for _, fn := range o.observers {
		fn(cloneLabels(labels))
	}
}

func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}

func cloneLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	dup := make([]string, len(labels))
	copy(dup, labels)
	return dup
}
