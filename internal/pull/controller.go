package pull

import (
	"errors"

	"github.com/atomicstack/pullmenu/internal/backend"
	"github.com/atomicstack/pullmenu/internal/band"
	"github.com/atomicstack/pullmenu/internal/gesture"
	"github.com/atomicstack/pullmenu/internal/logging"
	"github.com/atomicstack/pullmenu/internal/logging/events"
	"github.com/atomicstack/pullmenu/internal/menu"
)

// ErrDestroyed is returned by every operation on a destroyed controller.
var ErrDestroyed = errors.New("pull controller destroyed")

// State is the controller's interaction state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateRefreshing
	// StateMinimized is a cosmetic sub-state of refreshing.
	StateMinimized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateRefreshing:
		return "refreshing"
	case StateMinimized:
		return "minimized"
	default:
		return "unknown"
	}
}

// Controller owns the pull interaction: it feeds samples to the gesture
// tracker, turns the resulting signals into header commands and refreshes, and
// consults the band mapper for menu selection. It is not safe for concurrent
// use; hosts serialize every call onto one context.
type Controller struct {
	regions *gesture.Registry
	tracker *gesture.Tracker
	header  Header
	order   *menu.Order
	sched   backend.Scheduler
	opts    Options

	onRefresh    RefreshListener
	onVisibility VisibilityListener

	state          State
	headerVisible  bool
	indicator      int
	cancelMinimize backend.CancelFunc
	destroyed      bool
}

// New builds a controller. header may be nil; sched runs the deferred
// minimize transition and must be the host's sequential scheduler.
func New(header Header, order *menu.Order, sched backend.Scheduler, opts Options) *Controller {
	if header == nil {
		header = nopHeader{}
	}
	if order == nil {
		order = menu.NewOrder(nil, sched, menu.DefaultReorderDelay)
	}
	regions := gesture.NewRegistry()
	c := &Controller{
		regions: regions,
		header:  header,
		order:   order,
		sched:   sched,
		opts:    opts,
		tracker: gesture.NewTracker(regions, gesture.Config{
			TouchSlop:             opts.TouchSlop,
			RefreshScrollDistance: opts.RefreshScrollDistance,
		}),
	}
	c.tracker.SetBusy(c.IsRefreshing)
	return c
}

// SetRefreshListener installs the application callback. Gestures cannot start
// a refresh without one.
func (c *Controller) SetRefreshListener(fn RefreshListener) {
	c.onRefresh = fn
}

// SetVisibilityListener installs a header visibility callback.
func (c *Controller) SetVisibilityListener(fn VisibilityListener) {
	c.onVisibility = fn
}

// AddRegion registers a pullable region. A nil capability selects the
// built-in one for the region's type. Nil regions are logged and ignored.
func (c *Controller) AddRegion(r gesture.Region, capability gesture.Capability) error {
	if c.destroyed {
		return c.fail("add-region")
	}
	if err := c.regions.Add(r, capability); err != nil {
		logging.Region.Error(err)
	}
	return nil
}

// UseCapability replaces the capability of every registered region matched by
// match, so callers can override the built-in choice for a kind of region.
func (c *Controller) UseCapability(match func(gesture.Region) bool, capability gesture.Capability) error {
	if c.destroyed {
		return c.fail("use-capability")
	}
	c.regions.Override(match, capability)
	return nil
}

// ClearRegions drops every registered region.
func (c *Controller) ClearRegions() error {
	if c.destroyed {
		return c.fail("clear-regions")
	}
	c.regions.Clear()
	return nil
}

// Regions exposes the region registry.
func (c *Controller) Regions() *gesture.Registry {
	return c.regions
}

// Order returns the menu order the controller selects from.
func (c *Controller) Order() *menu.Order {
	return c.order
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// IsRefreshing reports whether a refresh is running (minimized or not).
func (c *Controller) IsRefreshing() bool {
	return c.state == StateRefreshing || c.state == StateMinimized
}

// Indicator returns the last indicator percent computed while dragging.
func (c *Controller) Indicator() int {
	return c.indicator
}

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool {
	return c.destroyed
}

// TryClaim feeds s through the interception phase and reports whether the
// gesture is now claimed as a pull.
func (c *Controller) TryClaim(s gesture.Sample) (bool, error) {
	if c.destroyed {
		return false, c.fail("try-claim")
	}
	claimed, sig := c.tracker.TryClaim(s)
	c.apply(sig)
	return claimed, nil
}

// Consume feeds s through the consumption phase and reports whether it was
// used.
func (c *Controller) Consume(s gesture.Sample) (bool, error) {
	if c.destroyed {
		return false, c.fail("consume")
	}
	used, sig := c.tracker.Consume(s)
	c.apply(sig)
	return used, nil
}

// Handle feeds s through a single event path and reports whether the sample
// belongs to a pull; unclaimed samples should reach the underlying content.
func (c *Controller) Handle(s gesture.Sample) (bool, error) {
	if c.destroyed {
		return false, c.fail("handle")
	}
	claimed, sig := c.tracker.Handle(s)
	c.apply(sig)
	return claimed || sig.Kind != gesture.SignalNone, nil
}

// Abort cancels a drag in progress without refreshing.
func (c *Controller) Abort() error {
	if c.destroyed {
		return c.fail("abort")
	}
	sig := c.tracker.Abort()
	if sig.Kind != gesture.SignalNone {
		events.Pull.Abort()
	}
	c.apply(sig)
	return nil
}

// SetRefreshing starts or stops a refresh programmatically. Setting the state
// it is already in is a no-op. Programmatic refreshes do not call the refresh
// listener.
func (c *Controller) SetRefreshing(refreshing bool) error {
	if c.destroyed {
		return c.fail("set-refreshing")
	}
	c.setRefreshing(nil, refreshing, false)
	return nil
}

// SetRefreshComplete ends the running refresh and hides the header.
func (c *Controller) SetRefreshComplete() error {
	if c.destroyed {
		return c.fail("set-refresh-complete")
	}
	if c.IsRefreshing() {
		events.Pull.Complete()
	}
	c.setRefreshing(nil, false, false)
	return nil
}

// Destroy tears the controller down: pending minimize and reorder tasks are
// cancelled, the drag session is dropped and regions are cleared. No header
// command is issued afterwards.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.cancelMinimizeTask()
	c.order.Stop()
	c.tracker.Reset()
	c.regions.Clear()
	c.onRefresh = nil
	c.onVisibility = nil
	c.header = nopHeader{}
	c.destroyed = true
	events.Pull.Destroy()
}

func (c *Controller) fail(op string) error {
	events.Pull.Destroyed(op)
	return ErrDestroyed
}

func (c *Controller) apply(sig gesture.Signal) {
	switch sig.Kind {
	case gesture.SignalDragStart:
		c.dragStarted()
	case gesture.SignalDragProgress:
		c.dragProgress(sig)
	case gesture.SignalDragReleased:
		c.dragReleased(sig)
	case gesture.SignalDragCancelled:
		c.dragCancelled()
	}
}

func (c *Controller) dragStarted() {
	c.state = StateDragging
	c.indicator = 0
	c.showHeader()
}

func (c *Controller) dragProgress(sig gesture.Signal) {
	if sig.Percent < 1 {
		c.header.OnPulled(sig.Percent)
		c.indicator = band.Indicator(sig.Percent, c.opts.Curve)
		c.header.OnIndicator(band.Map(c.indicator, c.order.Len()))
		return
	}
	if c.opts.RefreshOnUp {
		c.header.OnReleaseToRefresh()
		return
	}
	c.setRefreshing(sig.Region, true, true)
}

func (c *Controller) dragReleased(sig gesture.Signal) {
	p := sig.Percent
	indicator := band.Indicator(p, c.opts.Curve)
	index := band.Map(indicator, c.order.Len())
	switch {
	case c.opts.RefreshOnUp && p >= 1:
		events.Pull.Release(p, indicator, events.ReleaseRefresh)
		c.setRefreshing(sig.Region, true, true)
	case index != band.NoSelection && !c.IsRefreshing():
		events.Pull.Release(p, indicator, events.ReleaseMenu)
		c.menuRefresh(sig.Region, index)
	case p >= 1:
		events.Pull.Release(p, indicator, events.ReleaseNoOp)
	default:
		events.Pull.Release(p, indicator, events.ReleaseBelowLimit)
		c.pullEnded()
	}
}

func (c *Controller) dragCancelled() {
	if c.IsRefreshing() {
		return
	}
	c.reset()
}

func (c *Controller) pullEnded() {
	if !c.IsRefreshing() {
		c.reset()
	}
}

func (c *Controller) menuRefresh(region gesture.Region, index int) {
	label, ok := c.order.Label(index)
	if !ok || !c.canRefresh(true) {
		events.Pull.RefreshRejected("no listener")
		c.reset()
		return
	}
	c.tracker.Reset()
	c.enterRefreshing()
	events.Pull.Refresh(index, label, true)
	c.onRefresh(region, index, label)
	// The listener sees the order the user picked from.
	c.order.Select(index)
}

func (c *Controller) setRefreshing(region gesture.Region, refreshing, fromTouch bool) {
	if c.IsRefreshing() == refreshing {
		return
	}
	c.tracker.Reset()
	if refreshing && c.canRefresh(fromTouch) {
		c.startRefresh(region, fromTouch)
		return
	}
	if refreshing {
		events.Pull.RefreshRejected("no listener")
	}
	c.reset()
}

func (c *Controller) canRefresh(fromTouch bool) bool {
	return !c.IsRefreshing() && (!fromTouch || c.onRefresh != nil)
}

func (c *Controller) startRefresh(region gesture.Region, fromTouch bool) {
	c.enterRefreshing()
	events.Pull.Refresh(-1, "", fromTouch)
	if fromTouch && c.onRefresh != nil {
		c.onRefresh(region, -1, "")
	}
}

func (c *Controller) enterRefreshing() {
	c.state = StateRefreshing
	c.header.OnRefreshStarted()
	c.showHeader()
	c.scheduleMinimize()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.indicator = 0
	c.cancelMinimizeTask()
	c.hideHeader()
}

func (c *Controller) scheduleMinimize() {
	if !c.opts.MinimizeEnabled || c.sched == nil {
		return
	}
	c.cancelMinimizeTask()
	c.cancelMinimize = c.sched.Schedule(c.opts.MinimizeDelay, c.minimize)
}

func (c *Controller) cancelMinimizeTask() {
	if c.cancelMinimize != nil {
		c.cancelMinimize()
		c.cancelMinimize = nil
	}
}

func (c *Controller) minimize() {
	c.cancelMinimize = nil
	if c.destroyed || c.state != StateRefreshing {
		return
	}
	c.state = StateMinimized
	events.Pull.Minimize()
	c.header.OnRefreshMinimized()
	c.notifyVisibility(VisibilityMinimized)
}

func (c *Controller) showHeader() {
	if c.headerVisible {
		return
	}
	c.headerVisible = true
	c.header.OnHeaderShow()
	c.notifyVisibility(VisibilityShown)
}

func (c *Controller) hideHeader() {
	if !c.headerVisible {
		return
	}
	c.headerVisible = false
	c.header.OnHeaderHide()
	c.header.OnReset()
	c.notifyVisibility(VisibilityHidden)
}

func (c *Controller) notifyVisibility(v Visibility) {
	if c.onVisibility != nil {
		c.onVisibility(v)
	}
}
