package gesture

import (
	"math"

	"github.com/atomicstack/pullmenu/internal/logging/events"
)

// Phase is the pointer phase of a sample.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Sample is one raw pointer event in screen coordinates.
type Sample struct {
	X, Y  float64
	Phase Phase
}

// SignalKind identifies the high-level gesture signal produced by a sample.
type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalDragStart
	SignalDragProgress
	SignalDragReleased
	SignalDragCancelled
)

// Signal is the tracker's output for one sample.
type Signal struct {
	Kind SignalKind
	// Percent is the pull fraction in [0, 1]. Released signals carry the last
	// fraction reported while dragging.
	Percent float64
	Region  Region
	X, Y    float64
}

// Config holds the tracker tunables.
type Config struct {
	// TouchSlop is the vertical travel needed before a touch becomes a drag.
	TouchSlop float64
	// RefreshScrollDistance is the fraction of the region's height that makes
	// a full pull.
	RefreshScrollDistance float64
}

type session struct {
	originX, originY float64
	pullOriginY      float64
	lastY            float64
	lastPercent      float64
	active           Region
	hasOrigin        bool
	dragging         bool
	handlingFromDown bool
}

// Tracker turns raw samples into drag signals. Hosts that split event handling
// into an interception phase and a consumption phase call TryClaim and Consume
// respectively; both operate on the same session. Hosts with a single event path
// call Handle.
type Tracker struct {
	regions *Registry
	cfg     Config
	busy    func() bool
	s       session
}

// NewTracker returns a tracker hit-testing against regions.
func NewTracker(regions *Registry, cfg Config) *Tracker {
	if regions == nil {
		regions = NewRegistry()
	}
	return &Tracker{regions: regions, cfg: cfg}
}

// SetBusy installs the gate consulted before a gesture may bind; while it
// reports true no drag starts.
func (t *Tracker) SetBusy(fn func() bool) {
	t.busy = fn
}

// Dragging reports whether the current gesture has been claimed as a pull.
func (t *Tracker) Dragging() bool {
	return t.s.dragging
}

// Active returns the region the current gesture started in.
func (t *Tracker) Active() Region {
	return t.s.active
}

// Percent returns the last pull fraction of the current drag.
func (t *Tracker) Percent() float64 {
	return t.s.lastPercent
}

// Reset discards the current session.
func (t *Tracker) Reset() {
	t.s = session{}
}

// Abort ends the current gesture without a release, e.g. when the host loses
// the pointer. It yields SignalDragCancelled if a drag was in progress.
func (t *Tracker) Abort() Signal {
	sig := t.cancelStale()
	t.Reset()
	return sig
}

// cancelStale returns SignalDragCancelled for a drag in progress, or the zero
// Signal. It does not touch the session.
func (t *Tracker) cancelStale() Signal {
	if !t.s.dragging {
		return Signal{}
	}
	return Signal{Kind: SignalDragCancelled, Percent: t.s.lastPercent, Region: t.s.active, Y: t.s.lastY}
}

// TryClaim runs the interception logic. It reports true once the gesture is a
// drag, after which the host routes further samples to Consume.
func (t *Tracker) TryClaim(s Sample) (bool, Signal) {
	if t.isBusy() {
		return false, Signal{}
	}
	var sig Signal
	switch s.Phase {
	case PhaseMove:
		if !t.s.dragging && t.s.hasOrigin {
			dy := s.Y - t.s.originY
			dx := s.X - t.s.originX
			if math.Abs(dy) > math.Abs(dx) && dy > t.cfg.TouchSlop {
				t.s.dragging = true
				t.s.pullOriginY = s.Y
				t.s.lastY = s.Y
				t.s.lastPercent = 0
				sig = Signal{Kind: SignalDragStart, Region: t.s.active, X: s.X, Y: s.Y}
				events.Pull.DragStart(s.X, s.Y)
			} else if dy < -t.cfg.TouchSlop {
				t.Reset()
			}
		}
	case PhaseDown:
		sig = t.cancelStale()
		t.down(s)
	case PhaseUp, PhaseCancel:
		t.Reset()
	}
	return t.s.dragging, sig
}

// Consume runs the consumption logic. It reports whether the sample was used.
func (t *Tracker) Consume(s Sample) (bool, Signal) {
	if s.Phase == PhaseDown {
		if t.s.dragging {
			// The release of the previous gesture never arrived.
			sig := t.cancelStale()
			t.s.handlingFromDown = true
			t.down(s)
			return t.s.hasOrigin, sig
		}
		t.s.handlingFromDown = true
	}
	if t.needsRecheck(s) {
		t.down(s)
		t.s.handlingFromDown = t.s.hasOrigin
		return t.s.hasOrigin, Signal{}
	}
	if t.s.handlingFromDown && !t.s.dragging {
		_, sig := t.TryClaim(s)
		return true, sig
	}
	if t.s.active == nil {
		return false, Signal{}
	}

	var sig Signal
	switch s.Phase {
	case PhaseMove:
		if t.isBusy() {
			return false, Signal{}
		}
		if !t.s.dragging || s.Y == t.s.lastY {
			break
		}
		// Scrolling back above the pull origin would otherwise read as a pull.
		if s.Y < t.s.pullOriginY {
			break
		}
		t.s.lastY = s.Y
		t.s.lastPercent = t.percent(s.Y)
		sig = Signal{Kind: SignalDragProgress, Percent: t.s.lastPercent, Region: t.s.active, X: s.X, Y: s.Y}
	case PhaseUp, PhaseCancel:
		if t.s.dragging {
			sig = Signal{Kind: SignalDragReleased, Percent: t.s.lastPercent, Region: t.s.active, X: s.X, Y: t.s.lastY}
		}
		t.Reset()
	}
	return true, sig
}

// Handle routes s the way a host with a single event path needs: samples go
// through the interception logic until the gesture is claimed, then through
// the consumption logic.
func (t *Tracker) Handle(s Sample) (bool, Signal) {
	if t.s.dragging {
		return t.Consume(s)
	}
	if t.needsRecheck(s) {
		t.down(s)
		return false, Signal{}
	}
	return t.TryClaim(s)
}

// needsRecheck reports a move arriving with no recorded origin, either because
// the originating down went elsewhere or because the session was reset by an
// upward scroll. Such a move is replayed through the down logic.
func (t *Tracker) needsRecheck(s Sample) bool {
	return s.Phase == PhaseMove && !t.s.dragging && !t.s.hasOrigin && !t.isBusy()
}

func (t *Tracker) down(s Sample) {
	fromDown := t.s.handlingFromDown
	t.s = session{handlingFromDown: fromDown}
	region, ok := t.regions.ReadyAt(s.X, s.Y)
	if !ok {
		return
	}
	t.s.originX = s.X
	t.s.originY = s.Y
	t.s.active = region
	t.s.hasOrigin = true
}

func (t *Tracker) percent(y float64) float64 {
	if t.s.active == nil {
		return 0
	}
	needed := t.s.active.Bounds().Height * t.cfg.RefreshScrollDistance
	if needed <= 0 {
		return 0
	}
	p := (y - t.s.pullOriginY) / needed
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (t *Tracker) isBusy() bool {
	return t.busy != nil && t.busy()
}
