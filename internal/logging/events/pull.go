package events

import "github.com/atomicstack/pullmenu/internal/logging"

type PullTracer struct{}

type releaseOutcome string

const (
	ReleaseRefresh    releaseOutcome = "refresh"
	ReleaseMenu       releaseOutcome = "menu"
	ReleaseNoOp       releaseOutcome = "noop"
	ReleaseBelowLimit releaseOutcome = "below-threshold"
)

var Pull = PullTracer{}

func (PullTracer) DragStart(x, y float64) {
	logging.Pull.Trace("drag.start", map[string]interface{}{"x": x, "y": y})
}

func (PullTracer) Release(percent float64, indicator int, outcome releaseOutcome) {
	logging.Pull.Trace("release", map[string]interface{}{
		"percent":   percent,
		"indicator": indicator,
		"outcome":   string(outcome),
	})
}

func (PullTracer) Abort() {
	logging.Pull.Trace("abort", nil)
}

func (PullTracer) Refresh(index int, label string, fromTouch bool) {
	logging.Pull.Trace("refresh", map[string]interface{}{
		"index":     index,
		"label":     label,
		"fromTouch": fromTouch,
	})
}

func (PullTracer) RefreshRejected(reason string) {
	logging.Pull.Trace("refresh.rejected", map[string]interface{}{"reason": reason})
}

func (PullTracer) Minimize() {
	logging.Pull.Trace("minimize", nil)
}

func (PullTracer) Complete() {
	logging.Pull.Trace("complete", nil)
}

func (PullTracer) Destroy() {
	logging.Pull.Trace("destroy", nil)
}

func (PullTracer) Destroyed(op string) {
	logging.Pull.Trace("destroyed", map[string]interface{}{"op": op})
}
