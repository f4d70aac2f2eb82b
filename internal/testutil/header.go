package testutil

import "fmt"

// Header records pull header commands as strings, e.g. "show", "pulled:0.30",
// "indicator:1".
type Header struct {
	Calls []string
}

func (h *Header) record(format string, args ...interface{}) {
	h.Calls = append(h.Calls, fmt.Sprintf(format, args...))
}

func (h *Header) OnHeaderShow() { h.record("show") }
func (h *Header) OnHeaderHide() { h.record("hide") }
func (h *Header) OnPulled(p float64) { h.record("pulled:%.2f", p) }
func (h *Header) OnIndicator(index int) { h.record("indicator:%d", index) }
func (h *Header) OnRefreshStarted() { h.record("refresh") }
func (h *Header) OnReleaseToRefresh() { h.record("release-to-refresh") }
func (h *Header) OnRefreshMinimized() { h.record("minimized") }
func (h *Header) OnReset() { h.record("reset") }

// Count returns how many recorded calls equal call.
func (h *Header) Count(call string) int {
	n := 0
	for _, c := range h.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// Last returns the most recent call, or "".
func (h *Header) Last() string {
	if len(h.Calls) == 0 {
		return ""
	}
	return h.Calls[len(h.Calls)-1]
}

// Clear forgets recorded calls.
func (h *Header) Clear() {
	h.Calls = nil
}
