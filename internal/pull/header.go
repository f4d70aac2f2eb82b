package pull

import "github.com/atomicstack/pullmenu/internal/gesture"

// Header renders the pull header. The controller drives it exclusively through
// these commands.
type Header interface {
	OnHeaderShow()
	OnHeaderHide()
	// OnPulled reports the pull fraction in [0, 1) while dragging.
	OnPulled(percent float64)
	// OnIndicator reports the menu band under the current pull, or
	// band.NoSelection.
	OnIndicator(index int)
	OnRefreshStarted()
	OnReleaseToRefresh()
	OnRefreshMinimized()
	OnReset()
}

// RefreshListener is called once per refresh started by a gesture. index is
// -1 and label empty for a plain refresh.
type RefreshListener func(region gesture.Region, index int, label string)

// Visibility is the header state reported to a VisibilityListener.
type Visibility int

const (
	VisibilityShown Visibility = iota
	VisibilityHidden
	VisibilityMinimized
)

func (v Visibility) String() string {
	switch v {
	case VisibilityShown:
		return "shown"
	case VisibilityHidden:
		return "hidden"
	case VisibilityMinimized:
		return "minimized"
	default:
		return "unknown"
	}
}

// VisibilityListener hears about header visibility changes.
type VisibilityListener func(Visibility)

type nopHeader struct{}

func (nopHeader) OnHeaderShow() {}
func (nopHeader) OnHeaderHide() {}
func (nopHeader) OnPulled(float64) {}
func (nopHeader) OnIndicator(int) {}
func (nopHeader) OnRefreshStarted() {}
func (nopHeader) OnReleaseToRefresh() {}
func (nopHeader) OnRefreshMinimized() {}
func (nopHeader) OnReset() {}
