package pull

import (
	"fmt"
	"time"

	"github.com/atomicstack/pullmenu/internal/band"
)

// Options tunes the controller.
type Options struct {
	// RefreshScrollDistance is the fraction of a region's height that has to be
	// pulled for a full pull.
	RefreshScrollDistance float64
	// RefreshOnUp defers the plain refresh until the pointer is released.
	RefreshOnUp bool
	// MinimizeEnabled fades the header content while a refresh runs.
	MinimizeEnabled bool
	MinimizeDelay   time.Duration
	// TouchSlop is the travel needed before a touch counts as a drag.
	TouchSlop float64
	// Curve maps the pull fraction onto the menu indicator.
	Curve band.Curve
}

// DefaultOptions returns the stock tunables.
func DefaultOptions() Options {
	return Options{
		RefreshScrollDistance: 0.5,
		RefreshOnUp:           false,
		MinimizeEnabled:       true,
		MinimizeDelay:         time.Second,
		TouchSlop:             8,
		Curve:                 band.CurveAccelerate,
	}
}

// Validate checks the numeric tunables.
func (o Options) Validate() error {
	if o.RefreshScrollDistance <= 0 {
		return fmt.Errorf("refresh scroll distance must be > 0 (got %v)", o.RefreshScrollDistance)
	}
	if o.MinimizeDelay < 0 {
		return fmt.Errorf("minimize delay must be >= 0 (got %v)", o.MinimizeDelay)
	}
	if o.TouchSlop < 0 {
		return fmt.Errorf("touch slop must be >= 0 (got %v)", o.TouchSlop)
	}
	return nil
}
