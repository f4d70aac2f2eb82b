package ui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/atomicstack/pullmenu/internal/gesture"
)

// contentRegion is the scrollable feed, registered as the pullable region.
// Its vertical offset makes it ready for a pull only at the top.
type contentRegion struct {
	vp   viewport.Model
	x, y int
}

func newContentRegion() *contentRegion {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &contentRegion{vp: vp}
}

func (r *contentRegion) Bounds() gesture.Rect {
	return gesture.Rect{
		X:      float64(r.x),
		Y:      float64(r.y),
		Width:  float64(r.vp.Width),
		Height: float64(r.vp.Height),
	}
}

func (r *contentRegion) Visible() bool { return r.vp.Width > 0 && r.vp.Height > 0 }
func (r *contentRegion) Name() string { return "content" }
func (r *contentRegion) ScrollY() int { return r.vp.YOffset }
