package gesture

// Capability decides whether a region is scrolled to its top so that a
// downward drag at the given point, in region-local coordinates, is a pull.
type Capability interface {
	ReadyForPull(r Region, x, y float64) bool
}

// CapabilityFunc adapts a plain function to Capability.
type CapabilityFunc func(r Region, x, y float64) bool

func (f CapabilityFunc) ReadyForPull(r Region, x, y float64) bool { return f(r, x, y) }

// Always treats the region as permanently at its top.
var Always = CapabilityFunc(func(Region, float64, float64) bool { return true })

// ListScroller is implemented by list-like regions that scroll item by item.
type ListScroller interface {
	// FirstVisibleIndex is the index of the first item on screen.
	FirstVisibleIndex() int
	// FirstItemOffset is how far the first visible item starts below the
	// list's top padding; negative when it is partially scrolled off.
	FirstItemOffset() int
}

// VerticalScroller is implemented by regions with a plain vertical offset.
type VerticalScroller interface {
	ScrollY() int
}

// EmbeddedScroller is implemented by regions hosting embedded content that
// tracks its own scroll position (documents, rendered pages).
type EmbeddedScroller interface {
	ContentScrollY() int
}

// ListCapability is ready when the first item is fully visible at the top.
type ListCapability struct{}

func (ListCapability) ReadyForPull(r Region, _, _ float64) bool {
	l, ok := r.(ListScroller)
	if !ok {
		return false
	}
	return l.FirstVisibleIndex() == 0 && l.FirstItemOffset() >= 0
}

// ScrollYCapability is ready when the vertical offset is at or above zero.
type ScrollYCapability struct{}

func (ScrollYCapability) ReadyForPull(r Region, _, _ float64) bool {
	s, ok := r.(VerticalScroller)
	if !ok {
		return false
	}
	return s.ScrollY() <= 0
}

// EmbeddedCapability is ready when the embedded content is scrolled to its top.
type EmbeddedCapability struct{}

func (EmbeddedCapability) ReadyForPull(r Region, _, _ float64) bool {
	e, ok := r.(EmbeddedScroller)
	if !ok {
		return false
	}
	return e.ContentScrollY() <= 0
}

// BuiltinCapability picks the built-in capability matching the interfaces r
// implements, or nil when none applies.
func BuiltinCapability(r Region) Capability {
	switch r.(type) {
	case ListScroller:
		return ListCapability{}
	case EmbeddedScroller:
		return EmbeddedCapability{}
	case VerticalScroller:
		return ScrollYCapability{}
	default:
		return nil
	}
}

func capabilityName(c Capability) string {
	switch c.(type) {
	case nil:
		return "none"
	case ListCapability:
		return "list"
	case ScrollYCapability:
		return "scroll-y"
	case EmbeddedCapability:
		return "embedded"
	default:
		return "custom"
	}
}
