package gesture

// Rect is an on-screen rectangle. Right and bottom edges are exclusive.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Region is a scrollable surface a pull gesture can start from. Regions are
// compared by identity, so implementations are normally pointers.
type Region interface {
	// Bounds returns the region's rectangle in screen coordinates.
	Bounds() Rect
	// Visible reports whether the region is currently shown.
	Visible() bool
}

// Named is implemented by regions that want a readable name in traces.
type Named interface {
	Name() string
}

func regionName(r Region) string {
	if n, ok := r.(Named); ok {
		return n.Name()
	}
	return "region"
}

// StaticRegion is a fixed rectangle, mostly useful for embedding hosts and
// tests. Its readiness comes entirely from the capability it is registered with.
type StaticRegion struct {
	ID     string
	Rect   Rect
	Hidden bool
}

func (s *StaticRegion) Bounds() Rect { return s.Rect }
func (s *StaticRegion) Visible() bool { return !s.Hidden }
func (s *StaticRegion) Name() string { return s.ID }
