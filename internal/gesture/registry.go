package gesture

import (
	"errors"

	"github.com/atomicstack/pullmenu/internal/logging/events"
)

// ErrNullRegion is returned when a nil region is registered.
var ErrNullRegion = errors.New("pullable region is nil")

type entry struct {
	region     Region
	capability Capability
}

// Registry holds the regions a pull may start from, in registration order.
// Each region has at most one capability.
type Registry struct {
	entries []entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers region with capability c. A nil capability selects the
// built-in one for the region's type. Registering a region again replaces its
// capability and keeps its position.
func (r *Registry) Add(region Region, c Capability) error {
	if region == nil {
		events.Region.Rejected(ErrNullRegion)
		return ErrNullRegion
	}
	if c == nil {
		c = BuiltinCapability(region)
	}
	events.Region.Add(regionName(region), capabilityName(c))
	if i := r.indexOf(region); i >= 0 {
		r.entries[i].capability = c
		return nil
	}
	r.entries = append(r.entries, entry{region: region, capability: c})
	return nil
}

// Override replaces the capability of every registered region matched by
// match and reports how many were changed.
func (r *Registry) Override(match func(Region) bool, c Capability) int {
	if match == nil {
		return 0
	}
	n := 0
	for i := range r.entries {
		if match(r.entries[i].region) {
			r.entries[i].capability = c
			n++
		}
	}
	events.Region.Override(n)
	return n
}

// Remove unregisters region.
func (r *Registry) Remove(region Region) bool {
	i := r.indexOf(region)
	if i < 0 {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return true
}

// Clear drops every registration.
func (r *Registry) Clear() {
	if len(r.entries) == 0 {
		return
	}
	r.entries = nil
	events.Region.Clear()
}

// Len returns the number of registered regions.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Capability returns the capability registered for region.
func (r *Registry) Capability(region Region) (Capability, bool) {
	i := r.indexOf(region)
	if i < 0 {
		return nil, false
	}
	return r.entries[i].capability, true
}

// ReadyAt returns the first visible region containing the screen point whose
// capability reports it ready for a pull.
func (r *Registry) ReadyAt(x, y float64) (Region, bool) {
	for _, e := range r.entries {
		if !e.region.Visible() || e.capability == nil {
			continue
		}
		b := e.region.Bounds()
		if !b.Contains(x, y) {
			continue
		}
		if e.capability.ReadyForPull(e.region, x-b.X, y-b.Y) {
			return e.region, true
		}
	}
	return nil, false
}

func (r *Registry) indexOf(region Region) int {
	for i, e := range r.entries {
		if e.region == region {
			return i
		}
	}
	return -1
}
