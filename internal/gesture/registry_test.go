package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listRegion struct {
	StaticRegion
	first, offset int
}

func (l *listRegion) FirstVisibleIndex() int { return l.first }
func (l *listRegion) FirstItemOffset() int { return l.offset }

type scrollRegion struct {
	StaticRegion
	y int
}

func (s *scrollRegion) ScrollY() int { return s.y }

type pageRegion struct {
	StaticRegion
	y int
}

func (p *pageRegion) ContentScrollY() int { return p.y }

func TestRegistryRejectsNilRegion(t *testing.T) {
	r := NewRegistry()
	err := r.Add(nil, Always)
	require.ErrorIs(t, err, ErrNullRegion)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryReRegistrationKeepsPosition(t *testing.T) {
	r := NewRegistry()
	a := &StaticRegion{ID: "a", Rect: Rect{Width: 10, Height: 10}}
	b := &StaticRegion{ID: "b", Rect: Rect{Width: 10, Height: 10}}
	require.NoError(t, r.Add(a, Always))
	require.NoError(t, r.Add(b, Always))

	never := CapabilityFunc(func(Region, float64, float64) bool { return false })
	require.NoError(t, r.Add(a, never))
	assert.Equal(t, 2, r.Len())

	// a overlaps b but is no longer ready, so b wins the hit test.
	got, ok := r.ReadyAt(5, 5)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestRegistryReadyAtUsesLocalCoordinates(t *testing.T) {
	r := NewRegistry()
	region := &StaticRegion{ID: "c", Rect: Rect{X: 10, Y: 20, Width: 30, Height: 40}}
	var gotX, gotY float64
	require.NoError(t, r.Add(region, CapabilityFunc(func(_ Region, x, y float64) bool {
		gotX, gotY = x, y
		return true
	})))

	_, ok := r.ReadyAt(15, 25)
	require.True(t, ok)
	assert.Equal(t, 5.0, gotX)
	assert.Equal(t, 5.0, gotY)

	_, ok = r.ReadyAt(40, 25)
	assert.False(t, ok, "right edge is exclusive")
}

func TestRegistrySkipsRegionsWithoutCapability(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(&StaticRegion{Rect: Rect{Width: 10, Height: 10}}, nil))
	_, ok := r.ReadyAt(1, 1)
	assert.False(t, ok)
}

func TestRegistryOverrideAndRemove(t *testing.T) {
	r := NewRegistry()
	a := &scrollRegion{StaticRegion: StaticRegion{ID: "a", Rect: Rect{Width: 10, Height: 10}}, y: 4}
	require.NoError(t, r.Add(a, nil))
	_, ok := r.ReadyAt(1, 1)
	assert.False(t, ok)

	n := r.Override(func(region Region) bool { return region == a }, Always)
	assert.Equal(t, 1, n)
	_, ok = r.ReadyAt(1, 1)
	assert.True(t, ok)

	assert.True(t, r.Remove(a))
	assert.False(t, r.Remove(a))
	assert.Equal(t, 0, r.Len())
}

func TestBuiltinCapabilities(t *testing.T) {
	list := &listRegion{}
	assert.IsType(t, ListCapability{}, BuiltinCapability(list))
	assert.True(t, ListCapability{}.ReadyForPull(list, 0, 0))
	list.offset = -1
	assert.False(t, ListCapability{}.ReadyForPull(list, 0, 0))
	list.offset, list.first = 0, 3
	assert.False(t, ListCapability{}.ReadyForPull(list, 0, 0))

	scroll := &scrollRegion{}
	assert.IsType(t, ScrollYCapability{}, BuiltinCapability(scroll))
	assert.True(t, ScrollYCapability{}.ReadyForPull(scroll, 0, 0))
	scroll.y = 1
	assert.False(t, ScrollYCapability{}.ReadyForPull(scroll, 0, 0))

	page := &pageRegion{}
	assert.IsType(t, EmbeddedCapability{}, BuiltinCapability(page))
	assert.True(t, EmbeddedCapability{}.ReadyForPull(page, 0, 0))
	page.y = 12
	assert.False(t, EmbeddedCapability{}.ReadyForPull(page, 0, 0))

	assert.Nil(t, BuiltinCapability(&StaticRegion{}))
	assert.False(t, ListCapability{}.ReadyForPull(&StaticRegion{}, 0, 0))
}
