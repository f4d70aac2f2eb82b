package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*Tracker, *StaticRegion) {
	t.Helper()
	region := &StaticRegion{ID: "content", Rect: Rect{Width: 100, Height: 200}}
	regions := NewRegistry()
	require.NoError(t, regions.Add(region, Always))
	return NewTracker(regions, Config{TouchSlop: 50, RefreshScrollDistance: 0.5}), region
}

func TestTrackerDragLifecycle(t *testing.T) {
	tr, region := newTestTracker(t)

	claimed, sig := tr.Handle(Sample{Y: 0, Phase: PhaseDown})
	assert.False(t, claimed)
	assert.Equal(t, SignalNone, sig.Kind)

	_, sig = tr.Handle(Sample{Y: 40, Phase: PhaseMove})
	assert.Equal(t, SignalNone, sig.Kind)

	claimed, sig = tr.Handle(Sample{Y: 60, Phase: PhaseMove})
	assert.True(t, claimed)
	assert.Equal(t, SignalDragStart, sig.Kind)
	assert.Same(t, region, sig.Region)

	_, sig = tr.Handle(Sample{Y: 90, Phase: PhaseMove})
	require.Equal(t, SignalDragProgress, sig.Kind)
	assert.InDelta(t, 0.3, sig.Percent, 1e-9)

	_, sig = tr.Handle(Sample{Y: 90, Phase: PhaseMove})
	assert.Equal(t, SignalNone, sig.Kind, "repeated y is not progress")

	_, sig = tr.Handle(Sample{Y: 400, Phase: PhaseMove})
	assert.Equal(t, 1.0, sig.Percent, "percent is clamped")

	_, sig = tr.Handle(Sample{Y: 400, Phase: PhaseUp})
	assert.Equal(t, SignalDragReleased, sig.Kind)
	assert.Equal(t, 1.0, sig.Percent)
	assert.False(t, tr.Dragging())
	assert.Nil(t, tr.Active())
}

func TestTrackerCancelPhaseReleases(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Handle(Sample{Y: 0, Phase: PhaseDown})
	tr.Handle(Sample{Y: 60, Phase: PhaseMove})
	tr.Handle(Sample{Y: 80, Phase: PhaseMove})

	_, sig := tr.Handle(Sample{Y: 80, Phase: PhaseCancel})
	assert.Equal(t, SignalDragReleased, sig.Kind)
	assert.InDelta(t, 0.2, sig.Percent, 1e-9)
}

func TestTrackerAbort(t *testing.T) {
	tr, _ := newTestTracker(t)
	assert.Equal(t, SignalNone, tr.Abort().Kind)

	tr.Handle(Sample{Y: 0, Phase: PhaseDown})
	tr.Handle(Sample{Y: 60, Phase: PhaseMove})
	sig := tr.Abort()
	assert.Equal(t, SignalDragCancelled, sig.Kind)
	assert.False(t, tr.Dragging())
}

func TestTrackerBusyBlocksDrag(t *testing.T) {
	tr, _ := newTestTracker(t)
	busy := true
	tr.SetBusy(func() bool { return busy })

	tr.Handle(Sample{Y: 0, Phase: PhaseDown})
	claimed, sig := tr.Handle(Sample{Y: 80, Phase: PhaseMove})
	assert.False(t, claimed)
	assert.Equal(t, SignalNone, sig.Kind)

	busy = false
	tr.Handle(Sample{Y: 0, Phase: PhaseDown})
	claimed, _ = tr.Handle(Sample{Y: 80, Phase: PhaseMove})
	assert.True(t, claimed)
}

func TestTrackerDownOutsideRegions(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Handle(Sample{X: 500, Y: 0, Phase: PhaseDown})
	claimed, _ := tr.Handle(Sample{X: 500, Y: 100, Phase: PhaseMove})
	assert.False(t, claimed)
}

func TestTrackerRechecksMoveWithoutDown(t *testing.T) {
	tr, _ := newTestTracker(t)
	claimed, _ := tr.Handle(Sample{Y: 10, Phase: PhaseMove})
	assert.False(t, claimed)
	claimed, sig := tr.Handle(Sample{Y: 70, Phase: PhaseMove})
	assert.True(t, claimed)
	assert.Equal(t, SignalDragStart, sig.Kind)
}

func TestTrackerConsumeWithoutClaim(t *testing.T) {
	tr, _ := newTestTracker(t)
	used, sig := tr.Consume(Sample{X: 500, Y: 10, Phase: PhaseUp})
	assert.False(t, used)
	assert.Equal(t, SignalNone, sig.Kind)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "down", PhaseDown.String())
	assert.Equal(t, "cancel", PhaseCancel.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestTrackerDownDuringDragRestartsSession(t *testing.T) {
	tr, region := newTestTracker(t)
	tr.Handle(Sample{Y: 0, Phase: PhaseDown})
	tr.Handle(Sample{Y: 60, Phase: PhaseMove})
	tr.Handle(Sample{Y: 90, Phase: PhaseMove})
	require.True(t, tr.Dragging())

	// No release for the first gesture.
	claimed, sig := tr.Handle(Sample{Y: 150, Phase: PhaseDown})
	assert.True(t, claimed)
	assert.Equal(t, SignalDragCancelled, sig.Kind)
	assert.InDelta(t, 0.3, sig.Percent, 1e-9)
	assert.Same(t, region, sig.Region)
	assert.False(t, tr.Dragging())

	_, sig = tr.Handle(Sample{Y: 151, Phase: PhaseMove})
	assert.Equal(t, SignalNone, sig.Kind, "one row is below the slop")

	_, sig = tr.Handle(Sample{Y: 210, Phase: PhaseMove})
	assert.Equal(t, SignalDragStart, sig.Kind)
	_, sig = tr.Handle(Sample{Y: 260, Phase: PhaseMove})
	require.Equal(t, SignalDragProgress, sig.Kind)
	assert.InDelta(t, 0.5, sig.Percent, 1e-9, "measured from the new press")
}

func TestTryClaimDownDuringDragCancels(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.TryClaim(Sample{Y: 0, Phase: PhaseDown})
	claimed, _ := tr.TryClaim(Sample{Y: 60, Phase: PhaseMove})
	require.True(t, claimed)

	claimed, sig := tr.TryClaim(Sample{Y: 150, Phase: PhaseDown})
	assert.False(t, claimed)
	assert.Equal(t, SignalDragCancelled, sig.Kind)
}
