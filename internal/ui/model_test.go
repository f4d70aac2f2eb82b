package ui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/pullmenu/internal/feed"
	"github.com/atomicstack/pullmenu/internal/pull"
	"github.com/atomicstack/pullmenu/internal/store"
	"github.com/atomicstack/pullmenu/internal/testutil"
)

var testLabels = []string{"Top Stories", "Most Recent", "Interest", "Refresh"}

type testEnv struct {
	h     *Harness
	clock *testutil.Clock
	store *store.Store
}

// newTestEnv builds an 80x24 model: the content viewport spans rows 3-22 and a
// full pull is 10 rows.
func newTestEnv(t *testing.T, labels []string, saved []string) testEnv {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	clock := testutil.NewClock()
	opts := pull.DefaultOptions()
	opts.TouchSlop = 1
	m := NewModel(Options{
		Labels:       labels,
		SavedOrder:   saved,
		Source:       feed.New(feed.DefaultEntries(), 0, 0),
		Store:        st,
		Pull:         opts,
		ReorderDelay: 200 * time.Millisecond,
		Width:        80,
		Height:       24,
		Scheduler:    clock,
	})
	return testEnv{h: NewHarness(m), clock: clock, store: st}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func drag(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRegionBoundsFollowLayout(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	b := env.h.Model().content.Bounds()
	if b.Y != 3 || b.Height != 20 || b.Width != 80 {
		t.Fatalf("expected content at row 3 with 80x20, got %+v", b)
	}
}

func TestMenuPullRefreshesSelectedLabel(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	env.h.Send(press(5, 4))
	env.h.Send(drag(5, 6))
	env.h.Send(drag(5, 12))

	m := env.h.Model()
	if got := m.Controller().State(); got != pull.StateDragging {
		t.Fatalf("expected dragging, got %v", got)
	}
	if m.header.indicator != 1 {
		t.Fatalf("expected band 1 under the pointer, got %d", m.header.indicator)
	}
	if !strings.Contains(ansi.Strip(env.h.View()), "Most Recent") {
		t.Fatalf("expected label strip in view")
	}

	env.h.Send(release(5, 12))
	if got := m.Controller().State(); got != pull.StateIdle {
		t.Fatalf("expected refresh to complete, got %v", got)
	}
	if len(m.Entries()) != 2 {
		t.Fatalf("expected entries filtered to Most Recent, got %+v", m.Entries())
	}
	if n, err := env.store.RefreshCount("Most Recent"); err != nil || n != 1 {
		t.Fatalf("expected one recorded refresh, got %d (%v)", n, err)
	}
	if got := m.header.labels[0]; got != "Top Stories" {
		t.Fatalf("expected strip to keep the old order until the reorder fires, got %q", got)
	}

	env.clock.Advance(200 * time.Millisecond)
	want := []string{"Most Recent", "Top Stories", "Interest", "Refresh"}
	saved, err := env.store.LoadOrder()
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if !reflect.DeepEqual(saved, want) {
		t.Fatalf("expected persisted order %v, got %v", want, saved)
	}
	if !reflect.DeepEqual(m.header.labels, want) {
		t.Fatalf("expected strip order %v, got %v", want, m.header.labels)
	}
}

func TestFullPullRefreshesEverything(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	env.h.Send(press(5, 4))
	env.h.Send(drag(5, 6))
	env.h.Send(drag(5, 16))

	m := env.h.Model()
	if got := len(m.Entries()); got != len(feed.DefaultEntries()) {
		t.Fatalf("expected every entry, got %d", got)
	}
	if n, err := env.store.RefreshCount(""); err != nil || n != 1 {
		t.Fatalf("expected one plain refresh, got %d (%v)", n, err)
	}
	saved, _ := env.store.LoadOrder()
	if saved != nil {
		t.Fatalf("expected order untouched, got %v", saved)
	}
}

func TestShortPullDoesNothing(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	env.h.Send(press(5, 4))
	env.h.Send(drag(5, 6))
	env.h.Send(drag(5, 7))
	env.h.Send(release(5, 7))

	if _, ok, _ := env.store.LastRefresh(); ok {
		t.Fatalf("expected no refresh for a short pull")
	}
	if env.h.Model().header.visible {
		t.Fatalf("expected header hidden")
	}
}

func TestEscCancelsDrag(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	env.h.Send(press(5, 4))
	env.h.Send(drag(5, 6))
	env.h.Send(drag(5, 12))
	env.h.Send(key("esc"))
	env.h.Send(release(5, 12))

	if got := env.h.Model().Controller().State(); got != pull.StateIdle {
		t.Fatalf("expected idle after esc, got %v", got)
	}
	if _, ok, _ := env.store.LastRefresh(); ok {
		t.Fatalf("expected no refresh after esc")
	}
}

func TestManualRefreshKey(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	env.h.Send(key("r"))

	last, ok, err := env.store.LastRefresh()
	if err != nil || !ok {
		t.Fatalf("expected a recorded refresh, got ok=%v err=%v", ok, err)
	}
	if last.Label != "" {
		t.Fatalf("expected plain refresh, got %q", last.Label)
	}
	if !strings.Contains(ansi.Strip(env.h.View()), "refreshed") {
		t.Fatalf("expected status line to mention the refresh")
	}
}

func TestPressOutsideContentIsIgnored(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	env.h.Send(press(5, 0))
	env.h.Send(drag(5, 6))
	if got := env.h.Model().Controller().State(); got != pull.StateIdle {
		t.Fatalf("expected idle, got %v", got)
	}
}

func TestSavedOrderRestored(t *testing.T) {
	saved := []string{"Interest", "Refresh", "Top Stories", "Most Recent"}
	env := newTestEnv(t, testLabels, saved)
	if got := env.h.Model().Order().Labels(); !reflect.DeepEqual(got, saved) {
		t.Fatalf("expected restored order %v, got %v", saved, got)
	}

	env = newTestEnv(t, testLabels, []string{"Interest", "Elsewhere"})
	if got := env.h.Model().Order().Labels(); !reflect.DeepEqual(got, testLabels) {
		t.Fatalf("expected configured order, got %v", got)
	}
}

func TestQuitDestroysController(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	env.h.Send(key("q"))
	if !env.h.Quit() {
		t.Fatalf("expected quit")
	}
	if !env.h.Model().Controller().Destroyed() {
		t.Fatalf("expected controller destroyed")
	}
	if env.h.View() != "" {
		t.Fatalf("expected empty view after quit")
	}
}

func TestWindowResizeAbortsDrag(t *testing.T) {
	env := newTestEnv(t, testLabels, nil)
	m := env.h.Model()
	m.fixedHeight = false
	env.h.Send(press(5, 4))
	env.h.Send(drag(5, 6))
	env.h.Send(tea.WindowSizeMsg{Width: 80, Height: 40})

	if got := m.Controller().State(); got != pull.StateIdle {
		t.Fatalf("expected resize to cancel the drag, got %v", got)
	}
	if h := m.content.Bounds().Height; h != 36 {
		t.Fatalf("expected 36 content rows, got %v", h)
	}
}

func TestInitialSizeUntilFirstResize(t *testing.T) {
	m := NewModel(Options{
		Labels:        testLabels,
		Pull:          pull.DefaultOptions(),
		InitialWidth:  100,
		InitialHeight: 30,
		Scheduler:     testutil.NewClock(),
	})
	h := NewHarness(m)
	if b := m.content.Bounds(); b.Width != 100 || b.Height != 26 {
		t.Fatalf("expected 100x26 content before any resize, got %+v", b)
	}
	if !m.content.Visible() {
		t.Fatalf("expected the region to accept pulls before the first resize")
	}

	h.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	if b := m.content.Bounds(); b.Width != 80 || b.Height != 20 {
		t.Fatalf("expected resize to replace the initial size, got %+v", b)
	}
}
