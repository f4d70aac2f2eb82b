package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/pullmenu/internal/band"
	"github.com/atomicstack/pullmenu/internal/pull"
)

const headerRows = 2

type headerPhase int

const (
	phaseIdle headerPhase = iota
	phasePulling
	phaseReleaseToRefresh
	phaseRefreshing
	phaseMinimized
)

// headerView renders the pull header and implements pull.Header. The label
// strip keeps its own copy of the order and only picks up a new one when the
// reorder notification arrives.
type headerView struct {
	labels    []string
	visible   bool
	phase     headerPhase
	percent   float64
	indicator int
	// label is the menu label being refreshed, empty for a plain refresh.
	label string

	progress progress.Model
	spinner  spinner.Model
	animate  bool
	pending  []tea.Cmd
}

func newHeaderView(labels []string, animate bool) *headerView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner.Copy()
	return &headerView{
		labels:    labels,
		indicator: band.NoSelection,
		progress: progress.New(
			progress.WithGradient(styles.ProgressFrom, styles.ProgressTo),
			progress.WithoutPercentage(),
		),
		spinner: s,
		animate: animate,
	}
}

var _ pull.Header = (*headerView)(nil)

func (h *headerView) OnHeaderShow() {
	h.visible = true
}

func (h *headerView) OnHeaderHide() {
	h.visible = false
}

func (h *headerView) OnPulled(percent float64) {
	h.phase = phasePulling
	h.percent = percent
}

func (h *headerView) OnIndicator(index int) {
	h.indicator = index
}

func (h *headerView) OnRefreshStarted() {
	h.phase = phaseRefreshing
	h.percent = 1
	if h.animate {
		h.pending = append(h.pending, h.spinner.Tick)
	}
}

func (h *headerView) OnReleaseToRefresh() {
	h.phase = phaseReleaseToRefresh
	h.percent = 1
}

func (h *headerView) OnRefreshMinimized() {
	h.phase = phaseMinimized
}

func (h *headerView) OnReset() {
	h.phase = phaseIdle
	h.percent = 0
	h.indicator = band.NoSelection
	h.label = ""
}

func (h *headerView) setLabels(labels []string) {
	h.labels = labels
}

func (h *headerView) refreshing() bool {
	return h.phase == phaseRefreshing || h.phase == phaseMinimized
}

func (h *headerView) setWidth(width int) {
	h.progress.Width = max(width-2, 1)
}

func (h *headerView) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !h.refreshing() {
		return nil
	}
	var cmd tea.Cmd
	h.spinner, cmd = h.spinner.Update(msg)
	return cmd
}

func (h *headerView) drain() []tea.Cmd {
	cmds := h.pending
	h.pending = nil
	return cmds
}

// View returns exactly headerRows lines.
func (h *headerView) View(width int) []string {
	lines := make([]string, headerRows)
	if !h.visible || width <= 0 {
		return lines
	}
	if h.phase != phaseMinimized {
		lines[0] = h.strip(width)
	}
	switch h.phase {
	case phasePulling, phaseIdle:
		lines[1] = " " + h.progress.ViewAs(h.percent)
	case phaseReleaseToRefresh:
		lines[1] = " " + styles.Hint.Render("release to refresh")
	case phaseRefreshing:
		lines[1] = " " + h.spinner.View() + " " + styles.Info.Render(strings.TrimSpace("refreshing "+h.label))
	case phaseMinimized:
		lines[1] = " " + h.spinner.View() + " " + styles.Status.Render(h.label)
	}
	return lines
}

// strip lays the labels out in equal cells, one per band.
func (h *headerView) strip(width int) string {
	if len(h.labels) == 0 {
		return ""
	}
	cell := width / len(h.labels)
	if cell < 1 {
		return ""
	}
	cells := make([]string, len(h.labels))
	for i, label := range h.labels {
		text := truncate.StringWithTail(label, uint(max(cell-2, 1)), "…")
		style := styles.Band
		switch {
		case h.refreshing() && h.label != "" && label == h.label:
			style = styles.ActiveBand
		case h.phase == phasePulling && i == h.indicator:
			style = styles.SelectedBand
		}
		cells[i] = style.Copy().Width(cell).Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
