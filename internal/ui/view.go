package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/pullmenu/internal/format/table"
)

const appTitle = "pullmenu"

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	lines := make([]string, 0, m.height)
	lines = append(lines, m.titleLine())
	lines = append(lines, m.header.View(m.width)...)
	if m.content.vp.Height > 0 {
		lines = append(lines, m.content.vp.View())
	}
	lines = append(lines, m.footerLine())
	return strings.Join(lines, "\n")
}

func (m *Model) titleLine() string {
	title := styles.Title.Render(appTitle)
	status := styles.Status.Render(m.statusText())
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		return truncate.String(title+" "+status, uint(max(m.width, 0)))
	}
	return title + strings.Repeat(" ", gap) + status
}

func (m *Model) statusText() string {
	switch {
	case m.loading:
		return "loading…"
	case m.lastRefresh.IsZero():
		return "never refreshed"
	}
	text := "refreshed " + humanize.RelTime(m.lastRefresh, m.now(), "ago", "from now")
	if m.lastLabel != "" {
		text += " · " + m.lastLabel
	}
	return text
}

func (m *Model) footerLine() string {
	var text string
	style := styles.Footer
	switch {
	case m.errMsg != "":
		text = m.errMsg
		style = styles.Error
	case m.hint != "":
		text = m.hint
		style = styles.Hint
	default:
		text = "drag down to pull · r refresh · esc cancel · q quit"
	}
	if m.width > 0 {
		text = truncate.StringWithTail(text, uint(m.width), "…")
	}
	return style.Render(text)
}

// syncContent renders the entries into the viewport.
func (m *Model) syncContent() {
	var lines []string
	if !m.matched && m.filterLabel != "" {
		lines = append(lines, styles.Empty.Render(fmt.Sprintf("nothing filed under %q, showing everything", m.filterLabel)))
	}
	if len(m.entries) == 0 {
		lines = append(lines, styles.Empty.Render("(no entries)"))
	} else {
		rows := make([][]string, len(m.entries))
		for i, e := range m.entries {
			rows[i] = []string{e.Topic, e.Title}
		}
		for _, row := range table.Format(rows, nil) {
			if m.width > 0 {
				row = truncate.StringWithTail(row, uint(m.width), "…")
			}
			lines = append(lines, styles.EntryTitle.Render(row))
		}
	}
	m.content.vp.SetContent(strings.Join(lines, "\n"))
}
