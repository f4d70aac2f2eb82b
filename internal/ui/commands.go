package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pullmenu/internal/feed"
	"github.com/atomicstack/pullmenu/internal/gesture"
	"github.com/atomicstack/pullmenu/internal/logging"
	"github.com/atomicstack/pullmenu/internal/pull"
	"github.com/atomicstack/pullmenu/internal/ui/command"
)

// feedLoadedMsg mirrors the async feed load response.
type feedLoadedMsg struct {
	label  string
	result feed.Result
	err    error
}

// onRefresh is the controller's refresh listener.
func (m *Model) onRefresh(_ gesture.Region, _ int, label string) {
	m.startLoad(label)
}

func (m *Model) onVisibility(v pull.Visibility) {
	switch v {
	case pull.VisibilityShown:
		m.hint = "release on a label to refresh it"
	case pull.VisibilityMinimized:
		m.hint = "refreshing in the background"
	default:
		m.hint = ""
	}
}

// manualRefresh starts a plain refresh without a gesture.
func (m *Model) manualRefresh() {
	if m.ctrl.IsRefreshing() {
		return
	}
	if err := m.ctrl.SetRefreshing(true); err != nil {
		logging.UI.Error(err)
		return
	}
	if m.ctrl.IsRefreshing() {
		m.startLoad("")
	}
}

func (m *Model) startLoad(label string) {
	m.header.label = label
	m.loading = true
	m.errMsg = ""
	m.enqueue(m.loadFeedCmd(label))
}

func (m *Model) loadFeedCmd(label string) tea.Cmd {
	src := m.source
	if src == nil {
		return func() tea.Msg { return feedLoadedMsg{label: label} }
	}
	id := "refresh"
	if label != "" {
		id = "menu-refresh"
	}
	return m.bus.Execute(command.Request{
		ID:    id,
		Label: label,
		Run: func(ctx context.Context) tea.Msg {
			res, err := src.Load(ctx, label)
			return feedLoadedMsg{label: label, result: res, err: err}
		},
	})
}

func (m *Model) handleFeedLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(feedLoadedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if m.ctrl.Destroyed() {
		return nil
	}
	if err := m.ctrl.SetRefreshComplete(); err != nil {
		logging.UI.Error(err)
	}
	if loaded.err != nil {
		if errors.Is(loaded.err, context.Canceled) {
			return nil
		}
		m.errMsg = fmt.Sprintf("refresh failed: %v", loaded.err)
		logging.UI.Error(loaded.err)
		return nil
	}
	if m.source != nil {
		m.entries = loaded.result.Entries
		m.matched = loaded.result.Matched
	}
	m.filterLabel = loaded.label
	m.lastRefresh = loaded.result.LoadedAt
	if m.lastRefresh.IsZero() {
		m.lastRefresh = m.now()
	}
	m.lastLabel = loaded.label
	if m.store != nil {
		if err := m.store.RecordRefresh(loaded.label); err != nil {
			logging.UI.Error(err)
		}
	}
	m.syncContent()
	m.content.vp.GotoTop()
	return nil
}

// persistOrder saves the label order after the debounced reorder notification.
func (m *Model) persistOrder(labels []string) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveOrder(labels); err != nil {
		m.errMsg = fmt.Sprintf("save order: %v", err)
		logging.UI.Error(err)
	}
}
