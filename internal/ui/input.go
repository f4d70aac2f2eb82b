package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pullmenu/internal/gesture"
	"github.com/atomicstack/pullmenu/internal/logging"
	"github.com/atomicstack/pullmenu/internal/pull"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "esc":
		if err := m.ctrl.Abort(); err != nil {
			logging.UI.Error(err)
		}
		return nil
	case "r":
		m.manualRefresh()
		return nil
	}
	if m.dragging() {
		return nil
	}
	var cmd tea.Cmd
	m.content.vp, cmd = m.content.vp.Update(keyMsg)
	return cmd
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if tea.MouseEvent(mouse).IsWheel() {
		if m.dragging() {
			return nil
		}
		var cmd tea.Cmd
		m.content.vp, cmd = m.content.vp.Update(mouse)
		return cmd
	}
	phase, ok := samplePhase(mouse)
	if !ok {
		return nil
	}
	sample := gesture.Sample{X: float64(mouse.X), Y: float64(mouse.Y), Phase: phase}
	if _, err := m.ctrl.Handle(sample); err != nil {
		logging.UI.Error(err)
	}
	return nil
}

// samplePhase maps a left-button mouse event onto a pointer phase.
func samplePhase(ev tea.MouseMsg) (gesture.Phase, bool) {
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft {
			return gesture.PhaseDown, true
		}
	case tea.MouseActionMotion:
		if ev.Button == tea.MouseButtonLeft {
			return gesture.PhaseMove, true
		}
	case tea.MouseActionRelease:
		return gesture.PhaseUp, true
	}
	return 0, false
}

func (m *Model) dragging() bool {
	return m.ctrl.State() == pull.StateDragging
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.ctrl.Destroy()
	m.bus.Stop()
	return tea.Quit
}
