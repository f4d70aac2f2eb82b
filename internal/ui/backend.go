package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pullmenu/internal/backend"
)

// taskMsg fires a task scheduled through teaScheduler.
type taskMsg struct {
	id int
}

// teaScheduler implements backend.Scheduler on top of tea.Tick. Tasks run
// inside Model.Update when their taskMsg arrives; cancelled tasks are dropped
// when the message shows up.
type teaScheduler struct {
	seq   int
	tasks map[int]func()
	queue []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{tasks: make(map[int]func())}
}

func (s *teaScheduler) Schedule(delay time.Duration, fn func()) backend.CancelFunc {
	if fn == nil {
		return func() {}
	}
	s.seq++
	id := s.seq
	s.tasks[id] = fn
	s.queue = append(s.queue, tea.Tick(delay, func(time.Time) tea.Msg {
		return taskMsg{id: id}
	}))
	return func() { delete(s.tasks, id) }
}

func (s *teaScheduler) run(id int) {
	fn, ok := s.tasks[id]
	if !ok {
		return
	}
	delete(s.tasks, id)
	fn()
}

func (s *teaScheduler) drain() []tea.Cmd {
	if s == nil || len(s.queue) == 0 {
		return nil
	}
	cmds := s.queue
	s.queue = nil
	return cmds
}

func (m *Model) handleTaskMsg(msg tea.Msg) tea.Cmd {
	task, ok := msg.(taskMsg)
	if !ok || m.ticks == nil {
		return nil
	}
	m.ticks.run(task.id)
	return nil
}
