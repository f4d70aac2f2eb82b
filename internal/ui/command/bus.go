package command

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pullmenu/internal/logging/events"
)

// Request encapsulates one asynchronous load started by a refresh.
type Request struct {
	ID    string
	Label string
	Run   func(ctx context.Context) tea.Msg
}

// Bus runs refresh loads as Bubble Tea commands. Every load shares the bus
// context, so Stop abandons loads still in flight.
type Bus struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// New initialises a command bus instance.
func New() *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{ctx: ctx, cancel: cancel}
}

// Execute wraps a load into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil || b.ctx.Err() != nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run(b.ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

// Stop cancels the shared context.
func (b *Bus) Stop() {
	b.cancel()
}
