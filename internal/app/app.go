package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pullmenu/internal/band"
	"github.com/atomicstack/pullmenu/internal/feed"
	"github.com/atomicstack/pullmenu/internal/logging"
	"github.com/atomicstack/pullmenu/internal/logging/events"
	"github.com/atomicstack/pullmenu/internal/pull"
	"github.com/atomicstack/pullmenu/internal/store"
	"github.com/atomicstack/pullmenu/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Labels         []string
	Entries        []feed.Entry
	Pull           pull.Options
	ReorderDelay   time.Duration
	RefreshLatency time.Duration
	// StatePath locates the state database; empty selects the XDG data dir.
	StatePath string
	// Width and Height pin the layout; zero follows the terminal.
	Width  int
	Height int
	// InitialWidth and InitialHeight size the layout until the first resize
	// message arrives.
	InitialWidth  int
	InitialHeight int
}

// feedMinInterval spaces consecutive feed loads.
const feedMinInterval = 250 * time.Millisecond

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model, st := prepare(cfg)
	if st != nil {
		defer st.Close()
	}
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := program.Run()
	model.Controller().Destroy()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	events.App.Exit(err)
	return err
}

// prepare opens the state store and builds the UI model. A store that cannot
// be opened is logged and the session runs without persistence.
func prepare(cfg Config) (*ui.Model, *store.Store) {
	if err := band.Validate(len(cfg.Labels)); err != nil {
		logging.App.Error(err)
	}

	st, err := store.Open(cfg.StatePath)
	if err != nil {
		logging.App.Error(err)
		st = nil
	}

	var saved []string
	if st != nil {
		if saved, err = st.LoadOrder(); err != nil {
			logging.App.Error(err)
			saved = nil
		}
	}

	model := ui.NewModel(ui.Options{
		Labels:        cfg.Labels,
		SavedOrder:    saved,
		Source:        feed.New(cfg.Entries, cfg.RefreshLatency, feedMinInterval),
		Store:         st,
		Pull:          cfg.Pull,
		ReorderDelay:  cfg.ReorderDelay,
		Width:         cfg.Width,
		Height:        cfg.Height,
		InitialWidth:  cfg.InitialWidth,
		InitialHeight: cfg.InitialHeight,
		Animate:       true,
	})
	return model, st
}
