package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pullmenu/internal/backend"
	"github.com/atomicstack/pullmenu/internal/feed"
	"github.com/atomicstack/pullmenu/internal/logging"
	"github.com/atomicstack/pullmenu/internal/logging/events"
	"github.com/atomicstack/pullmenu/internal/menu"
	"github.com/atomicstack/pullmenu/internal/pull"
	"github.com/atomicstack/pullmenu/internal/store"
	"github.com/atomicstack/pullmenu/internal/theme"
	"github.com/atomicstack/pullmenu/internal/ui/command"
)

const (
	titleRows  = 1
	footerRows = 1
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options wires the model to its collaborators.
type Options struct {
	Labels []string
	// SavedOrder is applied on top of Labels when it is a permutation of them.
	SavedOrder   []string
	Source       *feed.Source
	Store        *store.Store
	Pull         pull.Options
	ReorderDelay time.Duration
	Width        int
	Height       int
	// InitialWidth and InitialHeight apply when Width or Height is zero and
	// are replaced by the first tea.WindowSizeMsg.
	InitialWidth  int
	InitialHeight int
	// Scheduler overrides the tea.Tick based scheduler, e.g. with a manual
	// clock in tests.
	Scheduler backend.Scheduler
	// Animate enables spinner ticks.
	Animate bool
}

// Model implements the Bubble Tea model for the pull menu host.
type Model struct {
	ctrl    *pull.Controller
	order   *menu.Order
	header  *headerView
	content *contentRegion
	source  *feed.Source
	store   *store.Store
	bus     *command.Bus
	ticks   *teaScheduler
	pending []tea.Cmd

	entries     []feed.Entry
	filterLabel string
	matched     bool
	loading     bool
	lastRefresh time.Time
	lastLabel   string
	hint        string
	errMsg      string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	quitting    bool
	now         func() time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state, the pull controller and its region.
func NewModel(opts Options) *Model {
	m := &Model{
		source:  opts.Source,
		store:   opts.Store,
		bus:     command.New(),
		matched: true,
		now:     time.Now,
	}
	sched := opts.Scheduler
	if sched == nil {
		m.ticks = newTeaScheduler()
		sched = m.ticks
	}

	m.order = menu.NewOrder(opts.Labels, sched, opts.ReorderDelay)
	if len(opts.SavedOrder) > 0 {
		applied := m.order.Restore(opts.SavedOrder)
		events.Store.RestoreOrder(opts.SavedOrder, applied)
	}
	m.header = newHeaderView(m.order.Labels(), opts.Animate)
	m.order.Observe(m.header.setLabels)
	m.order.Observe(m.persistOrder)

	m.ctrl = pull.New(m.header, m.order, sched, opts.Pull)
	m.content = newContentRegion()
	if err := m.ctrl.AddRegion(m.content, nil); err != nil {
		logging.UI.Error(err)
	}
	m.ctrl.SetRefreshListener(m.onRefresh)
	m.ctrl.SetVisibilityListener(m.onVisibility)

	if m.source != nil {
		m.entries = m.source.Entries()
	}
	if m.store != nil {
		if last, ok, err := m.store.LastRefresh(); err != nil {
			logging.UI.Error(err)
		} else if ok {
			m.lastRefresh = last.At
			m.lastLabel = last.Label
		}
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	} else if opts.InitialWidth > 0 {
		m.width = opts.InitialWidth
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	} else if opts.InitialHeight > 0 {
		m.height = opts.InitialHeight
	}
	m.layout()
	m.syncContent()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(taskMsg{}):           m.handleTaskMsg,
		reflect.TypeOf(feedLoadedMsg{}):     m.handleFeedLoadedMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate collects the commands queued by controller callbacks during
// this update along with the handler's own.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	cmds = append(cmds, m.header.drain()...)
	cmds = append(cmds, m.ticks.drain()...)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	// The region's bounds change under a drag in progress.
	if err := m.ctrl.Abort(); err != nil {
		logging.UI.Error(err)
	}
	m.layout()
	m.syncContent()
	return nil
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	if err := m.ctrl.Abort(); err != nil {
		logging.UI.Error(err)
	}
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	return m.header.updateSpinner(tick)
}

// layout sizes the viewport below the title and header rows.
func (m *Model) layout() {
	contentHeight := m.height - titleRows - headerRows - footerRows
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.content.x = 0
	m.content.y = titleRows + headerRows
	m.content.vp.Width = m.width
	m.content.vp.Height = contentHeight
	m.header.setWidth(m.width)
}

// Controller exposes the pull controller.
func (m *Model) Controller() *pull.Controller {
	return m.ctrl
}

// Order exposes the menu order.
func (m *Model) Order() *menu.Order {
	return m.order
}

// Entries returns the entries currently shown.
func (m *Model) Entries() []feed.Entry {
	return append([]feed.Entry(nil), m.entries...)
}
