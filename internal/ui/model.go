package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"genshinbook/internal/config"
	"genshinbook/internal/domain"
	"genshinbook/internal/eventbus"
	"genshinbook/internal/navigator"
	"genshinbook/internal/ui/logic"
	"genshinbook/internal/ui/views"
)

// reservedLines accounts for padding, title (2 lines), breadcrumb, the gap
// below it, status and help
const reservedLines = 8

// Model represents the UI state
type Model struct {
	nav    *navigator.Navigator
	config *config.Config
	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model // leaf payload
	cursor   *logic.Cursor  // list payload

	// current is the navigator state the screen was last built from
	current navigator.State
	entries []string
	history []int // cursor of each ancestor list, one per path segment

	renderer *views.Renderer
	leaf     *views.LeafRenderer
	pager    *Pager

	loading       bool
	fetching      string // URL of the outstanding request, once announced
	showHelp      bool
	status        string
	statusIsError bool
}

// NewModel creates a new UI model
func NewModel(nav *navigator.Navigator, cfg *config.Config) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	styles := views.NewStyles()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	m := &Model{
		nav:      nav,
		config:   cfg,
		ctx:      ctx,
		cancel:   cancel,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		viewport: viewport.New(80, 16),
		cursor:   logic.NewCursor(16),
		current:  nav.State(),
		renderer: views.NewRenderer(styles),
		leaf: views.NewLeafRenderer(styles, views.LeafOptions{
			Indent:      cfg.UISettings.Indent,
			LineNumbers: cfg.UISettings.LineNumbers,
			Highlight:   cfg.UISettings.Highlight,
		}),
		pager: NewPager(),
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init loads the root listing
func (m *Model) Init() tea.Cmd {
	return m.navigate(domain.OpInitialize, []string{}, m.nav.Initialize)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case navigatedMsg:
		m.handleNavigated(msg)
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("pager: %v", msg.err))
		}
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil
	}

	return m, nil
}

// View renders the screen
func (m *Model) View() string {
	start, end, above, below := m.cursor.Window()

	status, isError := m.status, m.statusIsError
	if m.loading && m.fetching != "" {
		status, isError = "GET "+m.fetching, false
	}

	m.help.ShowAll = m.showHelp
	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Breadcrumb:    domain.Breadcrumb(m.current.ActivePath),
		CanGoBack:     !m.current.AtRoot(),
		Loaded:        m.current.Version > 0,
		Loading:       m.loading,
		Spinner:       m.spinner.View(),
		Kind:          m.current.Kind(),
		Entries:       m.entries,
		SelectedIndex: m.cursor.Selected(),
		WindowStart:   start,
		WindowEnd:     end,
		Above:         above,
		Below:         below,
		Leaf:          m.viewport.View(),
		Status:        status,
		StatusIsError: isError,
		ShowHelp:      m.showHelp,
		HelpText:      m.help.View(m.keys),
	})
}

// Shutdown aborts any outstanding fetch
func (m *Model) Shutdown() {
	m.nav.Cancel()
	m.cancel()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp {
		if msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// One request at a time; keys that would navigate are dropped meanwhile
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.current.AtRoot() {
			return m, nil
		}
		return m, m.navigate(domain.OpBack, navigator.Pop(m.current.ActivePath), m.nav.NavigateBack)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.navigate(domain.OpRefresh, m.current.ActivePath, m.nav.Refresh)
	}

	if m.current.Version == 0 {
		return m, nil
	}

	if m.current.Kind() == domain.KindList {
		return m, m.handleListKey(msg)
	}
	return m, m.handleLeafKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.cursor.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.cursor.PageDown()
	case key.Matches(msg, m.keys.Top):
		m.cursor.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor.Bottom()
	case key.Matches(msg, m.keys.Open):
		idx := m.cursor.Selected()
		if idx < 0 || idx >= len(m.entries) {
			return nil
		}
		segment := m.entries[idx]
		return m.navigate(domain.OpInto, navigator.Forward(m.current.ActivePath, segment), func(ctx context.Context) error {
			return m.nav.NavigateInto(ctx, segment)
		})
	}
	return nil
}

func (m *Model) handleLeafKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Pager):
		content := m.leaf.Plain(m.current.LastResponse)
		return func() tea.Msg {
			return pagerMsg{err: m.pager.Show(content)}
		}
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// navigate starts run in the background and reports back with a navigatedMsg
func (m *Model) navigate(op domain.Operation, target []string, run func(context.Context) error) tea.Cmd {
	m.loading = true
	m.fetching = ""
	m.status = ""
	m.statusIsError = false

	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return navigatedMsg{op: op, target: target, err: run(ctx)}
	})
}

func (m *Model) handleNavigated(msg navigatedMsg) {
	m.loading = false
	m.fetching = ""

	if msg.err != nil {
		switch {
		case errors.Is(msg.err, navigator.ErrFetchFailed):
			m.setError("failed to load " + domain.Breadcrumb(msg.target))
		case errors.Is(msg.err, navigator.ErrDiscarded),
			errors.Is(msg.err, navigator.ErrBusy),
			errors.Is(msg.err, navigator.ErrAtRoot):
			log.WithError(msg.err).WithField("op", msg.op).Debug("navigation not applied")
		default:
			m.setError(msg.err.Error())
		}
		return
	}

	m.sync(msg.op)
}

// sync rebuilds the screen from the navigator state after op succeeded
func (m *Model) sync(op domain.Operation) {
	state := m.nav.State()
	if state.Version == m.current.Version {
		return
	}

	restore := 0
	switch op {
	case domain.OpInto:
		m.history = append(m.history, m.cursor.Selected())
	case domain.OpBack:
		if n := len(m.history); n > 0 {
			restore = m.history[n-1]
			m.history = m.history[:n-1]
		}
	case domain.OpRefresh:
		restore = m.cursor.Selected()
	default:
		m.history = nil
	}

	m.current = state
	m.entries = state.Entries()

	if state.Kind() == domain.KindList {
		m.cursor.Restore(len(m.entries), restore)
		return
	}
	m.cursor.Reset(0)
	m.viewport.SetContent(m.leaf.Render(state.LastResponse))
	m.viewport.GotoTop()
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.NavigationStartedEvent:
		if m.loading {
			m.fetching = e.URL
		}
	case eventbus.NavigationDiscardedEvent:
		log.WithField("id", e.RequestID).Debug("ui saw discarded navigation")
	}
}

func (m *Model) setError(status string) {
	m.status = status
	m.statusIsError = true
}

// updateViewportHeight calculates the available height for the list and leaf
func (m *Model) updateViewportHeight() {
	height := m.height - reservedLines
	if height < 1 {
		height = 1
	}
	m.cursor.SetViewportHeight(height)

	width := m.width - 4 // Account for main container padding
	if width < 1 {
		width = 1
	}
	m.viewport.Width = width
	m.viewport.Height = height
}
