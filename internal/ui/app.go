package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/octoscout/internal/logging"
	"github.com/five82/octoscout/internal/prefs"
	"github.com/five82/octoscout/internal/state"
)

// focusArea is the part of the screen receiving keystrokes.
type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Controller   *state.Controller
	Logger       *log.Logger
	ThemeName    string
	ShowURLs     bool
	PrefsPath    string
	InitialQuery string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *state.Controller
	logger    *log.Logger
	prefsPath string
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    focusArea
	showURLs bool

	// Data state
	snapshot state.Snapshot

	// Components
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	// View-local list state. Neither is part of the controller's model and
	// both reset whenever the result list disappears.
	cursor   int
	expanded int64 // user ID of the open repository panel, 0 for none

	initialQuery string
}

// New creates a new Bubble Tea model. The controller is required.
func New(ctrl *state.Controller, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = "🔍 "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:          ctx,
		ctrl:         ctrl,
		logger:       logger,
		prefsPath:    prefsPath,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.ThemeName),
		focus:        focusSearch,
		showURLs:     opts.ShowURLs,
		snapshot:     ctrl.Snapshot(),
		input:        ti,
		spinner:      sp,
		help:         help.New(),
		initialQuery: strings.TrimSpace(opts.InitialQuery),
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		waitForUpdate(m.ctx, m.ctrl),
	}
	if m.initialQuery != "" {
		q := m.initialQuery
		cmds = append(cmds, func() tea.Msg { return initialSearchMsg(q) })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, 0)
			m.ready = true
		}
		m.input.Width = max(10, msg.Width-10)
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case stateChangedMsg:
		m.syncSnapshot(m.ctrl.Snapshot())
		return m, waitForUpdate(m.ctx, m.ctrl)

	case initialSearchMsg:
		m.input.SetValue(string(msg))
		m.ctrl.SetQuery(string(msg))
		return m.startSearch()

	case searchDoneMsg:
		m.syncSnapshot(m.ctrl.Snapshot())
		if m.snapshot.ShowResults() {
			m.setFocus(focusResults)
		}
		return m, nil

	case reposDoneMsg:
		m.syncSnapshot(m.ctrl.Snapshot())
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save preferences failed", "path", m.prefsPath, "err", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.busy() {
			m.refreshBody()
		}
		return m, cmd
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return strings.Join([]string{
		m.renderHeader(),
		m.renderSearchBar(),
		m.viewport.View(),
		m.renderFooter(),
	}, "\n")
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleResultsKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.snapshot.Loading {
			return m, nil
		}
		return m.startSearch()

	case key.Matches(msg, m.keys.LeaveSearch):
		m.setFocus(focusResults)
		return m, nil
	}

	// The search box is disabled while a search is in flight.
	if m.snapshot.Loading {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.ctrl.SetQuery(value)
	}
	return m, cmd
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusSearch):
		m.setFocus(focusSearch)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.refreshBody()
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.ToggleURLs):
		m.showURLs = !m.showURLs
		m.refreshBody()
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if !m.snapshot.ShowResults() {
		return m, nil
	}
	count := len(m.snapshot.Users)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = count - 1
	case key.Matches(msg, m.keys.Toggle):
		cmd := m.toggleRow(m.cursor)
		m.refreshBody()
		return m, cmd
	case key.Matches(msg, m.keys.Collapse):
		m.expanded = 0
	default:
		return m, nil
	}
	m.refreshBody()
	return m, nil
}

// startSearch resets the view-local list state and runs the controller's
// search off the UI goroutine.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.expanded = 0
	m.refreshBody()
	return m, searchCmd(m.ctx, m.ctrl)
}

// toggleRow opens or closes the repository panel for row i. Opening a row
// whose repositories were never loaded returns the command that loads them.
func (m *Model) toggleRow(i int) tea.Cmd {
	if i < 0 || i >= len(m.snapshot.Users) {
		return nil
	}
	u := m.snapshot.Users[i]
	if m.expanded == u.ID {
		m.expanded = 0
		return nil
	}
	m.expanded = u.ID
	if u.ReposLoaded || u.LoadingRepos {
		return nil
	}
	return loadReposCmd(m.ctx, m.ctrl, u.Login)
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusSearch {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.layout()
}

// syncSnapshot stores snap and reconciles view-local state with it.
func (m *Model) syncSnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !snap.ShowResults() {
		m.cursor = 0
		m.expanded = 0
	} else {
		if m.cursor >= len(snap.Users) {
			m.cursor = len(snap.Users) - 1
		}
		if _, ok := m.expandedUser(); !ok {
			m.expanded = 0
		}
	}
	if m.input.Value() != snap.Query {
		m.input.SetValue(snap.Query)
	}
	m.refreshBody()
}

func (m Model) expandedUser() (state.User, bool) {
	if m.expanded == 0 {
		return state.User{}, false
	}
	for _, u := range m.snapshot.Users {
		if u.ID == m.expanded {
			return u, true
		}
	}
	return state.User{}, false
}

// busy reports whether a spinner is on screen.
func (m Model) busy() bool {
	if m.snapshot.Loading {
		return true
	}
	u, ok := m.expandedUser()
	return ok && u.LoadingRepos
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.FullDesc = styles.MutedText
}

// layout sizes the viewport to the space left by the fixed chrome.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	chrome := lineCount(m.renderHeader()) + lineCount(m.renderSearchBar()) + lineCount(m.renderFooter())
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-chrome)
	m.refreshBody()
}

func (m Model) savePrefs() tea.Cmd {
	path := m.prefsPath
	p := prefs.Prefs{Theme: m.theme.Name, ShowURLs: m.showURLs}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Messages

type stateChangedMsg struct{}

type searchDoneMsg struct{}

type reposDoneMsg struct{}

type initialSearchMsg string

type prefsSavedMsg struct{ err error }

// Commands

func waitForUpdate(ctx context.Context, ctrl *state.Controller) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-ctrl.Updates():
			return stateChangedMsg{}
		}
	}
}

func searchCmd(ctx context.Context, ctrl *state.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Search(ctx)
		return searchDoneMsg{}
	}
}

func loadReposCmd(ctx context.Context, ctrl *state.Controller, login string) tea.Cmd {
	return func() tea.Msg {
		ctrl.LoadRepositories(ctx, login)
		return reposDoneMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Controller == nil {
		return errNoController
	}
	m := New(opts.Controller, opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
