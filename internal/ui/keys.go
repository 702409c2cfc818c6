package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	// Search box
	FocusSearch key.Binding
	Submit      key.Binding
	LeaveSearch key.Binding

	// Result list
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Toggle   key.Binding
	Collapse key.Binding

	// Display
	CycleTheme key.Binding
	ToggleURLs key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),

		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run search"),
		),
		LeaveSearch: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc/tab", "go to results"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first user"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last user"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "repositories"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "collapse"),
		),

		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		ToggleURLs: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "toggle urls"),
		),
	}
}

// searchKeys are the bindings shown while the search box has focus.
type searchKeys struct {
	keyMap
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Collapse, k.FocusSearch, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Toggle, k.Collapse, k.PageUp, k.PageDown},
		{k.FocusSearch, k.CycleTheme, k.ToggleURLs},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// ShortHelp returns key bindings for the search box.
func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.LeaveSearch, k.ForceQuit}
}

// FullHelp returns key bindings for the search box.
func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.LeaveSearch, k.ForceQuit}}
}
