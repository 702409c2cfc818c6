// Package ui provides the octoscout terminal interface, built on Bubble Tea.
//
// # Layout
//
//	┌─────────────────────────────────────────────┐
//	│ octoscout  GitHub user explorer             │  header
//	│ ╭─────────────────────────────────────────╮ │
//	│ │ 🔍 Enter username                        │ │  search box
//	│ ╰─────────────────────────────────────────╯ │
//	│ Showing users for "octo"                    │
//	│ ▾ octocat •                                 │  viewport
//	│     hello-world  ★ 1,500                    │
//	│ ▸ octodog                                   │
//	│ enter repositories • esc collapse • ...     │  help footer
//	└─────────────────────────────────────────────┘
//
// # Event Flow
//
// The model never calls the network itself. Search and repository loads run
// as tea.Cmds that invoke the state.Controller. The controller signals on its
// Updates channel; waitForUpdate turns that into a stateChangedMsg and the
// model re-reads a Snapshot. The command that started an operation also
// returns a completion message so focus can follow the result.
//
// The cursor position and the expanded row are view-local. They reset when
// a new search starts and are clamped whenever the result list changes.
//
// # Files
//
//   - app.go: Model, Update loop, commands and Run
//   - render.go: header, search box and scrollable body
//   - help.go: key help footer
//   - keys.go: key bindings
//   - theme.go: palettes and lipgloss styles
//   - strings.go, layout.go: formatting helpers and display constants
package ui
