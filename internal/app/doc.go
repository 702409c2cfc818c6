// Package app is the composition root for octoscout.
//
// Run wires the pieces together in a fixed order:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config.toml, apply CLI overrides
//	       ├─────> logging.OpenFile()     File logger (the TUI owns the terminal)
//	       ├─────> github.NewClient()     REST client, optional request timeout
//	       ├─────> prefs.Load()           Theme and URL display preference
//	       ├─────> state.NewController()  Search/result state
//	       └─────> ui.Run()               Start TUI (blocks)
//
// Fatal errors are returned from Run: an unreadable or invalid config file,
// a log file that cannot be opened, and a malformed API base URL. Request
// failures during a session never reach this package. The controller turns
// them into on-screen messages.
//
// When ctx is cancelled (SIGINT or SIGTERM), Run returns ctx.Err() so the
// caller can pick the interrupt exit status.
package app
