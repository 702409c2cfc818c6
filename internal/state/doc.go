// Package state holds the search/result controller shared by the octoscout UI.
//
// # Overview
//
// Controller owns everything the UI renders about a search: the query text,
// the executed query, the result list, the loading and error flags, and the
// per-user repository state. Views never mutate it directly. They call one
// of the operations and re-read a Snapshot.
//
//	UI (Bubble Tea):                Controller:
//	┌────────────────┐             ┌──────────────────────┐
//	│ enter pressed  │──Search()──→│ Loading = true       │
//	│                │             │ finder.FindUsers()   │
//	│ <-Updates()    │←──signal────│ Users = ...          │
//	│ Snapshot()     │             │ Loading = false      │
//	└────────────────┘             └──────────────────────┘
//
// # Operations
//
//   - SetQuery: plain assignment.
//   - Search: validates the query, clears the previous results, calls
//     FindUsers and records the outcome. An empty result is reported with
//     MsgNoUsers and is not treated as a failure.
//   - LoadRepositories: fetches one user's repositories and attaches them to
//     that user only. The most recent successful load marks its user Active.
//
// # Concurrency Model
//
// Operations block on the network and are meant to run off the UI
// goroutine. A mutex guards the snapshot and is never held across a request.
// There is no cancellation or request versioning: when two searches overlap,
// whichever response resolves last wins.
//
// Mutations replace the user slice instead of writing into it, so a Snapshot
// taken before an update keeps showing the state it was taken from.
//
// # Update Notifications
//
// Updates returns a channel with a buffer of one. Every mutation performs a
// non-blocking send, so bursts collapse into a single pending signal. The
// receiver re-reads Snapshot and waits again.
package state
