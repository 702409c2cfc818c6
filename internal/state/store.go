package state

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/five82/octoscout/internal/github"
)

// User-facing messages set by the controller.
const (
	MsgEmptyQuery       = "Please enter a username to search"
	MsgNoUsers          = "No users found matching your search"
	MsgSearchFailed     = "An error occurred while searching for users"
	MsgRepositoryFailed = "An error occurred while fetching repositories"
)

// User is a search result plus its lazily loaded repository state.
type User struct {
	github.User

	Repositories []github.Repository
	ReposLoaded  bool // false until the first successful ListRepositories
	LoadingRepos bool
	RepoErr      string
	Active       bool // last user whose repositories loaded successfully
}

// Snapshot represents the search state available to the UI.
type Snapshot struct {
	Query           string
	ExecutedQuery   string
	Users           []User
	Loading         bool
	Err             string
	SearchPerformed bool
}

// HasError reports whether an error banner should be shown.
func (s Snapshot) HasError() bool {
	return s.Err != ""
}

// ShowResults reports whether the result list should be rendered.
func (s Snapshot) ShowResults() bool {
	return !s.Loading && s.SearchPerformed && len(s.Users) > 0
}

// Controller owns the search state and coordinates updates from UI actions
// and API responses.
type Controller struct {
	finder github.Finder
	logger *log.Logger

	mu       sync.Mutex
	snapshot Snapshot
	updates  chan struct{}
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger used for operation tracing.
func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController builds a Controller backed by finder.
func NewController(finder github.Finder, opts ...ControllerOption) *Controller {
	c := &Controller{
		finder:  finder,
		logger:  log.New(io.Discard),
		updates: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Updates signals after every state change. Signals coalesce: a receiver
// should read Snapshot after each one rather than count them.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshot
	snap.Users = cloneUsers(c.snapshot.Users)
	return snap
}

// SetQuery records the text in the search box.
func (c *Controller) SetQuery(text string) {
	c.mutate(func(s *Snapshot) {
		s.Query = text
	})
}

// Search runs a user search for the current query. It blocks until the
// request resolves and always leaves Loading false.
func (c *Controller) Search(ctx context.Context) {
	var query string
	empty := false
	c.mutate(func(s *Snapshot) {
		query = s.Query
		if strings.TrimSpace(query) == "" {
			s.Err = MsgEmptyQuery
			empty = true
			return
		}
		s.Loading = true
		s.SearchPerformed = true
		s.Users = nil
		s.Err = ""
	})
	if empty {
		return
	}

	op := uuid.NewString()
	start := time.Now()
	c.logger.Debug("search started", "op", op, "query", query)

	users, err := c.finder.FindUsers(ctx, query)

	c.mutate(func(s *Snapshot) {
		defer func() { s.Loading = false }()

		if err != nil {
			s.Err = errorMessage(err, MsgSearchFailed)
			return
		}
		s.Users = newUsers(users)
		s.ExecutedQuery = query
		if len(users) == 0 {
			s.Err = MsgNoUsers
		} else {
			s.Err = ""
		}
	})
	if err != nil {
		c.logger.Warn("search failed", "op", op, "query", query,
			"status", github.StatusCode(err), "network", github.IsNetworkError(err))
	}
	c.logger.Debug("search finished", "op", op, "query", query, "users", len(users), "ok", err == nil,
		"elapsed", time.Since(start).Round(time.Millisecond))
}

// LoadRepositories fetches login's repositories and attaches them to the
// matching result. Only that user's record changes on failure. It does not
// skip users whose repositories are already loaded.
func (c *Controller) LoadRepositories(ctx context.Context, login string) {
	c.mutate(func(s *Snapshot) {
		s.Users = mapUsers(s.Users, func(u User) User {
			if u.Login != login {
				return u
			}
			u.LoadingRepos = true
			u.RepoErr = ""
			return u
		})
	})

	op := uuid.NewString()
	start := time.Now()
	c.logger.Debug("repository load started", "op", op, "login", login)

	repos, err := c.finder.ListRepositories(ctx, login)

	c.mutate(func(s *Snapshot) {
		if err != nil {
			msg := errorMessage(err, MsgRepositoryFailed)
			s.Users = mapUsers(s.Users, func(u User) User {
				if u.Login != login {
					return u
				}
				u.LoadingRepos = false
				u.RepoErr = msg
				return u
			})
			return
		}
		s.Users = mapUsers(s.Users, func(u User) User {
			if u.Login != login {
				if !u.Active {
					return u
				}
				u.Active = false
				return u
			}
			u.Repositories = repos
			u.ReposLoaded = true
			u.LoadingRepos = false
			u.Active = true
			return u
		})
	})
	if err != nil {
		c.logger.Warn("repository load failed", "op", op, "login", login,
			"status", github.StatusCode(err), "network", github.IsNetworkError(err))
	}
	c.logger.Debug("repository load finished", "op", op, "login", login, "repos", len(repos), "ok", err == nil,
		"elapsed", time.Since(start).Round(time.Millisecond))
}

// mutate applies fn under the lock and signals subscribers.
func (c *Controller) mutate(fn func(*Snapshot)) {
	c.mu.Lock()
	fn(&c.snapshot)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}

func newUsers(found []github.User) []User {
	out := make([]User, len(found))
	for i, u := range found {
		out[i] = User{User: u}
	}
	return out
}

// mapUsers returns a new slice with fn applied to every user. The input
// slice is never written to, so snapshots handed out earlier stay intact.
func mapUsers(users []User, fn func(User) User) []User {
	if users == nil {
		return nil
	}
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = fn(u)
	}
	return out
}

func cloneUsers(users []User) []User {
	if len(users) == 0 {
		return nil
	}
	dup := make([]User, len(users))
	copy(dup, users)
	return dup
}
