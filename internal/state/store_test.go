package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/octoscout/internal/github"
)

type fakeFinder struct {
	mu sync.Mutex

	users    []github.User
	usersErr error
	repos    map[string][]github.Repository
	reposErr map[string]error

	// gate, when set, blocks FindUsers until it is closed.
	gate    chan struct{}
	started chan struct{}

	// Per-call gating for interleaving tests. entered receives the query
	// or login of each call before it blocks on its gate.
	byQuery   map[string][]github.User
	userGates map[string]chan struct{}
	repoGates map[string]chan struct{}
	entered   chan string

	userCalls []string
	repoCalls []string
}

func (f *fakeFinder) FindUsers(ctx context.Context, query string) ([]github.User, error) {
	f.mu.Lock()
	f.userCalls = append(f.userCalls, query)
	gate, started := f.gate, f.started
	queryGate, entered := f.userGates[query], f.entered
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if entered != nil {
		entered <- query
	}
	if queryGate != nil {
		<-queryGate
	}
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	if users, ok := f.byQuery[query]; ok {
		return users, nil
	}
	return f.users, nil
}

func (f *fakeFinder) ListRepositories(ctx context.Context, login string) ([]github.Repository, error) {
	f.mu.Lock()
	f.repoCalls = append(f.repoCalls, login)
	repoGate, entered := f.repoGates[login], f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- login
	}
	if repoGate != nil {
		<-repoGate
	}

	if err := f.reposErr[login]; err != nil {
		return nil, err
	}
	return f.repos[login], nil
}

func (f *fakeFinder) calls() (users, repos int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.userCalls), len(f.repoCalls)
}

var (
	testUsers = []github.User{
		{ID: 1, Login: "testuser1", AvatarURL: "https://example.com/avatar1.png", HTMLURL: "https://github.com/testuser1"},
		{ID: 2, Login: "testuser2", AvatarURL: "https://example.com/avatar2.png", HTMLURL: "https://github.com/testuser2"},
	}
	testRepos = []github.Repository{
		{ID: 101, Name: "repo1", HTMLURL: "https://github.com/testuser1/repo1", Description: "Test repository 1", Stars: 100},
		{ID: 102, Name: "repo2", HTMLURL: "https://github.com/testuser1/repo2", Description: "Test repository 2", Stars: 50},
	}
)

func findUser(snap Snapshot, login string) (User, bool) {
	for _, u := range snap.Users {
		if u.Login == login {
			return u, true
		}
	}
	return User{}, false
}

func searchedController(t *testing.T, f *fakeFinder) *Controller {
	t.Helper()
	c := NewController(f)
	c.SetQuery("test")
	c.Search(context.Background())
	require.Len(t, c.Snapshot().Users, len(f.users))
	return c
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeFinder{})
	snap := c.Snapshot()

	assert.False(t, snap.SearchPerformed)
	assert.False(t, snap.Loading)
	assert.False(t, snap.HasError())
	assert.Empty(t, snap.ExecutedQuery)
	assert.Empty(t, snap.Users)
	assert.False(t, snap.ShowResults())
}

func TestController_SetQueryIsPureAssignment(t *testing.T) {
	f := &fakeFinder{}
	c := NewController(f)

	c.SetQuery("test-query")

	snap := c.Snapshot()
	assert.Equal(t, "test-query", snap.Query)
	assert.False(t, snap.SearchPerformed)
	users, repos := f.calls()
	assert.Zero(t, users)
	assert.Zero(t, repos)
}

func TestController_EmptyQueryNeverCallsFinder(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		f := &fakeFinder{users: testUsers}
		c := NewController(f)
		c.SetQuery(query)

		c.Search(context.Background())

		snap := c.Snapshot()
		assert.Equal(t, MsgEmptyQuery, snap.Err, "query %q", query)
		assert.False(t, snap.Loading, "query %q", query)
		assert.False(t, snap.SearchPerformed, "query %q", query)
		users, _ := f.calls()
		assert.Zero(t, users, "query %q", query)
	}
}

func TestController_EmptyQueryKeepsSearchPerformed(t *testing.T) {
	f := &fakeFinder{users: testUsers}
	c := searchedController(t, f)

	c.SetQuery(" ")
	c.Search(context.Background())

	snap := c.Snapshot()
	assert.True(t, snap.SearchPerformed)
	assert.Equal(t, MsgEmptyQuery, snap.Err)
}

func TestController_SearchPopulatesResults(t *testing.T) {
	f := &fakeFinder{users: testUsers}
	c := NewController(f)
	c.SetQuery("test")

	c.Search(context.Background())

	snap := c.Snapshot()
	require.Len(t, snap.Users, 2)
	assert.Equal(t, "testuser1", snap.Users[0].Login)
	assert.Equal(t, "testuser2", snap.Users[1].Login)
	assert.Equal(t, "test", snap.ExecutedQuery)
	assert.True(t, snap.SearchPerformed)
	assert.False(t, snap.Loading)
	assert.False(t, snap.HasError())
	assert.True(t, snap.ShowResults())
	assert.False(t, snap.Users[0].ReposLoaded)
}

func TestController_SearchClearsPreviousError(t *testing.T) {
	f := &fakeFinder{users: testUsers}
	c := NewController(f)
	c.Search(context.Background())
	require.Equal(t, MsgEmptyQuery, c.Snapshot().Err)

	c.SetQuery("test")
	c.Search(context.Background())

	assert.False(t, c.Snapshot().HasError())
}

func TestController_SearchNoResults(t *testing.T) {
	f := &fakeFinder{users: []github.User{}}
	c := NewController(f)
	c.SetQuery("nonexistentuser")

	c.Search(context.Background())

	snap := c.Snapshot()
	assert.Empty(t, snap.Users)
	assert.Equal(t, MsgNoUsers, snap.Err)
	assert.Equal(t, "nonexistentuser", snap.ExecutedQuery)
	assert.True(t, snap.SearchPerformed)
	assert.False(t, snap.Loading)
	assert.False(t, snap.ShowResults())
}

func TestController_SearchAPIFailure(t *testing.T) {
	f := &fakeFinder{usersErr: &github.APIError{StatusCode: 403}}
	c := NewController(f)
	c.SetQuery("test")

	c.Search(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, "GitHub API error: 403", snap.Err)
	assert.False(t, snap.Loading)
	assert.True(t, snap.SearchPerformed)
	assert.Empty(t, snap.ExecutedQuery)
}

func TestController_SearchFailureClearsStaleResults(t *testing.T) {
	f := &fakeFinder{users: testUsers}
	c := searchedController(t, f)

	f.usersErr = &github.NetworkError{Err: errors.New("dial tcp: connection refused")}
	c.SetQuery("other")
	c.Search(context.Background())

	snap := c.Snapshot()
	assert.Empty(t, snap.Users)
	assert.Equal(t, "dial tcp: connection refused", snap.Err)
	assert.Equal(t, "test", snap.ExecutedQuery)
}

func TestController_SearchFailureWithoutMessageUsesFallback(t *testing.T) {
	f := &fakeFinder{usersErr: errors.New("")}
	c := NewController(f)
	c.SetQuery("test")

	c.Search(context.Background())

	assert.Equal(t, MsgSearchFailed, c.Snapshot().Err)
}

func TestController_LoadingOnlyWhileRequestInFlight(t *testing.T) {
	f := &fakeFinder{
		users:   testUsers,
		gate:    make(chan struct{}),
		started: make(chan struct{}),
	}
	c := NewController(f)
	c.SetQuery("test")

	done := make(chan struct{})
	go func() {
		c.Search(context.Background())
		close(done)
	}()

	<-f.started
	snap := c.Snapshot()
	assert.True(t, snap.Loading)
	assert.True(t, snap.SearchPerformed)
	assert.Empty(t, snap.Users)
	assert.False(t, snap.ShowResults())

	close(f.gate)
	<-done
	snap = c.Snapshot()
	assert.False(t, snap.Loading)
	assert.True(t, snap.ShowResults())
}

func TestController_LoadRepositories(t *testing.T) {
	f := &fakeFinder{
		users: testUsers,
		repos: map[string][]github.Repository{"testuser1": testRepos},
	}
	c := searchedController(t, f)

	c.LoadRepositories(context.Background(), "testuser1")

	snap := c.Snapshot()
	u, ok := findUser(snap, "testuser1")
	require.True(t, ok)
	assert.Len(t, u.Repositories, 2)
	assert.True(t, u.ReposLoaded)
	assert.False(t, u.LoadingRepos)
	assert.Empty(t, u.RepoErr)
	assert.True(t, u.Active)

	other, ok := findUser(snap, "testuser2")
	require.True(t, ok)
	assert.Equal(t, User{User: testUsers[1]}, other)
}

func TestController_LoadRepositoriesMovesActiveFlag(t *testing.T) {
	f := &fakeFinder{
		users: testUsers,
		repos: map[string][]github.Repository{
			"testuser1": testRepos,
			"testuser2": {},
		},
	}
	c := searchedController(t, f)

	c.LoadRepositories(context.Background(), "testuser1")
	c.LoadRepositories(context.Background(), "testuser2")

	snap := c.Snapshot()
	first, _ := findUser(snap, "testuser1")
	second, _ := findUser(snap, "testuser2")
	assert.False(t, first.Active)
	assert.Len(t, first.Repositories, 2, "cached repositories survive another user's load")
	assert.True(t, second.Active)
	assert.True(t, second.ReposLoaded)
	assert.Empty(t, second.Repositories)
}

func TestController_LoadRepositoriesFailureIsScoped(t *testing.T) {
	f := &fakeFinder{
		users:    testUsers,
		reposErr: map[string]error{"testuser1": &github.APIError{StatusCode: 404}},
	}
	c := searchedController(t, f)
	before := c.Snapshot()

	c.LoadRepositories(context.Background(), "testuser1")

	snap := c.Snapshot()
	u, _ := findUser(snap, "testuser1")
	assert.Equal(t, "GitHub API error: 404", u.RepoErr)
	assert.False(t, u.LoadingRepos)
	assert.False(t, u.ReposLoaded)
	assert.Nil(t, u.Repositories)

	other, _ := findUser(snap, "testuser2")
	prev, _ := findUser(before, "testuser2")
	assert.Equal(t, prev, other)
	assert.False(t, snap.HasError(), "repository failures never touch the search banner")
	assert.False(t, snap.Loading)
}

func TestController_LoadRepositoriesFailureFallbackMessage(t *testing.T) {
	f := &fakeFinder{
		users:    testUsers,
		reposErr: map[string]error{"testuser2": errors.New(" ")},
	}
	c := searchedController(t, f)

	c.LoadRepositories(context.Background(), "testuser2")

	u, _ := findUser(c.Snapshot(), "testuser2")
	assert.Equal(t, MsgRepositoryFailed, u.RepoErr)
}

func TestController_LoadRepositoriesRefetchesWhenCalledAgain(t *testing.T) {
	f := &fakeFinder{
		users: testUsers,
		repos: map[string][]github.Repository{"testuser1": testRepos},
	}
	c := searchedController(t, f)

	c.LoadRepositories(context.Background(), "testuser1")
	c.LoadRepositories(context.Background(), "testuser1")

	_, repos := f.calls()
	assert.Equal(t, 2, repos)
}

func TestController_LoadRepositoriesUnknownLoginIsNoop(t *testing.T) {
	f := &fakeFinder{users: testUsers}
	c := searchedController(t, f)
	before := c.Snapshot()

	c.LoadRepositories(context.Background(), "ghost")

	assert.Equal(t, before.Users, c.Snapshot().Users)
}

func TestController_NewSearchDropsRepositoryState(t *testing.T) {
	f := &fakeFinder{
		users: testUsers,
		repos: map[string][]github.Repository{"testuser1": testRepos},
	}
	c := searchedController(t, f)
	c.LoadRepositories(context.Background(), "testuser1")

	c.Search(context.Background())

	u, _ := findUser(c.Snapshot(), "testuser1")
	assert.False(t, u.ReposLoaded)
	assert.Nil(t, u.Repositories)
}

func TestController_SnapshotIsIndependent(t *testing.T) {
	f := &fakeFinder{users: testUsers}
	c := searchedController(t, f)

	snap := c.Snapshot()
	snap.Users[0].Login = "mutated"

	assert.Equal(t, "testuser1", c.Snapshot().Users[0].Login)
}

func TestController_EarlierSnapshotsSurviveMutation(t *testing.T) {
	f := &fakeFinder{
		users: testUsers,
		repos: map[string][]github.Repository{"testuser1": testRepos},
	}
	c := searchedController(t, f)
	before := c.Snapshot()

	c.LoadRepositories(context.Background(), "testuser1")

	assert.False(t, before.Users[0].ReposLoaded)
}

func TestController_UpdatesSignalsAfterMutation(t *testing.T) {
	c := NewController(&fakeFinder{})

	c.SetQuery("a")
	c.SetQuery("b")

	select {
	case <-c.Updates():
	default:
		t.Fatal("expected an update signal")
	}
	select {
	case <-c.Updates():
		t.Fatal("signals should coalesce")
	default:
	}
}

func TestController_StaleSearchResponseWins(t *testing.T) {
	alice := []github.User{{ID: 7, Login: "alice"}}
	bob := []github.User{{ID: 8, Login: "bob"}}
	f := &fakeFinder{
		byQuery:   map[string][]github.User{"a": alice, "b": bob},
		userGates: map[string]chan struct{}{"a": make(chan struct{}), "b": make(chan struct{})},
		entered:   make(chan string, 4),
	}
	c := NewController(f)

	doneA := make(chan struct{})
	c.SetQuery("a")
	go func() {
		c.Search(context.Background())
		close(doneA)
	}()
	require.Equal(t, "a", <-f.entered)

	doneB := make(chan struct{})
	c.SetQuery("b")
	go func() {
		c.Search(context.Background())
		close(doneB)
	}()
	require.Equal(t, "b", <-f.entered)

	close(f.userGates["b"])
	<-doneB
	snap := c.Snapshot()
	assert.Equal(t, "b", snap.ExecutedQuery)
	assert.Equal(t, "bob", snap.Users[0].Login)

	close(f.userGates["a"])
	<-doneA
	snap = c.Snapshot()
	assert.Equal(t, "a", snap.ExecutedQuery)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "alice", snap.Users[0].Login)
	assert.False(t, snap.Loading)
	assert.False(t, snap.HasError())
	assert.Equal(t, "b", snap.Query)
}

func TestController_StaleRepositoryResponseAppliesToNewResults(t *testing.T) {
	f := &fakeFinder{
		users:     testUsers,
		repos:     map[string][]github.Repository{"testuser1": testRepos},
		repoGates: map[string]chan struct{}{"testuser1": make(chan struct{})},
		entered:   make(chan string, 4),
	}
	c := NewController(f)
	c.SetQuery("test")
	c.Search(context.Background())
	require.Equal(t, "test", <-f.entered)

	done := make(chan struct{})
	go func() {
		c.LoadRepositories(context.Background(), "testuser1")
		close(done)
	}()
	require.Equal(t, "testuser1", <-f.entered)

	// A new search replaces the result list while the load is in flight.
	c.SetQuery("testuser")
	c.Search(context.Background())
	require.Equal(t, "testuser", <-f.entered)
	u, ok := findUser(c.Snapshot(), "testuser1")
	require.True(t, ok)
	assert.False(t, u.LoadingRepos)
	assert.False(t, u.ReposLoaded)

	close(f.repoGates["testuser1"])
	<-done

	snap := c.Snapshot()
	u, ok = findUser(snap, "testuser1")
	require.True(t, ok)
	assert.True(t, u.ReposLoaded)
	assert.Len(t, u.Repositories, 2)
	assert.True(t, u.Active)
	assert.False(t, u.LoadingRepos)
	assert.False(t, snap.Loading)
	assert.Equal(t, "testuser", snap.ExecutedQuery)
}

func TestController_StaleRepositoryResponseForVanishedUser(t *testing.T) {
	f := &fakeFinder{
		users:     testUsers,
		byQuery:   map[string][]github.User{"other": {{ID: 9, Login: "carol"}}},
		repos:     map[string][]github.Repository{"testuser1": testRepos},
		repoGates: map[string]chan struct{}{"testuser1": make(chan struct{})},
		entered:   make(chan string, 4),
	}
	c := NewController(f)
	c.SetQuery("test")
	c.Search(context.Background())
	<-f.entered

	done := make(chan struct{})
	go func() {
		c.LoadRepositories(context.Background(), "testuser1")
		close(done)
	}()
	<-f.entered

	c.SetQuery("other")
	c.Search(context.Background())
	<-f.entered
	before := c.Snapshot()

	close(f.repoGates["testuser1"])
	<-done

	snap := c.Snapshot()
	assert.Equal(t, before.Users, snap.Users)
	_, ok := findUser(snap, "testuser1")
	assert.False(t, ok)
}
