package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	gh "github.com/google/go-github/v68/github"
)

// Finder defines the two GitHub lookups the search controller needs.
// This interface is implemented by *Client and can be used for testing.
type Finder interface {
	FindUsers(ctx context.Context, query string) ([]User, error)
	ListRepositories(ctx context.Context, login string) ([]Repository, error)
}

// Ensure Client implements Finder at compile time.
var _ Finder = (*Client)(nil)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL   = "https://api.github.com/"
	defaultUserAgent = "octoscout/0.1"

	// SearchPageSize caps the number of users returned by FindUsers.
	SearchPageSize = 5
)

// Client talks to the GitHub REST API without authentication.
type Client struct {
	api    *gh.Client
	logger *log.Logger
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *log.Logger
	userAgent  string
}

// WithHTTPClient sets the transport used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *log.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// NewClient builds a Client rooted at baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	o := clientOptions{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	api := gh.NewClient(o.httpClient)
	api.BaseURL = base
	if ua := strings.TrimSpace(o.userAgent); ua != "" {
		api.UserAgent = ua
	}

	logger := o.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{api: api, logger: logger}, nil
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.api.BaseURL.String()
}

// FindUsers searches GitHub logins matching query, returning at most
// SearchPageSize users in the order the API ranked them.
func (c *Client) FindUsers(ctx context.Context, query string) ([]User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: SearchPageSize}}
	result, resp, err := c.api.Search.Users(ctx, query, opts)
	if err != nil {
		err = classify(resp, err)
		c.logger.Error("Error searching users", "query", query, "err", err)
		return nil, err
	}

	users := make([]User, 0, len(result.Users))
	for _, u := range result.Users {
		if u == nil {
			continue
		}
		users = append(users, userFromAPI(u))
	}
	return users, nil
}

// ListRepositories lists login's public repositories, most recently updated
// first. The returned slice is never nil on success.
func (c *Client) ListRepositories(ctx context.Context, login string) ([]Repository, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	opts := &gh.RepositoryListByUserOptions{
		Sort:      "updated",
		Direction: "desc",
	}
	repos, resp, err := c.api.Repositories.ListByUser(ctx, login, opts)
	if err != nil {
		err = classify(resp, err)
		c.logger.Error("Error fetching repositories", "login", login, "err", err)
		return nil, err
	}

	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		out = append(out, repositoryFromAPI(r))
	}
	return out, nil
}

// classify maps a go-github failure onto APIError or NetworkError. A 2xx
// response paired with an error means the body could not be decoded.
func classify(resp *gh.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return fmt.Errorf("decode response: %w", err)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
