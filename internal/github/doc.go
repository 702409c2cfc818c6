// Package github provides the read-only GitHub REST client used by octoscout.
//
// # Overview
//
// The package wraps github.com/google/go-github for the two lookups the
// application performs and narrows the results to small, value-typed
// records:
//
//   - FindUsers: GET /search/users?q={query}&per_page=5
//   - ListRepositories: GET /users/{login}/repos?sort=updated&direction=desc
//
// Results are returned in the order GitHub sent them. No filtering, sorting
// or pagination happens client-side, and no credentials are sent.
//
// # Client Usage
//
//	client, err := github.NewClient("", github.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	users, err := client.FindUsers(ctx, "octo")
//
// # Errors
//
// Failures fall into two classes:
//
//   - *APIError: GitHub answered with a non-2xx status. The message is
//     "GitHub API error: {status}".
//   - *NetworkError: no response was received. The message is the transport
//     error's message.
//
// A successful status with an unreadable body is reported as a wrapped
// "decode response" error. Every failure is logged before it is returned;
// callers decide what to show the user.
//
// # Testing
//
// Finder is the seam consumers depend on. Tests either point a real Client at
// an httptest server or supply their own Finder.
package github
