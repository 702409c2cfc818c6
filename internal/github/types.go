package github

import (
	gh "github.com/google/go-github/v68/github"
)

// User mirrors one entry of the /search/users "items" array.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Repository mirrors one entry of /users/{login}/repos.
type Repository struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"` // empty when GitHub reports null
	HTMLURL     string   `json:"html_url"`
	Stars       int      `json:"stargazers_count"`
	Topics      []string `json:"topics,omitempty"`
}

// HasDescription reports whether the repository carries a description.
func (r Repository) HasDescription() bool {
	return r.Description != ""
}

func userFromAPI(u *gh.User) User {
	return User{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
	}
}

func repositoryFromAPI(r *gh.Repository) Repository {
	repo := Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
		Stars:       r.GetStargazersCount(),
	}
	if len(r.Topics) > 0 {
		repo.Topics = append([]string(nil), r.Topics...)
	}
	return repo
}
