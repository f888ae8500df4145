package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type Repo struct {
	ID    int64 `json:"id"`
	Owner struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
	} `json:"owner"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
}

func (c *Client) GetRepo(ctx context.Context, owner, repo string) (Repo, error) {
	p, err := repoPath(owner, repo)
	if err != nil {
		return Repo{}, err
	}

	var r Repo
	if err := c.do(ctx, http.MethodGet, p, nil, &r); err != nil {
		return Repo{}, err
	}
	if r.ID == 0 || r.FullName == "" {
		return Repo{}, fmt.Errorf("invalid github repo response")
	}
	return r, nil
}

func repoPath(owner, repo string) (string, error) {
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)
	if owner == "" || repo == "" {
		return "", fmt.Errorf("owner and repo are required")
	}
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo), nil
}
