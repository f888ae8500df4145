package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type Comment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// CreateIssueComment comments on an issue or pull request.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int64, body string) (Comment, error) {
	if number <= 0 {
		return Comment{}, fmt.Errorf("issue number is required")
	}
	if strings.TrimSpace(body) == "" {
		return Comment{}, fmt.Errorf("comment body is required")
	}
	p, err := repoPath(owner, repo)
	if err != nil {
		return Comment{}, err
	}
	p += "/issues/" + strconv.FormatInt(number, 10) + "/comments"

	var cm Comment
	if err := c.do(ctx, http.MethodPost, p, map[string]any{"body": body}, &cm); err != nil {
		return Comment{}, err
	}
	if cm.ID == 0 {
		return Comment{}, fmt.Errorf("invalid github comment response")
	}
	return cm, nil
}
