// Package welcome comments on newly opened issues.
package welcome

import (
	"context"
	"fmt"
	"strings"

	"github.com/bradshjg/prubot/internal/bot"
)

const Name = "add a welcome message"

func Register(app *bot.App) error {
	return app.Register("issues", "opened", Name, Handle)
}

// Handle posts the welcome comment as the delivery's installation and returns
// the created comment id.
func Handle(ctx context.Context, c *bot.Context) (any, error) {
	params, err := c.Issue(map[string]any{"body": message(c.Payload)})
	if err != nil {
		return nil, err
	}

	inst, _ := c.Payload["installation"].(map[string]any)
	installationID, ok := bot.IntField(inst["id"])
	if !ok {
		return nil, fmt.Errorf("delivery has no installation id")
	}
	number, ok := bot.IntField(params["issue_number"])
	if !ok {
		return nil, fmt.Errorf("delivery has no issue number")
	}
	owner, _ := params["owner"].(string)
	repo, _ := params["repo"].(string)
	body, _ := params["body"].(string)

	client, err := c.Client.Installation(ctx, installationID)
	if err != nil {
		return nil, fmt.Errorf("installation client: %w", err)
	}
	cm, err := client.CreateIssueComment(ctx, owner, repo, number, body)
	if err != nil {
		return nil, err
	}
	return map[string]any{"comment_id": cm.ID}, nil
}

func message(payload map[string]any) string {
	repo, _ := payload["repository"].(map[string]any)

	msg := "Thanks for stopping by :wave:. While we work on getting back to you"
	url := discussionsURL(repo)
	if url == "" {
		return msg + ", please feel free to look around."
	}
	return fmt.Sprintf("%s please feel free to check out %s.", msg, url)
}

// discussionsURL prefers the payload's discussions_url and falls back to the
// repository page.
func discussionsURL(repo map[string]any) string {
	if u, _ := repo["discussions_url"].(string); u != "" {
		return u
	}
	htmlURL, _ := repo["html_url"].(string)
	if htmlURL == "" {
		return ""
	}
	return strings.TrimRight(htmlURL, "/") + "/discussions"
}
