package bot

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/bradshjg/prubot/internal/github"
)

// Callback is the function run for a matched delivery. Its return value is
// reported under the handler name in the dispatch response.
type Callback func(ctx context.Context, c *Context) (any, error)

// Handler is a named callback.
type Handler struct {
	Name     string
	Callback Callback
}

func NewHandler(name string, cb Callback) *Handler {
	return &Handler{Name: name, Callback: cb}
}

// Run executes the callback against a delivery payload.
func (h *Handler) Run(ctx context.Context, event string, payload map[string]any, client *github.Client) (any, error) {
	return h.Callback(ctx, &Context{
		Payload: payload,
		Client:  client,
		event:   event,
	})
}

// Context is what a callback sees of one delivery.
type Context struct {
	// Payload is the decoded request body. Numbers are json.Number.
	Payload map[string]any
	// Client is authenticated with a freshly minted app token.
	Client *github.Client

	event string
}

// Event returns the X-GitHub-Event value of the delivery.
func (c *Context) Event() string {
	return c.event
}

// Action returns the payload action, or "" when there is none.
func (c *Context) Action() string {
	return payloadAction(c.Payload)
}

// Repo returns {owner, repo} for the delivery's repository merged with
// overrides. Overrides win on collision.
func (c *Context) Repo(overrides map[string]any) (map[string]any, error) {
	repo, ok := c.Payload["repository"].(map[string]any)
	if !ok {
		return nil, ErrMissingRepoData
	}

	var owner any
	if o, ok := repo["owner"].(map[string]any); ok {
		owner = o["login"]
		if owner == nil {
			owner = o["name"]
		}
	}

	out := map[string]any{
		"owner": owner,
		"repo":  repo["name"],
	}
	maps.Copy(out, overrides)
	return out, nil
}

// Issue returns {issue_number} merged with Repo(overrides).
func (c *Context) Issue(overrides map[string]any) (map[string]any, error) {
	return c.numbered("issue_number", overrides)
}

// PullRequest returns {pull_number} merged with Repo(overrides).
func (c *Context) PullRequest(overrides map[string]any) (map[string]any, error) {
	return c.numbered("pull_number", overrides)
}

func (c *Context) numbered(field string, overrides map[string]any) (map[string]any, error) {
	repo, err := c.Repo(overrides)
	if err != nil {
		return nil, err
	}
	out := map[string]any{field: c.number()}
	maps.Copy(out, repo)
	return out, nil
}

// number reads "number" from the issue object, else the pull_request object,
// else the payload itself.
func (c *Context) number() any {
	for _, k := range []string{"issue", "pull_request"} {
		if obj, ok := c.Payload[k].(map[string]any); ok {
			return obj["number"]
		}
	}
	return c.Payload["number"]
}

func payloadAction(payload map[string]any) string {
	a, _ := payload["action"].(string)
	return a
}

// IntField reads an integer out of a decoded payload value.
func IntField(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		return int64(n), n == float64(int64(n))
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
