package welcome

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradshjg/prubot/internal/bot"
	"github.com/bradshjg/prubot/internal/github"
)

const issueOpened = `{
  "action": "opened",
  "issue": {"number": 1, "title": "Spelling error in the README file"},
  "repository": {
    "name": "Hello-World",
    "html_url": "https://github.com/Codertocat/Hello-World",
    "owner": {"login": "Codertocat"}
  },
  "installation": {"id": 2311213}
}`

// fakeGitHub serves the two calls the welcome handler makes and records the
// posted comment body.
func fakeGitHub(t *testing.T, comment *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /app/installations/2311213/access_tokens":
			assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"token":"ghs_install"}`)
		case "POST /repos/Codertocat/Hello-World/issues/1/comments":
			assert.Equal(t, "Bearer ghs_install", r.Header.Get("Authorization"))
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*comment = body["body"]
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":1001}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWelcomeThroughDispatcher(t *testing.T) {
	var comment string
	srv := fakeGitHub(t, &comment)

	k, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPEM := string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(k)}))

	app := bot.New(bot.WithClientFactory(func(bearer string) *github.Client {
		return github.NewClient(bearer, github.WithBaseURL(srv.URL))
	}))
	require.NoError(t, app.Configure(map[string]string{"id": "1", "key": keyPEM}))
	require.NoError(t, Register(app))

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set(bot.EventHeader, "issues")
	res, err := app.Dispatcher().Dispatch(context.Background(), bot.Request{
		Header: bot.HTTPHeader(h),
		Body:   []byte(issueOpened),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Equal(t, `{"event":"issues","action":"opened","results":{"add a welcome message":{"comment_id":1001}}}`, string(b))
	assert.Contains(t, comment, "https://github.com/Codertocat/Hello-World/discussions")
}

func TestWelcomeIgnoresOtherActions(t *testing.T) {
	app := bot.New()
	require.NoError(t, Register(app))

	assert.Len(t, app.Registry().Resolve("issues", "closed"), 0)
	assert.Len(t, app.Registry().Resolve("issues", "opened"), 1)
}

func TestWelcomeRequiresInstallation(t *testing.T) {
	payload := map[string]any{
		"issue":      map[string]any{"number": 1},
		"repository": map[string]any{"name": "r", "owner": map[string]any{"login": "o"}},
	}
	_, err := Handle(context.Background(), &bot.Context{Payload: payload, Client: github.NewClient("t")})
	assert.ErrorContains(t, err, "installation")
}

func TestMessageWithoutRepoURL(t *testing.T) {
	assert.Equal(t,
		"Thanks for stopping by :wave:. While we work on getting back to you, please feel free to look around.",
		message(map[string]any{}),
	)
}

func TestMessageLinksDiscussions(t *testing.T) {
	tests := []struct {
		name string
		repo map[string]any
		want string
	}{
		{
			name: "discussions url",
			repo: map[string]any{
				"html_url":        "https://github.com/Codertocat/Hello-World",
				"discussions_url": "https://github.com/orgs/Codertocat/discussions",
			},
			want: "check out https://github.com/orgs/Codertocat/discussions.",
		},
		{
			name: "html url fallback",
			repo: map[string]any{"html_url": "https://github.com/Codertocat/Hello-World/"},
			want: "check out https://github.com/Codertocat/Hello-World/discussions.",
		},
		{
			name: "no urls",
			repo: map[string]any{},
			want: "please feel free to look around.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := message(map[string]any{"repository": tt.repo})
			assert.True(t, strings.HasSuffix(got, tt.want), "got %q", got)
		})
	}
}
