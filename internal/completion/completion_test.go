package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newFakeServer(t *testing.T, status int, body string, seen *chatRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClientComplete(t *testing.T) {
	var seen chatRequest
	srv := newFakeServer(t, http.StatusOK,
		`{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  Fa bello oggi  "}}]}`,
		&seen)

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test", Model: "deepseek/test"})

	text, err := c.Complete(context.Background(), "Sei Aura.", "che tempo fa")
	require.NoError(t, err)
	assert.Equal(t, "  Fa bello oggi  ", text)

	assert.Equal(t, "deepseek/test", seen.Model)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, "Sei Aura.", seen.Messages[0].Content)
	assert.Equal(t, "user", seen.Messages[1].Role)
	assert.Equal(t, "che tempo fa", seen.Messages[1].Content)
}

func TestClientCompleteFailures(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{
			name:   "no_choices",
			status: http.StatusOK,
			body:   `{"id":"c1","object":"chat.completion","choices":[]}`,
			target: ErrNoChoices,
		},
		{
			name:   "blank_content",
			status: http.StatusOK,
			body:   `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"   "}}]}`,
			target: ErrEmptyContent,
		},
		{
			name:   "server_error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"boom","type":"server_error"}}`,
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"bad key","type":"invalid_request_error"}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newFakeServer(t, tc.status, tc.body, nil)
			c := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test"})

			text, err := c.Complete(context.Background(), "sys", "user")
			require.Error(t, err)
			assert.Empty(t, text)
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
			}
		})
	}
}

func TestClientMissingCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Complete(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.False(t, called, "no request must be sent without a credential")
}

func TestClientTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test", Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := c.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, DefaultModel, c.cfg.Model)
	assert.Equal(t, DefaultTimeout, c.cfg.Timeout)
	assert.NotNil(t, c.cfg.HTTPClient)
}
