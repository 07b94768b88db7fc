package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftflow/internal/llm/cache"
)

func chatServer(t *testing.T, calls *atomic.Int64, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req["model"])

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestChatJSONReturnsModelContent(t *testing.T) {
	var calls atomic.Int64
	srv := chatServer(t, &calls, `{"is_valid": true, "errors": []}`)
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	raw, err := client.ChatJSON(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_valid": true, "errors": []}`, string(raw))
	assert.Equal(t, int64(1), calls.Load())
}

func TestChatJSONCachesIdenticalPrompts(t *testing.T) {
	var calls atomic.Int64
	srv := chatServer(t, &calls, `{"answer": 1}`)
	defer srv.Close()

	client := NewClient("test-key",
		WithBaseURL(srv.URL),
		WithCache(cache.NewMemory()),
	)

	ctx := context.Background()
	first, err := client.ChatJSON(ctx, "system", "user")
	require.NoError(t, err)
	second, err := client.ChatJSON(ctx, "system", "user")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load(), "second call must be served from cache")

	// A different prompt misses the cache.
	_, err = client.ChatJSON(ctx, "system", "other user")
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestChatJSONMissingAPIKey(t *testing.T) {
	client := NewClient("")
	_, err := client.ChatJSON(context.Background(), "system", "user")
	assert.ErrorContains(t, err, "API key not set")
}

func TestChatJSONSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.ChatJSON(context.Background(), "system", "user")
	assert.ErrorContains(t, err, "rate limit exceeded")
	assert.ErrorContains(t, err, "rate_limit_error")
}

func TestChatJSONEmptyContentBecomesEmptyObject(t *testing.T) {
	var calls atomic.Int64
	srv := chatServer(t, &calls, "")
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	raw, err := client.ChatJSON(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("{}"), raw)
}

func TestChatJSONRejectsInvalidJSON(t *testing.T) {
	var calls atomic.Int64
	srv := chatServer(t, &calls, "not json at all")
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.ChatJSON(context.Background(), "system", "user")
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestChatJSONNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.ChatJSON(context.Background(), "system", "user")
	assert.ErrorContains(t, err, "no choices")
}
