package insights

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

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient("test-key", Options{BaseURL: server.URL, Model: "test-model", Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	return client
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient("   ", Options{}, nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewGeminiClientDefaultsModel(t *testing.T) {
	client, err := NewGeminiClient("key", Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.Model())
}

func TestGenerateTextSendsPromptAndJoinsParts(t *testing.T) {
	var received generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"* Two episodes"},{"text":" recorded.\n"}]},"finishReason":"STOP"}]}`))
	})

	text, err := client.GenerateText(context.Background(), "summarize please")
	require.NoError(t, err)
	assert.Equal(t, "* Two episodes recorded.", text)

	require.Len(t, received.Contents, 1)
	assert.Equal(t, "user", received.Contents[0].Role)
	require.Len(t, received.Contents[0].Parts, 1)
	assert.Equal(t, "summarize please", received.Contents[0].Parts[0].Text)
}

func TestGenerateTextReportsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.GenerateText(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerateTextRejectsEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateText(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateTextHonoursContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GenerateText(ctx, "prompt")
	require.ErrorIs(t, err, ErrRequestFailed)
}
