package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/jsonx"
)

func TestOllamaClientGenerate(t *testing.T) {
	var gotReq ollamaRequest
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, jsonx.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model": "qwen2.5:0.5b", "response": "{\"type\": \"task\"}", "done": true}`))
	}))
	defer server.Close()

	client := NewOllamaClient(Config{
		Model:       "qwen2.5:0.5b",
		BaseURL:     server.URL,
		Timeout:     5,
		Temperature: 0.1,
		TopP:        0.9,
		MaxTokens:   300,
	})

	output, err := client.Generate(context.Background(), "classify this")
	require.NoError(t, err)
	assert.Equal(t, `{"type": "task"}`, output)

	// The /api prefix is appended when the base URL lacks it.
	assert.Equal(t, "/api/generate", gotPath)
	assert.Equal(t, "qwen2.5:0.5b", gotReq.Model)
	assert.Equal(t, "classify this", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, 0.1, gotReq.Options["temperature"])
	assert.Equal(t, 0.9, gotReq.Options["top_p"])
	assert.Equal(t, float64(300), gotReq.Options["num_predict"])
}

func TestOllamaClientUpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL, Timeout: 5})

	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "model not found")
}

func TestOllamaClientUpstreamBodyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "model is loading"}`))
	}))
	defer server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL, Timeout: 5})

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestOllamaClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL, Timeout: 5})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "hello")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClientUnreachable(t *testing.T) {
	// A closed server means a connection error, not a timeout.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL, Timeout: 1})

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestOllamaClientDefaults(t *testing.T) {
	client := NewOllamaClient(Config{})
	assert.Equal(t, DefaultConfig().Model, client.Model())
}

func TestOllamaClientKeepsAPISuffix(t *testing.T) {
	client := NewOllamaClient(Config{BaseURL: "http://example.com/api/"}).(*ollamaClient)
	assert.Equal(t, "http://example.com/api", client.baseURL)
}
