package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGemini(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)

		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, reply)
	}))
}

func TestGenerateText(t *testing.T) {
	srv := fakeGemini(t, "hello there")
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "test-key", "gemini-1.5-flash")
	text, err := c.GenerateText(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestGenerateText_MissingKey(t *testing.T) {
	c := NewGeminiClient("http://unused", "", "gemini-1.5-flash")
	_, err := c.GenerateText(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGeminiNotConfigured)
}

func TestGenerateJSON_StripsFences(t *testing.T) {
	srv := fakeGemini(t, "```json\n[{\"title\":\"Hydration basics\"}]\n```")
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "test-key", "gemini-1.5-flash")
	var cards []struct {
		Title string `json:"title"`
	}
	require.NoError(t, c.GenerateJSON(context.Background(), "feed", &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "Hydration basics", cards[0].Title)
}

func TestGenerateJSON_InvalidPayload(t *testing.T) {
	srv := fakeGemini(t, "sorry, I cannot answer that")
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "test-key", "gemini-1.5-flash")
	var out map[string]interface{}
	assert.Error(t, c.GenerateJSON(context.Background(), "feed", &out))
}

func TestGenerateText_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "test-key", "gemini-1.5-flash")
	_, err := c.GenerateText(context.Background(), "anything")
	assert.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences(`{"a":1}`))
}
