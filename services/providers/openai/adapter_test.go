package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/rag-gateway/services/providers"
)

func testAdapter(baseURL string) *Adapter {
	return NewAdapter(providers.Config{
		APIKey:      "sk-test",
		BaseURL:     baseURL + "/v1",
		EmbedModel:  "text-embedding-3-small",
		GenModel:    "gpt-4o-mini",
		Temperature: 0.2,
	})
}

func TestEmbed(t *testing.T) {
	t.Run("returns the embedding vector", func(t *testing.T) {
		var gotModel string
		var gotInput []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/embeddings", r.URL.Path)
			require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			var req struct {
				Input []string `json:"input"`
				Model string   `json:"model"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotModel = req.Model
			gotInput = req.Input

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"object": "list",
				"data": [{"object": "embedding", "index": 0, "embedding": [0.1, 0.2, 0.3]}],
				"model": "text-embedding-3-small",
				"usage": {"prompt_tokens": 4, "total_tokens": 4}
			}`))
		}))
		defer srv.Close()

		vector, err := testAdapter(srv.URL).Embed(context.Background(), "refund policy")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
		assert.Equal(t, "text-embedding-3-small", gotModel)
		assert.Equal(t, []string{"refund policy"}, gotInput)
	})

	t.Run("api error propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
		}))
		defer srv.Close()

		_, err := testAdapter(srv.URL).Embed(context.Background(), "q")
		require.Error(t, err)
	})

	t.Run("empty data yields an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"list","data":[],"model":"text-embedding-3-small","usage":{"prompt_tokens":0,"total_tokens":0}}`))
		}))
		defer srv.Close()

		_, err := testAdapter(srv.URL).Embed(context.Background(), "q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no data")
	})
}

func TestComplete(t *testing.T) {
	t.Run("sends a single user message and returns the reply", func(t *testing.T) {
		var gotReq struct {
			Model       string  `json:"model"`
			Temperature float32 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/chat/completions", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"created": 1,
				"model": "gpt-4o-mini",
				"choices": [{"index": 0, "message": {"role": "assistant", "content": "grounded answer [1]"}, "finish_reason": "stop"}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
			}`))
		}))
		defer srv.Close()

		answer, err := testAdapter(srv.URL).Complete(context.Background(), "the prompt")
		require.NoError(t, err)
		assert.Equal(t, "grounded answer [1]", answer)

		assert.Equal(t, "gpt-4o-mini", gotReq.Model)
		assert.InDelta(t, 0.2, gotReq.Temperature, 0.001)
		require.Len(t, gotReq.Messages, 1)
		assert.Equal(t, "user", gotReq.Messages[0].Role)
		assert.Equal(t, "the prompt", gotReq.Messages[0].Content)
	})

	t.Run("api error propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
		}))
		defer srv.Close()

		_, err := testAdapter(srv.URL).Complete(context.Background(), "p")
		require.Error(t, err)
	})

	t.Run("no choices yields an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[],"usage":{"prompt_tokens":0,"completion_tokens":0,"total_tokens":0}}`))
		}))
		defer srv.Close()

		_, err := testAdapter(srv.URL).Complete(context.Background(), "p")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})
}
