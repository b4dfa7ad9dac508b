package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"data": [{"id": "gpt-3.5-turbo"}, {"id": "gpt-4"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "sk-test")

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)

	require.Len(t, models, 2)
	assert.Equal(t, "gpt-3.5-turbo", models[0].Name)
}

func TestOpenAIGenerate(t *testing.T) {
	t.Run("sends the prompt as a single user message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			var req openAIChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			assert.Equal(t, "gpt-3.5-turbo", req.Model)
			require.Len(t, req.Messages, 1)
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "comment this", req.Messages[0].Content)
			assert.Equal(t, 2000, req.MaxTokens)

			_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": " # done\nx = 1 "}}]}`))
		}))
		defer srv.Close()

		c := NewOpenAIClient(srv.URL, "sk-test")

		out, err := c.Generate(context.Background(), GenerateParams{
			Model:     "gpt-3.5-turbo",
			Prompt:    "comment this",
			MaxTokens: 2000,
		})
		require.NoError(t, err)
		assert.Equal(t, "# done\nx = 1", out)
	})

	t.Run("API error maps to ErrGeneration", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
		}))
		defer srv.Close()

		c := NewOpenAIClient(srv.URL, "bad-key")

		_, err := c.Generate(context.Background(), GenerateParams{Model: "gpt-3.5-turbo"})
		require.ErrorIs(t, err, ErrGeneration)
		assert.Contains(t, err.Error(), "invalid api key")
	})

	t.Run("empty choices maps to ErrGeneration", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		c := NewOpenAIClient(srv.URL, "sk-test")

		_, err := c.Generate(context.Background(), GenerateParams{Model: "gpt-3.5-turbo"})
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("connection refused maps to ErrBackendUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := NewOpenAIClient(srv.URL, "sk-test")

		_, err := c.ListModels(context.Background())
		assert.ErrorIs(t, err, ErrBackendUnavailable)
	})
}
