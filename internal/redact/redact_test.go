package redact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recruitapi/internal/config"
)

func TestHTTPRedactor_Redact(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces text with service response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Jane Doe is a Go developer", body["text"])
			json.NewEncoder(w).Encode(map[string]string{"text": "<PERSON> is a Go developer"})
		}))
		defer srv.Close()

		r := NewHTTP(config.RedactionConfig{URL: srv.URL, TimeoutSec: 5}, zap.NewNop())
		got := r.Redact(ctx, "Jane Doe is a Go developer")
		assert.Equal(t, "<PERSON> is a Go developer", got)
	})

	t.Run("service error returns original text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		r := NewHTTP(config.RedactionConfig{URL: srv.URL, TimeoutSec: 5}, zap.NewNop())
		got := r.Redact(ctx, "Jane Doe")
		assert.Equal(t, "Jane Doe", got)
	})

	t.Run("unreachable service returns original text", func(t *testing.T) {
		r := NewHTTP(config.RedactionConfig{URL: "http://127.0.0.1:1", TimeoutSec: 1}, zap.NewNop())
		got := r.Redact(ctx, "Jane Doe")
		assert.Equal(t, "Jane Doe", got)
	})

	t.Run("malformed response returns original text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"unexpected": true}`))
		}))
		defer srv.Close()

		r := NewHTTP(config.RedactionConfig{URL: srv.URL, TimeoutSec: 5}, zap.NewNop())
		got := r.Redact(ctx, "Jane Doe")
		assert.Equal(t, "Jane Doe", got)
	})

	t.Run("empty input short-circuits", func(t *testing.T) {
		r := NewHTTP(config.RedactionConfig{URL: "http://127.0.0.1:1", TimeoutSec: 1}, zap.NewNop())
		assert.Empty(t, r.Redact(ctx, ""))
	})
}

func TestPassthrough_Redact(t *testing.T) {
	p := NewPassthrough(zap.NewNop())
	assert.Equal(t, "unchanged", p.Redact(context.Background(), "unchanged"))
}
