package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

func TestPostJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Key"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["say"]})
	}))
	defer srv.Close()

	var out map[string]string
	err := PostJSON(context.Background(), srv.Client(), "test", srv.URL,
		http.Header{"X-Key": {"secret"}}, map[string]string{"say": "hi"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "hi", out["echo"])
}

func TestPostJSON_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
		{"server error", http.StatusBadGateway, domain.ErrLLMUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			err := PostJSON(context.Background(), srv.Client(), "test", srv.URL, nil, struct{}{}, nil)

			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsStatus(err, tt.status))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestPostJSON_ClientErrorIsNotWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := PostJSON(context.Background(), srv.Client(), "test", srv.URL, nil, struct{}{}, nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestGet_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := Get(context.Background(), http.DefaultClient, "test", url, nil)

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestPostJSON_BadResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	var out map[string]string
	err := PostJSON(context.Background(), srv.Client(), "test", srv.URL, nil, struct{}{}, &out)

	assert.ErrorContains(t, err, "decode response")
}
