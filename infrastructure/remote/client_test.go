package remote

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_URL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
		query   url.Values
		want    string
	}{
		{"plain", "http://localhost:8001", "/graph/versions", nil, "http://localhost:8001/graph/versions"},
		{"trailing slash", "http://localhost:8001//", "/graph/versions", nil, "http://localhost:8001/graph/versions"},
		{"query", "http://h", "/graph/board", url.Values{"version": {"a&b"}}, "http://h/graph/board?version=a%26b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("graph", tt.baseURL, nil, nil, nil, zap.NewNop())
			assert.Equal(t, tt.want, c.URL(tt.path, tt.query))
		})
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    bool
		wantStatus int
	}{
		{"ok", http.StatusOK, false, 0},
		{"created", http.StatusCreated, false, 0},
		{"not found", http.StatusNotFound, true, http.StatusNotFound},
		{"server error", http.StatusInternalServerError, true, http.StatusInternalServerError},
		{"redirect not followed", http.StatusNotModified, true, http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()
			c := NewClient("graph", server.URL, nil, nil, nil, zap.NewNop())

			err := c.SendJSON(context.Background(), "op", http.MethodPost, "/x", map[string]string{}, nil)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsExternal(err))
			assert.Equal(t, tt.wantStatus, errors.StatusCode(err))
		})
	}
}

func TestClient_RecordsMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()
	metrics := observability.NewCollector("test")
	c := NewClient("graph", server.URL, nil, nil, metrics, zap.NewNop())

	var out map[string]interface{}
	require.NoError(t, c.GetJSON(context.Background(), "list_versions", "/graph/versions", nil, &out))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `operation="list_versions"`), body)
	assert.True(t, strings.Contains(body, `service="graph"`), body)
}
