package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DanBrus/IB-frontend/application/services"
	"github.com/DanBrus/IB-frontend/domain/interaction"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/DanBrus/IB-frontend/infrastructure/filestore"
	"github.com/DanBrus/IB-frontend/infrastructure/graphstore"
	"github.com/DanBrus/IB-frontend/infrastructure/persistence/memory"
	"github.com/DanBrus/IB-frontend/infrastructure/remote"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *Router {
	logger := zap.NewNop()
	return NewRouter(
		memory.NewBoardStore(memory.DefaultVersion),
		memory.NewImageStore(),
		"",
		observability.NewCollector("test"),
		errors.NewErrorHandler(logger, false),
		logger,
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGraphService_Endpoints(t *testing.T) {
	h := newTestRouter().GraphService()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{"active version", http.MethodGet, "/graph/active_version", "", http.StatusOK, `{"version":"v1"}`},
		{"list versions", http.MethodGet, "/graph/versions", "", http.StatusOK, `[{"version":"v1","name":"Main","description":"Initial version"}]`},
		{"empty board", http.MethodGet, "/graph/board?version=v1", "", http.StatusOK, `{"nodes":[],"edges":[]}`},
		{"board without version", http.MethodGet, "/graph/board", "", http.StatusBadRequest, ""},
		{"unknown board", http.MethodGet, "/graph/board?version=nope", "", http.StatusNotFound, ""},
		{"delete active", http.MethodPost, "/graph/versions/delete", `{"version":"v1"}`, http.StatusConflict, ""},
		{"delete unknown", http.MethodPost, "/graph/versions/delete", `{"version":"nope"}`, http.StatusNotFound, ""},
		{"duplicate version", http.MethodPost, "/graph/versions", `{"version":"v1","name":"a","description":"b"}`, http.StatusConflict, ""},
		{"version with whitespace", http.MethodPost, "/graph/versions", `{"version":"v 2","name":"a","description":"b"}`, http.StatusBadRequest, ""},
		{"malformed body", http.MethodPut, "/graph/board", `{`, http.StatusBadRequest, ""},
		{"health", http.MethodGet, "/health", "", http.StatusOK, `{"status":"healthy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestGraphService_PutThenGetBoard(t *testing.T) {
	h := newTestRouter().GraphService()
	body := `{
		"version": "v1",
		"nodes": [
			{"node_id": 1, "name": "Suspect", "pos_x": 10, "pos_y": 20, "node_type": "person", "description": "d", "picture_path": "img-1"},
			{"node_id": 2, "name": "Knife", "pos_x": 30, "pos_y": 40, "description": "", "picture_path": null}
		],
		"edges": [{"edge_id": 1, "node1": 1, "node2": 2}],
		"description": null,
		"board_name": null
	}`

	rec := do(t, h, http.MethodPut, "/graph/board", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/graph/board?version=v1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"nodes": [
			{"node_id": 1, "name": "Suspect", "pos_x": 10, "pos_y": 20, "node_type": "person", "description": "d", "picture_path": "img-1"},
			{"node_id": 2, "name": "Knife", "pos_x": 30, "pos_y": 40, "description": "", "picture_path": null}
		],
		"edges": [{"edge_id": 1, "node1": 1, "node2": 2}]
	}`, rec.Body.String())
}

func TestServices_CORSAllowsLocalhostOnly(t *testing.T) {
	h := newTestRouter().GraphService()

	tests := []struct {
		origin string
		allow  bool
	}{
		{"http://localhost:3000", true},
		{"http://127.0.0.1:5173", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/graph/versions", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if tt.allow {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestServices_Metrics(t *testing.T) {
	h := newTestRouter().GraphService()
	do(t, h, http.MethodGet, "/graph/versions", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/graph/versions"`)
}

func TestFileService_UploadAndServe(t *testing.T) {
	server := httptest.NewServer(newTestRouter().FileService())
	defer server.Close()
	client := filestore.NewClient(remote.NewClient("file", server.URL, nil, nil, nil, zap.NewNop()))

	data := []byte("\x89PNG\r\n\x1a\nnot really")
	result, err := client.Upload(context.Background(), "image.png", data)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/res/"+result.ID, result.URL)
	assert.Equal(t, result.URL, client.ImageURL(result.ID))

	resp, err := http.Get(result.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	got, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, data, got)

	missing, err := http.Get(server.URL + "/res/unknown")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestFileService_UploadWithoutFile(t *testing.T) {
	h := newTestRouter().FileService()
	req := httptest.NewRequest(http.MethodPost, "/res", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION", body.Type)
}

func TestPublishSwitchRoundTrip(t *testing.T) {
	server := httptest.NewServer(newTestRouter().GraphService())
	defer server.Close()
	store := graphstore.NewClient(remote.NewClient("graph", server.URL, nil, nil, nil, zap.NewNop()))
	session := services.NewBoardSession(store, nil, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, session.Open(ctx))
	require.Equal(t, "v1", session.CurrentVersion())

	session.Dispatch(interaction.ToggleMode{Mode: interaction.ModeAddNode})
	session.Dispatch(interaction.CanvasClick{X: 10, Y: 20})
	session.Dispatch(interaction.ToggleMode{Mode: interaction.ModeAddNode})
	session.Dispatch(interaction.CanvasClick{X: 300, Y: 20})
	session.Dispatch(interaction.ToggleMode{Mode: interaction.ModeAddEdge})
	session.Dispatch(interaction.NodeClick{NodeID: 1})
	session.Dispatch(interaction.NodeClick{NodeID: 2})
	published := session.Graph()
	require.Equal(t, 2, published.NodeCount())
	require.Equal(t, 1, published.EdgeCount())
	require.True(t, session.Dirty())

	ok, err := session.Publish(ctx, func(string) bool { return true })
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, session.Dirty())

	require.NoError(t, session.CreateVersion(ctx, versioning.NewVersion{Version: "v2", Name: "Second", Description: "empty"}))
	assert.Equal(t, "v2", session.CurrentVersion())
	assert.Zero(t, session.Graph().NodeCount())

	require.NoError(t, session.SwitchVersion(ctx, "v1"))
	assert.True(t, session.Graph().EqualAsSets(published))

	err = session.DeleteVersion(ctx, "v1")
	assert.True(t, errors.HasCode(err, errors.CodeActiveVersion))

	require.NoError(t, session.DeleteVersion(ctx, "v2"))
	assert.Len(t, session.Versions(), 1)
}
