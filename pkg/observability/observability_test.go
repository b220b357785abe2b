package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_NilIsSafe(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveClientRequest("graph", "get_board", nil, time.Millisecond)
		c.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
		c.SetBoardSize(1, 2)
		c.CountEffect("node.added")
		c.CountPublish()
		c.CountUpload()
	})
}

func TestCollector_RecordsAndServes(t *testing.T) {
	c := NewCollector("ib")

	c.ObserveClientRequest("graph", "put_board", errors.New("boom"), 20*time.Millisecond)
	c.ObserveClientRequest("graph", "put_board", nil, 10*time.Millisecond)
	c.SetBoardSize(3, 2)
	c.CountEffect("edge.added")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `ib_client_requests_total{operation="put_board",service="graph",status="error"} 1`)
	assert.Contains(t, body, `ib_client_requests_total{operation="put_board",service="graph",status="ok"} 1`)
	assert.Contains(t, body, "ib_board_nodes 3")
	assert.Contains(t, body, "ib_board_edges 2")
	assert.Contains(t, body, `ib_board_effects_total{effect="edge.added"} 1`)
}

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	tp, err := InitTracing(TracingConfig{Enabled: false})
	require.NoError(t, err)

	_, span := tp.Tracer().Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	EndSpan(span, errors.New("ignored"))

	assert.NoError(t, tp.Shutdown(context.Background()))

	var nilProvider *TracerProvider
	assert.NotNil(t, nilProvider.Tracer())
	assert.NoError(t, nilProvider.Shutdown(context.Background()))
}
