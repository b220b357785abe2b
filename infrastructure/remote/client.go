// Package remote is the HTTP plumbing shared by the graph and file service
// clients: tracing, metrics and status mapping. No retries, no timeouts.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Client sends requests to one remote service
type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewClient creates a client for service at baseURL. A trailing slash on
// baseURL is dropped. A nil httpClient gets one without a timeout.
func NewClient(
	service string,
	baseURL string,
	httpClient *http.Client,
	tracer trace.Tracer,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if tracer == nil {
		tracer = observability.NoopTracerProvider().Tracer()
	}
	return &Client{
		service:    service,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger,
	}
}

// BaseURL returns the service root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path and optional query onto the base URL
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do sends req. Transport failures become network errors and non-2xx
// responses become external errors carrying *errors.HTTPError; in both cases
// the response is closed and nil is returned. The body of an error
// response is never read.
func (c *Client) Do(ctx context.Context, operation string, req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, c.service+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
		),
	)

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = errors.NewNetworkError(fmt.Sprintf("%s %s request failed", c.service, operation), err)
	} else {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			err = errors.NewExternalError(c.service, &errors.HTTPError{
				StatusCode: resp.StatusCode,
				Status:     statusText(resp),
			})
			resp = nil
		}
	}

	duration := time.Since(start)
	c.metrics.ObserveClientRequest(c.service, operation, err, duration)
	observability.EndSpan(span, err)

	if err != nil {
		c.logger.Warn("Remote request failed",
			zap.String("service", c.service),
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("Remote request",
		zap.String("service", c.service),
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	return resp, nil
}

// GetJSON fetches path and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, operation, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.URL(path, query), nil)
	if err != nil {
		return errors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	return c.exchange(ctx, operation, req, out)
}

// SendJSON sends body as JSON with method. A nil out ignores the response
// body.
func (c *Client) SendJSON(ctx context.Context, operation, method, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.NewInternalError("failed to encode request").WithCause(err)
	}
	req, err := http.NewRequest(method, c.URL(path, nil), bytes.NewReader(payload))
	if err != nil {
		return errors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.exchange(ctx, operation, req, out)
}

// SendMultipart posts a prepared multipart body
func (c *Client) SendMultipart(ctx context.Context, operation, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.URL(path, nil), body)
	if err != nil {
		return errors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	return c.exchange(ctx, operation, req, out)
}

func (c *Client) exchange(ctx context.Context, operation string, req *http.Request, out interface{}) error {
	resp, err := c.Do(ctx, operation, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalError(c.service, fmt.Errorf("failed to decode %s response: %w", operation, err))
	}
	return nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found")
func statusText(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}
