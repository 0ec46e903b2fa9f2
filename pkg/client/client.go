package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/backend"
	"github.com/rhuss/llmls/pkg/debug"
	"github.com/rhuss/llmls/pkg/observability"
)

// maxResponseBytes bounds how much of a backend reply is read.
const maxResponseBytes = 4 << 20

// ErrResponseTooLarge is the cause of the transport error returned for a
// reply longer than the read limit.
var ErrResponseTooLarge = errors.New("response too large")

// Client sends completion requests to a backend over HTTP.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
}

// New creates a Client with the given request timeout. A zero timeout
// defaults to 60s.
func New(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return NewWithHTTPClient(&http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a Client that uses hc for all requests.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc, maxBytes: maxResponseBytes}
}

// Complete performs one completion round trip against b. The reply body is
// parsed whatever the HTTP status, since backends report errors as JSON
// payloads on non-2xx responses.
func (c *Client) Complete(ctx context.Context, b backend.Backend, req backend.Request) ([]api.Generation, error) {
	requestID := uuid.NewString()
	start := time.Now()

	gens, err := c.complete(ctx, requestID, b, req)

	outcome := observability.OutcomeOK
	if err != nil {
		outcome = outcomeLabel(err)
	}
	observability.BackendRequestsTotal.WithLabelValues(string(b.Kind), outcome).Inc()
	observability.BackendLatency.WithLabelValues(string(b.Kind)).Observe(time.Since(start).Seconds())
	observability.GenerationsTotal.WithLabelValues(string(b.Kind)).Add(float64(len(gens)))

	debug.Log("client", "completion finished",
		"request_id", requestID,
		"backend", b.Kind,
		"outcome", outcome,
		"generations", len(gens),
		"duration", time.Since(start),
	)

	return gens, err
}

func (c *Client) complete(ctx context.Context, requestID string, b backend.Backend, req backend.Request) ([]api.Generation, error) {
	headers, body, err := backend.Build(b, req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	url := backend.Endpoint(b, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, api.NewTransportError(err)
	}

	for name, values := range headers {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	debug.Log("client", "sending request", "request_id", requestID, "backend", b.Kind, "url", url)
	if debug.TraceIsEnabled("client") {
		debug.Raw("client", fmt.Sprintf("> POST %s\n%s", url, data))
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, api.NewTransportError(err)
	}
	defer httpResp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBytes+1))
	if err != nil {
		return nil, api.NewTransportError(err)
	}
	if int64(len(text)) > c.maxBytes {
		return nil, api.NewTransportError(fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBytes))
	}

	debug.Log("client", "received response", "request_id", requestID, "status", httpResp.StatusCode, "bytes", len(text))
	debug.Trace("client", "response body", "request_id", requestID, "body", debug.Truncate(string(text), 4096))

	return backend.Parse(b, string(text))
}

// outcomeLabel returns the error kind for metrics, or "unknown".
func outcomeLabel(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return string(apiErr.Kind)
	}
	return "unknown"
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
