package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nestview-web/pkg/logger"
	"nestview-web/pkg/metrics"
)

// envelope is the backend's standard response shape. Every response is
// expected to carry a success boolean and, on failure, a message string;
// absence of either is treated as a generic failure.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   int             `json:"total"`
}

// do issues a request against the backend and decodes the envelope. A nil
// body sends no payload; query may be nil. The bearer token is read from
// the token source on every call, never cached on the client.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body interface{}) (*envelope, error) {
	reqURL := strings.TrimRight(c.baseURL, "/") + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		logger.GlobalLogger.Errorf("Backend request failed: operation=%s, url=%s, error=%v", operation, reqURL, err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		logger.GlobalLogger.Errorf("Backend response unreadable: operation=%s, url=%s, error=%v", operation, reqURL, err)
		return nil, &TransportError{Err: err}
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerated: some endpoints (resend-code) contract on status only,
		// so a body that is not the envelope does not fail a 2xx response.
		_ = json.Unmarshal(raw, &env)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && envelopeDeclaresFailure(raw) {
		ok = false
	}
	if !ok {
		message := env.Message
		if message == "" {
			message = genericFailureMessage
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, "rejected").Inc()
		logger.GlobalLogger.Errorf("Backend rejected request: operation=%s, url=%s, status=%d, message=%s", operation, reqURL, resp.StatusCode, message)
		return nil, &APIError{Message: message, StatusCode: resp.StatusCode}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return &env, nil
}

// envelopeDeclaresFailure reports whether the body carries an explicit
// success=false. A missing success field is not a failure on its own.
func envelopeDeclaresFailure(raw []byte) bool {
	var probe struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Success != nil && !*probe.Success
}

// decodeData unmarshals the envelope's data field into dest.
func decodeData(env *envelope, dest interface{}) error {
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, dest)
}
