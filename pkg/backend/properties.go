package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"nestview-web/internal/models"
	"nestview-web/pkg/logger"
	"nestview-web/pkg/metrics"
)

// ListProperties runs a paginated property search. The params carry the
// already-serialized filter state (search, type, minPrice, maxPrice, beds,
// country, city, page, sort, order); keys at their sentinel value are
// expected to be absent.
func (c *Client) ListProperties(ctx context.Context, params url.Values) (*models.PropertyPage, error) {
	env, err := c.do(ctx, "list_properties", http.MethodGet, "/api/properties", params, nil)
	if err != nil {
		return nil, err
	}
	page := &models.PropertyPage{Total: env.Total}
	if err := decodeData(env, &page.Items); err != nil {
		return nil, err
	}
	return page, nil
}

// GetProperty fetches a single listing by id.
func (c *Client) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	env, err := c.do(ctx, "get_property", http.MethodGet, "/api/properties/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var property models.Property
	if err := decodeData(env, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// PropertyImage is one staged image streamed into the multipart submission.
type PropertyImage struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// CreateProperty submits a new listing with its staged images as a
// multipart form. Approval happens on the backend; the created listing
// starts out pending.
func (c *Client) CreateProperty(ctx context.Context, form *models.PropertyForm, images []PropertyImage) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"price":       form.Price,
		"type":        form.Type,
		"beds":        form.Beds,
		"baths":       form.Baths,
		"area":        form.Area,
		"country":     form.Country,
		"city":        form.City,
		"address":     form.Address,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return err
		}
	}

	for _, image := range images {
		part, err := writer.CreateFormFile("images", image.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, image.Data); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	reqURL := strings.TrimRight(c.baseURL, "/") + "/api/properties"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("create_property", "transport_error").Inc()
		logger.GlobalLogger.Errorf("Listing submission failed: url=%s, error=%v", reqURL, err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("create_property", "transport_error").Inc()
		return &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || envelopeDeclaresFailure(raw) {
		message := genericFailureMessage
		var env envelope
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &env)
		}
		if env.Message != "" {
			message = env.Message
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("create_property", "rejected").Inc()
		logger.GlobalLogger.Errorf("Listing submission rejected: url=%s, status=%d, message=%s", reqURL, resp.StatusCode, message)
		return &APIError{Message: message, StatusCode: resp.StatusCode}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("create_property", "ok").Inc()
	return nil
}
