package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"nestview-web/internal/models"
	"nestview-web/pkg/backend"
	"nestview-web/pkg/logger"
)

// Provider is the HTTP client for the external identity provider. It is
// treated as opaque: sign-in yields a user and a bearer token, nothing
// else is assumed about its internals.
type Provider struct {
	baseURL    string
	httpClient *http.Client
}

// SignInResult is the provider's successful sign-in payload.
type SignInResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func NewProvider(baseURL string) *Provider {
	return &Provider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SignIn exchanges credentials for a session token.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	var result SignInResult
	if err := p.post(ctx, "/auth/login", map[string]string{"email": email, "password": password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account with the provider. The account stays
// unverified until the emailed code is confirmed.
func (p *Provider) Register(ctx context.Context, fullName, email, phone, password string) error {
	return p.post(ctx, "/auth/register", map[string]string{
		"full_name": fullName,
		"email":     email,
		"phone":     phone,
		"password":  password,
	}, nil)
}

func (p *Provider) post(ctx context.Context, path string, body interface{}, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	reqURL := strings.TrimRight(p.baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.GlobalLogger.Errorf("Identity provider request failed: url=%s, error=%v", reqURL, err)
		return &backend.TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &backend.TransportError{Err: err}
	}

	var env struct {
		Success *bool           `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (env.Success != nil && !*env.Success) {
		message := env.Message
		if message == "" {
			message = "request failed"
		}
		logger.GlobalLogger.Errorf("Identity provider rejected request: url=%s, status=%d, message=%s", reqURL, resp.StatusCode, message)
		return &backend.APIError{Message: message, StatusCode: resp.StatusCode}
	}

	if dest != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, dest)
	}
	if dest != nil {
		return json.Unmarshal(raw, dest)
	}
	return nil
}
