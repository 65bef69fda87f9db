package profilesdk

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
)

// Client talks to the public endpoints of the service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Session carries an access token for the authenticated endpoints. It does
// not refresh; log in again once the token expires.
type Session struct {
	client      *Client
	accessToken string
	expiresAt   time.Time
}

// NewSession wraps an access token obtained elsewhere.
func (c *Client) NewSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

func (s *Session) AccessToken() string { return s.accessToken }

// Expired reports whether the token lifetime returned at login has passed.
// Sessions created with NewSession never report expiry.
func (s *Session) Expired() bool {
	return !s.expiresAt.IsZero() && time.Now().After(s.expiresAt)
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AccountResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/accounts", req, "")
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/login", LoginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &Session{
		client:      c,
		accessToken: tok.AccessToken,
		expiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}, nil
}

// Me returns the account the session belongs to.
func (s *Session) Me(ctx context.Context) (*AccountResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/me", nil, s.accessToken)
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAccounts returns one page of accounts. Requires an admin session.
func (s *Session) ListAccounts(ctx context.Context, limit, offset int) (*ListAccountsResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/accounts?"+q.Encode(), nil, s.accessToken)
	if err != nil {
		return nil, err
	}

	var out ListAccountsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready to take traffic.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON sends body (if non-nil) as JSON, with a bearer token when given.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, body)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
