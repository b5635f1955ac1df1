// Package slack is a minimal client for the Slack Web API profile methods.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// BaseURL is the Slack Web API base URL.
	BaseURL = "https://slack.com/api"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// TokenPrefixLen is how many characters of a token are shown in output.
	TokenPrefixLen = 12
)

// Profile holds the status fields sent to users.profile.set.
type Profile struct {
	StatusText       string `json:"status_text"`
	StatusEmoji      string `json:"status_emoji"`
	StatusExpiration int64  `json:"status_expiration"`
}

// Client calls Slack profile methods. Tokens are passed per call so one
// client serves every workspace.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the HTTP request timeout. It applies to a copy of the
// HTTP client, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new Slack client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// slackAPIResponse is a generic Slack API response wrapper.
type slackAPIResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// profileSetRequest is the users.profile.set request body.
type profileSetRequest struct {
	Profile Profile `json:"profile"`
}

// SetProfile sets the status fields of the token owner's profile.
func (c *Client) SetProfile(ctx context.Context, token string, p Profile) error {
	if token == "" {
		return ErrMissingToken
	}

	data, err := json.Marshal(profileSetRequest{Profile: p})
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/users.profile.set", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrNetworkError, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		// Slack sometimes returns a JSON error body alongside a non-2xx status
		var result slackAPIResponse
		if json.Unmarshal(body, &result) == nil {
			apiErr.Code = result.Error
		}
		return apiErr
	}

	var result slackAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if !result.OK {
		return &APIError{StatusCode: resp.StatusCode, Code: result.Error, Message: result.Warning}
	}

	return nil
}

// TokenPrefix returns the first TokenPrefixLen characters of token, for
// identifying a workspace in output without revealing the secret. Tokens
// too short to truncate safely are cut to half their length.
func TokenPrefix(token string) string {
	n := TokenPrefixLen
	if n > len(token)/2 {
		n = len(token) / 2
	}
	return token[:n]
}
