package slack

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the Slack client.
var (
	// ErrMissingToken indicates SetProfile was called without a token.
	ErrMissingToken = errors.New("no valid Slack token")

	// ErrAPIError indicates Slack answered with ok=false or a non-2xx status.
	ErrAPIError = errors.New("Slack API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Slack")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Slack")
)

// APIError represents an error reported by the Slack Web API.
type APIError struct {
	StatusCode int
	Code       string // Slack error code (e.g., "invalid_auth", "missing_scope")
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("Slack API error (status %d): %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("Slack API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrAPIError.
func (e *APIError) Unwrap() error {
	return ErrAPIError
}

// authCodes are Slack error codes caused by a bad or under-scoped token.
var authCodes = map[string]bool{
	"not_authed":             true,
	"invalid_auth":           true,
	"account_inactive":       true,
	"token_revoked":          true,
	"token_expired":          true,
	"missing_scope":          true,
	"not_allowed_token_type": true,
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrMissingToken) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized ||
			apiErr.StatusCode == http.StatusForbidden ||
			authCodes[apiErr.Code]
	}
	return false
}

// IsRateLimited returns true if Slack rejected the call for rate limiting.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.Code == "ratelimited"
	}
	return false
}

// ErrorDetail returns the human-readable detail for err: the Slack error
// code when there is one, the full message otherwise.
func ErrorDetail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	return err.Error()
}

// Hint returns a short suggestion for errors the user can act on, or ""
// when there is nothing to suggest.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case IsAuthError(err):
		return "check the token and its users.profile:write scope"
	case IsRateLimited(err):
		return "rate limited by Slack; try again later"
	}
	return ""
}
