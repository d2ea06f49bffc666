package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when the carrier rejects the login with 401.
	ErrInvalidCredentials = errors.New("carrier rejected credentials")
	// ErrAuthentication is returned for any other failed login.
	ErrAuthentication = errors.New("carrier authentication failed")
	// ErrTokenUnavailable is returned when a request is attempted without a valid token.
	ErrTokenUnavailable = errors.New("carrier token unavailable")
	// ErrAuthFailed is a 401 on an authenticated call; the token is stale.
	ErrAuthFailed = errors.New("carrier token rejected")
	ErrPermissionDenied = errors.New("carrier permission denied")
	ErrRateLimited      = errors.New("carrier rate limit exceeded")
	ErrCarrierAPI       = errors.New("carrier api error")
	// ErrMalformedResponse is returned when the carrier sends something that is not the expected JSON.
	ErrMalformedResponse = errors.New("malformed carrier response")
	// ErrUpstreamDocument is returned when a document download is not OK.
	ErrUpstreamDocument = errors.New("carrier document unavailable")
	// ErrMissingBody is returned when a document download is OK but empty.
	ErrMissingBody = errors.New("carrier document is empty")
	// ErrInvalidInput is returned for caller mistakes detected before any network call.
	ErrInvalidInput = errors.New("invalid input")
)

// MaxErrorBody bounds the response body kept on errors.
const MaxErrorBody = 500

// APIError carries the diagnostics of a non-2xx carrier response.
// Kind is one of the sentinels above and is what errors.Is matches.
type APIError struct {
	Kind       error
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.Kind, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// NewAPIError truncates body and picks the kind from the status code.
func NewAPIError(op string, status int, body []byte) *APIError {
	return &APIError{
		Kind:       KindForStatus(status),
		Op:         op,
		StatusCode: status,
		Body:       Truncate(string(body), MaxErrorBody),
	}
}

// KindForStatus maps a carrier HTTP status to an error sentinel.
func KindForStatus(status int) error {
	switch status {
	case 401:
		return ErrAuthFailed
	case 403:
		return ErrPermissionDenied
	case 429:
		return ErrRateLimited
	default:
		return ErrCarrierAPI
	}
}

// DocumentError is a failed PDF download. It never holds the document URL.
type DocumentError struct {
	StatusCode int
	Body       string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%v (status %d): %s", ErrUpstreamDocument, e.StatusCode, e.Body)
}

func (e *DocumentError) Unwrap() error {
	return ErrUpstreamDocument
}

// IsAuthFailure reports whether err means the cached token must be replaced.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrTokenUnavailable)
}

// HTTPStatus returns the upstream status carried by err, or 0.
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		return docErr.StatusCode
	}
	return 0
}

// Truncate cuts s to at most n runes, marking the cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "...(truncated)"
}
