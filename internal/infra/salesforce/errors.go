package salesforce

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidPrivateKey is a configuration error and is never retried.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	ErrTokenExhausted = errors.New("unable to fetch token")
	ErrEmptyToken     = errors.New("token response has no access_token")
	ErrBodyTooLarge   = errors.New("salesforce: response body exceeds 8MiB")
)

const maxErrorBody = 512

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("salesforce: %s %s returned %d: %s", e.Method, e.URL, e.StatusCode, body)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
