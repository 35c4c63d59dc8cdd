package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidCredentials: the sign-in endpoint rejected the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccessDenied: the account exists but may not sign in to the console.
	ErrAccessDenied = errors.New("access denied")
	// ErrUnreachable: the request never produced an HTTP response.
	ErrUnreachable = errors.New("cannot reach the server")
	// ErrSessionExpired: an authenticated call came back 401; the local
	// session has been cleared and the operator must sign in again.
	ErrSessionExpired = errors.New("session expired, please sign in again")
)

// APIError carries a non-2xx response that maps to no specific sentinel.
type APIError struct {
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	if err.Message != "" {
		return fmt.Sprintf("server returned %d: %s", err.StatusCode, err.Message)
	}
	return fmt.Sprintf("server returned %d", err.StatusCode)
}

// errorMessage pulls the message out of an {"error": "..."} body, if any.
func errorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}

func apiError(resp *http.Response) error {
	return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
}
