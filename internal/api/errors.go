package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors for the conditions callers branch on.
var (
	// ErrUnauthenticated is returned when a bearer-protected endpoint
	// answers 401. The UI translates it into a re-login prompt.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidCredentials is returned by Login on 401.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound is returned when a product does not exist.
	ErrNotFound = errors.New("product not found")
)

// ValidationError is a 422 response. When the server returns a structured
// errors map the per-field messages are preserved so forms can show inline
// errors.
type ValidationError struct {
	Message string
	Errors  map[string][]string
}

func (e *ValidationError) Error() string {
	// Surface the first structured field error when present, the way the
	// storefront shows them: "Email: has already been taken".
	for _, field := range []string{"email", "username", "password"} {
		if msgs := e.Errors[field]; len(msgs) > 0 {
			return fmt.Sprintf("%s%s: %s", upperFirst(field[:1]), field[1:], msgs[0])
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return "Validation error"
}

// Field returns the first message for a field, or "".
func (e *ValidationError) Field(name string) string {
	if msgs := e.Errors[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-32) + s[1:]
	}
	return s
}

// APIError is any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorBody is the server's standard error envelope.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// decodeError translates a non-2xx response into the typed taxonomy.
// The body parse is best-effort; a missing or malformed body never masks the
// status-derived error.
func decodeError(resp *http.Response, fallback string) error {
	var body errorBody
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)); err == nil {
		_ = json.Unmarshal(data, &body)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return &ValidationError{Message: body.Message, Errors: body.Errors}
	default:
		msg := body.Message
		if msg == "" {
			msg = fallback
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
}
