package llm

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies model endpoint failures. All of them abort only the
// current orchestration request; the agent stays usable.
type ErrorKind string

const (
	ErrorKindAuth      ErrorKind = "auth"
	ErrorKindRateLimit ErrorKind = "rate_limit"
	ErrorKindAPI       ErrorKind = "api"
	ErrorKindTransport ErrorKind = "transport"
)

// Error is a typed model-call failure carrying the HTTP status (0 for
// transport-level failures) and the endpoint's error message when available.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model call failed (%s, status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("model call failed (%s): %s", e.Kind, e.Message)
}

// classifyStatus maps an HTTP status code to an ErrorKind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorKindAuth
	case status == http.StatusTooManyRequests:
		return ErrorKindRateLimit
	default:
		return ErrorKindAPI
	}
}
