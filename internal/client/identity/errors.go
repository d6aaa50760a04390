package identity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elearnhq/termclass/internal/common"
)

// ErrUnavailable indicates the identity service could not be reached at all:
// a transport failure, a timeout, or an open circuit breaker.
var ErrUnavailable = errors.New("identity service unavailable")

// Error is the single normalized form of an identity-service failure.
// The heterogeneous response bodies (detail | error | message, possibly
// absent) are decoded once, here, not at call sites.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity service: %s (status %d)", e.Message, e.Status)
}

// errorBody covers every failure shape the service is known to produce.
type errorBody struct {
	Detail  string `json:"detail"`
	Err     string `json:"error"`
	Message string `json:"message"`
}

// normalizeError extracts a human message from a non-2xx response body,
// checking detail, then error, then message, and falling back to a generic
// string when the body is absent or unparsable.
func normalizeError(status int, body []byte) *Error {
	var eb errorBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &eb); err != nil {
			return &Error{Status: status, Message: common.GenericFailureMessage}
		}
	}
	switch {
	case eb.Detail != "":
		return &Error{Status: status, Message: eb.Detail}
	case eb.Err != "":
		return &Error{Status: status, Message: eb.Err}
	case eb.Message != "":
		return &Error{Status: status, Message: eb.Message}
	default:
		return &Error{Status: status, Message: common.GenericFailureMessage}
	}
}

// Message returns the user-facing message for any error coming out of this
// package: the server message for a normalized failure, the generic fallback
// for everything else.
func Message(err error) string {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Message
	}
	return common.GenericFailureMessage
}
