// Package common defines shared constants and sentinel errors used across
// TermClass components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Local validation errors: raised before any network call is made.
	ErrValidation       = errors.New("validation error")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrIncompleteOTP    = errors.New("enter the complete 6-digit code")

	// Session errors.
	ErrNoSession       = errors.New("no active session")
	ErrNoSignupPending = errors.New("no pending signup")

	// Link parsing errors.
	ErrMalformedLink = errors.New("malformed link")

	// ErrCallbackRejected means the OAuth provider redirect carried an error
	// or lacked code/state; no token exchange may run.
	ErrCallbackRejected = errors.New("authorization callback rejected")
)

// GenericFailureMessage is shown when the identity service returns a failure
// whose body carries no usable message, or cannot be reached at all.
const GenericFailureMessage = "Something went wrong. Please try again."
