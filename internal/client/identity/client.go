// Package identity wraps all HTTP calls to the identity service behind one
// interface, normalizing its heterogeneous error responses into a single
// error type. Nothing above this package builds requests or parses failure
// bodies.
package identity

import (
	"context"

	"github.com/elearnhq/termclass/internal/client/models"
)

// Client is the remote identity-service boundary.
//
// Every method performs exactly one logical operation, honors context
// cancellation, and returns either a nil error or one of: *Error (the
// service refused the request, Message carries the server's wording) or an
// error matching ErrUnavailable (the service could not be reached).
// No method panics across this boundary.
type Client interface {
	// Register creates an account from the signup profile.
	Register(ctx context.Context, p models.RegistrationProfile) error

	// VerifyOTP confirms the 6-digit signup code for email and returns the
	// issued session token and user record.
	VerifyOTP(ctx context.Context, otp, email string) (models.SessionToken, models.UserProfile, error)

	// ResendOTP asks the service to email a fresh signup code.
	ResendOTP(ctx context.Context, email string) error

	// Login exchanges credentials for a session token and user record.
	Login(ctx context.Context, c models.Credentials) (models.SessionToken, models.UserProfile, error)

	// Logout invalidates rawToken server-side. The Authorization scheme is
	// taken from the endpoint table, not from how the token was issued.
	Logout(ctx context.Context, rawToken string) error

	// OAuthAuthorizeURL asks for a provider authorization URL bound to the
	// caller's ambient cookies, redirecting back to redirectURI.
	OAuthAuthorizeURL(ctx context.Context, redirectURI string) (string, error)

	// OAuthExchange trades the provider callback parameters for tokens.
	OAuthExchange(ctx context.Context, ex models.OAuthExchange) (models.SessionToken, error)

	// RequestPasswordReset asks the service to email a reset link.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset sets a new password using the emailed (uid, token) pair.
	ConfirmPasswordReset(ctx context.Context, r models.ResetRequest) error

	// Activate confirms a new account using the emailed (uid, token) pair and
	// returns the service's detail message.
	Activate(ctx context.Context, a models.ActivationRequest) (string, error)
}
