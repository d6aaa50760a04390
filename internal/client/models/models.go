// Package models defines the data types exchanged between the identity
// client, the flow services, and the session store.
package models

// Credentials is the input to the credential login flow.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationProfile is the signup input. The password is submitted once
// and never stored; email and name are carried forward into the OTP step.
type RegistrationProfile struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Password    string `json:"password"`
}

// UserProfile mirrors the identity-service user record.
type UserProfile struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description,omitempty"`
}

// SessionToken is the credential established on authentication success.
// Scheme is the Authorization scheme the token was issued under
// ("Bearer" or "Token"); RefreshToken is set on the OAuth path only.
type SessionToken struct {
	AccessToken  string
	Scheme       string
	RefreshToken string
}

// Header renders the scheme-prefixed Authorization value, e.g. "Bearer T1".
func (t SessionToken) Header() string {
	return t.Scheme + " " + t.AccessToken
}

// ResetRequest addresses the password-reset confirm endpoint. UID and Token
// come verbatim from the emailed link and are never recomputed client-side.
type ResetRequest struct {
	UID         string `json:"uid"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ActivationRequest addresses the account activation endpoint. Like
// ResetRequest, the pair is an opaque identifier taken from an emailed link.
type ActivationRequest struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// OAuthExchange carries the provider redirect parameters back to the
// identity service.
type OAuthExchange struct {
	Code        string
	State       string
	RedirectURI string
}
