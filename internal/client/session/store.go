// Package session owns the process-lifetime ("tab-scoped") session state:
// the active token, the authenticated user's profile, and the short-lived
// signup handoff between registration and OTP verification.
//
// The store is the only state shared between flows. It is written by
// whichever flow completes authentication and by logout; everything else
// reads it, either directly or through Subscribe.
package session

import (
	"context"

	"github.com/elearnhq/termclass/internal/client/models"
)

// Storage keys. These mirror, one for one, the keys the platform keeps in
// tab-scoped browser storage after authentication.
const (
	keyAuthHeader   = "authHeader" // scheme-prefixed credential, e.g. "Bearer T1"
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyUserID       = "userID"
	keyUserEmail    = "userEmail"
	keyUserName     = "userName"
	keyProfile      = "profile" // serialized profile blob

	keySignupEmail = "signupEmail"
	keySignupName  = "signupName"
)

// Snapshot is a point-in-time read of the session. Authenticated is true
// exactly when a token is present.
type Snapshot struct {
	Authenticated bool
	Token         models.SessionToken
	Profile       models.UserProfile
}

// Store is the injectable session service.
//
// Establish and Clear are the only ways authentication state changes; the
// signup handoff has its own narrow operations so registration can pass
// email+name forward to the OTP step without holding a session.
type Store interface {
	// Establish records the token (with its scheme) and profile, replacing
	// any previous session, and notifies subscribers.
	Establish(ctx context.Context, token models.SessionToken, profile models.UserProfile) error

	// Current returns the session state. A zero Snapshot with
	// Authenticated=false means no session; that is not an error.
	Current(ctx context.Context) (Snapshot, error)

	// Clear removes every session key unconditionally and notifies
	// subscribers. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error

	// StashSignup stores the registration email and name for the OTP step.
	StashSignup(ctx context.Context, email, name string) error

	// Signup returns the stashed registration email and name, or
	// common.ErrNoSignupPending when registration has not run.
	Signup(ctx context.Context) (email, name string, err error)

	// ClearSignup discards the signup handoff after verification.
	ClearSignup(ctx context.Context) error

	// Subscribe returns a channel receiving a Snapshot after every
	// Establish/Clear, and a cancel function that must be called when the
	// consumer goes away.
	Subscribe() (<-chan Snapshot, func())
}
