// Package services contains the flow orchestrators of the client:
// registration, OTP verification, credential and federated login, password
// reset, activation, and logout. Each flow validates locally first (no
// network on validation failure), performs at most one identity call, and
// writes the session store only on success. No flow lets a panic or an
// unwrapped transport error escape to the UI.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/elearnhq/termclass/internal/client/identity"
	"github.com/elearnhq/termclass/internal/client/session"
	"github.com/elearnhq/termclass/internal/common"
	"github.com/elearnhq/termclass/internal/logging"
)

// validate backs the email-format checks shared by the flows.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Service wires the flows to their collaborators. One Service instance
// serves the whole client; flows hold no state of their own between calls.
type Service struct {
	client identity.Client
	store  session.Store
	log    logging.Logger
}

func New(client identity.Client, store session.Store, log logging.Logger) *Service {
	if log == nil {
		log = logging.Noop{}
	}
	return &Service{client: client, store: store, log: log}
}

// Store exposes the session store for consumers that subscribe to it.
func (s *Service) Store() session.Store {
	return s.store
}

// requireSession is the single stale-session guard: every protected action
// goes through here instead of checking storage ad hoc. With no token
// present it returns common.ErrNoSession and the caller skips its call.
func (s *Service) requireSession(ctx context.Context) (session.Snapshot, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return session.Snapshot{}, err
	}
	if !snap.Authenticated {
		return session.Snapshot{}, common.ErrNoSession
	}
	return snap, nil
}

// AuthHeader returns the Authorization value downstream consumers present
// on protected requests, or common.ErrNoSession.
func (s *Service) AuthHeader(ctx context.Context) (string, error) {
	snap, err := s.requireSession(ctx)
	if err != nil {
		return "", err
	}
	return snap.Token.Header(), nil
}

func checkEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, common.ErrInvalidEmail)
	}
	return nil
}

// UserMessage maps any flow error to the line shown to the user: local
// validation failures keep their own wording, identity-service refusals keep
// the server's wording, and everything else collapses to the generic
// fallback.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrInvalidEmail):
		return "Please enter a valid email address"
	case errors.Is(err, common.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, common.ErrIncompleteOTP):
		return "Enter the complete 6-digit code"
	case errors.Is(err, common.ErrNoSignupPending):
		return "Start by signing up first"
	case errors.Is(err, common.ErrNoSession):
		return "You are not signed in"
	case errors.Is(err, common.ErrValidation):
		// Policy failures carry their display message in the wrap.
		var pe *policyError
		if errors.As(err, &pe) {
			return pe.message
		}
		return err.Error()
	default:
		return identity.Message(err)
	}
}

// policyError carries a password-policy message through the error chain
// without losing the ErrValidation identity.
type policyError struct {
	message string
}

func (e *policyError) Error() string { return e.message }
func (e *policyError) Unwrap() error { return common.ErrValidation }
