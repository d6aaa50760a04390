package services

import (
	"context"
	"fmt"
	"unicode"

	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/client/password"
	"github.com/elearnhq/termclass/internal/common"
)

// OTPLength is the number of digits in a signup verification code.
const OTPLength = 6

// Register runs the signup submission. Local preconditions (matching
// confirm password, a policy-conformant password) are checked before any
// network call. On success the email and name are stashed for the OTP step;
// on failure nothing is stored, so the form keeps its values.
func (s *Service) Register(ctx context.Context, p models.RegistrationProfile, confirm string) error {
	if err := checkEmail(p.Email); err != nil {
		return err
	}
	if p.Password != confirm {
		return fmt.Errorf("%w: %w", common.ErrValidation, common.ErrPasswordMismatch)
	}
	if res := password.Validate(p.Password); !res.Valid {
		return &policyError{message: res.Message}
	}

	if err := s.client.Register(ctx, p); err != nil {
		s.log.Info(ctx, "registration rejected", "email", p.Email, "err", err)
		return err
	}

	if err := s.store.StashSignup(ctx, p.Email, p.Name); err != nil {
		return fmt.Errorf("stash signup: %w", err)
	}
	s.log.Info(ctx, "registration submitted, awaiting OTP", "email", p.Email)
	return nil
}

// VerifyOTP confirms the signup code. A code that is not exactly six digits
// fails locally with no network call. Success establishes the session and
// discards the signup handoff.
func (s *Service) VerifyOTP(ctx context.Context, code string) error {
	if !isOTP(code) {
		return fmt.Errorf("%w: %w", common.ErrValidation, common.ErrIncompleteOTP)
	}

	email, _, err := s.store.Signup(ctx)
	if err != nil {
		return err
	}

	token, profile, err := s.client.VerifyOTP(ctx, code, email)
	if err != nil {
		s.log.Info(ctx, "OTP rejected", "email", email, "err", err)
		return err
	}

	if err := s.store.Establish(ctx, token, profile); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	if err := s.store.ClearSignup(ctx); err != nil {
		s.log.Warn(ctx, "failed to discard signup handoff", "err", err)
	}
	s.log.Info(ctx, "OTP verified", "email", email)
	return nil
}

// ResendOTP asks for a fresh code using the stashed signup email. Resetting
// the resend cooldown is the caller's duty and happens regardless of this
// call's outcome.
func (s *Service) ResendOTP(ctx context.Context) error {
	email, _, err := s.store.Signup(ctx)
	if err != nil {
		return err
	}

	if err := s.client.ResendOTP(ctx, email); err != nil {
		s.log.Info(ctx, "OTP resend failed", "email", email, "err", err)
		return err
	}
	s.log.Info(ctx, "OTP resent", "email", email)
	return nil
}

// Activate confirms a new account from an emailed (uid, token) pair and
// returns the service's detail message.
func (s *Service) Activate(ctx context.Context, uid, token string) (string, error) {
	detail, err := s.client.Activate(ctx, models.ActivationRequest{UID: uid, Token: token})
	if err != nil {
		s.log.Info(ctx, "activation failed", "err", err)
		return "", err
	}
	s.log.Info(ctx, "account activated")
	return detail, nil
}

func isOTP(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
