package services

import (
	"context"
	"fmt"

	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/client/password"
	"github.com/elearnhq/termclass/internal/common"
)

// RequestPasswordReset starts phase one of the reset flow: the service
// emails a link carrying the (uid, token) pair. A 2xx means "sent" as far
// as this client can tell; whether the backend discloses account existence
// is its business, not ours.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if err := checkEmail(email); err != nil {
		return err
	}

	if err := s.client.RequestPasswordReset(ctx, email); err != nil {
		s.log.Info(ctx, "reset request failed", "email", email, "err", err)
		return err
	}
	s.log.Info(ctx, "reset link requested", "email", email)
	return nil
}

// ConfirmPasswordReset runs phase two with the uid/token taken verbatim from
// the emailed link. The new password must match its confirmation and pass
// the same five policy rules as registration before anything is sent.
// Failure leaves entered values with the caller for resubmission.
func (s *Service) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword, confirm string) error {
	if newPassword != confirm {
		return fmt.Errorf("%w: %w", common.ErrValidation, common.ErrPasswordMismatch)
	}
	if res := password.Validate(newPassword); !res.Valid {
		return &policyError{message: res.Message}
	}

	err := s.client.ConfirmPasswordReset(ctx, models.ResetRequest{
		UID:         uid,
		Token:       token,
		NewPassword: newPassword,
	})
	if err != nil {
		s.log.Info(ctx, "reset confirm failed", "err", err)
		return err
	}
	s.log.Info(ctx, "password reset confirmed")
	return nil
}
