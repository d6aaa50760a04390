package services

import (
	"context"
	"fmt"

	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/common"
)

// Login exchanges credentials for a session in one round trip and
// establishes it under the "Bearer" scheme. There is no password-policy
// check here: the policy applies when passwords are chosen, not when they
// are presented. Failures leave the store untouched; re-submitting is the
// retry mechanism.
func (s *Service) Login(ctx context.Context, c models.Credentials) error {
	if err := checkEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	token, profile, err := s.client.Login(ctx, c)
	if err != nil {
		s.log.Info(ctx, "login rejected", "email", c.Email, "err", err)
		return err
	}

	if err := s.store.Establish(ctx, token, profile); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	s.log.Info(ctx, "login succeeded", "email", c.Email, "userID", profile.ID)
	return nil
}

// Logout is the one deliberately dual-path flow: the server invalidation is
// best effort and observed for logging only, while the local teardown runs
// unconditionally. Local logout availability wins over server confirmation.
func (s *Service) Logout(ctx context.Context) error {
	snap, err := s.requireSession(ctx)
	if err == nil {
		if lerr := s.client.Logout(ctx, snap.Token.AccessToken); lerr != nil {
			s.log.Warn(ctx, "server logout failed, clearing locally anyway", "err", lerr)
		}
	} else {
		s.log.Debug(ctx, "logout without session, clearing locally", "err", err)
	}

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}
