package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/common"
)

func validProfile() models.RegistrationProfile {
	return models.RegistrationProfile{
		Email:       "x@y.com",
		Name:        "X",
		Description: "d",
		Password:    "Passw0rd!",
	}
}

func TestRegister_EndToEnd(t *testing.T) {
	svc, fc, store := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, validProfile(), "Passw0rd!"))

	assert.Equal(t, 1, fc.RegisterCalls, "exactly one register call")
	assert.Equal(t, "x@y.com", fc.LastRegister.Email)

	email, name, err := store.Signup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", email)
	assert.Equal(t, "X", name)
}

func TestRegister_LocalPreconditionsBlockNetwork(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.RegistrationProfile)
		confirm string
		is      error
		message string
	}{
		{
			name:    "confirm mismatch",
			confirm: "Different1!",
			is:      common.ErrPasswordMismatch,
			message: "Passwords do not match",
		},
		{
			name:    "weak password",
			mutate:  func(p *models.RegistrationProfile) { p.Password = "abcdef1!" },
			confirm: "abcdef1!",
			message: "Password must contain at least one uppercase letter",
		},
		{
			name:    "invalid email",
			mutate:  func(p *models.RegistrationProfile) { p.Email = "nope" },
			confirm: "Passw0rd!",
			is:      common.ErrInvalidEmail,
			message: "Please enter a valid email address",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, fc, store := setup(t)

			p := validProfile()
			if tt.mutate != nil {
				tt.mutate(&p)
			}

			err := svc.Register(context.Background(), p, tt.confirm)
			require.ErrorIs(t, err, common.ErrValidation)
			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}
			assert.Equal(t, tt.message, UserMessage(err))
			assert.Zero(t, fc.RegisterCalls, "validation failure must not reach the network")

			_, _, serr := store.Signup(context.Background())
			assert.ErrorIs(t, serr, common.ErrNoSignupPending)
		})
	}
}

func TestRegister_ServerRejectionKeepsNothing(t *testing.T) {
	svc, fc, store := setup(t)

	fc.RegisterErr = errors.New("email already in use")
	err := svc.Register(context.Background(), validProfile(), "Passw0rd!")
	require.Error(t, err)

	_, _, serr := store.Signup(context.Background())
	assert.ErrorIs(t, serr, common.ErrNoSignupPending)
}

func TestVerifyOTP_ShortCodeSkipsNetwork(t *testing.T) {
	for _, code := range []string{"", "12345", "1234567", "12a456", "12 456"} {
		svc, fc, _ := setup(t)

		err := svc.VerifyOTP(context.Background(), code)
		require.ErrorIs(t, err, common.ErrIncompleteOTP, "code %q", code)
		assert.Zero(t, fc.VerifyCalls, "code %q must not reach the network", code)
	}
}

func TestVerifyOTP_UsesStashedEmailAndEstablishes(t *testing.T) {
	svc, fc, store := setup(t)
	ctx := context.Background()

	require.NoError(t, store.StashSignup(ctx, "x@y.com", "X"))
	fc.VerifyTok = models.SessionToken{AccessToken: "T9", Scheme: "Bearer"}
	fc.VerifyUser = models.UserProfile{ID: 3, Email: "x@y.com", Name: "X"}

	require.NoError(t, svc.VerifyOTP(ctx, "123456"))

	assert.Equal(t, "123456", fc.LastOTP)
	assert.Equal(t, "x@y.com", fc.LastOTPMail)

	snap, err := store.Current(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "Bearer T9", snap.Token.Header())

	_, _, serr := store.Signup(ctx)
	assert.ErrorIs(t, serr, common.ErrNoSignupPending, "handoff discarded after verification")
}

func TestVerifyOTP_NoPendingSignup(t *testing.T) {
	svc, fc, _ := setup(t)

	err := svc.VerifyOTP(context.Background(), "123456")
	require.ErrorIs(t, err, common.ErrNoSignupPending)
	assert.Zero(t, fc.VerifyCalls)
}

func TestVerifyOTP_RejectionKeepsHandoff(t *testing.T) {
	svc, fc, store := setup(t)
	ctx := context.Background()

	require.NoError(t, store.StashSignup(ctx, "x@y.com", "X"))
	fc.VerifyErr = errors.New("wrong code")

	require.Error(t, svc.VerifyOTP(ctx, "000000"))
	requireUnauthenticated(t, store)

	email, _, err := store.Signup(ctx)
	require.NoError(t, err, "cells stay editable, handoff stays")
	assert.Equal(t, "x@y.com", email)
}

func TestResendOTP_UsesStashedEmail(t *testing.T) {
	svc, fc, store := setup(t)
	ctx := context.Background()

	require.NoError(t, store.StashSignup(ctx, "x@y.com", "X"))
	require.NoError(t, svc.ResendOTP(ctx))
	assert.Equal(t, "x@y.com", fc.LastResend)

	fc.ResendErr = errors.New("rate limited")
	require.Error(t, svc.ResendOTP(ctx))
	assert.Equal(t, 2, fc.ResendCalls)
}

func TestActivate_PassesPairVerbatim(t *testing.T) {
	svc, fc, _ := setup(t)

	fc.ActivateDetail = "Account activated"
	detail, err := svc.Activate(context.Background(), "MQ", "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Account activated", detail)
	assert.Equal(t, models.ActivationRequest{UID: "MQ", Token: "tok-123"}, fc.LastActivate)
}
