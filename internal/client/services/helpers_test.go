package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/client/session"
)

// fakeClient implements identity.Client for flow unit tests. Call counters
// and Last* fields let tests assert exactly which calls were made.
type fakeClient struct {
	RegisterErr   error
	RegisterCalls int
	LastRegister  models.RegistrationProfile

	VerifyTok   models.SessionToken
	VerifyUser  models.UserProfile
	VerifyErr   error
	VerifyCalls int
	LastOTP     string
	LastOTPMail string

	ResendErr   error
	ResendCalls int
	LastResend  string

	LoginTok   models.SessionToken
	LoginUser  models.UserProfile
	LoginErr   error
	LoginCalls int
	LastLogin  models.Credentials

	LogoutErr   error
	LogoutCalls int
	LastLogout  string

	AuthURL       string
	AuthURLErr    error
	AuthURLCalls  int
	LastRedirect  string
	ExchangeTok   models.SessionToken
	ExchangeErr   error
	ExchangeCalls int
	LastExchange  models.OAuthExchange

	ResetReqErr   error
	ResetReqCalls int
	LastResetMail string

	ConfirmErr   error
	ConfirmCalls int
	LastConfirm  models.ResetRequest

	ActivateDetail string
	ActivateErr    error
	ActivateCalls  int
	LastActivate   models.ActivationRequest
}

func (f *fakeClient) Register(_ context.Context, p models.RegistrationProfile) error {
	f.RegisterCalls++
	f.LastRegister = p
	return f.RegisterErr
}

func (f *fakeClient) VerifyOTP(_ context.Context, otp, email string) (models.SessionToken, models.UserProfile, error) {
	f.VerifyCalls++
	f.LastOTP = otp
	f.LastOTPMail = email
	return f.VerifyTok, f.VerifyUser, f.VerifyErr
}

func (f *fakeClient) ResendOTP(_ context.Context, email string) error {
	f.ResendCalls++
	f.LastResend = email
	return f.ResendErr
}

func (f *fakeClient) Login(_ context.Context, c models.Credentials) (models.SessionToken, models.UserProfile, error) {
	f.LoginCalls++
	f.LastLogin = c
	return f.LoginTok, f.LoginUser, f.LoginErr
}

func (f *fakeClient) Logout(_ context.Context, rawToken string) error {
	f.LogoutCalls++
	f.LastLogout = rawToken
	return f.LogoutErr
}

func (f *fakeClient) OAuthAuthorizeURL(_ context.Context, redirectURI string) (string, error) {
	f.AuthURLCalls++
	f.LastRedirect = redirectURI
	return f.AuthURL, f.AuthURLErr
}

func (f *fakeClient) OAuthExchange(_ context.Context, ex models.OAuthExchange) (models.SessionToken, error) {
	f.ExchangeCalls++
	f.LastExchange = ex
	return f.ExchangeTok, f.ExchangeErr
}

func (f *fakeClient) RequestPasswordReset(_ context.Context, email string) error {
	f.ResetReqCalls++
	f.LastResetMail = email
	return f.ResetReqErr
}

func (f *fakeClient) ConfirmPasswordReset(_ context.Context, r models.ResetRequest) error {
	f.ConfirmCalls++
	f.LastConfirm = r
	return f.ConfirmErr
}

func (f *fakeClient) Activate(_ context.Context, a models.ActivationRequest) (string, error) {
	f.ActivateCalls++
	f.LastActivate = a
	return f.ActivateDetail, f.ActivateErr
}

func setup(t *testing.T) (*Service, *fakeClient, *session.SQLStore) {
	t.Helper()
	db, err := session.OpenEphemeral(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewSQLStore(db)
	fc := &fakeClient{}
	return New(fc, store, nil), fc, store
}

func requireUnauthenticated(t *testing.T, store *session.SQLStore) {
	t.Helper()
	snap, err := store.Current(context.Background())
	require.NoError(t, err)
	require.False(t, snap.Authenticated, "session must not be established")
}
