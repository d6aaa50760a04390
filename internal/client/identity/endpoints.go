package identity

import "net/http"

// Authorization schemes observed across the identity service. Both are in
// active use; which one applies is a property of the endpoint, never a
// global setting.
const (
	SchemeBearer = "Bearer"
	SchemeToken  = "Token"
)

// endpointKey identifies one identity-service operation.
type endpointKey string

const (
	epRegister      endpointKey = "register"
	epVerifyOTP     endpointKey = "verify_otp"
	epResendOTP     endpointKey = "resend_otp"
	epLogin         endpointKey = "login"
	epLogout        endpointKey = "logout"
	epOAuthInit     endpointKey = "oauth_init"
	epOAuthExchange endpointKey = "oauth_exchange"
	epResetRequest  endpointKey = "reset_request"
	epResetConfirm  endpointKey = "reset_confirm"
	epActivate      endpointKey = "activate"
)

// endpoint describes how one operation is addressed and authorized.
//
//   - sendScheme: the Authorization scheme used when the call itself carries
//     a credential ("" means the call is anonymous).
//   - issueScheme: the scheme under which tokens returned by this endpoint
//     are presented afterwards.
//   - credentialed: the call must carry ambient cookies so the service can
//     bind state to the caller (the OAuth pair).
type endpoint struct {
	method       string
	path         string
	sendScheme   string
	issueScheme  string
	credentialed bool
}

// endpoints is the per-endpoint configuration table. The mixed schemes are
// deliberate: the token-logout endpoint authorizes with "Token" while
// login/OTP/OAuth issue tokens presented as "Bearer".
var endpoints = map[endpointKey]endpoint{
	epRegister:      {method: http.MethodPost, path: "/auth/users/"},
	epVerifyOTP:     {method: http.MethodPost, path: "/auth/signup/verify", issueScheme: SchemeBearer},
	epResendOTP:     {method: http.MethodPost, path: "/auth/resend-otp"},
	epLogin:         {method: http.MethodPost, path: "/auth/login", issueScheme: SchemeBearer},
	epLogout:        {method: http.MethodPost, path: "/auth/token/logout", sendScheme: SchemeToken},
	epOAuthInit:     {method: http.MethodGet, path: "/auth/o/google-oauth2/", credentialed: true},
	epOAuthExchange: {method: http.MethodPost, path: "/auth/o/google-oauth2/", issueScheme: SchemeBearer, credentialed: true},
	epResetRequest:  {method: http.MethodPost, path: "/auth/users/reset_password/"},
	epResetConfirm:  {method: http.MethodPost, path: "/auth/users/reset_password_confirm/"},
	epActivate:      {method: http.MethodPost, path: "/auth/users/activation/"},
}
