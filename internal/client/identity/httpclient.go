package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/logging"
)

// maxBodySize caps how much of a response body is read; identity-service
// payloads are small JSON documents.
const maxBodySize = 1 << 20

// Options configures an HTTPClient.
type Options struct {
	// Timeout bounds each call end to end. Zero means 15 seconds.
	Timeout time.Duration
	// Logger receives one line per call outcome. Nil means no logging.
	Logger logging.Logger
}

// HTTPClient is the Client implementation over HTTP/JSON.
//
// All calls share one cookie jar: the OAuth endpoints rely on ambient
// cookies to bind the anti-forgery state to this process, the way a browser
// session would. A single circuit breaker covers the whole service so a
// down backend fails fast instead of hanging every flow in turn.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the identity service rooted at baseURL
// (scheme and host, no trailing slash required).
func NewHTTPClient(baseURL string, opts Options) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	log := opts.Logger
	if log == nil {
		log = logging.Noop{}
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "identity",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && ratio >= 0.5
		},
	})

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   timeout,
		},
		breaker: breaker,
		log:     log,
	}, nil
}

// call performs one identity-service operation. payload (if non-nil) is sent
// as a JSON body; out (if non-nil) receives the decoded 2xx body; credential
// (if non-empty) is sent under the endpoint's Authorization scheme.
func (c *HTTPClient) call(ctx context.Context, key endpointKey, query url.Values, payload, out any, credential string) error {
	ep, ok := endpoints[key]
	if !ok {
		return fmt.Errorf("unknown endpoint %q", key)
	}

	u := c.baseURL + ep.path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", key, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, u, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", key, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if credential != "" {
		req.Header.Set("Authorization", ep.sendScheme+" "+credential)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		c.log.Warn(ctx, "identity call failed", "endpoint", key, "requestID", requestID, "err", err)
		return fmt.Errorf("%s %s: %w: %v", ep.method, ep.path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.log.Warn(ctx, "identity response read failed", "endpoint", key, "requestID", requestID, "err", err)
		return fmt.Errorf("%s %s: %w: %v", ep.method, ep.path, ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ne := normalizeError(resp.StatusCode, data)
		c.log.Info(ctx, "identity call rejected",
			"endpoint", key, "requestID", requestID, "status", resp.StatusCode, "message", ne.Message)
		return ne
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.log.Warn(ctx, "identity response undecodable", "endpoint", key, "requestID", requestID, "err", err)
			return fmt.Errorf("%s %s: %w: undecodable response", ep.method, ep.path, ErrUnavailable)
		}
	}

	c.log.Debug(ctx, "identity call ok", "endpoint", key, "requestID", requestID, "status", resp.StatusCode)
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, p models.RegistrationProfile) error {
	return c.call(ctx, epRegister, nil, p, nil, "")
}

// tokenUserResponse is the shared success shape of login and OTP verification.
type tokenUserResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, otp, email string) (models.SessionToken, models.UserProfile, error) {
	in := struct {
		OTP   string `json:"otp"`
		Email string `json:"email"`
	}{OTP: otp, Email: email}

	var out tokenUserResponse
	if err := c.call(ctx, epVerifyOTP, nil, in, &out, ""); err != nil {
		return models.SessionToken{}, models.UserProfile{}, err
	}
	tok := models.SessionToken{AccessToken: out.Token, Scheme: endpoints[epVerifyOTP].issueScheme}
	return tok, out.User, nil
}

func (c *HTTPClient) ResendOTP(ctx context.Context, email string) error {
	in := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.call(ctx, epResendOTP, nil, in, nil, "")
}

func (c *HTTPClient) Login(ctx context.Context, cr models.Credentials) (models.SessionToken, models.UserProfile, error) {
	var out tokenUserResponse
	if err := c.call(ctx, epLogin, nil, cr, &out, ""); err != nil {
		return models.SessionToken{}, models.UserProfile{}, err
	}
	tok := models.SessionToken{AccessToken: out.Token, Scheme: endpoints[epLogin].issueScheme}
	return tok, out.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context, rawToken string) error {
	return c.call(ctx, epLogout, nil, nil, nil, rawToken)
}

func (c *HTTPClient) OAuthAuthorizeURL(ctx context.Context, redirectURI string) (string, error) {
	q := url.Values{"redirect_uri": {redirectURI}}

	var out struct {
		AuthorizationURL string `json:"authorization_url"`
	}
	if err := c.call(ctx, epOAuthInit, q, nil, &out, ""); err != nil {
		return "", err
	}
	if out.AuthorizationURL == "" {
		return "", fmt.Errorf("%w: empty authorization_url", ErrUnavailable)
	}
	return out.AuthorizationURL, nil
}

func (c *HTTPClient) OAuthExchange(ctx context.Context, ex models.OAuthExchange) (models.SessionToken, error) {
	q := url.Values{
		"state":        {ex.State},
		"code":         {ex.Code},
		"redirect_uri": {ex.RedirectURI},
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.call(ctx, epOAuthExchange, q, nil, &out, ""); err != nil {
		return models.SessionToken{}, err
	}
	return models.SessionToken{
		AccessToken:  out.Access,
		Scheme:       endpoints[epOAuthExchange].issueScheme,
		RefreshToken: out.Refresh,
	}, nil
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	in := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.call(ctx, epResetRequest, nil, in, nil, "")
}

func (c *HTTPClient) ConfirmPasswordReset(ctx context.Context, r models.ResetRequest) error {
	return c.call(ctx, epResetConfirm, nil, r, nil, "")
}

func (c *HTTPClient) Activate(ctx context.Context, a models.ActivationRequest) (string, error) {
	var out struct {
		Detail string `json:"detail"`
	}
	if err := c.call(ctx, epActivate, nil, a, &out, ""); err != nil {
		return "", err
	}
	return out.Detail, nil
}
