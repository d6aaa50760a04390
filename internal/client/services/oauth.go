package services

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/elearnhq/termclass/internal/client/links"
	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/common"
)

// The federated login flow has two independent phases with no shared
// in-memory state between them; the round trip through the provider (the
// user's browser) is the only coupling. The identity service binds the
// anti-forgery state to this process's cookies during Initiate and checks
// it again during the exchange, which is why both calls run on the same
// cookie-jarred client.

// OAuthInitiate asks the identity service for a provider authorization URL
// that will redirect back to redirectURI. The caller performs the actual
// "full-page redirect" (opens the browser). On failure there is nothing to
// open and no navigation happens.
func (s *Service) OAuthInitiate(ctx context.Context, redirectURI string) (string, error) {
	authURL, err := s.client.OAuthAuthorizeURL(ctx, redirectURI)
	if err != nil {
		s.log.Info(ctx, "oauth initiate failed", "err", err)
		return "", err
	}
	s.log.Info(ctx, "oauth authorization URL obtained")
	return authURL, nil
}

// OAuthCallback completes the flow from the provider redirect parameters.
// A callback carrying a provider error, or missing code/state, is rejected
// before any exchange call, and the store stays untouched. Only a
// successful exchange establishes a session.
func (s *Service) OAuthCallback(ctx context.Context, cb links.Callback, redirectURI string) error {
	if !cb.Exchangeable() {
		s.log.Info(ctx, "oauth callback rejected",
			"hasCode", cb.Code != "", "hasState", cb.State != "", "providerError", cb.ErrParam)
		return fmt.Errorf("%w: %w", common.ErrValidation, common.ErrCallbackRejected)
	}

	token, err := s.client.OAuthExchange(ctx, models.OAuthExchange{
		Code:        cb.Code,
		State:       cb.State,
		RedirectURI: redirectURI,
	})
	if err != nil {
		s.log.Info(ctx, "oauth exchange failed", "err", err)
		return err
	}

	if err := s.store.Establish(ctx, token, models.UserProfile{}); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	s.log.Info(ctx, "oauth login succeeded")
	return nil
}

// CallbackServer is the loopback listener standing in for the application's
// callback route: the provider redirects the user's browser to it, and the
// first callback received is delivered on C.
type CallbackServer struct {
	C chan links.Callback

	srv       *http.Server
	ln        net.Listener
	done      chan struct{}
	closeOnce sync.Once
}

// StartCallbackServer listens on 127.0.0.1:port (port 0 picks a free one).
func StartCallbackServer(port int) (*CallbackServer, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("callback listener: %w", err)
	}

	cs := &CallbackServer{
		C:    make(chan links.Callback, 1),
		ln:   ln,
		done: make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		cb := links.CallbackFromQuery(r.URL.Query())
		select {
		case cs.C <- cb:
		default: // only the first callback counts
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>You can close this window and return to the terminal.</p></body></html>"))
	})

	cs.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = cs.srv.Serve(ln) }()
	return cs, nil
}

// RedirectURI returns the URI the provider should redirect back to.
func (cs *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://%s/callback", cs.ln.Addr().String())
}

// Done is closed when the server shuts down, releasing anyone blocked on C.
func (cs *CallbackServer) Done() <-chan struct{} {
	return cs.done
}

// Close tears the listener down. Safe to call more than once, and safe to
// call when the flow is abandoned mid round trip: no partial session exists
// because the store is only written after a successful exchange.
func (cs *CallbackServer) Close() error {
	var err error
	cs.closeOnce.Do(func() {
		close(cs.done)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = cs.srv.Shutdown(ctx)
	})
	return err
}
