package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elearnhq/termclass/internal/client/links"
	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/client/services"
)

// opTimeout bounds every service call issued from the UI.
const opTimeout = 30 * time.Second

type loginDoneMsg struct{ err error }

type registerDoneMsg struct{ err error }

type otpDoneMsg struct{ err error }

type resendDoneMsg struct{ err error }

type logoutDoneMsg struct{ err error }

type resetRequestDoneMsg struct{ err error }

type resetConfirmDoneMsg struct{ err error }

type activateDoneMsg struct {
	detail string
	err    error
}

type oauthStartedMsg struct {
	url string
	cs  *services.CallbackServer
	err error
}

// oauthCallbackMsg carries the callback delivered by the loopback server.
// ok is false when the server was closed before any callback arrived.
type oauthCallbackMsg struct {
	cb links.Callback
	ok bool
}

type oauthDoneMsg struct{ err error }

type browserOpenedMsg struct{ err error }

// cooldownTickMsg is a scheduled one-second tick tagged with the countdown
// generation it was scheduled under, so ticks outlive a Reset harmlessly.
type cooldownTickMsg struct{ gen int }

type navigateMsg struct{ target view }

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (m Model) loginCmd(c models.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return loginDoneMsg{err: m.svc.Login(ctx, c)}
	}
}

func (m Model) registerCmd(p models.RegistrationProfile, confirm string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return registerDoneMsg{err: m.svc.Register(ctx, p, confirm)}
	}
}

func (m Model) verifyOTPCmd(code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return otpDoneMsg{err: m.svc.VerifyOTP(ctx, code)}
	}
}

func (m Model) resendOTPCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return resendDoneMsg{err: m.svc.ResendOTP(ctx)}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return logoutDoneMsg{err: m.svc.Logout(ctx)}
	}
}

func (m Model) resetRequestCmd(email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return resetRequestDoneMsg{err: m.svc.RequestPasswordReset(ctx, email)}
	}
}

func (m Model) resetConfirmCmd(uid, token, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return resetConfirmDoneMsg{err: m.svc.ConfirmPasswordReset(ctx, uid, token, password, confirm)}
	}
}

func (m Model) activateCmd(uid, token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		detail, err := m.svc.Activate(ctx, uid, token)
		return activateDoneMsg{detail: detail, err: err}
	}
}

// oauthStartCmd stands the loopback callback server up and asks the platform
// for the provider authorization URL bound to its redirect address.
func (m Model) oauthStartCmd() tea.Cmd {
	return func() tea.Msg {
		cs, err := services.StartCallbackServer(m.callbackPort)
		if err != nil {
			return oauthStartedMsg{err: err}
		}
		ctx, cancel := opCtx()
		defer cancel()
		url, err := m.svc.OAuthInitiate(ctx, cs.RedirectURI())
		if err != nil {
			cs.Close()
			return oauthStartedMsg{err: err}
		}
		return oauthStartedMsg{url: url, cs: cs}
	}
}

// waitForCallback blocks until the provider redirects the browser to the
// loopback server, or the server is closed because the user backed out.
func waitForCallback(cs *services.CallbackServer) tea.Cmd {
	return func() tea.Msg {
		select {
		case cb := <-cs.C:
			return oauthCallbackMsg{cb: cb, ok: true}
		case <-cs.Done():
			return oauthCallbackMsg{}
		}
	}
}

func (m Model) oauthFinishCmd(cs *services.CallbackServer, cb links.Callback) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		err := m.svc.OAuthCallback(ctx, cb, cs.RedirectURI())
		cs.Close()
		return oauthDoneMsg{err: err}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{err: openBrowser(url)}
	}
}

func cooldownTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{gen: gen}
	})
}

func navigateAfter(d time.Duration, target view) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return navigateMsg{target: target}
	})
}
