// Package tui is the terminal front end: one Bubbletea program whose screens
// map to the account flows (sign in, sign up, code verification, password
// reset, activation, dashboard). All platform traffic goes through the
// services layer; the model itself holds only screen state.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elearnhq/termclass/internal/client/links"
	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/client/services"
	"github.com/elearnhq/termclass/internal/common"
	"github.com/elearnhq/termclass/internal/logging"
)

type view int

const (
	viewSignIn view = iota
	viewSignUp
	viewOtp
	viewResetRequest
	viewResetConfirm
	viewActivate
	viewDashboard
)

// Model is the single Bubbletea model. busy serializes the in-flight call of
// the current screen: key handlers refuse to start a second one.
type Model struct {
	svc *services.Service
	log logging.Logger

	callbackPort int

	view   view
	width  int
	height int

	busy   bool
	status string // error line, red
	notice string // informational line, muted

	authed  bool
	profile models.UserProfile

	signIn       signInState
	signUp       signUpState
	otp          otpState
	resetReq     resetRequestState
	resetConfirm resetConfirmState
	activate     activateState

	oauth *services.CallbackServer
}

// NewModel builds the model on the sign-in screen. A non-nil link routes the
// first screen to the flow the emailed link belongs to.
func NewModel(svc *services.Service, log logging.Logger, callbackPort, cooldownSeconds int, link *links.EmailLink) Model {
	m := Model{
		svc:          svc,
		log:          log,
		callbackPort: callbackPort,
		view:         viewSignIn,
		signIn:       newSignInState(),
		signUp:       newSignUpState(),
		otp:          newOtpState(cooldownSeconds),
		resetReq:     newResetRequestState(),
		resetConfirm: newResetConfirmState(),
	}
	if snap, err := svc.Store().Current(context.Background()); err == nil && snap.Authenticated {
		m.authed = true
		m.profile = snap.Profile
		m.view = viewDashboard
	}
	if link != nil {
		switch link.Kind {
		case links.KindActivation:
			m.view = viewActivate
			m.activate = activateState{uid: link.UID, token: link.Token}
			m.busy = true
		case links.KindReset:
			m.view = viewResetConfirm
			m.resetConfirm.uid = link.UID
			m.resetConfirm.token = link.Token
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.view == viewActivate {
		return m.activateCmd(m.activate.uid, m.activate.token)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.abandonOAuth()
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case navigateMsg:
		return m.navigate(msg.target)

	case cooldownTickMsg:
		if m.otp.cool.Tick(msg.gen) {
			return m, cooldownTick(msg.gen)
		}
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.log.Warn(context.Background(), "could not open browser", "err", msg.err)
			m.notice = "Could not open your browser. Visit the sign-in URL shown in the log file."
		}
		return m, nil

	case loginDoneMsg:
		return m.finishAuth(msg.err)

	case oauthDoneMsg:
		m.oauth = nil
		return m.finishAuth(msg.err)

	case oauthStartedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = services.UserMessage(msg.err)
			return m, nil
		}
		m.oauth = msg.cs
		m.notice = "Finish signing in with Google in your browser."
		return m, tea.Batch(openBrowserCmd(msg.url), waitForCallback(msg.cs))

	case oauthCallbackMsg:
		if !msg.ok || m.oauth == nil {
			// Server closed without a callback: the user backed out.
			return m, nil
		}
		m.busy = true
		m.notice = "Completing sign-in..."
		return m, m.oauthFinishCmd(m.oauth, msg.cb)

	case registerDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = services.UserMessage(msg.err)
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.navigate(viewOtp)
		m.notice = "We emailed you a 6-digit code."
		return m, cmd

	case otpDoneMsg:
		return m.finishAuth(msg.err)

	case resendDoneMsg:
		m.busy = false
		// The counter restarts whether or not the resend landed, so a
		// failing backend cannot be hammered.
		gen := m.otp.cool.Reset()
		if msg.err != nil {
			m.status = services.UserMessage(msg.err)
		} else {
			m.notice = "We sent you a new code."
		}
		return m, cooldownTick(gen)

	case logoutDoneMsg:
		m.busy = false
		m.authed = false
		m.profile = models.UserProfile{}
		var cmd tea.Cmd
		m, cmd = m.navigate(viewSignIn)
		m.notice = "You have been signed out."
		return m, cmd

	case resetRequestDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = services.UserMessage(msg.err)
			return m, nil
		}
		m.notice = "If an account exists for that address, a reset link is on its way."
		return m, nil

	case resetConfirmDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = services.UserMessage(msg.err)
			return m, nil
		}
		m.notice = "Your password has been changed. Taking you to sign in..."
		return m, navigateAfter(resetRedirectDelay, viewSignIn)

	case activateDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = services.UserMessage(msg.err)
			return m, nil
		}
		m.activate.done = true
		if msg.detail != "" {
			m.notice = msg.detail
		} else {
			m.notice = "Your account has been activated."
		}
		return m, nil
	}
	return m, nil
}

// finishAuth is the shared tail of every flow that can end in a session.
func (m Model) finishAuth(err error) (tea.Model, tea.Cmd) {
	m.busy = false
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			return m.sessionExpired()
		}
		m.status = services.UserMessage(err)
		return m, nil
	}
	snap, serr := m.svc.Store().Current(context.Background())
	if serr != nil {
		m.log.Error(context.Background(), "reading session after sign-in", "err", serr)
		m.status = common.GenericFailureMessage
		return m, nil
	}
	m.authed = snap.Authenticated
	m.profile = snap.Profile
	return m.navigate(viewDashboard)
}

// sessionExpired is the landing path for any operation refused because the
// stored session vanished underneath it.
func (m Model) sessionExpired() (tea.Model, tea.Cmd) {
	m.authed = false
	m.profile = models.UserProfile{}
	var cmd tea.Cmd
	m, cmd = m.navigate(viewSignIn)
	m.notice = "Your session has expired. Please sign in again."
	return m, cmd
}

// navigate switches screens, resetting the transient lines. Screens that
// only make sense signed out bounce to the dashboard when a session exists;
// link-routed screens (activation, reset confirmation) are reachable either
// way.
func (m Model) navigate(target view) (Model, tea.Cmd) {
	if m.authed {
		switch target {
		case viewSignIn, viewSignUp, viewOtp, viewResetRequest:
			target = viewDashboard
		}
	}
	if m.view == viewOtp && target != viewOtp {
		m.otp.cool.Cancel()
	}
	m.abandonOAuth()
	m.status = ""
	m.notice = ""
	m.busy = false
	m.view = target

	var cmd tea.Cmd
	switch target {
	case viewSignIn:
		m.signIn = newSignInState()
		cmd = m.signIn.inputs[0].Focus()
	case viewSignUp:
		m.signUp = newSignUpState()
		cmd = m.signUp.inputs[0].Focus()
	case viewOtp:
		m.otp.reset()
		cmd = cooldownTick(m.otp.cool.Start())
	case viewResetRequest:
		m.resetReq = newResetRequestState()
		cmd = m.resetReq.email.Focus()
	case viewResetConfirm:
		cmd = m.resetConfirm.inputs[0].Focus()
	}
	return m, cmd
}

// abandonOAuth closes a pending callback server, releasing the command
// blocked on it. Safe when no round trip is in flight.
func (m *Model) abandonOAuth() {
	if m.oauth != nil {
		m.oauth.Close()
		m.oauth = nil
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewSignIn:
		return m.updateSignIn(msg)
	case viewSignUp:
		return m.updateSignUp(msg)
	case viewOtp:
		return m.updateOtp(msg)
	case viewResetRequest:
		return m.updateResetRequest(msg)
	case viewResetConfirm:
		return m.updateResetConfirm(msg)
	case viewActivate:
		return m.updateActivate(msg)
	case viewDashboard:
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.view {
	case viewSignIn:
		body = m.viewSignIn()
	case viewSignUp:
		body = m.viewSignUp()
	case viewOtp:
		body = m.viewOtp()
	case viewResetRequest:
		body = m.viewResetRequest()
	case viewResetConfirm:
		body = m.viewResetConfirm()
	case viewActivate:
		body = m.viewActivate()
	case viewDashboard:
		body = m.viewDashboard()
	}

	out := titleStyle.Render("TermClass") + "\n" + body
	if m.busy {
		out += "\n" + noticeStyle.Render("Working...")
	}
	if m.status != "" {
		out += "\n" + errorStyle.Render(m.status)
	}
	if m.notice != "" {
		out += "\n" + noticeStyle.Render(m.notice)
	}
	return boxStyle.Render(out)
}

// renderInputs stacks labeled inputs vertically.
func renderInputs(labels []string, inputs []textinput.Model) string {
	rows := make([]string, 0, len(labels))
	for i, l := range labels {
		rows = append(rows, fmt.Sprintf("%s\n%s", labelStyle.Render(l), inputs[i].View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
