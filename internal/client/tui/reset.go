package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// resetRedirectDelay keeps the success message on screen before the flow
// returns to sign-in.
const resetRedirectDelay = 2 * time.Second

type resetRequestState struct {
	email textinput.Model
}

func newResetRequestState() resetRequestState {
	return resetRequestState{email: newInput("you@example.com", 0)}
}

// resetConfirmState finishes the flow begun by the emailed link: uid and
// token come from the link and are submitted verbatim.
type resetConfirmState struct {
	uid    string
	token  string
	inputs []textinput.Model // 0 password, 1 confirm
	focus  int
}

func newResetConfirmState() resetConfirmState {
	password := newInput("new password", 0)
	password.EchoMode = textinput.EchoPassword
	confirm := newInput("repeat new password", 0)
	confirm.EchoMode = textinput.EchoPassword
	password.Focus()
	return resetConfirmState{inputs: []textinput.Model{password, confirm}}
}

func (m Model) updateResetRequest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(viewSignIn)
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		m.notice = ""
		return m, m.resetRequestCmd(m.resetReq.email.Value())
	}
	var cmd tea.Cmd
	m.resetReq.email, cmd = m.resetReq.email.Update(msg)
	return m, cmd
}

func (m Model) viewResetRequest() string {
	body := labelStyle.Render("Email") + "\n" + m.resetReq.email.View()
	body += helpStyle.Render("\nenter: send reset link • esc: back")
	return body
}

func (m Model) updateResetConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(viewSignIn)
	case "tab", "down":
		m.resetConfirm.focus = cycleFocus(m.resetConfirm.inputs, m.resetConfirm.focus, 1)
		return m, nil
	case "shift+tab", "up":
		m.resetConfirm.focus = cycleFocus(m.resetConfirm.inputs, m.resetConfirm.focus, -1)
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		m.notice = ""
		return m, m.resetConfirmCmd(
			m.resetConfirm.uid,
			m.resetConfirm.token,
			m.resetConfirm.inputs[0].Value(),
			m.resetConfirm.inputs[1].Value(),
		)
	}
	return m, updateAll(m.resetConfirm.inputs, msg)
}

func (m Model) viewResetConfirm() string {
	body := renderInputs([]string{"New password", "Confirm new password"}, m.resetConfirm.inputs)
	body += helpStyle.Render("\nenter: change password • esc: back")
	return body
}
