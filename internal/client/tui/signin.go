package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elearnhq/termclass/internal/client/links"
	"github.com/elearnhq/termclass/internal/client/models"
)

type signInState struct {
	inputs []textinput.Model // 0 email, 1 password
	focus  int
}

func newSignInState() signInState {
	email := newInput("you@example.com", 0)
	password := newInput("password", 0)
	password.EchoMode = textinput.EchoPassword
	email.Focus()
	return signInState{inputs: []textinput.Model{email, password}}
}

// newInput is the shared field constructor. charLimit of zero means
// unbounded.
func newInput(placeholder string, charLimit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = charLimit
	in.Width = 32
	in.Prompt = "> "
	return in
}

// cycleFocus moves focus across a field group, wrapping at both ends.
func cycleFocus(inputs []textinput.Model, focus, delta int) int {
	inputs[focus].Blur()
	focus = (focus + delta + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}

func updateAll(inputs []textinput.Model, msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(inputs))
	for i := range inputs {
		inputs[i], cmds[i] = inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m Model) updateSignIn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.abandonOAuth()
		return m, tea.Quit
	case "tab", "down":
		m.signIn.focus = cycleFocus(m.signIn.inputs, m.signIn.focus, 1)
		return m, nil
	case "shift+tab", "up":
		m.signIn.focus = cycleFocus(m.signIn.inputs, m.signIn.focus, -1)
		return m, nil
	case "ctrl+u":
		return m.navigate(viewSignUp)
	case "ctrl+p":
		return m.navigate(viewResetRequest)
	case "ctrl+g":
		if m.busy || m.oauth != nil {
			return m, nil
		}
		m.busy = true
		m.status = ""
		return m, m.oauthStartCmd()
	case "enter":
		if m.busy {
			return m, nil
		}
		// While a browser round trip is pending, a callback URL pasted into
		// the email field finishes the flow without the loopback redirect.
		if m.oauth != nil {
			cb, err := links.ParseCallback(m.signIn.inputs[0].Value())
			if err == nil && (cb.Exchangeable() || cb.ErrParam != "") {
				m.busy = true
				m.status = ""
				m.notice = "Completing sign-in..."
				return m, m.oauthFinishCmd(m.oauth, cb)
			}
		}
		m.busy = true
		m.status = ""
		m.notice = ""
		return m, m.loginCmd(models.Credentials{
			Email:    m.signIn.inputs[0].Value(),
			Password: m.signIn.inputs[1].Value(),
		})
	}
	return m, updateAll(m.signIn.inputs, msg)
}

func (m Model) viewSignIn() string {
	body := renderInputs([]string{"Email", "Password"}, m.signIn.inputs)
	body += helpStyle.Render("\nenter: sign in • ctrl+g: sign in with Google\nctrl+u: create account • ctrl+p: forgot password • esc: quit")
	return body
}
