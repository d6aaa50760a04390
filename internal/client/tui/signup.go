package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elearnhq/termclass/internal/client/models"
)

type signUpState struct {
	inputs []textinput.Model // 0 name, 1 email, 2 password, 3 confirm
	focus  int
}

func newSignUpState() signUpState {
	name := newInput("Full name", 0)
	email := newInput("you@example.com", 0)
	password := newInput("password", 0)
	password.EchoMode = textinput.EchoPassword
	confirm := newInput("repeat password", 0)
	confirm.EchoMode = textinput.EchoPassword
	name.Focus()
	return signUpState{inputs: []textinput.Model{name, email, password, confirm}}
}

func (m Model) updateSignUp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(viewSignIn)
	case "tab", "down":
		m.signUp.focus = cycleFocus(m.signUp.inputs, m.signUp.focus, 1)
		return m, nil
	case "shift+tab", "up":
		m.signUp.focus = cycleFocus(m.signUp.inputs, m.signUp.focus, -1)
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		m.notice = ""
		return m, m.registerCmd(models.RegistrationProfile{
			Name:     m.signUp.inputs[0].Value(),
			Email:    m.signUp.inputs[1].Value(),
			Password: m.signUp.inputs[2].Value(),
		}, m.signUp.inputs[3].Value())
	}
	return m, updateAll(m.signUp.inputs, msg)
}

func (m Model) viewSignUp() string {
	body := renderInputs([]string{"Name", "Email", "Password", "Confirm password"}, m.signUp.inputs)
	body += helpStyle.Render("\nenter: create account • esc: back")
	return body
}
