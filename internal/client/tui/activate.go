package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// activateState runs once on startup when the program was handed an
// activation link; the request fires from Init.
type activateState struct {
	uid   string
	token string
	done  bool
}

func (m Model) updateActivate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(viewSignIn)
	case "enter":
		if m.busy {
			return m, nil
		}
		if m.activate.done {
			return m.navigate(viewSignIn)
		}
		// Retry after a failure.
		m.busy = true
		m.status = ""
		return m, m.activateCmd(m.activate.uid, m.activate.token)
	}
	return m, nil
}

func (m Model) viewActivate() string {
	body := labelStyle.Render("Activating your account")
	if m.activate.done {
		body += helpStyle.Render("\nenter: sign in")
	} else {
		body += helpStyle.Render("\nenter: retry • esc: back")
	}
	return body
}
