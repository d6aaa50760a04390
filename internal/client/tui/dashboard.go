package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+l":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		m.notice = ""
		return m, m.logoutCmd()
	case "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewDashboard() string {
	name := m.profile.Name
	if name == "" {
		name = m.profile.Email
	}
	body := fmt.Sprintf("Signed in as %s", name)
	if m.profile.Email != "" && m.profile.Name != "" {
		body += labelStyle.Render(fmt.Sprintf(" (%s)", m.profile.Email))
	}
	if m.profile.Description != "" {
		body += "\n" + labelStyle.Render(m.profile.Description)
	}
	body += helpStyle.Render("\nctrl+l: sign out • q: quit")
	return body
}
