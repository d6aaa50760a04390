package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elearnhq/termclass/internal/client/countdown"
	"github.com/elearnhq/termclass/internal/client/services"
)

// otpState is the 6-cell verification code entry. Each cell holds one digit;
// typing fills the focused cell and moves right, backspace clears and moves
// left. The resend countdown lives here and restarts every time the screen
// is entered.
type otpState struct {
	cells [services.OTPLength]string
	focus int
	cool  *countdown.Cooldown
}

func newOtpState(cooldownSeconds int) otpState {
	return otpState{cool: countdown.New(cooldownSeconds)}
}

func (s *otpState) reset() {
	s.cells = [services.OTPLength]string{}
	s.focus = 0
}

func (s *otpState) code() string {
	return strings.Join(s.cells[:], "")
}

func (m Model) updateOtp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(viewSignIn)
	case "left":
		if m.otp.focus > 0 {
			m.otp.focus--
		}
		return m, nil
	case "right":
		if m.otp.focus < services.OTPLength-1 {
			m.otp.focus++
		}
		return m, nil
	case "backspace":
		if m.otp.cells[m.otp.focus] != "" {
			m.otp.cells[m.otp.focus] = ""
		} else if m.otp.focus > 0 {
			m.otp.focus--
			m.otp.cells[m.otp.focus] = ""
		}
		return m, nil
	case "ctrl+r":
		if m.busy || !m.otp.cool.Permitted() {
			return m, nil
		}
		m.busy = true
		m.status = ""
		m.notice = ""
		return m, m.resendOTPCmd()
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		m.notice = ""
		return m, m.verifyOTPCmd(m.otp.code())
	}

	if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
		m.otp.cells[m.otp.focus] = string(msg.Runes[0])
		if m.otp.focus < services.OTPLength-1 {
			m.otp.focus++
		}
	}
	return m, nil
}

func (m Model) viewOtp() string {
	cells := make([]string, services.OTPLength)
	for i, v := range m.otp.cells {
		if v == "" {
			v = " "
		}
		if i == m.otp.focus {
			cells[i] = otpCellFocusedStyle.Render(v)
		} else {
			cells[i] = otpCellStyle.Render(v)
		}
	}
	body := labelStyle.Render("Enter the 6-digit code we emailed you") + "\n"
	body += lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	resend := "ctrl+r: resend code"
	if r := m.otp.cool.Remaining(); r > 0 {
		resend = fmt.Sprintf("resend available in %ds", r)
	}
	body += helpStyle.Render("\nenter: verify • " + resend + " • esc: back")
	return body
}
