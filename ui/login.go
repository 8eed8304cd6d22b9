package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	loginFocusUsername = iota
	loginFocusPassword
	loginFocusLogin
	loginFocusRegister
	loginFocusCount
)

type loginView struct {
	username textinput.Model
	password textinput.Model
	focus    int
}

func newLoginView() loginView {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 128
	username.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	v := loginView{username: username, password: password}
	v.focusAt(loginFocusUsername)
	return v
}

func (v *loginView) focusAt(i int) tea.Cmd {
	v.focus = (i + loginFocusCount) % loginFocusCount
	v.username.Blur()
	v.password.Blur()

	switch v.focus {
	case loginFocusUsername:
		return v.username.Focus()
	case loginFocusPassword:
		return v.password.Focus()
	}
	return nil
}

func (v *loginView) credentials() (string, string) {
	return v.username.Value(), v.password.Value()
}

func (v *loginView) clear() {
	v.username.SetValue("")
	v.password.SetValue("")
}

// updateInput forwards a message to whichever text field holds focus.
func (v *loginView) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case loginFocusUsername:
		v.username, cmd = v.username.Update(msg)
	case loginFocusPassword:
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

func (v *loginView) view(title string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title + ": Login"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Username") + v.username.View() + "\n")
	b.WriteString(labelStyle.Render("Password") + v.password.View() + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		button("Login", v.focus == loginFocusLogin),
		button("Register", v.focus == loginFocusRegister),
	))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field • enter: login • ctrl+r: register • esc: quit"))
	return b.String()
}
