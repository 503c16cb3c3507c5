package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginState holds the credential form shown before a session exists.
type LoginState struct {
	inputs []textinput.Model
	focus  int
}

func NewLoginState() *LoginState {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 128
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginState{inputs: []textinput.Model{username, password}}
}

// Values returns the trimmed username and the password as typed.
func (s *LoginState) Values() (string, string) {
	return strings.TrimSpace(s.inputs[0].Value()), s.inputs[1].Value()
}

// Filled reports whether both fields have content.
func (s *LoginState) Filled() bool {
	u, p := s.Values()
	return u != "" && p != ""
}

// CycleFocus moves focus to the next field, wrapping around.
func (s *LoginState) CycleFocus(delta int) {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

// Focus returns the index of the focused field (0 username, 1 password).
func (s *LoginState) Focus() int {
	return s.focus
}

// Reset blanks both fields and refocuses the username input.
func (s *LoginState) Reset() {
	for i := range s.inputs {
		s.inputs[i].SetValue("")
		s.inputs[i].Blur()
	}
	s.focus = 0
	s.inputs[0].Focus()
}

// Update forwards a message to the focused input.
func (s *LoginState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *LoginState) View(i int) string {
	return s.inputs[i].View()
}
