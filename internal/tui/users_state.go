package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecoblock/ecoblock-admin/internal/controller"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// Create form field indexes.
const (
	userFieldUsername = iota
	userFieldEmail
	userFieldPassword
	userFieldCount
)

// UsersState drives the account management page: the user roster plus a
// create form that doubles for regular and admin accounts.
type UsersState struct {
	list   *controller.List[types.User]
	cursor int

	inputs []textinput.Model
	focus  int

	pendingPromote *types.User
}

func NewUsersState(fetch controller.Fetcher[types.User]) *UsersState {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 128
	username.Width = 40

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 255
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &UsersState{
		list:   controller.NewList(fetch, controller.Params{}),
		inputs: []textinput.Model{username, email, password},
	}
}

func (s *UsersState) List() *controller.List[types.User] {
	return s.list
}

// Current returns the user under the cursor, or nil when the list is empty.
func (s *UsersState) Current() *types.User {
	snap := s.list.Snapshot()
	if len(snap.Items) == 0 || s.cursor >= len(snap.Items) {
		return nil
	}
	return &snap.Items[s.cursor]
}

func (s *UsersState) Navigate(delta int) {
	s.cursor += delta
	s.Clamp()
}

func (s *UsersState) Clamp() {
	max := len(s.list.Snapshot().Items) - 1
	if s.cursor > max {
		s.cursor = max
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *UsersState) Cursor() int {
	return s.cursor
}

// OpenForm blanks the create form and focuses the username field.
func (s *UsersState) OpenForm() {
	for i := range s.inputs {
		s.inputs[i].SetValue("")
		s.inputs[i].Blur()
	}
	s.focus = userFieldUsername
	s.inputs[s.focus].Focus()
}

// Payload builds the create payload from the form. ok is false when a
// required field is empty.
func (s *UsersState) Payload() (types.UserCreate, bool) {
	p := types.UserCreate{
		Username: strings.TrimSpace(s.inputs[userFieldUsername].Value()),
		Email:    strings.TrimSpace(s.inputs[userFieldEmail].Value()),
		Password: s.inputs[userFieldPassword].Value(),
	}
	if p.Username == "" || p.Email == "" || p.Password == "" {
		return p, false
	}
	return p, true
}

func (s *UsersState) CycleField(delta int) {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + userFieldCount) % userFieldCount
	s.inputs[s.focus].Focus()
}

func (s *UsersState) FocusedField() int {
	return s.focus
}

// UpdateForm forwards a message to the focused input.
func (s *UsersState) UpdateForm(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *UsersState) FieldView(i int) string {
	return s.inputs[i].View()
}

// SetPendingPromote arms the promotion confirmation for the given user.
func (s *UsersState) SetPendingPromote(u *types.User) {
	s.pendingPromote = u
}

func (s *UsersState) PendingPromote() *types.User {
	return s.pendingPromote
}
