package tui

import "testing"

func TestLoginStateValues(t *testing.T) {
	s := NewLoginState()
	s.inputs[0].SetValue("  admin ")
	s.inputs[1].SetValue(" p4ss ")

	username, password := s.Values()
	if username != "admin" {
		t.Errorf("Expected trimmed username, got %q", username)
	}
	if password != " p4ss " {
		t.Errorf("Expected password untouched, got %q", password)
	}
}

func TestLoginStateFilled(t *testing.T) {
	s := NewLoginState()
	if s.Filled() {
		t.Error("Expected empty form to be unfilled")
	}
	s.inputs[0].SetValue("admin")
	if s.Filled() {
		t.Error("Expected form without password to be unfilled")
	}
	s.inputs[1].SetValue("secret")
	if !s.Filled() {
		t.Error("Expected complete form to be filled")
	}
}

func TestLoginStateCycleFocus(t *testing.T) {
	s := NewLoginState()
	if s.Focus() != 0 {
		t.Errorf("Expected focus on username, got %d", s.Focus())
	}

	s.CycleFocus(1)
	if s.Focus() != 1 {
		t.Errorf("Expected focus on password, got %d", s.Focus())
	}

	s.CycleFocus(1)
	if s.Focus() != 0 {
		t.Errorf("Expected focus wrapped to username, got %d", s.Focus())
	}

	s.CycleFocus(-1)
	if s.Focus() != 1 {
		t.Errorf("Expected reverse wrap to password, got %d", s.Focus())
	}
}

func TestLoginStateReset(t *testing.T) {
	s := NewLoginState()
	s.inputs[0].SetValue("admin")
	s.inputs[1].SetValue("secret")
	s.CycleFocus(1)

	s.Reset()
	if u, p := s.Values(); u != "" || p != "" {
		t.Errorf("Expected blank form after reset, got %q/%q", u, p)
	}
	if s.Focus() != 0 {
		t.Errorf("Expected focus back on username, got %d", s.Focus())
	}
}
