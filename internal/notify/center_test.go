package notify

import (
	"testing"
	"time"

	"github.com/ecoblock/ecoblock-admin/internal/i18n"
)

func newCenter() *Center {
	return NewCenter(i18n.New("en"))
}

func TestCenter_NotifyOrdersNewestFirst(t *testing.T) {
	c := newCenter()

	c.Notify("first", KindInfo, time.Minute)
	c.Notify("second", KindSuccess, time.Minute)

	toasts := c.Toasts()
	if len(toasts) != 2 {
		t.Fatalf("Expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Message != "second" || toasts[1].Message != "first" {
		t.Errorf("Expected newest first, got %q then %q", toasts[0].Message, toasts[1].Message)
	}
	if toasts[0].Kind != KindSuccess {
		t.Errorf("Expected KindSuccess, got %v", toasts[0].Kind)
	}
	if toasts[0].ID == toasts[1].ID {
		t.Error("Toast IDs must be unique")
	}
}

func TestCenter_ToastExpires(t *testing.T) {
	c := newCenter()

	c.Notify("short lived", KindInfo, 20*time.Millisecond)
	if len(c.Toasts()) != 1 {
		t.Fatal("Expected toast before expiry")
	}

	deadline := time.Now().Add(time.Second)
	for len(c.Toasts()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Toast did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCenter_CancelBeforeExpiryIsIdempotent(t *testing.T) {
	c := newCenter()

	cancel := c.Notify("dismiss me", KindInfo, time.Minute)
	cancel()
	if len(c.Toasts()) != 0 {
		t.Error("Expected toast removed by cancel")
	}

	// Second cancel and the later scheduled removal are no-ops
	cancel()
	if len(c.Toasts()) != 0 {
		t.Error("Double cancel must be a no-op")
	}
}

func TestCenter_RemoveUnknownIDIsNoop(t *testing.T) {
	c := newCenter()
	c.Notify("keep", KindInfo, time.Minute)

	c.Remove("no-such-id")
	if len(c.Toasts()) != 1 {
		t.Error("Removing an unknown id must not touch the queue")
	}
}

func TestCenter_NotifyAPIError(t *testing.T) {
	c := newCenter()

	// Known code is localized
	c.NotifyAPIError("duplicate_username", "")
	toasts := c.Toasts()
	if len(toasts) != 1 || toasts[0].Message != "Username already taken" {
		t.Errorf("Expected localized message, got %+v", toasts)
	}
	if toasts[0].Kind != KindError {
		t.Errorf("Expected KindError, got %v", toasts[0].Kind)
	}

	// Unknown code passes through
	c.NotifyAPIError("weird_code", "ignored raw")
	if got := c.Toasts()[0].Message; got != "weird_code" {
		t.Errorf("Expected code passthrough, got %q", got)
	}

	// No code: raw body verbatim
	c.NotifyAPIError("", "502 Bad Gateway from nginx")
	if got := c.Toasts()[0].Message; got != "502 Bad Gateway from nginx" {
		t.Errorf("Expected raw body, got %q", got)
	}

	// Nothing at all: generic server error
	c.NotifyAPIError("", "")
	if got := c.Toasts()[0].Message; got != "Server error" {
		t.Errorf("Expected generic server error, got %q", got)
	}
}

func TestCenter_BusyCountsOverlappingRequests(t *testing.T) {
	c := newCenter()

	if c.Busy() {
		t.Error("Fresh center must not be busy")
	}

	doneA := c.Track()
	doneB := c.Track()
	if !c.Busy() || c.InFlight() != 2 {
		t.Errorf("Expected 2 in flight, got %d", c.InFlight())
	}

	// A finishing while B is pending keeps the indicator up
	doneA()
	if !c.Busy() {
		t.Error("Indicator must stay up while another request is pending")
	}

	doneB()
	if c.Busy() {
		t.Error("Indicator must drop when the last request completes")
	}
}

func TestCenter_TrackDoneIsIdempotent(t *testing.T) {
	c := newCenter()

	done := c.Track()
	done()
	done()
	if c.InFlight() != 0 {
		t.Errorf("Double done must not go negative, got %d", c.InFlight())
	}
}

func TestCenter_OnChangeFires(t *testing.T) {
	c := newCenter()

	changes := make(chan struct{}, 16)
	c.SetOnChange(func() { changes <- struct{}{} })

	cancel := c.Notify("hello", KindInfo, time.Minute)
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("Expected OnChange after Notify")
	}

	cancel()
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("Expected OnChange after removal")
	}
}
