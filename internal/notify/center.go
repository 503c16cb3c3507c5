// Package notify is the process-wide notification center: a queue of
// transient toasts plus a reference-counted busy indicator. Rendering is a
// pure projection of the center's state; the TUI polls it through Snapshot
// accessors and is woken by the OnChange hook when timers fire.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecoblock/ecoblock-admin/internal/i18n"
)

// Kind classifies a toast.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

// DefaultTimeout is how long a toast stays visible unless dismissed.
const DefaultTimeout = 3500 * time.Millisecond

// Toast is one transient notification. Immutable once created; only its
// presence in the queue changes.
type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Center owns the toast queue and the in-flight request counter.
type Center struct {
	mu       sync.Mutex
	toasts   []Toast // newest first
	timers   map[string]*time.Timer
	inflight int
	tr       *i18n.Translator
	onChange func()
}

// NewCenter creates a notification center using tr for error-code lookup.
func NewCenter(tr *i18n.Translator) *Center {
	return &Center{
		timers: make(map[string]*time.Timer),
		tr:     tr,
	}
}

// SetOnChange registers a hook invoked (outside the lock) whenever the
// toast queue or busy state changes. Used by the TUI to trigger repaints
// from timer goroutines.
func (c *Center) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Notify appends a toast to the front of the queue and schedules its
// removal after timeout (DefaultTimeout when timeout <= 0). The returned
// cancel removes the toast immediately; calling it after expiry is a no-op.
func (c *Center) Notify(message string, kind Kind, timeout time.Duration) (cancel func()) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	t := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.toasts = append([]Toast{t}, c.toasts...)
	c.timers[t.ID] = time.AfterFunc(timeout, func() {
		c.Remove(t.ID)
	})
	c.mu.Unlock()

	c.changed()

	return func() { c.Remove(t.ID) }
}

// NotifyAPIError surfaces a failed HTTP exchange. code is the backend error
// code when the body decoded, raw the undecodable body text; both empty
// means a transport failure. Known codes map to localized strings, unknown
// codes pass through unmodified, raw text is shown verbatim.
func (c *Center) NotifyAPIError(code, raw string) {
	var message string
	switch {
	case code != "":
		message = c.tr.T(code)
	case raw != "":
		message = raw
	default:
		message = c.tr.T("server_error")
	}
	c.Notify(message, KindError, 0)
}

// Remove deletes a toast by id. Idempotent: removing an id that already
// expired or was cancelled does nothing.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	timer, ok := c.timers[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	timer.Stop()
	delete(c.timers, id)
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.changed()
}

// Toasts returns the queue, newest first.
func (c *Center) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]Toast, len(c.toasts))
	copy(result, c.toasts)
	return result
}

// Track marks one request as in flight and returns its completion func.
// The busy indicator stays up until every outstanding done runs; done is
// safe to call more than once.
func (c *Center) Track() (done func()) {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
	c.changed()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.inflight--
			c.mu.Unlock()
			c.changed()
		})
	}
}

// Busy reports whether any tracked request is still in flight.
func (c *Center) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// InFlight returns the number of tracked requests in flight.
func (c *Center) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight
}

func (c *Center) changed() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
