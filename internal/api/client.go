package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Auth-failure codes that invalidate the session centrally.
const (
	CodeMissingToken = "missing_token"
	CodeInvalidToken = "invalid_token"
)

// Error is a decoded non-success response from the backend.
type Error struct {
	Status  int
	Code    string // backend error code, empty when the body was not JSON
	Message string // backend error message, empty when the body was not JSON
	Raw     string // raw body text when decoding failed
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Code)
	}
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// TokenStore is the session surface the client needs.
type TokenStore interface {
	Get() (string, bool)
	Clear()
}

// Notifier is the notification surface the client reports to.
type Notifier interface {
	NotifyAPIError(code, raw string)
	Track() (done func())
}

// Recorder receives one entry per completed exchange for the audit log.
// Implementations must tolerate concurrent calls.
type Recorder interface {
	Record(method, path string, status int, duration time.Duration, errMsg string)
}

// Client wraps outbound HTTP calls with auth header injection, uniform
// error decoding and busy tracking. Failures are routed to the Notifier
// exactly once; callers only need to check the returned error.
type Client struct {
	base     string
	http     *http.Client
	store    TokenStore
	notifier Notifier
	recorder Recorder

	onAuthFailure func()
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Store    TokenStore
	Notifier Notifier
	Recorder Recorder // optional
}

// NewClient creates an API client. BaseURL defaults to the local backend.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "http://localhost:3000"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base:     base,
		http:     &http.Client{Timeout: timeout},
		store:    opts.Store,
		notifier: opts.Notifier,
		recorder: opts.Recorder,
	}
}

// SetOnAuthFailure registers the hook fired when the backend rejects the
// session token. The client has already cleared the store by then.
func (c *Client) SetOnAuthFailure(fn func()) {
	c.onAuthFailure = fn
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.base
}

// Request issues one JSON API call. body, when non-nil, is marshalled as
// JSON. The response body is returned raw on success; on failure the error
// has already been surfaced through the Notifier.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, method, path)
}

// do runs a prepared request through the shared header, decode and
// notification pipeline. Upload shares this path, so the busy token is
// held here: one Track per exchange, released when the response settles.
func (c *Client) do(req *http.Request, method, path string) (json.RawMessage, error) {
	done := c.notifier.Track()
	defer done()

	req.Header.Set("Accept", "application/json")
	if token, ok := c.store.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.record(method, path, 0, duration, err.Error())
		c.notifier.NotifyAPIError("", "")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := readBody(resp)
	if err != nil {
		c.record(method, path, resp.StatusCode, duration, err.Error())
		c.notifier.NotifyAPIError("", "")
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeFailure(resp.StatusCode, raw)
		c.record(method, path, resp.StatusCode, duration, apiErr.Error())

		if apiErr.Code == CodeMissingToken || apiErr.Code == CodeInvalidToken {
			c.store.Clear()
			if c.onAuthFailure != nil {
				c.onAuthFailure()
			}
		}

		fallback := apiErr.Raw
		if fallback == "" {
			fallback = apiErr.Message
		}
		c.notifier.NotifyAPIError(apiErr.Code, fallback)
		return nil, apiErr
	}

	c.record(method, path, resp.StatusCode, duration, "")

	if len(raw) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(raw), nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) record(method, path string, status int, duration time.Duration, errMsg string) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(method, path, status, duration, errMsg)
}

func readBody(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeFailure turns a non-success body into an Error. JSON bodies carry
// {error, code}; anything else is kept as raw text.
func decodeFailure(status int, raw []byte) *Error {
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && (body.Error != "" || body.Code != "") {
		return &Error{Status: status, Code: body.Code, Message: body.Error}
	}
	return &Error{Status: status, Raw: strings.TrimSpace(string(raw))}
}
