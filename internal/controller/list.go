// Package controller owns per-resource fetch state: the list state machine
// every page renders from, and the blog draft editor. Controllers are safe
// for concurrent use; the TUI mutates them from command goroutines and
// renders from snapshots.
package controller

import (
	"context"
	"sync"
)

// State is the fetch-state of a list.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Params are the request parameters of one fetch.
type Params struct {
	Page    int
	PerPage int
	Query   string
}

// Page is one resolved page of items plus pagination metadata. Unpaginated
// resources leave the metadata zero.
type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	TotalPages int
	Total      int64
}

// Fetcher resolves one page for the given parameters.
type Fetcher[T any] func(ctx context.Context, p Params) (Page[T], error)

// Snapshot is a consistent copy of a list's state for rendering.
type Snapshot[T any] struct {
	State      State
	Items      []T
	Params     Params
	TotalPages int
	Total      int64
	Err        string
}

// List is the re-entrant Idle -> Loading -> {Loaded, Failed} state machine.
// Every issued refresh is tagged with a generation; a completion that is
// not the most recently issued one is discarded, so the displayed items
// always reflect the latest requested state even when responses arrive out
// of order.
type List[T any] struct {
	mu    sync.Mutex
	fetch Fetcher[T]

	state      State
	items      []T
	params     Params
	totalPages int
	total      int64
	lastErr    string

	issued uint64
}

// NewList creates a list controller with the given fetcher and initial
// request parameters.
func NewList[T any](fetch Fetcher[T], defaults Params) *List[T] {
	return &List[T]{fetch: fetch, params: defaults}
}

// Begin enters Loading for a fetch with parameters p and returns the
// generation tag the eventual completion must present.
func (l *List[T]) Begin(p Params) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = Loading
	l.params = p
	l.issued++
	return l.issued
}

// Complete resolves the fetch tagged gen. Stale generations are discarded
// and the method reports false. On success items and pagination metadata
// are replaced atomically; on failure prior items stay visible and only
// the error is recorded.
func (l *List[T]) Complete(gen uint64, page Page[T], err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.issued {
		return false
	}

	if err != nil {
		l.state = Failed
		l.lastErr = err.Error()
		return true
	}

	l.state = Loaded
	l.lastErr = ""
	l.items = page.Items
	if page.Page > 0 {
		l.params.Page = page.Page
	}
	if page.PerPage > 0 {
		l.params.PerPage = page.PerPage
	}
	l.totalPages = page.TotalPages
	l.total = page.Total
	return true
}

// Refresh runs one fetch synchronously: Begin, fetch, Complete. Call it
// from a background goroutine. The returned error is the fetch error when
// its result was applied, nil when it succeeded or was discarded as stale.
func (l *List[T]) Refresh(ctx context.Context, p Params) error {
	gen := l.Begin(p)
	page, err := l.fetch(ctx, p)
	if applied := l.Complete(gen, page, err); !applied {
		return nil
	}
	return err
}

// RefreshCurrent re-fetches at the current page and query.
func (l *List[T]) RefreshCurrent(ctx context.Context) error {
	l.mu.Lock()
	p := l.params
	l.mu.Unlock()
	return l.Refresh(ctx, p)
}

// Mutate runs one mutating request. Success triggers an implicit refresh at
// the current parameters; failure leaves list state untouched (the gateway
// already surfaced the error).
func (l *List[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		return err
	}
	return l.RefreshCurrent(ctx)
}

// Params returns the current request parameters.
func (l *List[T]) Params() Params {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params
}

// Snapshot returns a copy of the current state for rendering.
func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]T, len(l.items))
	copy(items, l.items)

	return Snapshot[T]{
		State:      l.state,
		Items:      items,
		Params:     l.params,
		TotalPages: l.totalPages,
		Total:      l.total,
		Err:        l.lastErr,
	}
}
