package controller

import (
	"context"
	"fmt"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ecoblock/ecoblock-admin/internal/notify"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// BlogDraft is an in-memory, unsaved copy of a blog post being edited.
// An empty ID means the draft creates a new post on save.
type BlogDraft struct {
	ID       string
	Title    string
	Slug     string
	Body     string
	Author   string
	IsActive bool
	ImageURL string
}

// Validate enforces the client-side rules checked before any request is
// issued: title at least 3 characters, slug and body present.
func (d BlogDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required, validation.Length(3, 0)),
		validation.Field(&d.Slug, validation.Required),
		validation.Field(&d.Body, validation.Required),
	)
}

// BlogSaver is the API surface the editor saves through.
type BlogSaver interface {
	CreateBlog(ctx context.Context, payload types.BlogCreate) error
	UpdateBlog(ctx context.Context, id string, payload types.BlogUpdate) error
}

// BlogEditor mediates the draft lifecycle: created on open, discarded on
// cancel or successful save.
type BlogEditor struct {
	mu     sync.Mutex
	draft  *BlogDraft
	center *notify.Center
}

// NewBlogEditor creates an editor reporting validation failures to center.
func NewBlogEditor(center *notify.Center) *BlogEditor {
	return &BlogEditor{center: center}
}

// Open starts editing. A nil blog opens an empty draft for a new post;
// otherwise the draft is a mutable copy of the given post.
func (e *BlogEditor) Open(b *types.Blog) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b == nil {
		e.draft = &BlogDraft{}
		return
	}
	e.draft = &BlogDraft{
		ID:       b.ID,
		Title:    b.Title,
		Slug:     b.Slug,
		Body:     b.Body,
		Author:   b.Author,
		IsActive: b.IsActive,
		ImageURL: b.ImageURL,
	}
}

// Discard drops the draft without saving.
func (e *BlogEditor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = nil
}

// Draft returns a copy of the current draft, if any.
func (e *BlogEditor) Draft() (BlogDraft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return BlogDraft{}, false
	}
	return *e.draft, true
}

// Editing reports whether a draft is open.
func (e *BlogEditor) Editing() bool {
	_, ok := e.Draft()
	return ok
}

// SetFields updates the editable fields of the open draft.
func (e *BlogEditor) SetFields(title, slug, body string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return
	}
	e.draft.Title = title
	e.draft.Slug = slug
	e.draft.Body = body
}

// InsertMedia appends an uploaded file URL to the draft body as a Markdown
// image reference.
func (e *BlogEditor) InsertMedia(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return
	}
	if e.draft.Body != "" {
		e.draft.Body += "\n"
	}
	e.draft.Body += fmt.Sprintf("![](%s)", url)
}

// Save validates the draft and issues the create or update request.
// Validation failures toast locally and no request goes out. On success
// the draft is discarded.
func (e *BlogEditor) Save(ctx context.Context, s BlogSaver) error {
	draft, ok := e.Draft()
	if !ok {
		return fmt.Errorf("no draft open")
	}

	if err := draft.Validate(); err != nil {
		e.center.Notify(err.Error(), notify.KindError, 0)
		return err
	}

	var err error
	if draft.ID == "" {
		author := draft.Author
		if author == "" {
			author = "admin"
		}
		err = s.CreateBlog(ctx, types.BlogCreate{
			Title:    draft.Title,
			Slug:     draft.Slug,
			Body:     draft.Body,
			Author:   author,
			ImageURL: draft.ImageURL,
		})
	} else {
		err = s.UpdateBlog(ctx, draft.ID, types.BlogUpdate{
			Title: draft.Title,
			Slug:  draft.Slug,
			Body:  draft.Body,
		})
	}
	if err != nil {
		// Gateway already toasted; keep the draft so the operator can retry
		return err
	}

	e.Discard()
	return nil
}
