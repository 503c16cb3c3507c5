package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecoblock/ecoblock-admin/internal/controller"
	"github.com/ecoblock/ecoblock-admin/internal/notify"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

const blogsPerPage = 20

// Editor form field indexes.
const (
	blogFieldTitle = iota
	blogFieldSlug
	blogFieldBody
	blogFieldCount
)

// BlogsState drives the blog management page: a server-paginated list plus
// an editor modal backed by a draft that survives failed saves.
type BlogsState struct {
	list   *controller.List[types.Blog]
	editor *controller.BlogEditor
	cursor int

	search       textinput.Model
	searchActive bool

	// Editor form
	title textinput.Model
	slug  textinput.Model
	body  textarea.Model
	focus int

	// Delete confirmation target
	pendingDelete *types.Blog

	// Upload modal
	uploadPath    textinput.Model
	uploading     bool
	uploadBar     progress.Model
	uploadPercent float64
}

func NewBlogsState(fetch controller.Fetcher[types.Blog], center *notify.Center) *BlogsState {
	search := textinput.New()
	search.Placeholder = "search title or body"
	search.CharLimit = 128
	search.Width = 40

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 255
	title.Width = 60

	slug := textinput.New()
	slug.Placeholder = "slug"
	slug.CharLimit = 255
	slug.Width = 60

	body := textarea.New()
	body.Placeholder = "body (markdown)"
	body.SetWidth(60)
	body.SetHeight(12)
	body.CharLimit = 0

	uploadPath := textinput.New()
	uploadPath.Placeholder = "path to local file"
	uploadPath.CharLimit = 512
	uploadPath.Width = 60

	return &BlogsState{
		list:       controller.NewList(fetch, controller.Params{Page: 1, PerPage: blogsPerPage}),
		editor:     controller.NewBlogEditor(center),
		search:     search,
		title:      title,
		slug:       slug,
		body:       body,
		uploadPath: uploadPath,
		uploadBar:  progress.New(progress.WithDefaultGradient()),
	}
}

func (s *BlogsState) List() *controller.List[types.Blog] {
	return s.list
}

func (s *BlogsState) Editor() *controller.BlogEditor {
	return s.editor
}

// Current returns the blog under the cursor, or nil when the page is empty.
func (s *BlogsState) Current() *types.Blog {
	snap := s.list.Snapshot()
	if len(snap.Items) == 0 || s.cursor >= len(snap.Items) {
		return nil
	}
	return &snap.Items[s.cursor]
}

func (s *BlogsState) Navigate(delta int) {
	s.cursor += delta
	s.Clamp()
}

func (s *BlogsState) Clamp() {
	max := len(s.list.Snapshot().Items) - 1
	if s.cursor > max {
		s.cursor = max
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *BlogsState) Cursor() int {
	return s.cursor
}

// PageParams returns the params for a relative page move, clamped to the
// known page range. ok is false when already at the edge.
func (s *BlogsState) PageParams(delta int) (controller.Params, bool) {
	snap := s.list.Snapshot()
	p := s.list.Params()
	next := p.Page + delta
	if next < 1 {
		return p, false
	}
	if snap.TotalPages > 0 && next > snap.TotalPages {
		return p, false
	}
	p.Page = next
	return p, true
}

// SearchParams returns params for a fresh search: the query from the input,
// back on page one.
func (s *BlogsState) SearchParams() controller.Params {
	p := s.list.Params()
	p.Page = 1
	p.Query = strings.TrimSpace(s.search.Value())
	return p
}

func (s *BlogsState) SearchActive() bool {
	return s.searchActive
}

func (s *BlogsState) StartSearch() {
	s.searchActive = true
	s.search.SetValue(s.list.Params().Query)
	s.search.Focus()
}

func (s *BlogsState) StopSearch() {
	s.searchActive = false
	s.search.Blur()
}

// UpdateSearch forwards a message to the search input.
func (s *BlogsState) UpdateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return cmd
}

// SearchView renders the search input.
func (s *BlogsState) SearchView() string {
	return s.search.View()
}

func (s *BlogsState) TitleView() string {
	return s.title.View()
}

func (s *BlogsState) SlugView() string {
	return s.slug.View()
}

func (s *BlogsState) BodyView() string {
	return s.body.View()
}

// UpdateUploadPath forwards a message to the upload path input.
func (s *BlogsState) UpdateUploadPath(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.uploadPath, cmd = s.uploadPath.Update(msg)
	return cmd
}

// UploadPathView renders the upload path input.
func (s *BlogsState) UploadPathView() string {
	return s.uploadPath.View()
}

// UploadBarView renders the transfer progress bar at the given percent.
func (s *BlogsState) UploadBarView() string {
	return s.uploadBar.ViewAs(s.uploadPercent / 100)
}

// OpenEditor loads the form from an existing post, or blank for a new one.
func (s *BlogsState) OpenEditor(b *types.Blog) {
	s.editor.Open(b)
	draft, _ := s.editor.Draft()
	s.title.SetValue(draft.Title)
	s.slug.SetValue(draft.Slug)
	s.body.SetValue(draft.Body)
	s.focus = blogFieldTitle
	s.focusField()
}

// SyncDraft pushes the form values into the editor draft. Call before save
// and before anything else reads the draft.
func (s *BlogsState) SyncDraft() {
	s.editor.SetFields(s.title.Value(), s.slug.Value(), s.body.Value())
}

// InsertMedia appends an uploaded URL to the draft and mirrors it back into
// the body widget.
func (s *BlogsState) InsertMedia(url string) {
	s.SyncDraft()
	s.editor.InsertMedia(url)
	if draft, ok := s.editor.Draft(); ok {
		s.body.SetValue(draft.Body)
	}
}

// CloseEditor discards the draft and blanks the form.
func (s *BlogsState) CloseEditor() {
	s.editor.Discard()
	s.ResetForm()
}

// ResetForm blanks the form widgets without touching the draft.
func (s *BlogsState) ResetForm() {
	s.title.SetValue("")
	s.slug.SetValue("")
	s.body.SetValue("")
	s.focus = blogFieldTitle
	s.focusField()
}

// CycleField moves editor focus between title, slug and body.
func (s *BlogsState) CycleField(delta int) {
	s.focus = (s.focus + delta + blogFieldCount) % blogFieldCount
	s.focusField()
}

func (s *BlogsState) focusField() {
	s.title.Blur()
	s.slug.Blur()
	s.body.Blur()
	switch s.focus {
	case blogFieldSlug:
		s.slug.Focus()
	case blogFieldBody:
		s.body.Focus()
	default:
		s.title.Focus()
	}
}

func (s *BlogsState) FocusedField() int {
	return s.focus
}

// UpdateEditor forwards a message to the focused editor widget.
func (s *BlogsState) UpdateEditor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case blogFieldSlug:
		s.slug, cmd = s.slug.Update(msg)
	case blogFieldBody:
		s.body, cmd = s.body.Update(msg)
	default:
		s.title, cmd = s.title.Update(msg)
	}
	return cmd
}

// SetPendingDelete arms the delete confirmation for the given post.
func (s *BlogsState) SetPendingDelete(b *types.Blog) {
	s.pendingDelete = b
}

func (s *BlogsState) PendingDelete() *types.Blog {
	return s.pendingDelete
}

// Upload modal

func (s *BlogsState) StartUploadPrompt() {
	s.uploadPath.SetValue("")
	s.uploadPath.Focus()
}

func (s *BlogsState) UploadPathValue() string {
	return strings.TrimSpace(s.uploadPath.Value())
}

func (s *BlogsState) BeginUpload() {
	s.uploading = true
	s.uploadPercent = 0
	s.uploadPath.Blur()
}

func (s *BlogsState) SetUploadProgress(percent float64) {
	s.uploadPercent = percent
}

func (s *BlogsState) FinishUpload() {
	s.uploading = false
	s.uploadPercent = 0
}

func (s *BlogsState) Uploading() bool {
	return s.uploading
}

func (s *BlogsState) UploadPercent() float64 {
	return s.uploadPercent
}
