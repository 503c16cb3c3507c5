package tui

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/ecoblock/ecoblock-admin/internal/controller"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// BlocksState drives the tangle block explorer: the full chain is fetched
// once and narrowed client-side with fuzzy matching on block IDs.
type BlocksState struct {
	list *controller.List[types.Block]

	search       textinput.Model
	searchActive bool
	cursor       int

	inspect viewport.Model
}

type blockSource []types.Block

func (b blockSource) String(i int) string { return b[i].ID }
func (b blockSource) Len() int            { return len(b) }

func NewBlocksState(fetch controller.Fetcher[types.Block]) *BlocksState {
	search := textinput.New()
	search.Placeholder = "filter by block id"
	search.CharLimit = 128
	search.Width = 40

	return &BlocksState{
		list:    controller.NewList(fetch, controller.Params{}),
		search:  search,
		inspect: viewport.New(80, 20),
	}
}

func (s *BlocksState) List() *controller.List[types.Block] {
	return s.list
}

// Visible returns the blocks matching the current filter, best match first.
// An empty filter returns the full snapshot.
func (s *BlocksState) Visible() []types.Block {
	snap := s.list.Snapshot()
	query := strings.TrimSpace(s.search.Value())
	if query == "" {
		return snap.Items
	}

	matches := fuzzy.FindFrom(query, blockSource(snap.Items))
	out := make([]types.Block, 0, len(matches))
	for _, match := range matches {
		out = append(out, snap.Items[match.Index])
	}
	return out
}

// Current returns the block under the cursor, or nil when the view is empty.
func (s *BlocksState) Current() *types.Block {
	visible := s.Visible()
	if len(visible) == 0 || s.cursor >= len(visible) {
		return nil
	}
	return &visible[s.cursor]
}

// Navigate moves the cursor by delta, clamped to the visible range.
func (s *BlocksState) Navigate(delta int) {
	s.cursor += delta
	s.Clamp()
}

// Clamp keeps the cursor inside the visible range after the list changes.
func (s *BlocksState) Clamp() {
	max := len(s.Visible()) - 1
	if s.cursor > max {
		s.cursor = max
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *BlocksState) Cursor() int {
	return s.cursor
}

// SearchActive reports whether keystrokes go to the filter input.
func (s *BlocksState) SearchActive() bool {
	return s.searchActive
}

func (s *BlocksState) StartSearch() {
	s.searchActive = true
	s.search.Focus()
}

func (s *BlocksState) StopSearch() {
	s.searchActive = false
	s.search.Blur()
}

// UpdateSearch forwards a message to the filter input.
func (s *BlocksState) UpdateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return cmd
}

// UpdateInspect forwards a message to the detail viewport for scrolling.
func (s *BlocksState) UpdateInspect(msg tea.Msg) {
	s.inspect, _ = s.inspect.Update(msg)
}

// SearchView renders the filter input.
func (s *BlocksState) SearchView() string {
	return s.search.View()
}

// SearchQuery returns the current filter text.
func (s *BlocksState) SearchQuery() string {
	return strings.TrimSpace(s.search.Value())
}

// InspectView renders the detail viewport.
func (s *BlocksState) InspectView() string {
	return s.inspect.View()
}

// SetInspectSize resizes the detail viewport.
func (s *BlocksState) SetInspectSize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	s.inspect.Width = width
	s.inspect.Height = height
}

// ClearSearch drops the filter and shows the full chain again.
func (s *BlocksState) ClearSearch() {
	s.StopSearch()
	s.search.SetValue("")
	s.cursor = 0
}

// OpenInspect fills the detail viewport with the current block, its payload
// pretty-printed and syntax highlighted. Returns false when nothing is
// selected.
func (s *BlocksState) OpenInspect() bool {
	block := s.Current()
	if block == nil {
		return false
	}
	s.inspect.SetContent(renderBlockDetail(*block))
	s.inspect.GotoTop()
	return true
}

// renderBlockDetail formats a block for the inspect viewport.
func renderBlockDetail(b types.Block) string {
	var sb strings.Builder
	sb.WriteString("ID:         " + b.ID + "\n")
	if b.CreatedAt != "" {
		sb.WriteString("Created:    " + b.CreatedAt + "\n")
	}
	if len(b.Parents) > 0 {
		sb.WriteString("Parents:    " + strings.Join(b.Parents, ", ") + "\n")
	}
	if b.PublicKey != "" {
		sb.WriteString("Public key: " + b.PublicKey + "\n")
	}
	if b.Signature != "" {
		sb.WriteString("Signature:  " + b.Signature + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(highlightJSON(b.Data))
	return sb.String()
}

// highlightJSON pretty-prints raw JSON with terminal colors. Falls back to
// the plain indented form when highlighting fails, and to the raw bytes when
// the payload is not valid JSON.
func highlightJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "(no data)"
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return string(raw)
	}

	var colored bytes.Buffer
	if err := quick.Highlight(&colored, pretty.String(), "json", "terminal256", "monokai"); err != nil {
		return pretty.String()
	}
	return colored.String()
}
