package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecoblock/ecoblock-admin/internal/api"
	"github.com/ecoblock/ecoblock-admin/internal/config"
	"github.com/ecoblock/ecoblock-admin/internal/history"
	"github.com/ecoblock/ecoblock-admin/internal/i18n"
	"github.com/ecoblock/ecoblock-admin/internal/notify"
	"github.com/ecoblock/ecoblock-admin/internal/session"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// Route is the top-level view selector: login screen or authenticated shell.
type Route int

const (
	RouteLogin Route = iota
	RouteShell
)

// Page is the active page inside the authenticated shell.
type Page int

const (
	PageBlocks Page = iota
	PageBlogs
	PageUsers
	PageHistory
)

func (p Page) String() string {
	switch p {
	case PageBlogs:
		return "Blogs"
	case PageUsers:
		return "Users"
	case PageHistory:
		return "History"
	default:
		return "Blocks"
	}
}

// Mode represents the current TUI mode (modal overlays within the shell)
type Mode int

const (
	ModeNormal Mode = iota
	ModeBlockInspect
	ModeBlogEditor
	ModeBlogDeleteConfirm
	ModeBlogUpload
	ModeUserCreate
	ModeUserPromoteConfirm
	ModeHistoryClearConfirm
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core collaborators
	cfg        config.Settings
	store      *session.Store
	center     *notify.Center
	client     *api.Client
	historyMgr *history.Manager
	tr         *i18n.Translator

	// Router state
	route    Route
	page     Page
	mode     Mode
	landing  Page // one-shot post-login navigation target (--page flag)
	landed   bool

	// UI state
	width  int
	height int
	spin   spinner.Model

	// Per-screen state
	login   *LoginState
	blocks  *BlocksState
	blogs   *BlogsState
	users   *UsersState
	history *HistoryState

	// Background work
	ctx      context.Context
	cancel   context.CancelFunc
	uploadCh chan tea.Msg
}

// Init starts the spinner tick loop.
func (m *Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Cleanup closes database connections and cancels in-flight work.
func (m *Model) Cleanup() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.historyMgr != nil {
		_ = m.historyMgr.Close()
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViews()

	case spinner.TickMsg:
		m.spin, cmd = m.spin.Update(msg)

	case toastChangedMsg:
		// Repaint only; the center owns the queue

	case authFailureMsg:
		// Central interceptor already cleared the session
		m.route = RouteLogin
		m.mode = ModeNormal
		m.login.Reset()

	case loginResultMsg:
		if msg.err == nil {
			m.store.Set(msg.token)
			m.center.Notify(m.tr.T("login_success"), notify.KindSuccess, 0)
			m.route = RouteShell
			m.mode = ModeNormal
			m.page = PageBlocks
			if !m.landed {
				m.page = m.landing
				m.landed = true
			}
			cmd = m.refreshPage(m.page)
		}
		// On failure the gateway already toasted; stay on the form

	case blocksRefreshedMsg, blogsRefreshedMsg, usersRefreshedMsg:
		// Controllers hold the result; snapshot is re-read at render time
		m.clampCursors()

	case mutationDoneMsg:
		if msg.err == nil && msg.key != "" {
			m.center.Notify(m.tr.T(msg.key), notify.KindSuccess, 0)
		} else if msg.err != nil && msg.key == "" {
			// Local failures (clipboard etc.) never pass through the
			// gateway, so nothing has toasted them yet
			m.center.Notify(msg.err.Error(), notify.KindError, 0)
		}
		m.clampCursors()

	case blogSavedMsg:
		if msg.err == nil {
			m.center.Notify(m.tr.T(msg.key), notify.KindSuccess, 0)
			m.mode = ModeNormal
			m.blogs.ResetForm()
		}
		// Failed validation or request keeps the editor open

	case uploadProgressMsg:
		m.blogs.SetUploadProgress(msg.percent)
		cmd = m.waitForUpload()

	case uploadDoneMsg:
		m.blogs.FinishUpload()
		if msg.err == nil {
			for _, url := range msg.urls {
				m.blogs.InsertMedia(url)
			}
			m.mode = ModeBlogEditor
		}
		// A failed upload was toasted by the gateway; stay in the editor

	case historyLoadedMsg:
		if msg.err == nil {
			m.history.SetEntries(msg.entries)
			m.history.UpdateView(m.width, m.height)
		}

	case historyClearedMsg:
		if msg.err == nil {
			m.history.SetEntries(nil)
			m.history.UpdateView(m.width, m.height)
		}
	}

	return m, cmd
}

// clampCursors keeps per-page cursors valid after list snapshots change.
func (m *Model) clampCursors() {
	m.blocks.Clamp()
	m.blogs.Clamp()
	m.users.Clamp()
}

// refreshPage issues the fetch command for the given page.
func (m *Model) refreshPage(p Page) tea.Cmd {
	switch p {
	case PageBlogs:
		return m.refreshBlogs()
	case PageUsers:
		return m.refreshUsers()
	case PageHistory:
		return m.loadHistory()
	default:
		return m.refreshBlocks()
	}
}

// Custom message types
type toastChangedMsg struct{}

type authFailureMsg struct{}

type loginResultMsg struct {
	token string
	err   error
}

type blocksRefreshedMsg struct{ err error }
type blogsRefreshedMsg struct{ err error }
type usersRefreshedMsg struct{ err error }

type mutationDoneMsg struct {
	key string // i18n key toasted on success; empty for local-only actions
	err error
}

type blogSavedMsg struct {
	key string
	err error
}

type uploadProgressMsg struct{ percent float64 }

type uploadDoneMsg struct {
	urls []string
	err  error
}

type historyLoadedMsg struct {
	entries []types.HistoryEntry
	err     error
}

type historyClearedMsg struct{ err error }
