package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecoblock/ecoblock-admin/internal/notify"
)

// handleKeyPress routes a key to the active route and mode.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	if m.route == RouteLogin {
		return m.handleLoginKeys(msg)
	}

	switch m.mode {
	case ModeBlockInspect:
		return m.handleBlockInspectKeys(msg)
	case ModeBlogEditor:
		return m.handleBlogEditorKeys(msg)
	case ModeBlogDeleteConfirm:
		return m.handleBlogDeleteConfirmKeys(msg)
	case ModeBlogUpload:
		return m.handleBlogUploadKeys(msg)
	case ModeUserCreate:
		return m.handleUserCreateKeys(msg)
	case ModeUserPromoteConfirm:
		return m.handleUserPromoteConfirmKeys(msg)
	case ModeHistoryClearConfirm:
		return m.handleHistoryClearConfirmKeys(msg)
	case ModeHelp:
		m.mode = ModeNormal
		return nil
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		m.login.CycleFocus(1)
		return nil
	case "shift+tab", "up":
		m.login.CycleFocus(-1)
		return nil
	case "enter":
		if m.login.Focus() == 0 {
			m.login.CycleFocus(1)
			return nil
		}
		if !m.login.Filled() {
			return nil
		}
		username, password := m.login.Values()
		return m.submitLogin(username, password)
	default:
		return m.login.Update(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	// Search inputs capture everything except their terminators
	if m.page == PageBlocks && m.blocks.SearchActive() {
		switch msg.String() {
		case "enter":
			m.blocks.StopSearch()
		case "esc":
			m.blocks.ClearSearch()
		default:
			cmd := m.blocks.UpdateSearch(msg)
			m.blocks.Clamp()
			return cmd
		}
		return nil
	}
	if m.page == PageBlogs && m.blogs.SearchActive() {
		switch msg.String() {
		case "enter":
			m.blogs.StopSearch()
			return m.refreshBlogsAt(m.blogs.SearchParams())
		case "esc":
			m.blogs.StopSearch()
		default:
			return m.blogs.UpdateSearch(msg)
		}
		return nil
	}

	switch msg.String() {
	case "q":
		m.Cleanup()
		return tea.Quit
	case "?":
		m.mode = ModeHelp
		return nil
	case "1":
		return m.switchPage(PageBlocks)
	case "2":
		return m.switchPage(PageBlogs)
	case "3":
		return m.switchPage(PageUsers)
	case "4":
		return m.switchPage(PageHistory)
	case "tab":
		return m.switchPage((m.page + 1) % 4)
	case "r":
		return m.refreshPage(m.page)
	case "L":
		m.store.Clear()
		m.center.Notify(m.tr.T("logged_out"), notify.KindInfo, 0)
		m.route = RouteLogin
		m.login.Reset()
		return nil
	}

	switch m.page {
	case PageBlocks:
		return m.handleBlocksKeys(msg)
	case PageBlogs:
		return m.handleBlogsKeys(msg)
	case PageUsers:
		return m.handleUsersKeys(msg)
	case PageHistory:
		return m.handleHistoryKeys(msg)
	}
	return nil
}

// switchPage activates a page and refreshes it if it has never loaded.
func (m *Model) switchPage(p Page) tea.Cmd {
	if m.page == p {
		return nil
	}
	m.page = p
	return m.refreshPage(p)
}

func (m *Model) handleBlocksKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.blocks.Navigate(-1)
	case "down", "j":
		m.blocks.Navigate(1)
	case "/":
		m.blocks.StartSearch()
	case "esc":
		m.blocks.ClearSearch()
	case "enter":
		if m.blocks.OpenInspect() {
			m.resizeViews()
			m.mode = ModeBlockInspect
		}
	}
	return nil
}

func (m *Model) handleBlockInspectKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.mode = ModeNormal
	default:
		m.blocks.UpdateInspect(msg)
	}
	return nil
}

func (m *Model) handleBlogsKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.blogs.Navigate(-1)
	case "down", "j":
		m.blogs.Navigate(1)
	case "left", "p":
		if params, ok := m.blogs.PageParams(-1); ok {
			return m.refreshBlogsAt(params)
		}
	case "right", "n":
		if params, ok := m.blogs.PageParams(1); ok {
			return m.refreshBlogsAt(params)
		}
	case "/":
		m.blogs.StartSearch()
	case "c":
		m.blogs.OpenEditor(nil)
		m.mode = ModeBlogEditor
	case "e", "enter":
		if b := m.blogs.Current(); b != nil {
			m.blogs.OpenEditor(b)
			m.mode = ModeBlogEditor
		}
	case "d":
		if b := m.blogs.Current(); b != nil {
			m.blogs.SetPendingDelete(b)
			m.mode = ModeBlogDeleteConfirm
		}
	case "y":
		if b := m.blogs.Current(); b != nil {
			return m.copySlug(b.Slug)
		}
	}
	return nil
}

func (m *Model) handleBlogEditorKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.blogs.CloseEditor()
		m.mode = ModeNormal
		return nil
	case "tab":
		m.blogs.CycleField(1)
		return nil
	case "shift+tab":
		m.blogs.CycleField(-1)
		return nil
	case "ctrl+s":
		m.blogs.SyncDraft()
		return m.saveBlog()
	case "ctrl+u":
		m.blogs.SyncDraft()
		m.blogs.StartUploadPrompt()
		m.mode = ModeBlogUpload
		return nil
	default:
		return m.blogs.UpdateEditor(msg)
	}
}

func (m *Model) handleBlogDeleteConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		b := m.blogs.PendingDelete()
		m.blogs.SetPendingDelete(nil)
		m.mode = ModeNormal
		if b != nil {
			return m.deleteBlog(b.ID)
		}
	case "n", "esc":
		m.blogs.SetPendingDelete(nil)
		m.mode = ModeNormal
	}
	return nil
}

func (m *Model) handleBlogUploadKeys(msg tea.KeyMsg) tea.Cmd {
	if m.blogs.Uploading() {
		// A canceled prompt does not cancel the transfer itself
		if msg.String() == "esc" {
			m.mode = ModeBlogEditor
		}
		return nil
	}
	switch msg.String() {
	case "esc":
		m.mode = ModeBlogEditor
		return nil
	case "enter":
		path := m.blogs.UploadPathValue()
		if path == "" {
			return nil
		}
		m.blogs.BeginUpload()
		return m.startUpload(path)
	default:
		return m.blogs.UpdateUploadPath(msg)
	}
}

func (m *Model) handleUsersKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.users.Navigate(-1)
	case "down", "j":
		m.users.Navigate(1)
	case "c":
		m.users.OpenForm()
		m.mode = ModeUserCreate
	case "a":
		if u := m.users.Current(); u != nil && !u.IsAdmin {
			m.users.SetPendingPromote(u)
			m.mode = ModeUserPromoteConfirm
		}
	}
	return nil
}

func (m *Model) handleUserCreateKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return nil
	case "tab", "down":
		m.users.CycleField(1)
		return nil
	case "shift+tab", "up":
		m.users.CycleField(-1)
		return nil
	case "enter":
		if payload, ok := m.users.Payload(); ok {
			m.mode = ModeNormal
			return m.createUser(payload, false)
		}
		return nil
	case "ctrl+a":
		if payload, ok := m.users.Payload(); ok {
			m.mode = ModeNormal
			return m.createUser(payload, true)
		}
		return nil
	default:
		return m.users.UpdateForm(msg)
	}
}

func (m *Model) handleUserPromoteConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		u := m.users.PendingPromote()
		m.users.SetPendingPromote(nil)
		m.mode = ModeNormal
		if u != nil {
			return m.grantAdmin(u.ID)
		}
	case "n", "esc":
		m.users.SetPendingPromote(nil)
		m.mode = ModeNormal
	}
	return nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.history.Scroll(-1)
	case "down", "j":
		m.history.Scroll(1)
	case "C":
		m.mode = ModeHistoryClearConfirm
	}
	return nil
}

func (m *Model) handleHistoryClearConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		m.mode = ModeNormal
		return m.clearHistory()
	case "n", "esc":
		m.mode = ModeNormal
	}
	return nil
}
