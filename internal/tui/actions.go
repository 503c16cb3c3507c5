package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecoblock/ecoblock-admin/internal/controller"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// submitLogin issues the credential exchange in the background.
func (m *Model) submitLogin(username, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := m.client.Login(m.ctx, username, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m *Model) refreshBlocks() tea.Cmd {
	return func() tea.Msg {
		return blocksRefreshedMsg{err: m.blocks.List().RefreshCurrent(m.ctx)}
	}
}

func (m *Model) refreshBlogs() tea.Cmd {
	return func() tea.Msg {
		return blogsRefreshedMsg{err: m.blogs.List().RefreshCurrent(m.ctx)}
	}
}

// refreshBlogsAt fetches a specific page or search, replacing the current
// params.
func (m *Model) refreshBlogsAt(p controller.Params) tea.Cmd {
	return func() tea.Msg {
		return blogsRefreshedMsg{err: m.blogs.List().Refresh(m.ctx, p)}
	}
}

func (m *Model) refreshUsers() tea.Cmd {
	return func() tea.Msg {
		return usersRefreshedMsg{err: m.users.List().RefreshCurrent(m.ctx)}
	}
}

// saveBlog validates and persists the open draft, then refreshes the list.
func (m *Model) saveBlog() tea.Cmd {
	key := "blog_created"
	if draft, ok := m.blogs.Editor().Draft(); ok && draft.ID != "" {
		key = "blog_updated"
	}
	return func() tea.Msg {
		if err := m.blogs.Editor().Save(m.ctx, m.client); err != nil {
			return blogSavedMsg{key: key, err: err}
		}
		_ = m.blogs.List().RefreshCurrent(m.ctx)
		return blogSavedMsg{key: key}
	}
}

func (m *Model) deleteBlog(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.blogs.List().Mutate(m.ctx, func(ctx context.Context) error {
			return m.client.DeleteBlog(ctx, id)
		})
		return mutationDoneMsg{key: "blog_deleted", err: err}
	}
}

func (m *Model) createUser(payload types.UserCreate, admin bool) tea.Cmd {
	key := "user_created"
	if admin {
		key = "admin_created"
	}
	return func() tea.Msg {
		err := m.users.List().Mutate(m.ctx, func(ctx context.Context) error {
			if admin {
				return m.client.CreateAdmin(ctx, payload)
			}
			return m.client.CreateUser(ctx, payload)
		})
		return mutationDoneMsg{key: key, err: err}
	}
}

func (m *Model) grantAdmin(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.users.List().Mutate(m.ctx, func(ctx context.Context) error {
			return m.client.GrantAdmin(ctx, id)
		})
		return mutationDoneMsg{key: "user_promoted", err: err}
	}
}

// copySlug puts the selected post's slug on the system clipboard.
func (m *Model) copySlug(slug string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(slug); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{key: "slug_copied"}
	}
}

// startUpload launches the file transfer in its own goroutine. Progress and
// completion arrive over m.uploadCh so the transfer keeps running even if
// the operator navigates away.
func (m *Model) startUpload(path string) tea.Cmd {
	go func() {
		urls, err := m.client.Upload(m.ctx, path, func(percent float64) {
			m.uploadCh <- uploadProgressMsg{percent: percent}
		})
		m.uploadCh <- uploadDoneMsg{urls: urls, err: err}
	}()
	return m.waitForUpload()
}

// waitForUpload relays the next upload event from the channel.
func (m *Model) waitForUpload() tea.Cmd {
	return func() tea.Msg {
		return <-m.uploadCh
	}
}

func (m *Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if m.historyMgr == nil {
			return historyLoadedMsg{}
		}
		entries, err := m.historyMgr.Load(0)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if m.historyMgr == nil {
			return historyClearedMsg{}
		}
		return historyClearedMsg{err: m.historyMgr.Clear()}
	}
}
