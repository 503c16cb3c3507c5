// Package tui implements the interactive backoffice console: a login
// screen followed by a four-page shell (tangle blocks, blog posts, user
// accounts, local API history).
//
// The Model follows the Elm-style update loop. Network work runs in
// command goroutines and reports back through typed messages; list
// controllers discard out-of-order completions so the shell never renders
// a page older than the one last requested.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecoblock/ecoblock-admin/internal/api"
	"github.com/ecoblock/ecoblock-admin/internal/config"
	"github.com/ecoblock/ecoblock-admin/internal/controller"
	"github.com/ecoblock/ecoblock-admin/internal/history"
	"github.com/ecoblock/ecoblock-admin/internal/i18n"
	"github.com/ecoblock/ecoblock-admin/internal/notify"
	"github.com/ecoblock/ecoblock-admin/internal/session"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// Deps carries the collaborators the shell renders and acts through.
type Deps struct {
	Settings config.Settings
	Store    *session.Store
	Center   *notify.Center
	Client   *api.Client
	History  *history.Manager // may be nil when the audit db failed to open
	Tr       *i18n.Translator
	Landing  Page // post-login page (--page flag)
}

// New builds the TUI model. The session store decides the starting route:
// an existing token skips the login screen.
func New(d Deps) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(colorCyan)

	m := &Model{
		cfg:        d.Settings,
		store:      d.Store,
		center:     d.Center,
		client:     d.Client,
		historyMgr: d.History,
		tr:         d.Tr,
		route:      RouteLogin,
		page:       PageBlocks,
		mode:       ModeNormal,
		landing:    d.Landing,
		spin:       spin,
		login:      NewLoginState(),
		history:    NewHistoryState(),
		ctx:        ctx,
		cancel:     cancel,
		uploadCh:   make(chan tea.Msg, UploadEventBuffer),
	}

	m.blocks = NewBlocksState(func(ctx context.Context, _ controller.Params) (controller.Page[types.Block], error) {
		items, err := d.Client.ListBlocks(ctx)
		return controller.Page[types.Block]{Items: items}, err
	})
	m.blogs = NewBlogsState(func(ctx context.Context, p controller.Params) (controller.Page[types.Blog], error) {
		page, err := d.Client.ListBlogs(ctx, p.Page, p.PerPage, p.Query)
		if err != nil {
			return controller.Page[types.Blog]{}, err
		}
		return controller.Page[types.Blog]{
			Items:      page.Items,
			Page:       page.Page,
			PerPage:    page.PerPage,
			TotalPages: page.TotalPages,
			Total:      page.Total,
		}, nil
	}, d.Center)
	m.users = NewUsersState(func(ctx context.Context, _ controller.Params) (controller.Page[types.User], error) {
		items, err := d.Client.ListUsers(ctx)
		return controller.Page[types.User]{Items: items}, err
	})

	if _, ok := d.Store.Get(); ok {
		m.route = RouteShell
		m.page = d.Landing
		m.landed = true
	}

	return m
}

// Run starts the TUI event loop. Toast expiry and auth failures happen on
// background goroutines, so both are bridged into the program as messages
// once it exists.
func Run(d Deps) error {
	m := New(d)
	p := tea.NewProgram(m, tea.WithAltScreen())

	d.Center.SetOnChange(func() {
		p.Send(toastChangedMsg{})
	})
	d.Client.SetOnAuthFailure(func() {
		p.Send(authFailureMsg{})
	})

	if m.route == RouteShell {
		// Session restored from disk; load the landing page immediately
		go func() {
			p.Send(m.refreshPage(m.page)())
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	m.Cleanup()
	return nil
}
