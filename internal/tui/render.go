package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecoblock/ecoblock-admin/internal/notify"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// View renders the active route and mode.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.route == RouteLogin {
		return m.renderLogin()
	}

	switch m.mode {
	case ModeBlockInspect:
		return m.renderBlockInspect()
	case ModeBlogEditor:
		return m.renderBlogEditor()
	case ModeBlogDeleteConfirm:
		b := m.blogs.PendingDelete()
		title := ""
		if b != nil {
			title = b.Title
		}
		return m.renderConfirm("Delete post", fmt.Sprintf("Delete %q? This cannot be undone.", title))
	case ModeBlogUpload:
		return m.renderUpload()
	case ModeUserCreate:
		return m.renderUserForm()
	case ModeUserPromoteConfirm:
		u := m.users.PendingPromote()
		name := ""
		if u != nil {
			name = u.Username
		}
		return m.renderConfirm("Promote user", fmt.Sprintf("Grant admin rights to %q?", name))
	case ModeHistoryClearConfirm:
		return m.renderConfirm("Clear history", "Delete all recorded API calls?")
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderShell()
	}
}

// resizeViews propagates the window size to embedded viewports.
func (m *Model) resizeViews() {
	m.blocks.SetInspectSize(m.width-ModalWidthMargin, m.height-ContentOffsetInspect)
	m.history.UpdateView(m.width, m.height)
}

func (m *Model) renderLogin() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("EcoBlock Admin") + "\n\n")
	sb.WriteString("Sign in to " + m.client.BaseURL() + "\n\n")

	labels := []string{"Username", "Password"}
	for i, label := range labels {
		marker := "  "
		if m.login.Focus() == i {
			marker = styleTitle.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%s\n%s%s\n\n", marker, label, "  ", m.login.View(i)))
	}

	sb.WriteString(styleSubtle.Render("tab: next field • enter: sign in • ctrl+c: quit"))

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(1, 2).
		Render(sb.String())

	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, form)
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderToasts())
}

func (m *Model) renderShell() string {
	sidebar := m.renderSidebar()

	var content string
	switch m.page {
	case PageBlogs:
		content = m.renderBlogsPage()
	case PageUsers:
		content = m.renderUsersPage()
	case PageHistory:
		content = m.renderHistoryPage()
	default:
		content = m.renderBlocksPage()
	}

	contentWidth := m.width - SidebarWidth - 4
	contentBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(contentWidth).
		Height(m.height - 4).
		Render(content)

	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(SidebarWidth).
		Height(m.height - 4).
		Render(sidebar)

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, contentBox)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderToasts(), m.renderStatusBar())
}

func (m *Model) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("EcoBlock Admin") + "\n\n")

	pages := []Page{PageBlocks, PageBlogs, PageUsers, PageHistory}
	for i, p := range pages {
		line := fmt.Sprintf(" %d %s", i+1, p)
		if p == m.page {
			line = styleSelected.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n")
	if _, ok := m.store.Get(); ok {
		sb.WriteString(styleSuccess.Render("● session active") + "\n")
	} else {
		sb.WriteString(styleWarning.Render("○ no session") + "\n")
	}
	return sb.String()
}

func (m *Model) renderBlocksPage() string {
	var sb strings.Builder
	snap := m.blocks.List().Snapshot()
	visible := m.blocks.Visible()

	sb.WriteString(styleTitle.Render("Tangle blocks") + " " + m.renderListState(snap.State.String(), len(visible)) + "\n")
	if m.blocks.SearchActive() || m.blocks.SearchQuery() != "" {
		sb.WriteString("filter: " + m.blocks.SearchView() + "\n")
	}
	sb.WriteString("\n")

	if len(visible) == 0 {
		sb.WriteString(styleSubtle.Render("No blocks.") + "\n")
	}
	for i, b := range visible {
		if i >= m.height-ContentOffsetStandard {
			sb.WriteString(styleSubtle.Render(fmt.Sprintf("… %d more", len(visible)-i)) + "\n")
			break
		}
		line := fmt.Sprintf(" %-40s %-20s parents:%d", truncate(b.ID, 40), truncate(b.CreatedAt, 20), len(b.Parents))
		if i == m.blocks.Cursor() {
			line = styleSelected.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + styleSubtle.Render("enter: inspect • /: filter • r: refresh"))
	return sb.String()
}

func (m *Model) renderBlogsPage() string {
	var sb strings.Builder
	snap := m.blogs.List().Snapshot()
	params := m.blogs.List().Params()

	header := fmt.Sprintf("page %d/%d (%d total)", params.Page, max(snap.TotalPages, 1), snap.Total)
	sb.WriteString(styleTitle.Render("Blog posts") + " " + styleSubtle.Render(header) + "\n")
	if m.blogs.SearchActive() {
		sb.WriteString("search: " + m.blogs.SearchView() + "\n")
	} else if params.Query != "" {
		sb.WriteString(styleSubtle.Render("search: "+params.Query) + "\n")
	}
	sb.WriteString("\n")

	if len(snap.Items) == 0 {
		sb.WriteString(styleSubtle.Render("No posts.") + "\n")
	}
	for i, b := range snap.Items {
		active := " "
		if b.IsActive {
			active = styleSuccess.Render("●")
		}
		line := fmt.Sprintf(" %s %-40s %-25s %s", active, truncate(b.Title, 40), truncate(b.Slug, 25), truncate(b.Author, 15))
		if i == m.blogs.Cursor() {
			line = styleSelected.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + styleSubtle.Render("c: new • e: edit • d: delete • y: copy slug • n/p: page • /: search"))
	return sb.String()
}

func (m *Model) renderUsersPage() string {
	var sb strings.Builder
	snap := m.users.List().Snapshot()

	sb.WriteString(styleTitle.Render("Users") + " " + m.renderListState(snap.State.String(), len(snap.Items)) + "\n\n")

	if len(snap.Items) == 0 {
		sb.WriteString(styleSubtle.Render("No users.") + "\n")
	}
	for i, u := range snap.Items {
		role := "user"
		if u.IsAdmin {
			role = styleWarning.Render("admin")
		}
		line := fmt.Sprintf(" %-25s %-35s %s", truncate(u.Username, 25), truncate(u.Email, 35), role)
		if i == m.users.Cursor() {
			line = styleSelected.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + styleSubtle.Render("c: create • a: promote • r: refresh"))
	return sb.String()
}

func (m *Model) renderHistoryPage() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("API history") + " " + styleSubtle.Render(fmt.Sprintf("(%d calls)", m.history.Count())) + "\n\n")
	sb.WriteString(m.history.View())
	sb.WriteString("\n" + styleSubtle.Render("j/k: scroll • C: clear • r: reload"))
	return sb.String()
}

func (m *Model) renderBlockInspect() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(styleTitle.Render("Block detail") + "\n\n" + m.blocks.InspectView() + "\n\n" + styleSubtle.Render("esc: back • j/k: scroll"))
	return box
}

func (m *Model) renderBlogEditor() string {
	title := "New post"
	if draft, ok := m.blogs.Editor().Draft(); ok && draft.ID != "" {
		title = "Edit post"
	}

	fields := []struct {
		label string
		view  string
		index int
	}{
		{"Title", m.blogs.TitleView(), blogFieldTitle},
		{"Slug", m.blogs.SlugView(), blogFieldSlug},
		{"Body", m.blogs.BodyView(), blogFieldBody},
	}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render(title) + "\n\n")
	for _, f := range fields {
		marker := "  "
		if m.blogs.FocusedField() == f.index {
			marker = styleTitle.Render("> ")
		}
		sb.WriteString(marker + f.label + "\n" + f.view + "\n\n")
	}
	sb.WriteString(styleSubtle.Render("ctrl+s: save • ctrl+u: upload image • tab: next field • esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - ModalWidthMargin).
		Render(sb.String())
	return lipgloss.JoinVertical(lipgloss.Left, box, m.renderToasts())
}

func (m *Model) renderUpload() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Upload media") + "\n\n")
	if m.blogs.Uploading() {
		sb.WriteString(fmt.Sprintf("Uploading… %.0f%%\n\n", m.blogs.UploadPercent()))
		sb.WriteString(m.blogs.UploadBarView() + "\n\n")
		sb.WriteString(styleSubtle.Render("esc: back to editor (transfer continues)"))
	} else {
		sb.WriteString("File path\n" + m.blogs.UploadPathView() + "\n\n")
		sb.WriteString(styleSubtle.Render("enter: upload • esc: cancel"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorYellow).
		Padding(1, 2).
		Render(sb.String())
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderUserForm() string {
	labels := []string{"Username", "Email", "Password"}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Create account") + "\n\n")
	for i, label := range labels {
		marker := "  "
		if m.users.FocusedField() == i {
			marker = styleTitle.Render("> ")
		}
		sb.WriteString(marker + label + "\n" + m.users.FieldView(i) + "\n\n")
	}
	sb.WriteString(styleSubtle.Render("enter: create user • ctrl+a: create admin • esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(1, 2).
		Render(sb.String())
	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderToasts())
}

func (m *Model) renderConfirm(title, question string) string {
	body := styleTitle.Render(title) + "\n\n" + question + "\n\n" + styleSubtle.Render("y: confirm • n: cancel")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 2).
		Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderHelp() string {
	help := `Navigation
  1-4 / tab     switch page
  r             refresh page
  L             log out
  q / ctrl+c    quit

Blocks
  j/k           move • enter inspect • / filter

Blogs
  c new • e edit • d delete • y copy slug
  n/p page • / search
  editor: ctrl+s save • ctrl+u upload

Users
  c create (enter user, ctrl+a admin) • a promote

History
  j/k scroll • C clear`

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(1, 2).
		Render(styleTitle.Render("Keys") + "\n\n" + help + "\n\n" + styleSubtle.Render("any key: close"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderToasts stacks the newest notifications above the status bar.
func (m *Model) renderToasts() string {
	toasts := m.center.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > MaxVisibleToasts {
		toasts = toasts[:MaxVisibleToasts]
	}

	var lines []string
	for _, t := range toasts {
		var style lipgloss.Style
		switch t.Kind {
		case notify.KindSuccess:
			style = styleSuccess
		case notify.KindError:
			style = styleError
		default:
			style = styleWarning
		}
		lines = append(lines, style.Render("▌ "+t.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf(" %s │ %s", m.client.BaseURL(), m.page)
	if m.center.Busy() {
		left += " │ " + m.spin.View() + fmt.Sprintf(" %d in flight", m.center.InFlight())
	}
	right := "?: help "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styleSubtle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderListState shows the load state next to a page title.
func (m *Model) renderListState(state string, count int) string {
	switch state {
	case "loading":
		return styleWarning.Render(m.spin.View() + " loading")
	case "failed":
		return styleError.Render("failed (stale view)")
	default:
		return styleSubtle.Render(fmt.Sprintf("(%d)", count))
	}
}

// truncate shortens s to n runes; byte slicing would split multibyte
// characters in accented titles.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
