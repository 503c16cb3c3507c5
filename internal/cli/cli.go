// Package cli implements the non-interactive commands: the same gateway
// operations as the TUI, rendered to stdout for scripting.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ecoblock/ecoblock-admin/internal/api"
	"github.com/ecoblock/ecoblock-admin/internal/history"
	"github.com/ecoblock/ecoblock-admin/internal/i18n"
	"github.com/ecoblock/ecoblock-admin/internal/session"
)

// Deps carries the collaborators shared by every headless command.
type Deps struct {
	Store   *session.Store
	Client  *api.Client
	Hist    *history.Manager // may be nil
	Tr      *i18n.Translator
	Out     io.Writer
}

// RenderError maps an API failure to its localized message for stderr.
// Non-API errors pass through unchanged.
func (d Deps) RenderError(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Code != "" {
		if msg := d.Tr.T(apiErr.Code); msg != apiErr.Code {
			return fmt.Errorf("%s", msg)
		}
	}
	return err
}

// Login exchanges credentials for a token and persists it per the
// configured scope.
func (d Deps) Login(ctx context.Context, username, password string) error {
	token, err := d.Client.Login(ctx, username, password)
	if err != nil {
		return d.RenderError(err)
	}
	d.Store.Set(token)
	fmt.Fprintln(d.Out, d.Tr.T("login_success"))
	return nil
}

// Logout drops the stored token.
func (d Deps) Logout() error {
	d.Store.Clear()
	fmt.Fprintln(d.Out, d.Tr.T("logged_out"))
	return nil
}

// Blocks lists tangle blocks in the requested format.
func (d Deps) Blocks(ctx context.Context, format string) error {
	blocks, err := d.Client.ListBlocks(ctx)
	if err != nil {
		return d.RenderError(err)
	}
	return d.render(format, blocks, func(w io.Writer) {
		for _, b := range blocks {
			fmt.Fprintf(w, "%s  parents:%d  %s\n", b.ID, len(b.Parents), b.CreatedAt)
		}
	})
}

// Blogs lists one page of posts in the requested format.
func (d Deps) Blogs(ctx context.Context, page, perPage int, query, format string) error {
	result, err := d.Client.ListBlogs(ctx, page, perPage, query)
	if err != nil {
		return d.RenderError(err)
	}
	return d.render(format, result, func(w io.Writer) {
		fmt.Fprintf(w, "page %d/%d (%d total)\n", result.Page, result.TotalPages, result.Total)
		for _, b := range result.Items {
			active := " "
			if b.IsActive {
				active = "*"
			}
			fmt.Fprintf(w, "%s %-40s %-30s %s\n", active, b.Title, b.Slug, b.Author)
		}
	})
}

// Users lists platform accounts in the requested format.
func (d Deps) Users(ctx context.Context, format string) error {
	users, err := d.Client.ListUsers(ctx)
	if err != nil {
		return d.RenderError(err)
	}
	return d.render(format, users, func(w io.Writer) {
		for _, u := range users {
			role := "user"
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Fprintf(w, "%-25s %-35s %s\n", u.Username, u.Email, role)
		}
	})
}

// History prints the local audit log, newest first.
func (d Deps) History(limit int, format string) error {
	if d.Hist == nil {
		return fmt.Errorf("history database unavailable")
	}
	entries, err := d.Hist.Load(limit)
	if err != nil {
		return err
	}
	return d.render(format, entries, func(w io.Writer) {
		for _, e := range entries {
			status := fmt.Sprintf("%d", e.Status)
			if e.Status == 0 {
				status = "ERR"
			}
			line := fmt.Sprintf("%s  %-6s %-40s %4s %6dms", e.Timestamp, e.Method, e.Path, status, e.DurationMs)
			if e.Error != "" {
				line += "  " + e.Error
			}
			fmt.Fprintln(w, line)
		}
	})
}

// Upload pushes a local file to the media store and prints the URLs.
func (d Deps) Upload(ctx context.Context, path, format string) error {
	urls, err := d.Client.Upload(ctx, path, nil)
	if err != nil {
		return d.RenderError(err)
	}
	return d.render(format, urls, func(w io.Writer) {
		for _, u := range urls {
			fmt.Fprintln(w, u)
		}
	})
}

// render writes v as json or yaml, or falls back to the text renderer.
func (d Deps) render(format string, v any, text func(w io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(d.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = d.Out.Write(data)
		return err
	case "", "text":
		text(d.Out)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s (json/yaml/text)", format)
	}
}

// ReadPassword reads a password argument, falling back to stdin when the
// value is "-" so credentials stay out of shell history.
func ReadPassword(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return trimNewline(string(data)), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
