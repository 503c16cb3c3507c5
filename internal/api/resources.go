package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// ErrNoToken is returned when a login response carries none of the accepted
// token fields, regardless of HTTP status.
var ErrNoToken = errors.New("no token in login response")

// Login authenticates the operator and returns the bearer token. The
// backend has shipped the token under several field names over time; the
// first match wins.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
		CamelToken  string `json:"accessToken"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		c.notifier.NotifyAPIError("no_token", "")
		return "", ErrNoToken
	}

	for _, token := range []string{body.Token, body.AccessToken, body.CamelToken} {
		if token != "" {
			return token, nil
		}
	}

	c.notifier.NotifyAPIError("no_token", "")
	return "", ErrNoToken
}

// ListBlocks fetches the ledger blocks. The endpoint has returned a bare
// array, {items: [...]} and {blocks: [...]} across backend versions.
func (c *Client) ListBlocks(ctx context.Context) ([]types.Block, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/tangle/blocks", nil, nil)
	if err != nil {
		return nil, err
	}

	var blocks []types.Block
	if err := json.Unmarshal(raw, &blocks); err == nil {
		return blocks, nil
	}

	var wrapped struct {
		Items  []types.Block `json:"items"`
		Blocks []types.Block `json:"blocks"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode blocks response: %w", err)
	}
	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	return wrapped.Blocks, nil
}

// BlogPage is one page of the paginated blog listing.
type BlogPage struct {
	Items      []types.Blog `json:"items"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"total_pages"`
	HasMore    bool         `json:"has_more"`
}

// ListBlogs fetches one page of blog posts. q is optional full-text search.
func (c *Client) ListBlogs(ctx context.Context, page, perPage int, q string) (BlogPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	if q != "" {
		query.Set("q", q)
	}

	raw, err := c.Request(ctx, http.MethodGet, "/communication/blog", query, nil)
	if err != nil {
		return BlogPage{}, err
	}

	var result BlogPage
	if err := json.Unmarshal(raw, &result); err != nil {
		return BlogPage{}, fmt.Errorf("failed to decode blog page: %w", err)
	}
	return result, nil
}

// CreateBlog creates a blog post.
func (c *Client) CreateBlog(ctx context.Context, payload types.BlogCreate) error {
	_, err := c.Request(ctx, http.MethodPost, "/communication/blog", nil, payload)
	return err
}

// UpdateBlog updates title, slug and body of an existing post.
func (c *Client) UpdateBlog(ctx context.Context, id string, payload types.BlogUpdate) error {
	_, err := c.Request(ctx, http.MethodPut, "/communication/blog/"+id, nil, payload)
	return err
}

// DeleteBlog removes a blog post.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, "/communication/blog/"+id, nil, nil)
	return err
}

// ListUsers fetches all users. The endpoint returns {items: [...]} or a
// bare array depending on backend version.
func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var users []types.User
	if err := json.Unmarshal(raw, &users); err == nil {
		return users, nil
	}

	var wrapped struct {
		Items []types.User `json:"items"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode users response: %w", err)
	}
	return wrapped.Items, nil
}

// CreateUser creates a regular user.
func (c *Client) CreateUser(ctx context.Context, payload types.UserCreate) error {
	_, err := c.Request(ctx, http.MethodPost, "/users", nil, payload)
	return err
}

// CreateAdmin creates an admin user, same payload as CreateUser.
func (c *Client) CreateAdmin(ctx context.Context, payload types.UserCreate) error {
	_, err := c.Request(ctx, http.MethodPost, "/users/admin", nil, payload)
	return err
}

// GrantAdmin promotes an existing user.
func (c *Client) GrantAdmin(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodPost, "/users/"+id+"/grant_admin", nil, nil)
	return err
}
