package types

import "encoding/json"

// Block is a distributed-ledger block as returned by /tangle/blocks.
// Data is kept raw because block payloads are free-form JSON.
type Block struct {
	ID        string          `json:"id"`
	Parents   []string        `json:"parents"`
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature,omitempty"`
	PublicKey string          `json:"public_key,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
}

// Blog is a blog post as returned by /communication/blog.
type Blog struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Author    string `json:"author"`
	IsActive  bool   `json:"is_active"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// BlogCreate is the payload for POST /communication/blog.
type BlogCreate struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Body     string `json:"body"`
	Author   string `json:"author"`
	IsActive *bool  `json:"is_active,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// BlogUpdate is the payload for PUT /communication/blog/:id.
type BlogUpdate struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Body  string `json:"body"`
}

// User is a platform account as returned by /users.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at,omitempty"`
}

// UserCreate is the payload for POST /users and POST /users/admin.
type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HistoryEntry is one recorded API call in the local audit log.
type HistoryEntry struct {
	ID         int64
	Timestamp  string
	Method     string
	Path       string
	Status     int
	DurationMs int64
	Error      string
}
