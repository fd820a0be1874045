package models

import (
	"encoding/json"
	"time"
)

// Category is a top-level grouping of feeds in the upstream catalog.
type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	// Counts are only present when requested and are passed through untouched.
	FeedCount   *int `json:"feed_count,omitempty"`
	TotalUnread *int `json:"total_unread,omitempty"`
}

// CategoryRef is the read-only projection of a feed's owning category.
type CategoryRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Feed struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	SiteURL  string       `json:"site_url,omitempty"`
	FeedURL  string       `json:"feed_url,omitempty"`
	Category *CategoryRef `json:"category,omitempty"`
}

// FeedRef is the projection of a feed embedded in an entry.
type FeedRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Entry is the typed view of an upstream entry. Tool payloads pass entries
// through as raw JSON; this struct is only used for rendering.
type Entry struct {
	ID          int64      `json:"id"`
	FeedID      int64      `json:"feed_id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Author      string     `json:"author"`
	Status      string     `json:"status"`
	Starred     bool       `json:"starred"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ChangedAt   *time.Time `json:"changed_at,omitempty"`
	Feed        *FeedRef   `json:"feed,omitempty"`
}

// EntriesPage is one page of entries as returned by the catalog.
type EntriesPage struct {
	Total   int               `json:"total"`
	Entries []json.RawMessage `json:"entries"`
}

// User is the authenticated account, used for connectivity checks.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Entry statuses accepted by the catalog.
const (
	EntryStatusUnread  = "unread"
	EntryStatusRead    = "read"
	EntryStatusRemoved = "removed"
)
