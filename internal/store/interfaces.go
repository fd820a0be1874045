package store

import (
	"context"
	"encoding/json"
	"net/url"

	"feedscout/internal/models"
)

// CategoryReader lists catalog categories.
type CategoryReader interface {
	ListCategories(ctx context.Context, withCounts bool) ([]models.Category, error)
}

// FeedReader lists catalog feeds.
type FeedReader interface {
	ListFeeds(ctx context.Context) ([]models.Feed, error)
	ListCategoryFeeds(ctx context.Context, categoryID int64) ([]models.Feed, error)
}

// EntryReader searches and fetches entries. Filters are passed through as
// catalog query parameters.
type EntryReader interface {
	ListEntries(ctx context.Context, filter url.Values) (*models.EntriesPage, error)
	ListFeedEntries(ctx context.Context, feedID int64, filter url.Values) (*models.EntriesPage, error)
	GetEntry(ctx context.Context, entryID int64) (json.RawMessage, error)
}

// NameSource is what name resolution needs: fresh categories and feeds.
type NameSource interface {
	CategoryReader
	ListFeeds(ctx context.Context) ([]models.Feed, error)
}

// CatalogReader is the full read-only surface of the upstream catalog.
type CatalogReader interface {
	CategoryReader
	FeedReader
	EntryReader
	Me(ctx context.Context) (*models.User, error)
}
