package mock_store

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/stretchr/testify/mock"

	"feedscout/internal/models"
)

// CatalogReader is a testify mock of store.CatalogReader.
type CatalogReader struct {
	mock.Mock
}

func (m *CatalogReader) ListCategories(ctx context.Context, withCounts bool) ([]models.Category, error) {
	args := m.Called(ctx, withCounts)
	var cats []models.Category
	if v := args.Get(0); v != nil {
		cats = v.([]models.Category)
	}
	return cats, args.Error(1)
}

func (m *CatalogReader) ListFeeds(ctx context.Context) ([]models.Feed, error) {
	args := m.Called(ctx)
	var feeds []models.Feed
	if v := args.Get(0); v != nil {
		feeds = v.([]models.Feed)
	}
	return feeds, args.Error(1)
}

func (m *CatalogReader) ListCategoryFeeds(ctx context.Context, categoryID int64) ([]models.Feed, error) {
	args := m.Called(ctx, categoryID)
	var feeds []models.Feed
	if v := args.Get(0); v != nil {
		feeds = v.([]models.Feed)
	}
	return feeds, args.Error(1)
}

func (m *CatalogReader) ListEntries(ctx context.Context, filter url.Values) (*models.EntriesPage, error) {
	args := m.Called(ctx, filter)
	var page *models.EntriesPage
	if v := args.Get(0); v != nil {
		page = v.(*models.EntriesPage)
	}
	return page, args.Error(1)
}

func (m *CatalogReader) ListFeedEntries(ctx context.Context, feedID int64, filter url.Values) (*models.EntriesPage, error) {
	args := m.Called(ctx, feedID, filter)
	var page *models.EntriesPage
	if v := args.Get(0); v != nil {
		page = v.(*models.EntriesPage)
	}
	return page, args.Error(1)
}

func (m *CatalogReader) GetEntry(ctx context.Context, entryID int64) (json.RawMessage, error) {
	args := m.Called(ctx, entryID)
	var raw json.RawMessage
	if v := args.Get(0); v != nil {
		raw = v.(json.RawMessage)
	}
	return raw, args.Error(1)
}

func (m *CatalogReader) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	var u *models.User
	if v := args.Get(0); v != nil {
		u = v.(*models.User)
	}
	return u, args.Error(1)
}
