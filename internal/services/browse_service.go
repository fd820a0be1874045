package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"feedscout/internal/models"
	"feedscout/internal/store"
)

// BrowseService lists categories and feeds and fetches single entries.
type BrowseService struct {
	categories store.CategoryReader
	feeds      store.FeedReader
	entries    store.EntryReader
}

func NewBrowseService(cr store.CategoryReader, fr store.FeedReader, er store.EntryReader) *BrowseService {
	return &BrowseService{categories: cr, feeds: fr, entries: er}
}

func (s *BrowseService) ListCategories(ctx context.Context, withCounts bool) ([]models.Category, error) {
	cats, err := s.categories.ListCategories(ctx, withCounts)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %w", models.ErrFetchFailed, err)
	}
	if cats == nil {
		return []models.Category{}, nil
	}
	return cats, nil
}

// ListFeeds lists all feeds, or only those of categoryID when it is positive.
func (s *BrowseService) ListFeeds(ctx context.Context, categoryID int64) ([]models.Feed, error) {
	var (
		feeds []models.Feed
		err   error
	)
	if categoryID > 0 {
		feeds, err = s.feeds.ListCategoryFeeds(ctx, categoryID)
	} else {
		feeds, err = s.feeds.ListFeeds(ctx)
	}
	if err != nil {
		if categoryID > 0 && errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("category %d: %w", categoryID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: list feeds: %w", models.ErrFetchFailed, err)
	}
	if feeds == nil {
		return []models.Feed{}, nil
	}
	return feeds, nil
}

// GetEntry returns one entry as raw JSON. A missing entry is reported as
// models.ErrNotFound rather than a fetch failure.
func (s *BrowseService) GetEntry(ctx context.Context, entryID int64) (json.RawMessage, error) {
	if entryID <= 0 {
		return nil, fmt.Errorf("%w: entry id must be positive", models.ErrValidation)
	}
	raw, err := s.entries.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("entry %d: %w", entryID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get entry %d: %w", models.ErrFetchFailed, entryID, err)
	}
	return raw, nil
}
