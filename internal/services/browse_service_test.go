package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedscout/internal/models"
	"feedscout/internal/services"
	mock_store "feedscout/internal/tests/mocks/store"
)

func newBrowseService(m *mock_store.CatalogReader) *services.BrowseService {
	return services.NewBrowseService(m, m, m)
}

func TestBrowseService_ListCategories(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("ListCategories", mock.Anything, true).Return(nil, nil).Once()

	cats, err := newBrowseService(m).ListCategories(context.Background(), true)
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
	m.AssertExpectations(t)
}

func TestBrowseService_ListFeeds(t *testing.T) {
	ctx := context.Background()

	t.Run("all feeds", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		m.On("ListFeeds", mock.Anything).Return(testFeeds, nil).Once()

		feeds, err := newBrowseService(m).ListFeeds(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, feeds, 2)
		m.AssertNotCalled(t, "ListCategoryFeeds", mock.Anything, mock.Anything)
	})

	t.Run("one category", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		m.On("ListCategoryFeeds", mock.Anything, int64(3)).Return(testFeeds[:1], nil).Once()

		feeds, err := newBrowseService(m).ListFeeds(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, feeds, 1)
	})

	t.Run("missing category", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		m.On("ListCategoryFeeds", mock.Anything, int64(99)).
			Return(nil, fmt.Errorf("GET /v1/categories/99/feeds: %w", models.ErrNotFound)).Once()

		_, err := newBrowseService(m).ListFeeds(ctx, 99)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NotErrorIs(t, err, models.ErrFetchFailed)
	})

	t.Run("upstream failure", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		m.On("ListFeeds", mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := newBrowseService(m).ListFeeds(ctx, 0)
		assert.ErrorIs(t, err, models.ErrFetchFailed)
	})
}

func TestBrowseService_GetEntry(t *testing.T) {
	ctx := context.Background()

	m := new(mock_store.CatalogReader)
	m.On("GetEntry", mock.Anything, int64(5)).Return(json.RawMessage(`{"id":5}`), nil).Once()
	m.On("GetEntry", mock.Anything, int64(6)).Return(nil, models.ErrNotFound).Once()
	svc := newBrowseService(m)

	raw, err := svc.GetEntry(ctx, 5)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":5}`, string(raw))

	_, err = svc.GetEntry(ctx, 6)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.GetEntry(ctx, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
	m.AssertExpectations(t)
}
