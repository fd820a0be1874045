package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedscout/internal/models"
	"feedscout/internal/resolver"
	"feedscout/internal/services"
	mock_store "feedscout/internal/tests/mocks/store"
)

var (
	testCategories = []models.Category{
		{ID: 1, Title: "Tech News"},
		{ID: 2, Title: "News Tech"},
		{ID: 3, Title: "Café"},
	}
	testFeeds = []models.Feed{
		{ID: 7, Title: "AI Code King", SiteURL: "https://youtube.com/@aicodeking"},
		{ID: 8, Title: "Go Weekly", FeedURL: "https://golangweekly.com/rss"},
	}
)

func TestResolveService_ResolveRef(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit id skips fetch", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		svc := services.NewResolveService(m, 0)

		id, err := svc.ResolveRef(ctx, resolver.KindCategory, services.Ref{ID: 42, Name: "ignored"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		m.AssertNotCalled(t, "ListCategories", mock.Anything, mock.Anything)
	})

	t.Run("name resolves", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		m.On("ListCategories", mock.Anything, false).Return(testCategories, nil).Once()
		svc := services.NewResolveService(m, 0)

		id, err := svc.ResolveRef(ctx, resolver.KindCategory, services.Ref{Name: "cafe"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), id)
		m.AssertExpectations(t)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		m.On("ListCategories", mock.Anything, false).Return(testCategories, nil).Once()
		svc := services.NewResolveService(m, 0)

		_, err := svc.ResolveRef(ctx, resolver.KindCategory, services.Ref{Name: "tech"})
		var resErr *services.ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.True(t, resErr.Outcome.Ambiguous())
		assert.Len(t, resErr.Outcome.Candidates, 2)
		assert.Contains(t, resErr.Error(), "ambiguous")
	})

	t.Run("unknown feed", func(t *testing.T) {
		m := new(mock_store.CatalogReader)
		m.On("ListFeeds", mock.Anything).Return(testFeeds, nil).Once()
		svc := services.NewResolveService(m, 0)

		_, err := svc.ResolveRef(ctx, resolver.KindFeed, services.Ref{Name: "rust blog"})
		var resErr *services.ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.True(t, resErr.Outcome.NotFound())
		assert.Equal(t, resolver.KindFeed, resErr.Kind)
	})
}

func TestResolveService_ResolveNameFetchFailure(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("ListFeeds", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	svc := services.NewResolveService(m, 0)

	_, err := svc.ResolveName(context.Background(), resolver.KindFeed, "go weekly")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrFetchFailed)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestResolveService_ResolveNameUnknownKind(t *testing.T) {
	svc := services.NewResolveService(new(mock_store.CatalogReader), 0)
	_, err := svc.ResolveName(context.Background(), resolver.Kind("tag"), "x")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestResolveService_ResolveFuzzy(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("ListCategories", mock.Anything, false).Return(testCategories, nil).Once()
	m.On("ListFeeds", mock.Anything).Return(testFeeds, nil).Once()
	svc := services.NewResolveService(m, 5)

	res, err := svc.ResolveFuzzy(context.Background(), "aicodeking", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Categories)
	require.Len(t, res.Feeds, 1)
	assert.Equal(t, int64(7), res.Feeds[0].ID)
	assert.Equal(t, resolver.KindFeed, res.InferredKind)
	m.AssertExpectations(t)
}

func TestResolveService_ResolveFuzzyFailsWhenEitherFetchFails(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("ListCategories", mock.Anything, false).Return(testCategories, nil).Once()
	m.On("ListFeeds", mock.Anything).Return(nil, errors.New("timeout")).Once()
	svc := services.NewResolveService(m, 0)

	res, err := svc.ResolveFuzzy(context.Background(), "news", 0)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, models.ErrFetchFailed)
}
