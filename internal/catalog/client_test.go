package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedscout/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	if opts.BaseURL == "" {
		opts.BaseURL = srv.URL
	}
	if opts.APIToken == "" && opts.Username == "" {
		opts.APIToken = "secret"
	}
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{APIToken: "x"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = New(Options{BaseURL: "not a url", APIToken: "x"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = New(Options{BaseURL: "https://flux.example.com"})
	assert.ErrorIs(t, err, models.ErrValidation)

	c, err := New(Options{BaseURL: "https://flux.example.com/v1/", APIToken: "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://flux.example.com", c.BaseURL())
}

func TestListCategories_TokenAuthAndCounts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/categories", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("counts"))
		assert.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[
			{"id": 1, "title": "Tech", "feed_count": 3, "total_unread": 12},
			{"id": 0, "title": "Broken"},
			{"id": 2, "title": "Sports"}
		]`))
	}, Options{})

	cats, err := c.ListCategories(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Tech", cats[0].Title)
	require.NotNil(t, cats[0].FeedCount)
	assert.Equal(t, 3, *cats[0].FeedCount)
	assert.Nil(t, cats[1].TotalUnread)
}

func TestListFeeds_BasicAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "reader", user)
		assert.Equal(t, "hunter2", pass)
		assert.Empty(t, r.Header.Get("X-Auth-Token"))
		w.Write([]byte(`[
			{"id": 5, "title": "Go Blog", "site_url": "https://go.dev/blog", "feed_url": "https://go.dev/blog/feed.atom", "category": {"id": 1, "title": "Tech"}},
			{"id": 6, "title": "Orphan", "category": {"id": 0, "title": ""}}
		]`))
	}, Options{Username: "reader", Password: "hunter2"})

	feeds, err := c.ListFeeds(context.Background())
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	assert.Equal(t, "https://go.dev/blog/feed.atom", feeds[0].FeedURL)
	assert.Equal(t, &models.CategoryRef{ID: 1, Title: "Tech"}, feeds[0].Category)
	assert.Nil(t, feeds[1].Category)
}

func TestListCategoryFeeds_Path(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flux/v1/categories/7/feeds", r.URL.Path)
		w.Write([]byte(`[]`))
	}, Options{})
	c.baseURL.Path = "/flux"

	feeds, err := c.ListCategoryFeeds(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, feeds)
}

func TestListEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/entries", r.URL.Path)
		assert.Equal(t, []string{"unread", "read"}, r.URL.Query()["status"])
		assert.Equal(t, "3", r.URL.Query().Get("category_id"))
		w.Write([]byte(`{"total": 42, "entries": [{"id": 1, "title": "a"}, {"id": 2, "title": "b"}]}`))
	}, Options{})

	filter := url.Values{"status": {"unread", "read"}, "category_id": {"3"}}
	page, err := c.ListEntries(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 42, page.Total)
	require.Len(t, page.Entries, 2)
	assert.JSONEq(t, `{"id": 1, "title": "a"}`, string(page.Entries[0]))
}

func TestListFeedEntries_EmptyEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/feeds/9/entries", r.URL.Path)
		w.Write([]byte(`{"total": 0, "entries": null}`))
	}, Options{})

	page, err := c.ListFeedEntries(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.NotNil(t, page.Entries)
	assert.Empty(t, page.Entries)
}

func TestGetEntry_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error_message": "resource not found"}`))
	}, Options{})

	_, err := c.GetEntry(context.Background(), 123)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "resource not found", apiErr.Message)
	assert.Contains(t, err.Error(), "/v1/entries/123")
}

func TestGet_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, Options{})

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestGet_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}, Options{})

	_, err := c.ListFeeds(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode /v1/feeds")
}

func TestMe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/me", r.URL.Path)
		assert.Equal(t, "feedscout-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"id": 1, "username": "admin", "is_admin": true}`))
	}, Options{UserAgent: "feedscout-test"})

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.True(t, u.IsAdmin)
}
