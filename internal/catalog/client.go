// Package catalog is the HTTP client for the upstream feed catalog API.
// It only reads; nothing here creates, updates or deletes catalog state.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"feedscout/internal/models"
	"feedscout/internal/store"

	log "github.com/sirupsen/logrus"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "feedscout/1.0"
	maxResponseBytes = 32 << 20
)

// Options configures a Client. Either APIToken or Username/Password must be set.
type Options struct {
	BaseURL   string
	APIToken  string
	Username  string
	Password  string
	UserAgent string
	Timeout   time.Duration

	// HTTPClient overrides the default client (tests, custom transports).
	HTTPClient *http.Client
}

var _ store.CatalogReader = (*Client)(nil)

type Client struct {
	baseURL   *url.URL
	token     string
	username  string
	password  string
	userAgent string
	http      *http.Client
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("%w: catalog base URL is required", models.ErrValidation)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid catalog base URL %q", models.ErrValidation, raw)
	}
	// Accept both "https://host" and "https://host/v1".
	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), "/v1")
	u.RawQuery = ""

	if opts.APIToken == "" && opts.Username == "" {
		return nil, fmt.Errorf("%w: an API token or username/password is required", models.ErrValidation)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		baseURL:   u,
		token:     opts.APIToken,
		username:  opts.Username,
		password:  opts.Password,
		userAgent: ua,
		http:      hc,
	}, nil
}

// BaseURL returns the normalized catalog root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListCategories returns every category. withCounts asks the catalog to
// annotate each category with feed and unread counts.
func (c *Client) ListCategories(ctx context.Context, withCounts bool) ([]models.Category, error) {
	q := url.Values{}
	if withCounts {
		q.Set("counts", "true")
	}
	var raw []models.Category
	if err := c.get(ctx, "/v1/categories", q, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(raw))
	for _, cat := range raw {
		if cat.ID <= 0 {
			log.WithField("title", cat.Title).Warn("catalog: dropping category without a valid id")
			continue
		}
		out = append(out, cat)
	}
	return out, nil
}

func (c *Client) ListFeeds(ctx context.Context) ([]models.Feed, error) {
	return c.listFeeds(ctx, "/v1/feeds")
}

func (c *Client) ListCategoryFeeds(ctx context.Context, categoryID int64) ([]models.Feed, error) {
	return c.listFeeds(ctx, "/v1/categories/"+strconv.FormatInt(categoryID, 10)+"/feeds")
}

func (c *Client) listFeeds(ctx context.Context, path string) ([]models.Feed, error) {
	var raw []models.Feed
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Feed, 0, len(raw))
	for _, f := range raw {
		if f.ID <= 0 {
			log.WithField("title", f.Title).Warn("catalog: dropping feed without a valid id")
			continue
		}
		if f.Category != nil && f.Category.ID <= 0 {
			f.Category = nil
		}
		out = append(out, f)
	}
	return out, nil
}

// ListEntries searches entries across the whole catalog.
func (c *Client) ListEntries(ctx context.Context, filter url.Values) (*models.EntriesPage, error) {
	return c.listEntries(ctx, "/v1/entries", filter)
}

// ListFeedEntries searches entries of a single feed.
func (c *Client) ListFeedEntries(ctx context.Context, feedID int64, filter url.Values) (*models.EntriesPage, error) {
	return c.listEntries(ctx, "/v1/feeds/"+strconv.FormatInt(feedID, 10)+"/entries", filter)
}

func (c *Client) listEntries(ctx context.Context, path string, filter url.Values) (*models.EntriesPage, error) {
	var page models.EntriesPage
	if err := c.get(ctx, path, filter, &page); err != nil {
		return nil, err
	}
	if page.Total < 0 {
		return nil, fmt.Errorf("catalog: %s returned negative total %d", path, page.Total)
	}
	if page.Entries == nil {
		page.Entries = []json.RawMessage{}
	}
	return &page, nil
}

// GetEntry returns a single entry as raw JSON.
func (c *Client) GetEntry(ctx context.Context, entryID int64) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/v1/entries/"+strconv.FormatInt(entryID, 10), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Me returns the authenticated user; used to check connectivity.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/v1/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("catalog: build request %s: %w", path, err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("catalog request")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(path, resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
		return
	}
	req.SetBasicAuth(c.username, c.password)
}

// APIError is a non-2xx answer from the catalog.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog: GET %s: %d %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog: GET %s: %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case models.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case models.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

func newAPIError(path string, status int, body []byte) *APIError {
	apiErr := &APIError{Path: path, StatusCode: status}
	var payload struct {
		ErrorMessage string `json:"error_message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.ErrorMessage != "" {
		apiErr.Message = payload.ErrorMessage
	}
	return apiErr
}
