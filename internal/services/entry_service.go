package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"feedscout/internal/models"
	"feedscout/internal/resolver"
	"feedscout/internal/store"
	"feedscout/internal/window"

	log "github.com/sirupsen/logrus"
)

type EntryService struct {
	entries  store.EntryReader
	resolver *ResolveService
	limits   window.Limits
}

func NewEntryService(er store.EntryReader, rs *ResolveService, limits window.Limits) *EntryService {
	return &EntryService{entries: er, resolver: rs, limits: limits}
}

// SearchEntriesParams is a full search window. At most one scope applies:
// when both Category and Feed are given, Category is used and Feed ignored.
type SearchEntriesParams struct {
	Category Ref
	Feed     Ref
	Filter   window.Filter
}

// Scope records which collection a search was narrowed to.
type Scope struct {
	Kind resolver.Kind `json:"kind"`
	ID   int64         `json:"id"`
}

type EntriesResult struct {
	Scope   *Scope            `json:"scope,omitempty"`
	Total   int               `json:"total"`
	Entries []json.RawMessage `json:"entries"`
	Page    window.Page       `json:"page"`
}

func (s *EntryService) SearchEntries(ctx context.Context, params SearchEntriesParams) (*EntriesResult, error) {
	filter := params.Filter
	if err := filter.Normalize(s.limits); err != nil {
		return nil, err
	}
	if dropped := filter.DroppedTimeBounds(); len(dropped) > 0 {
		log.WithField("fields", dropped).Debug("ignoring unparseable time bounds")
	}

	var scope *Scope
	switch {
	case !params.Category.IsZero():
		if !params.Feed.IsZero() {
			log.WithFields(log.Fields{
				"category": params.Category,
				"feed":     params.Feed,
			}).Warn("both category and feed scope given; using category")
		}
		id, err := s.resolver.ResolveRef(ctx, resolver.KindCategory, params.Category)
		if err != nil {
			return nil, err
		}
		scope = &Scope{Kind: resolver.KindCategory, ID: id}
	case !params.Feed.IsZero():
		id, err := s.resolver.ResolveRef(ctx, resolver.KindFeed, params.Feed)
		if err != nil {
			return nil, err
		}
		scope = &Scope{Kind: resolver.KindFeed, ID: id}
	}

	values := filter.Values()
	var (
		page *models.EntriesPage
		err  error
	)
	if scope != nil && scope.Kind == resolver.KindFeed {
		page, err = s.entries.ListFeedEntries(ctx, scope.ID, values)
	} else {
		if scope != nil {
			values.Set("category_id", strconv.FormatInt(scope.ID, 10))
		}
		page, err = s.entries.ListEntries(ctx, values)
	}
	if err != nil {
		if scope != nil && scope.Kind == resolver.KindFeed && errors.Is(err, models.ErrNotFound) {
			return nil, &ResolutionError{
				Kind:    resolver.KindFeed,
				Query:   strconv.FormatInt(scope.ID, 10),
				Outcome: resolver.Outcome{Status: resolver.StatusNotFound},
			}
		}
		return nil, fmt.Errorf("%w: list entries: %w", models.ErrFetchFailed, err)
	}

	entries := page.Entries
	if entries == nil {
		entries = []json.RawMessage{}
	}
	return &EntriesResult{
		Scope:   scope,
		Total:   page.Total,
		Entries: entries,
		Page:    window.Paginate(page.Total, filter.Offset, len(entries), filter.Limit),
	}, nil
}
