package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"feedscout/internal/models"
	"feedscout/internal/resolver"
	"feedscout/internal/services"
	"feedscout/internal/window"
)

// Services are the catalog services the tools call into.
type Services struct {
	Browse  *services.BrowseService
	Resolve *services.ResolveService
	Entries *services.EntryService
}

// RegisterCatalogTools adds the catalog browse, resolve and search tools to r.
func RegisterCatalogTools(r *Registry, svc Services) error {
	for _, t := range []Tool{
		{
			Name:        "list_categories",
			Description: "List all categories. Set counts to include feed and unread counts.",
			Handler:     listCategories(svc.Browse),
		},
		{
			Name:        "list_feeds",
			Description: "List feeds, optionally only those of one category given by category_id or category name.",
			Handler:     listFeeds(svc.Browse, svc.Resolve),
		},
		{
			Name:        "resolve_category",
			Description: "Resolve a category name to its id.",
			Handler:     resolveName(svc.Resolve, resolver.KindCategory),
		},
		{
			Name:        "resolve_feed",
			Description: "Resolve a feed name, site or feed URL to its id.",
			Handler:     resolveName(svc.Resolve, resolver.KindFeed),
		},
		{
			Name:        "resolve_id",
			Description: "Rank categories and feeds matching a loose query, with scores.",
			Handler:     resolveID(svc.Resolve),
		},
		{
			Name:        "search_entries",
			Description: "Search entries, optionally scoped to a category or feed, with status, time and paging filters.",
			Handler:     searchEntries(svc.Entries),
		},
		{
			Name:        "get_entry",
			Description: "Fetch one entry by id.",
			Handler:     getEntry(svc.Browse),
		},
	} {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

type listCategoriesArgs struct {
	Counts bool `json:"counts"`
}

func listCategories(browse *services.BrowseService) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args listCategoriesArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		cats, err := browse.ListCategories(ctx, args.Counts)
		if err != nil {
			return nil, err
		}
		return map[string]any{"categories": cats, "total": len(cats)}, nil
	}
}

type listFeedsArgs struct {
	CategoryID int64  `json:"category_id"`
	Category   string `json:"category"`
}

func listFeeds(browse *services.BrowseService, rs *services.ResolveService) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args listFeedsArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		ref := services.Ref{ID: args.CategoryID, Name: args.Category}
		var categoryID int64
		if !ref.IsZero() {
			id, err := rs.ResolveRef(ctx, resolver.KindCategory, ref)
			if err != nil {
				return nil, err
			}
			categoryID = id
		}
		feeds, err := browse.ListFeeds(ctx, categoryID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, &Error{Code: CodeCategoryNotFound, Message: fmt.Sprintf("category %d not found", categoryID)}
			}
			return nil, err
		}
		return map[string]any{"feeds": feeds, "total": len(feeds)}, nil
	}
}

type resolveArgs struct {
	Query string `json:"query"`
}

type resolvedName struct {
	Kind  resolver.Kind `json:"kind"`
	ID    int64         `json:"id"`
	Title string        `json:"title"`
	Tier  string        `json:"tier"`
}

func resolveName(rs *services.ResolveService, kind resolver.Kind) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args resolveArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		query := strings.TrimSpace(args.Query)
		out, err := rs.ResolveName(ctx, kind, query)
		if err != nil {
			return nil, err
		}
		if !out.Matched() {
			return nil, &services.ResolutionError{Kind: kind, Query: query, Outcome: out}
		}
		return resolvedName{Kind: kind, ID: out.ID, Title: out.Title, Tier: out.Tier.String()}, nil
	}
}

type resolveIDArgs struct {
	Query        string `json:"query"`
	LimitPerKind int    `json:"limit_per_kind"`
}

func resolveID(rs *services.ResolveService) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args resolveIDArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return rs.ResolveFuzzy(ctx, args.Query, args.LimitPerKind)
	}
}

// SearchEntriesArgs is the argument object of search_entries. Time bounds
// take unix seconds, unix milliseconds or a date string.
type SearchEntriesArgs struct {
	CategoryID int64  `json:"category_id,omitempty"`
	Category   string `json:"category,omitempty"`
	FeedID     int64  `json:"feed_id,omitempty"`
	Feed       string `json:"feed,omitempty"`

	Search  string   `json:"search,omitempty"`
	Status  []string `json:"status,omitempty"`
	Starred *bool    `json:"starred,omitempty"`

	Before          any `json:"before,omitempty"`
	After           any `json:"after,omitempty"`
	PublishedBefore any `json:"published_before,omitempty"`
	PublishedAfter  any `json:"published_after,omitempty"`
	ChangedBefore   any `json:"changed_before,omitempty"`
	ChangedAfter    any `json:"changed_after,omitempty"`

	BeforeEntryID int64 `json:"before_entry_id,omitempty"`
	AfterEntryID  int64 `json:"after_entry_id,omitempty"`

	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	Order     string `json:"order,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Params converts the arguments to a service search request.
func (a SearchEntriesArgs) Params() services.SearchEntriesParams {
	return services.SearchEntriesParams{
		Category: services.Ref{ID: a.CategoryID, Name: a.Category},
		Feed:     services.Ref{ID: a.FeedID, Name: a.Feed},
		Filter: window.Filter{
			Search:          a.Search,
			Statuses:        a.Status,
			Starred:         a.Starred,
			Before:          a.Before,
			After:           a.After,
			PublishedBefore: a.PublishedBefore,
			PublishedAfter:  a.PublishedAfter,
			ChangedBefore:   a.ChangedBefore,
			ChangedAfter:    a.ChangedAfter,
			BeforeEntryID:   a.BeforeEntryID,
			AfterEntryID:    a.AfterEntryID,
			Limit:           a.Limit,
			Offset:          a.Offset,
			Order:           a.Order,
			Direction:       a.Direction,
		},
	}
}

func searchEntries(es *services.EntryService) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args SearchEntriesArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return es.SearchEntries(ctx, args.Params())
	}
}

type getEntryArgs struct {
	EntryID int64 `json:"entry_id"`
}

func getEntry(browse *services.BrowseService) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args getEntryArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		entry, err := browse.GetEntry(ctx, args.EntryID)
		if err != nil {
			return nil, err
		}
		return entry, nil
	}
}
