package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"feedscout/internal/models"
	"feedscout/internal/resolver"
	"feedscout/internal/store"

	log "github.com/sirupsen/logrus"
)

// ResolveService resolves user-supplied names against freshly fetched
// catalog data. It keeps no state between calls.
type ResolveService struct {
	source     store.NameSource
	fuzzyLimit int
}

func NewResolveService(source store.NameSource, fuzzyLimit int) *ResolveService {
	return &ResolveService{source: source, fuzzyLimit: resolver.ClampLimit(fuzzyLimit)}
}

// Ref points at a category or feed either by id or by name. ID wins when both
// are set.
type Ref struct {
	ID   int64
	Name string
}

func (r Ref) IsZero() bool {
	return r.ID <= 0 && strings.TrimSpace(r.Name) == ""
}

// ResolutionError reports a name that did not resolve to exactly one id.
type ResolutionError struct {
	Kind    resolver.Kind
	Query   string
	Outcome resolver.Outcome
}

func (e *ResolutionError) Error() string {
	if e.Outcome.Ambiguous() {
		return fmt.Sprintf("%s %q is ambiguous: %d candidates", e.Kind, e.Query, len(e.Outcome.Candidates))
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Query)
}

// ResolveName runs the tiered resolver over one collection. A non-nil error
// always means the fetch failed; NotFound and Ambiguous are reported through
// the outcome.
func (s *ResolveService) ResolveName(ctx context.Context, kind resolver.Kind, query string) (resolver.Outcome, error) {
	var candidates []resolver.Candidate
	switch kind {
	case resolver.KindCategory:
		categories, err := s.source.ListCategories(ctx, false)
		if err != nil {
			return resolver.Outcome{}, fmt.Errorf("%w: list categories: %w", models.ErrFetchFailed, err)
		}
		candidates = resolver.CategoryCandidates(categories)
	case resolver.KindFeed:
		feeds, err := s.source.ListFeeds(ctx)
		if err != nil {
			return resolver.Outcome{}, fmt.Errorf("%w: list feeds: %w", models.ErrFetchFailed, err)
		}
		candidates = resolver.FeedCandidates(feeds)
	default:
		return resolver.Outcome{}, fmt.Errorf("%w: unknown kind %q", models.ErrValidation, kind)
	}

	out := resolver.Resolve(query, candidates)
	log.WithFields(log.Fields{
		"kind":       kind,
		"query":      query,
		"status":     out.Status.String(),
		"tier":       out.Tier.String(),
		"candidates": len(candidates),
	}).Debug("resolved name")
	return out, nil
}

// ResolveRef returns the id a Ref points at. Explicit ids are trusted as-is;
// names go through ResolveName and fail with *ResolutionError unless exactly
// one record matches.
func (s *ResolveService) ResolveRef(ctx context.Context, kind resolver.Kind, ref Ref) (int64, error) {
	if ref.ID > 0 {
		return ref.ID, nil
	}
	name := strings.TrimSpace(ref.Name)
	out, err := s.ResolveName(ctx, kind, name)
	if err != nil {
		return 0, err
	}
	if !out.Matched() {
		return 0, &ResolutionError{Kind: kind, Query: name, Outcome: out}
	}
	return out.ID, nil
}

// ResolveFuzzy scores categories and feeds together. Both collections are
// fetched concurrently and both fetches must succeed.
func (s *ResolveService) ResolveFuzzy(ctx context.Context, query string, limitPerKind int) (*resolver.FuzzyResult, error) {
	if limitPerKind <= 0 {
		limitPerKind = s.fuzzyLimit
	}

	var (
		g          errgroup.Group
		categories []models.Category
		feeds      []models.Feed
	)
	g.Go(func() error {
		c, err := s.source.ListCategories(ctx, false)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		categories = c
		return nil
	})
	g.Go(func() error {
		f, err := s.source.ListFeeds(ctx)
		if err != nil {
			return fmt.Errorf("list feeds: %w", err)
		}
		feeds = f
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrFetchFailed, err)
	}

	res := resolver.Rank(query, categories, feeds, limitPerKind)
	log.WithFields(log.Fields{
		"query":      query,
		"categories": len(res.Categories),
		"feeds":      len(res.Feeds),
		"truncated":  res.Truncated,
	}).Debug("fuzzy resolution")
	return res, nil
}
