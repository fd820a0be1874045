package resolver

import (
	"sort"

	"feedscout/internal/models"
)

const (
	DefaultFuzzyLimit = 10
	MaxFuzzyLimit     = 25
)

// ScoredCandidate is a category or feed ranked against a query.
type ScoredCandidate struct {
	ID       int64               `json:"id"`
	Title    string              `json:"title"`
	Score    int                 `json:"score"`
	SiteURL  string              `json:"site_url,omitempty"`
	FeedURL  string              `json:"feed_url,omitempty"`
	Category *models.CategoryRef `json:"category,omitempty"`
}

type ExactIDMatch struct {
	Kind  Kind   `json:"kind"`
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// FuzzyResult is the ranked view of both collections for one query.
type FuzzyResult struct {
	Query        string            `json:"query"`
	InferredKind Kind              `json:"inferred_kind,omitempty"`
	ExactIDMatch *ExactIDMatch     `json:"exact_id_match,omitempty"`
	Categories   []ScoredCandidate `json:"categories"`
	Feeds        []ScoredCandidate `json:"feeds"`
	Truncated    bool              `json:"truncated"`
}

// ClampLimit applies the default for non-positive limits and the hard ceiling.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultFuzzyLimit
	}
	if limit > MaxFuzzyLimit {
		return MaxFuzzyLimit
	}
	return limit
}

// Rank scores both collections against query and builds the fuzzy result.
// Candidates below MinFuzzyScore are dropped unless their id equals the
// numeric id carried by the query.
func Rank(query string, categories []models.Category, feeds []models.Feed, limit int) *FuzzyResult {
	q := NewQuery(query)
	limit = ClampLimit(limit)

	cats := make([]ScoredCandidate, 0)
	for _, c := range categories {
		if sc, ok := keep(q, c.ID, c.Title); ok {
			cats = append(cats, sc)
		}
	}
	fds := make([]ScoredCandidate, 0)
	for _, f := range feeds {
		if sc, ok := keep(q, f.ID, f.Title); ok {
			sc.SiteURL = f.SiteURL
			sc.FeedURL = f.FeedURL
			sc.Category = f.Category
			fds = append(fds, sc)
		}
	}
	sortCandidates(cats)
	sortCandidates(fds)

	res := &FuzzyResult{Query: q.Raw}
	res.Categories, res.Truncated = truncate(cats, limit)
	var feedsTruncated bool
	res.Feeds, feedsTruncated = truncate(fds, limit)
	res.Truncated = res.Truncated || feedsTruncated

	switch {
	case len(cats) > 0 && len(fds) == 0:
		res.InferredKind = KindCategory
	case len(fds) > 0 && len(cats) == 0:
		res.InferredKind = KindFeed
	}

	if q.HasID {
		res.ExactIDMatch = findExactID(q.IDHint, categories, feeds)
	}
	return res
}

func keep(q Query, id int64, title string) (ScoredCandidate, bool) {
	score := q.Score(id, title)
	if score < MinFuzzyScore && !(q.HasID && q.IDHint == id) {
		return ScoredCandidate{}, false
	}
	return ScoredCandidate{ID: id, Title: title, Score: score}, true
}

func sortCandidates(list []ScoredCandidate) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		if list[i].Title != list[j].Title {
			return list[i].Title < list[j].Title
		}
		return list[i].ID < list[j].ID
	})
}

func truncate(list []ScoredCandidate, limit int) ([]ScoredCandidate, bool) {
	if len(list) > limit {
		return list[:limit], true
	}
	return list, false
}

// findExactID checks categories before feeds.
func findExactID(id int64, categories []models.Category, feeds []models.Feed) *ExactIDMatch {
	for _, c := range categories {
		if c.ID == id {
			return &ExactIDMatch{Kind: KindCategory, ID: c.ID, Title: c.Title}
		}
	}
	for _, f := range feeds {
		if f.ID == id {
			return &ExactIDMatch{Kind: KindFeed, ID: f.ID, Title: f.Title}
		}
	}
	return nil
}
