package resolver

import (
	"strings"

	"feedscout/internal/models"
	"feedscout/internal/textnorm"
)

// Status tags a resolution Outcome.
type Status int

const (
	StatusNotFound Status = iota
	StatusMatched
	StatusAmbiguous
)

func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusAmbiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Tier is the precedence level that decided an Outcome.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierFolded
	TierCollapsed
	TierTokens
	TierSubstring
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFolded:
		return "case_insensitive"
	case TierCollapsed:
		return "collapsed"
	case TierTokens:
		return "token_subset"
	case TierSubstring:
		return "substring"
	default:
		return "none"
	}
}

// Candidate is a category or feed as seen by the tiered resolver.
type Candidate struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	SiteURL string `json:"site_url,omitempty"`
	FeedURL string `json:"feed_url,omitempty"`
}

// Outcome is exactly one of Matched, Ambiguous or NotFound.
type Outcome struct {
	Status     Status
	Tier       Tier
	ID         int64
	Title      string
	Candidates []Candidate
}

func (o Outcome) Matched() bool   { return o.Status == StatusMatched }
func (o Outcome) Ambiguous() bool { return o.Status == StatusAmbiguous }
func (o Outcome) NotFound() bool  { return o.Status == StatusNotFound }

func CategoryCandidates(categories []models.Category) []Candidate {
	out := make([]Candidate, 0, len(categories))
	for _, c := range categories {
		out = append(out, Candidate{ID: c.ID, Title: c.Title})
	}
	return out
}

func FeedCandidates(feeds []models.Feed) []Candidate {
	out := make([]Candidate, 0, len(feeds))
	for _, f := range feeds {
		out = append(out, Candidate{ID: f.ID, Title: f.Title, SiteURL: f.SiteURL, FeedURL: f.FeedURL})
	}
	return out
}

type normalized struct {
	Candidate
	folded    string
	collapsed string
	tokens    []string
}

// Resolve walks the tiers in order and stops at the first tier with a hit.
// For the three equality tiers the first candidate in listing order wins even
// when several share the title. Token-subset and substring tiers report every
// hit as Ambiguous when there is more than one.
func Resolve(query string, candidates []Candidate) Outcome {
	q := NewQuery(query)
	if q.Empty() {
		return Outcome{Status: StatusNotFound}
	}

	norm := make([]normalized, len(candidates))
	for i, c := range candidates {
		norm[i] = normalized{
			Candidate: c,
			folded:    textnorm.Fold(c.Title),
			collapsed: textnorm.Collapse(c.Title),
			tokens:    textnorm.Tokenize(c.Title),
		}
	}

	equality := []struct {
		tier  Tier
		match func(n normalized) bool
	}{
		{TierExact, func(n normalized) bool { return n.Title == q.Raw }},
		{TierFolded, func(n normalized) bool { return n.folded == q.Folded }},
		{TierCollapsed, func(n normalized) bool { return q.Collapsed != "" && n.collapsed == q.Collapsed }},
	}
	for _, eq := range equality {
		for _, n := range norm {
			if eq.match(n) {
				return Outcome{Status: StatusMatched, Tier: eq.tier, ID: n.ID, Title: n.Title}
			}
		}
	}

	if hits := collect(norm, func(n normalized) bool {
		return textnorm.ContainsAllTokens(q.Tokens, n.tokens)
	}); len(hits) > 0 {
		return decide(TierTokens, hits)
	}

	hits := collect(norm, func(n normalized) bool {
		if containsQuery(q, n.folded, n.collapsed) {
			return true
		}
		for _, u := range []string{n.SiteURL, n.FeedURL} {
			if u != "" && containsQuery(q, textnorm.Fold(u), textnorm.Collapse(u)) {
				return true
			}
		}
		return false
	})
	if len(hits) > 0 {
		return decide(TierSubstring, hits)
	}
	return Outcome{Status: StatusNotFound}
}

func containsQuery(q Query, folded, collapsed string) bool {
	if strings.Contains(folded, q.Folded) {
		return true
	}
	return q.Collapsed != "" && strings.Contains(collapsed, q.Collapsed)
}

func collect(norm []normalized, pred func(normalized) bool) []Candidate {
	var hits []Candidate
	for _, n := range norm {
		if pred(n) {
			hits = append(hits, n.Candidate)
		}
	}
	return hits
}

func decide(tier Tier, hits []Candidate) Outcome {
	if len(hits) == 1 {
		return Outcome{Status: StatusMatched, Tier: tier, ID: hits[0].ID, Title: hits[0].Title}
	}
	return Outcome{Status: StatusAmbiguous, Tier: tier, Candidates: hits}
}
