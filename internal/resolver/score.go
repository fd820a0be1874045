// Package resolver turns free-form user strings into catalog identifiers.
//
// Two strategies are provided. Resolve applies strict precedence tiers to a
// single collection and yields a tagged Outcome. Rank scores categories and
// feeds together and returns ordered candidates for the caller to choose from.
// Neither strategy fetches data; callers hand in fresh collections.
package resolver

import (
	"strconv"
	"strings"

	"feedscout/internal/textnorm"
)

// Kind names a catalog collection.
type Kind string

const (
	KindCategory Kind = "category"
	KindFeed     Kind = "feed"
)

// ParseKind accepts "category"/"feed" and their plurals.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "categories":
		return KindCategory, true
	case "feed", "feeds":
		return KindFeed, true
	}
	return "", false
}

// Scores assigned by Query.Score. Higher tiers strictly dominate lower ones.
const (
	ScoreExact     = 100
	ScoreNumericID = 90
	ScoreCollapsed = 70
	ScoreTokens    = 50
	ScoreSubstring = 30

	// MinFuzzyScore is the lowest score kept in fuzzy results.
	MinFuzzyScore = ScoreSubstring
)

// Query is a user query with its normalized forms computed once.
type Query struct {
	Raw       string
	Folded    string
	Collapsed string
	Tokens    []string

	IDHint int64
	HasID  bool
}

func NewQuery(raw string) Query {
	raw = strings.TrimSpace(raw)
	q := Query{
		Raw:       raw,
		Folded:    textnorm.Fold(raw),
		Collapsed: textnorm.Collapse(raw),
		Tokens:    textnorm.Tokenize(raw),
	}
	q.IDHint, q.HasID = ParseIDHint(raw)
	return q
}

// Empty reports whether the query has nothing to match on.
func (q Query) Empty() bool {
	return q.Folded == ""
}

// ParseIDHint returns the numeric id carried by a query made only of decimal
// digits (surrounding whitespace ignored).
func ParseIDHint(query string) (int64, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return 0, false
	}
	for _, r := range q {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(q, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Score rates how well the candidate (id, title) matches the query, in [0,100].
func (q Query) Score(id int64, title string) int {
	if q.Empty() {
		return 0
	}
	foldedTitle := textnorm.Fold(title)
	switch {
	case q.Folded == foldedTitle:
		return ScoreExact
	case q.HasID && q.IDHint == id:
		return ScoreNumericID
	case q.Collapsed != "" && q.Collapsed == textnorm.Collapse(title):
		return ScoreCollapsed
	case textnorm.ContainsAllTokens(q.Tokens, textnorm.Tokenize(title)):
		return ScoreTokens
	case strings.Contains(foldedTitle, q.Folded):
		return ScoreSubstring
	}
	return 0
}

// Score is a convenience wrapper for one-off scoring.
func Score(query string, id int64, title string) int {
	return NewQuery(query).Score(id, title)
}
