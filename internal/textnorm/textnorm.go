// Package textnorm normalizes catalog titles and user queries so they can be
// compared without regard to accents, case, spacing or punctuation.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper builds a fresh transformer per call; a chained transformer keeps
// internal state and must not be shared between goroutines.
func stripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// StripDiacritics removes combining marks, so "Café" becomes "Cafe".
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripper(), s)
	if err != nil {
		return s
	}
	return out
}

// Fold strips diacritics and lowercases.
func Fold(s string) string {
	return strings.ToLower(StripDiacritics(s))
}

// Collapse folds s and drops everything that is not an ASCII letter or digit.
// "AI Code King" and "AICodeKing" collapse to the same string.
func Collapse(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize folds s and splits it on runs of non-alphanumeric runes.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsAllTokens reports whether every token of query is present in
// candidate. An empty query never matches.
func ContainsAllTokens(query, candidate []string) bool {
	if len(query) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(candidate))
	for _, t := range candidate {
		set[t] = struct{}{}
	}
	for _, t := range query {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
