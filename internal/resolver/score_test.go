package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		id    int64
		title string
		want  int
	}{
		{"exact fold", "TECH", 1, "tech", ScoreExact},
		{"exact beats numeric id", "42", 42, "42", ScoreExact},
		{"numeric id", "42", 42, "Something else", ScoreNumericID},
		{"collapsed", "AICodeKing", 1, "AI Code King", ScoreCollapsed},
		{"token subset", "news tech", 1, "Tech News Daily", ScoreTokens},
		{"substring", "ech New", 1, "Tech News", ScoreSubstring},
		{"diacritics", "cafe", 1, "Café", ScoreExact},
		{"no match", "zzz", 1, "Tech", 0},
		{"numeric id mismatch", "43", 42, "Something", 0},
		{"empty query", "   ", 1, "", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tc.query, tc.id, tc.title))
		})
	}
}

func TestParseIDHint(t *testing.T) {
	id, ok := ParseIDHint(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, q := range []string{"", "4 2", "-1", "42a", "1.5", "99999999999999999999"} {
		_, ok := ParseIDHint(q)
		assert.False(t, ok, "query %q should not carry an id", q)
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("Feeds")
	assert.True(t, ok)
	assert.Equal(t, KindFeed, k)

	k, ok = ParseKind("category")
	assert.True(t, ok)
	assert.Equal(t, KindCategory, k)

	_, ok = ParseKind("entry")
	assert.False(t, ok)
}
