package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Cafe", StripDiacritics("Café"))
	assert.Equal(t, "Elodie Senor", StripDiacritics("Élodie Señor"))
	assert.Equal(t, "plain", StripDiacritics("plain"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "cafe creme", Fold("Café CRÈME"))
	assert.Equal(t, "", Fold(""))
}

func TestCollapse(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"AI Code King", "aicodeking"},
		{"AICodeKing", "aicodeking"},
		{"Café", "cafe"},
		{"Cafe", "cafe"},
		{"Hacker-News (Top 10)!", "hackernewstop10"},
		{"---", ""},
		{"日本語", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Collapse(tc.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"tech", "news", "daily"}, Tokenize("Tech  News -- Daily"))
	assert.Equal(t, []string{"cafe", "du", "monde"}, Tokenize("  Café_du/Monde "))
	assert.Empty(t, Tokenize("!!! ..."))
}

func TestContainsAllTokens(t *testing.T) {
	assert.True(t, ContainsAllTokens([]string{"news", "tech"}, []string{"tech", "news", "daily"}))
	assert.False(t, ContainsAllTokens([]string{"tech", "weekly"}, []string{"tech", "news"}))
	assert.False(t, ContainsAllTokens(nil, []string{"tech"}))
}
