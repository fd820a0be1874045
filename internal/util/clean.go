package util

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

var charReplacementMap = map[string]string{
	"\u2018": "'", "\u2019": "'", "\u201C": "\"", "\u201D": "\"",
	"\u2013": "-", "\u2014": "--", "\u2026": "...", "\u00a0": " ",
	"\u0096": "-", "\u0097": "--", "\u0091": "'", "\u0092": "'",
	"\u0093": "\"", "\u0094": "\"",
}

// CleanText repairs invalid UTF-8, flattens typographic punctuation and
// collapses whitespace.
func CleanText(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	for bad, good := range charReplacementMap {
		s = strings.ReplaceAll(s, bad, good)
	}
	return strings.Join(strings.Fields(s), " ")
}

// HTMLToText extracts the readable text of an HTML fragment. Script and style
// content is dropped. Input that fails to parse is returned cleaned as-is.
func HTMLToText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return CleanText(fragment)
	}
	var b strings.Builder
	extractText(doc, &b)
	return CleanText(b.String())
}

func extractText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, b)
		if c.Type == html.ElementNode && isBlockElement(c.Data) {
			b.WriteString(" ")
		}
	}
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "pre", "table", "tr", "td", "th", "section", "article", "figure", "figcaption":
		return true
	}
	return false
}

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

func sentenceTokenizer() *sentences.DefaultSentenceTokenizer {
	tokenizerOnce.Do(func() {
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			log.WithError(err).Warn("english sentence tokenizer unavailable, using untrained tokenizer")
			tokenizer = sentences.NewSentenceTokenizer(nil)
			return
		}
		tokenizer = t
	})
	return tokenizer
}

// Excerpt returns the leading sentences of text that fit in maxLen runes. If
// the first sentence alone is too long it is cut at a word boundary and
// suffixed with "...".
func Excerpt(text string, maxLen int) string {
	text = CleanText(text)
	if text == "" || maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	var out string
	for _, s := range sentenceTokenizer().Tokenize(text) {
		candidate := strings.TrimSpace(out + " " + strings.TrimSpace(s.Text))
		if utf8.RuneCountInString(candidate) > maxLen {
			break
		}
		out = candidate
	}
	if out != "" {
		return out
	}
	return truncateWords(text, maxLen)
}

func truncateWords(text string, maxLen int) string {
	const ellipsis = "..."
	limit := maxLen - len(ellipsis)
	if limit <= 0 {
		return string([]rune(text)[:maxLen])
	}
	cut := string([]rune(text)[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + ellipsis
}
