package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, `"Hello" world -- it's fine`, CleanText("  “Hello” world — it’s   fine \n"))
	assert.Equal(t, "bad � byte", CleanText("bad \xff byte"))
}

func TestHTMLToText(t *testing.T) {
	in := `<p>Hello <b>world</b></p><script>alert(1)</script><style>p{}</style><p>Next&nbsp;line</p>`
	assert.Equal(t, "Hello world Next line", HTMLToText(in))
	assert.Equal(t, "plain text", HTMLToText("plain text"))
	assert.Equal(t, "", HTMLToText(""))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Short enough.", Excerpt("Short enough.", 100))
	assert.Equal(t, "First sentence here.",
		Excerpt("First sentence here. Second sentence is far longer than allowed.", 30))
	assert.Equal(t, "aaaa...", Excerpt("aaaa bbbb cccc dddd", 12))
	assert.Equal(t, "", Excerpt("   ", 10))
}
