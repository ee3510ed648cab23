package goquery_test

import (
	"testing"

	"github.com/cudev/htmlscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentBlocks(t *testing.T) {
	t.Parallel()

	t.Run("splits body at block elements", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title> My   Page </title><style>p { color: red }</style></head>
<body>
<nav><a href="/">Home</a> | <a href="/about">About</a></nav>
<h1>Heading</h1>
<p>First <b>bold</b> paragraph.</p>
<ul><li>One</li><li>Two</li></ul>
<script>var x = "not text";</script>
<footer>Copyright</footer>
</body>
</html>`

		seg, err := goquery.SegmentBlocks(html)

		require.NoError(t, err)
		assert.Equal(t, "My Page", seg.Title)
		assert.Equal(t, []string{
			"Home | About",
			"Heading",
			"First bold paragraph.",
			"One",
			"Two",
			"Copyright",
		}, seg.Blocks)
	})

	t.Run("inline runs between blocks form their own block", func(t *testing.T) {
		t.Parallel()

		html := `<body><a href="https://example.com/a">A</a><a href="#top">Top</a><a href="https://example.com/a">dup</a><p>Hello world</p></body>`

		seg, err := goquery.SegmentBlocks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"ATopdup", "Hello world"}, seg.Blocks)
	})

	t.Run("line breaks split blocks", func(t *testing.T) {
		t.Parallel()

		seg, err := goquery.SegmentBlocks(`<body><p>line one<br>line two</p></body>`)

		require.NoError(t, err)
		assert.Equal(t, []string{"line one", "line two"}, seg.Blocks)
	})

	t.Run("skips comments and noscript", func(t *testing.T) {
		t.Parallel()

		seg, err := goquery.SegmentBlocks(`<body><!-- hidden --><noscript>Enable JS</noscript><p>Visible</p></body>`)

		require.NoError(t, err)
		assert.Equal(t, []string{"Visible"}, seg.Blocks)
	})

	t.Run("returns no blocks for empty body", func(t *testing.T) {
		t.Parallel()

		seg, err := goquery.SegmentBlocks(`<html><head><title>Empty</title></head><body>   </body></html>`)

		require.NoError(t, err)
		assert.Equal(t, "Empty", seg.Title)
		assert.NotNil(t, seg.Blocks)
		assert.Empty(t, seg.Blocks)
	})

	t.Run("title is empty when absent", func(t *testing.T) {
		t.Parallel()

		seg, err := goquery.SegmentBlocks(`<p>x</p>`)

		require.NoError(t, err)
		assert.Empty(t, seg.Title)
	})
}
