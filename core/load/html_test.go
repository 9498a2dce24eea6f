package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/specpipe/core"
)

const docsPage = `<!DOCTYPE html>
<html>
<head><title>API Reference</title><style>body { color: red; }</style></head>
<body>
<nav><a href="/">Home</a></nav>
<div class="sidebar">Navigation links</div>
<main>
  <h1>Users API</h1>
  <p>Endpoints for   managing users.</p>
  <h2>List users</h2>
  <ul>
    <li>GET /users</li>
    <li>POST /users</li>
  </ul>
  <div class="advertisement">Buy now!</div>
  <script>trackPageView();</script>
</main>
<footer>Copyright</footer>
</body>
</html>`

func loadHTML(t *testing.T, content string) (*core.TextDocument, []core.IngestError) {
	t.Helper()
	loaded, records, err := NewHTMLLoader().Load(content, core.DefaultOptions())
	require.NoError(t, err)
	doc, ok := loaded.(*core.TextDocument)
	require.True(t, ok)
	return doc, records
}

func TestHTMLLoaderStripsNoise(t *testing.T) {
	doc, _ := loadHTML(t, docsPage)

	assert.Contains(t, doc.Text, "Users API")
	assert.Contains(t, doc.Text, "managing users")
	assert.NotContains(t, doc.Text, "trackPageView")
	assert.NotContains(t, doc.Text, "color: red")
	assert.NotContains(t, doc.Text, "Home")
	assert.NotContains(t, doc.Text, "Navigation links")
	assert.NotContains(t, doc.Text, "Buy now")
	assert.NotContains(t, doc.Text, "Copyright")
}

func TestHTMLLoaderCollapsesWhitespace(t *testing.T) {
	doc, _ := loadHTML(t, docsPage)
	assert.Contains(t, doc.Text, "Endpoints for managing users.")
	assert.NotContains(t, doc.Text, "\n\n\n")
}

func TestHTMLLoaderStructureHints(t *testing.T) {
	doc, _ := loadHTML(t, docsPage)

	require.Len(t, doc.Headings, 2)
	assert.Equal(t, core.Heading{Level: 1, Text: "Users API"}, doc.Headings[0])
	assert.Equal(t, core.Heading{Level: 2, Text: "List users"}, doc.Headings[1])

	assert.Equal(t, []string{"GET /users", "POST /users"}, doc.ListItems)
}

func TestHTMLLoaderMarkdown(t *testing.T) {
	doc, _ := loadHTML(t, docsPage)
	assert.Contains(t, doc.Markdown, "# Users API")
	assert.Contains(t, doc.Markdown, "## List users")
	assert.NotContains(t, doc.Markdown, "trackPageView")
}

func TestHTMLLoaderNoMainContainer(t *testing.T) {
	doc, _ := loadHTML(t, "<p>Just a paragraph about the /status endpoint.</p>")
	assert.Contains(t, doc.Text, "/status")
	assert.Empty(t, doc.Headings)
}
