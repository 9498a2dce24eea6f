package load

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/specpipe/core"
)

// noiseTags are HTML elements removed before text extraction. They
// contribute no documentation content.
var noiseTags = []string{
	"script", "style", "noscript",
	"nav", "header", "footer", "aside",
	"iframe", "form", "button", "input", "select", "textarea",
}

// noiseClasses are CSS classes whose elements are boilerplate on typical
// documentation sites.
var noiseClasses = []string{
	"advertisement", "ads", "banner",
	"cookie-notice", "popup", "modal",
	"sidebar", "menu", "navigation",
}

// headingTags in document order of priority for structure hints.
var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// HTMLLoader extracts cleaned text from HTML-based API documentation.
//
// It strips markup, scripts, styles and boilerplate, collapses whitespace,
// and records the headings and list items it can cheaply detect. These
// hints are for a future structured extractor; this loader does not
// attempt endpoint extraction itself.
type HTMLLoader struct{}

// NewHTMLLoader creates an HTMLLoader.
func NewHTMLLoader() *HTMLLoader {
	return &HTMLLoader{}
}

// Load cleans the HTML and returns a *core.TextDocument.
func (l *HTMLLoader) Load(content string, opts core.Options) (any, []core.IngestError, error) {
	var records []core.IngestError

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		parseErr := fmt.Errorf("parsing HTML: %w", err)
		rec := core.IngestError{Stage: core.StageLoad, Message: parseErr.Error(), Severity: core.SeverityError}
		if opts.Strict {
			return nil, []core.IngestError{rec}, parseErr
		}
		return nil, []core.IngestError{rec}, nil
	}

	for _, tag := range noiseTags {
		doc.Find(tag).Remove()
	}
	for _, class := range noiseClasses {
		doc.Find("." + class).Remove()
	}

	// Structure hints are collected from the whole cleaned document, before
	// narrowing to the main content container.
	headings := collectHeadings(doc)
	items := collectListItems(doc)

	fragment, records := mainContent(doc, records)

	text := collapseWhitespace(stripText(doc))

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		records = append(records, core.IngestError{
			Stage:    core.StageLoad,
			Message:  fmt.Sprintf("converting content to markdown: %v", err),
			Severity: core.SeverityWarning,
		})
		markdown = ""
	}

	return &core.TextDocument{
		Text:      text,
		Markdown:  strings.TrimSpace(markdown),
		Headings:  headings,
		ListItems: items,
	}, records, nil
}

// mainContent serializes the best content container: <main> is the most
// semantically correct, then <article>, then <body>.
func mainContent(doc *goquery.Document, records []core.IngestError) (string, []core.IngestError) {
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() == 0 {
			continue
		}
		html, err := goquery.OuterHtml(sel.First())
		if err == nil {
			return html, records
		}
		records = append(records, core.IngestError{
			Stage:    core.StageLoad,
			Message:  fmt.Sprintf("serializing %s content: %v", tag, err),
			Severity: core.SeverityWarning,
		})
	}
	return "", records
}

func collectHeadings(doc *goquery.Document) []core.Heading {
	var headings []core.Heading
	doc.Find(strings.Join(headingTags, ", ")).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		level := int(goquery.NodeName(sel)[1] - '0')
		headings = append(headings, core.Heading{Level: level, Text: text})
	})
	return headings
}

func collectListItems(doc *goquery.Document) []string {
	var items []string
	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace(sel.Text())
		if text != "" {
			items = append(items, text)
		}
	})
	return items
}

// stripText extracts the text of the best content container, falling back
// to the whole document.
func stripText(doc *goquery.Document) string {
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			return sel.First().Text()
		}
	}
	return doc.Text()
}

var (
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n[ \t]*\n[ \t]*\n+`)
)

// collapseWhitespace normalizes space runs, caps consecutive blank lines
// at one, and trims the result.
func collapseWhitespace(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
