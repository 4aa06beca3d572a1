package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanDescription turns an upstream description, possibly HTML, into plain
// text with collapsed whitespace.
func CleanDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return collapseWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseWhitespace(s)
	}
	doc.Find("script, style, noscript").Remove()
	// Block elements would otherwise glue adjacent words together.
	doc.Find("br, p, li, div, h1, h2, h3, h4, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AfterHtml(" ")
	})
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
