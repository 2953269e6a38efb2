package extract

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ErrNoContent signals that the page parsed but no readable text remained.
var ErrNoContent = errors.New("no readable content")

// Below this many characters the structural walk is considered a miss and
// the readability fallback is attempted.
const minContentChars = 80

// Document is a simplified representation of extracted page content.
type Document struct {
	Title string
	Text  string
}

// contentSelectors is the preference chain for the content root. The site
// this tool grew up on marks its content with main#main and falls back to a
// div.content-area; generic <main>/<article> cover most other pages, and
// <body> is the last structural resort.
var contentSelectors = []string{"main#main", "div.content-area", "main", "article", "body"}

// FromHTML reduces an HTML page to plain text, preferring a designated
// main-content container and falling back to the document body. pageURL is
// only consulted by the readability fallback for resolving relative links.
func FromHTML(input []byte, pageURL string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())

	var b strings.Builder
	if root := contentRoot(doc); root != nil {
		for _, n := range root.Nodes {
			collectText(&b, n, false)
		}
	}
	text := normalizeWhitespace(b.String())

	// Pages rendered almost entirely by script leave the walk with nothing
	// useful; let readability take a shot before giving up.
	if len(text) < minContentChars {
		if alt := readabilityText(input, pageURL); len(alt) > len(text) {
			text = alt
		}
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrNoContent
	}
	return Document{Title: title, Text: text}, nil
}

func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

func readabilityText(input []byte, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = &url.URL{}
	}
	article, err := readability.FromReader(bytes.NewReader(input), u)
	if err != nil {
		return ""
	}
	return normalizeWhitespace(article.TextContent)
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if n.Type == html.ElementNode {
		if isBoilerplateContainer(n) {
			return
		}
		name := strings.ToLower(n.Data)
		switch name {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe":
			return
		case "pre", "code":
			inPre = true
		case "br", "hr":
			b.WriteString("\n")
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol":
			// Newline before block starts to keep phrases separated
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.ReplaceAll(data, "\t", " ")
			data = strings.ReplaceAll(data, "\r", " ")
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n\n")
		case "li":
			b.WriteString("\n")
		case "pre", "code":
			b.WriteString("\n")
		}
	}
}

// isBoilerplateContainer returns true if the element looks like a cookie or
// consent banner, which university pages are fond of.
func isBoilerplateContainer(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && !strings.HasPrefix(key, "data-") && key != "aria-label" && key != "role" {
			continue
		}
		val := strings.ToLower(attr.Val)
		if containsAny(val, []string{"cookie", "consent", "gdpr"}) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func normalizeWhitespace(s string) string {
	// Collapse multiple spaces and blank lines
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
