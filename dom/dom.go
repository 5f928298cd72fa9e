// Package dom parses HTML and picks out the readable content subtree.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// boilerplate matches the page chrome stripped before translation:
// scripts, styles, embedded media shells, navigation rails and the
// site-level header/footer bands.
const boilerplate = "script, style, iframe, svg, canvas, nav, aside, [hidden], body > header, body > footer"

// contentRoots are tried in order when looking for the article body.
var contentRoots = []string{"article", "main", "[role=main]", "body"}

// Parse builds a DOM from HTML. The tree is read-only to everything
// downstream of Extract.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString parses HTML from a string.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Title returns the page title, preferring <title> over og:title.
// Call before Extract, which may drop the head.
func Title(doc *html.Node) string {
	gq := goquery.NewDocumentFromNode(doc)
	if t := collapse(gq.Find("title").First().Text()); t != "" {
		return t
	}
	return collapse(gq.Find(`meta[property="og:title"]`).AttrOr("content", ""))
}

// Extract strips boilerplate from the document and returns the node
// that holds the readable content: the first article, main or body
// element, falling back to the document itself.
func Extract(doc *html.Node) *html.Node {
	gq := goquery.NewDocumentFromNode(doc)
	gq.Find(boilerplate).Remove()

	for _, sel := range contentRoots {
		if s := gq.Find(sel).First(); s.Length() > 0 {
			return s.Nodes[0]
		}
	}
	return doc
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
