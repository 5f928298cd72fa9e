package ui

import (
	"fmt"
	"html"
	"strings"

	"wisp/bookmarks"
	"wisp/dom"
	"wisp/fetch"
	"wisp/hypertext"
)

// Landing returns the start page for callers outside the update loop,
// such as print mode. Key hints use the built-in bindings.
func Landing(marks *bookmarks.Store) *fetch.Page {
	return landing(marks, newKeymap(nil))
}

// landing builds the page shown when the browser starts with nothing
// to load: a short banner plus the bookmark list as followable links.
// It goes through the same parse and translate pipeline as a fetched
// page so the focus ring and renderer treat it like any other document.
func landing(marks *bookmarks.Store, keys keymap) *fetch.Page {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html>
<html>
<head><title>wisp</title></head>
<body>
<main>
<h1>wisp</h1>
`)
	fmt.Fprintf(&sb, "<p>Press <code>%s</code> to open a URL or search, <code>%s</code> for all keys.</p>\n",
		html.EscapeString(keys.Open.Help().Key), html.EscapeString(keys.Help.Help().Key))

	if marks != nil && marks.Len() > 0 {
		sb.WriteString("<h2>Bookmarks</h2>\n")
		// Lists flatten their items to text, so each bookmark gets its
		// own block to stay a followable link.
		for _, u := range marks.All() {
			fmt.Fprintf(&sb, "<div><a href=%q>%s</a></div>\n", u, html.EscapeString(u))
		}
	} else {
		fmt.Fprintf(&sb, "<p><em>No bookmarks yet. Press %s on a page to add one.</em></p>\n",
			html.EscapeString(keys.Bookmark.Help().Key))
	}
	sb.WriteString("</main>\n</body>\n</html>\n")

	doc, err := dom.ParseString(sb.String())
	if err != nil {
		return &fetch.Page{Title: "wisp", Doc: hypertext.ErrorDocument("start page", err)}
	}
	return &fetch.Page{Title: "wisp", Doc: hypertext.Translate(dom.Extract(doc), nil)}
}
