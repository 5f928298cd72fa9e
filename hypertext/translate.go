package hypertext

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Translate converts a parsed HTML subtree into a widget tree. It is a
// pure function of its input: the same DOM and base URL always produce
// a structurally identical tree. Nodes carrying nothing renderable
// translate to nil.
func Translate(n *html.Node, base *url.URL) *Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.DocumentNode:
		return container(n, base, false)
	case html.TextNode:
		text := collapse(n.Data)
		if text == "" {
			return nil
		}
		return &Node{Kind: KindText, Text: text}
	case html.ElementNode:
		return translateElement(n, base)
	default:
		return nil
	}
}

func translateElement(n *html.Node, base *url.URL) *Node {
	switch n.Data {
	case "script", "style", "meta", "link", "head", "template", "title":
		return nil

	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := collapse(textContent(n))
		if text == "" {
			return nil
		}
		return &Node{Kind: KindText, Text: text, Style: StyleBold}

	case "p":
		return container(n, base, true)

	case "br":
		return &Node{Kind: KindDivider}

	case "hr":
		return &Node{Kind: KindDivider, Rule: true}

	case "em", "i":
		return styled(n, StyleItalic)

	case "strong", "b":
		return styled(n, StyleBold)

	case "abbr", "u", "ins":
		return styled(n, StyleUnderline)

	case "code", "tt", "kbd", "samp":
		return styled(n, StyleCode)

	case "pre":
		return codeBlock(n)

	case "a":
		text := collapse(textContent(n))
		if text == "" {
			return nil
		}
		href := attr(n, "href")
		if href == "" {
			return &Node{Kind: KindText, Text: text}
		}
		return &Node{Kind: KindLink, Text: text, URL: resolveRef(base, href)}

	case "ul":
		return list(n, false)
	case "ol":
		return list(n, true)

	case "img":
		alt := collapse(attr(n, "alt"))
		if alt == "" {
			return nil
		}
		return &Node{Kind: KindText, Text: alt, Style: StyleItalic}

	case "table":
		return table(n)

	case "center", "noscript":
		return firstChildWidget(n, base)

	case "input":
		switch attr(n, "type") {
		case "submit", "button":
			return &Node{Kind: KindButton, Text: buttonLabel(n)}
		case "hidden":
			return nil
		}
		return &Node{Kind: KindField, Text: fieldLabel(n)}

	case "button":
		label := collapse(textContent(n))
		if label == "" {
			label = "submit"
		}
		return &Node{Kind: KindButton, Text: label}

	default:
		// Unknown and generic container tags keep their translated
		// children so structure is never silently dropped.
		return container(n, base, false)
	}
}

// container translates the children of n into a block widget. Blocks
// with nothing in them translate to nil.
func container(n *html.Node, base *url.URL, framed bool) *Node {
	children := translateChildren(n, base)
	if len(children) == 0 {
		return nil
	}
	return &Node{Kind: KindBlock, Framed: framed, Children: children}
}

// translateChildren translates the direct children of n, flowing
// consecutive inline results into Row widgets so the layout engine can
// pack them side by side.
func translateChildren(n *html.Node, base *url.URL) []*Node {
	var out, run []*Node
	flush := func() {
		if len(run) == 1 {
			out = append(out, run[0])
		} else if len(run) > 1 {
			out = append(out, &Node{Kind: KindRow, Children: run})
		}
		run = nil
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if inlineWrapper(c) {
				// span-like wrappers contribute their contents to the
				// surrounding text rather than a widget of their own
				walk(c)
				continue
			}
			w := Translate(c, base)
			if w == nil {
				continue
			}
			if inlineSource(c) {
				run = append(run, w)
			} else {
				flush()
				out = append(out, w)
			}
		}
	}
	walk(n)
	flush()
	return out
}

func inlineWrapper(c *html.Node) bool {
	if c.Type != html.ElementNode {
		return false
	}
	switch c.Data {
	case "span", "label", "small", "sub", "sup", "s", "mark", "font", "time", "cite":
		return true
	}
	return false
}

func inlineSource(c *html.Node) bool {
	if c.Type == html.TextNode {
		return true
	}
	if c.Type != html.ElementNode {
		return false
	}
	switch c.Data {
	case "a", "em", "i", "strong", "b", "abbr", "u", "ins", "code", "tt", "kbd", "samp", "img", "input", "button":
		return true
	}
	return false
}

// styled flattens an inline styling element to a single text widget.
func styled(n *html.Node, s Style) *Node {
	text := collapse(textContent(n))
	if text == "" {
		return nil
	}
	return &Node{Kind: KindText, Text: text, Style: s}
}

// codeBlock keeps the line structure of preformatted text.
func codeBlock(n *html.Node) *Node {
	var children []*Node
	for _, line := range strings.Split(textContent(n), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		children = append(children, &Node{Kind: KindText, Text: line, Style: StyleCode})
	}
	if len(children) == 0 {
		return nil
	}
	return &Node{Kind: KindBlock, Children: children}
}

// list flattens each item to one marked text line.
func list(n *html.Node, ordered bool) *Node {
	var children []*Node
	item := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		text := collapse(textContent(c))
		if text == "" {
			continue
		}
		item++
		marker := "•"
		if ordered {
			marker = strconv.Itoa(item) + "."
		}
		children = append(children, &Node{Kind: KindListItem, Text: text, Marker: marker})
	}
	if len(children) == 0 {
		return nil
	}
	return &Node{Kind: KindBlock, Children: children}
}

// table flattens to one plain text row per tr; no column alignment.
func table(n *html.Node) *Node {
	var rows []*Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "tr" {
				if row := tableRow(c); row != nil {
					rows = append(rows, row)
				}
				continue
			}
			walk(c)
		}
	}
	walk(n)
	if len(rows) == 0 {
		return nil
	}
	return &Node{Kind: KindBlock, Children: rows}
}

func tableRow(tr *html.Node) *Node {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, collapse(textContent(c)))
		}
	}
	if len(cells) == 0 {
		return nil
	}
	return &Node{Kind: KindTableRow, Cells: cells}
}

// firstChildWidget unwraps presentational containers to their first
// meaningful child.
func firstChildWidget(n *html.Node, base *url.URL) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if w := Translate(c, base); w != nil {
			return w
		}
	}
	return nil
}

func fieldLabel(n *html.Node) string {
	for _, key := range []string{"placeholder", "name", "value"} {
		if v := collapse(attr(n, key)); v != "" {
			return v
		}
	}
	return "input"
}

func buttonLabel(n *html.Node) string {
	if v := collapse(attr(n, "value")); v != "" {
		return v
	}
	return "submit"
}

// resolveRef makes href absolute against the page URL. Unparseable
// hrefs are kept as written.
func resolveRef(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// collapse reduces every run of whitespace to a single space and trims
// the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
