package hypertext

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"wisp/dom"
)

// translateBody parses an HTML fragment and translates its body.
func translateBody(t *testing.T, fragment string) *Node {
	t.Helper()
	doc, err := dom.ParseString("<html><body>" + fragment + "</body></html>")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	base, err := url.Parse("https://example.com/dir/page.html")
	if err != nil {
		t.Fatalf("parsing base url: %v", err)
	}
	return Translate(dom.Extract(doc), base)
}

func findKind(root *Node, kind Kind) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == kind {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func TestTranslateDeterministic(t *testing.T) {
	fragment := `<h1>Title</h1><p>Some <em>styled</em> text with a
		<a href="/link">link</a>.</p><ul><li>one</li><li>two</li></ul>`

	doc, err := dom.ParseString("<html><body>" + fragment + "</body></html>")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	base, _ := url.Parse("https://example.com/")
	root := dom.Extract(doc)

	first := Translate(root, base)
	second := Translate(root, base)
	if !reflect.DeepEqual(first, second) {
		t.Error("translating the same DOM twice produced different trees")
	}
}

func TestTranslateHeadings(t *testing.T) {
	for _, tag := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		root := translateBody(t, "<"+tag+">Heading  Text</"+tag+">")
		texts := findKind(root, KindText)
		if len(texts) != 1 {
			t.Fatalf("%s: expected 1 text widget, got %d", tag, len(texts))
		}
		if texts[0].Text != "Heading Text" {
			t.Errorf("%s: text = %q, want %q", tag, texts[0].Text, "Heading Text")
		}
		if texts[0].Style&StyleBold == 0 {
			t.Errorf("%s: heading lost its emphasis style", tag)
		}
	}
}

func TestTranslateParagraph(t *testing.T) {
	root := translateBody(t, `<p>Hello <a href="http://x">there</a></p>`)

	blocks := findKind(root, KindBlock)
	var para *Node
	for _, b := range blocks {
		if b.Framed {
			para = b
			break
		}
	}
	if para == nil {
		t.Fatal("paragraph did not produce a framed block")
	}
	if len(para.Children) != 1 || para.Children[0].Kind != KindRow {
		t.Fatalf("inline-mixed paragraph content should form one row, got %+v", para.Children)
	}
	row := para.Children[0]
	if len(row.Children) != 2 {
		t.Fatalf("row children = %d, want 2", len(row.Children))
	}
	if row.Children[0].Kind != KindText || row.Children[0].Text != "Hello" {
		t.Errorf("first item = %v %q, want text \"Hello\"", row.Children[0].Kind, row.Children[0].Text)
	}
	link := row.Children[1]
	if link.Kind != KindLink || link.Text != "there" || link.URL != "http://x" {
		t.Errorf("link item = %+v, want link \"there\" -> http://x", link)
	}
}

func TestTranslateInlineStyles(t *testing.T) {
	tests := []struct {
		fragment string
		style    Style
	}{
		{"<em>word</em>", StyleItalic},
		{"<i>word</i>", StyleItalic},
		{"<strong>word</strong>", StyleBold},
		{"<b>word</b>", StyleBold},
		{"<abbr>word</abbr>", StyleUnderline},
		{"<code>word</code>", StyleCode},
		{"<kbd>word</kbd>", StyleCode},
	}
	for _, tt := range tests {
		root := translateBody(t, tt.fragment)
		texts := findKind(root, KindText)
		if len(texts) != 1 {
			t.Fatalf("%s: expected 1 text widget, got %d", tt.fragment, len(texts))
		}
		if texts[0].Style&tt.style == 0 {
			t.Errorf("%s: style = %v, want %v set", tt.fragment, texts[0].Style, tt.style)
		}
	}
}

func TestTranslateAnchor(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		wantURL  string
	}{
		{"absolute", `<a href="http://x/y">go</a>`, "http://x/y"},
		{"relative", `<a href="other">go</a>`, "https://example.com/dir/other"},
		{"parent relative", `<a href="../up">go</a>`, "https://example.com/up"},
		{"rooted", `<a href="/abs">go</a>`, "https://example.com/abs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := translateBody(t, tt.fragment)
			links := findKind(root, KindLink)
			if len(links) != 1 {
				t.Fatalf("expected 1 link, got %d", len(links))
			}
			if links[0].URL != tt.wantURL {
				t.Errorf("url = %q, want %q", links[0].URL, tt.wantURL)
			}
		})
	}
}

func TestTranslateAnchorDegenerate(t *testing.T) {
	// No text: nothing to focus, no widget.
	root := translateBody(t, `<a href="http://x"></a>`)
	if links := findKind(root, KindLink); len(links) != 0 {
		t.Errorf("empty anchor produced %d link widgets", len(links))
	}

	// No href: degrades to plain text.
	root = translateBody(t, `<a>just text</a>`)
	if links := findKind(root, KindLink); len(links) != 0 {
		t.Errorf("hrefless anchor produced %d link widgets", len(links))
	}
	texts := findKind(root, KindText)
	if len(texts) != 1 || texts[0].Text != "just text" {
		t.Errorf("hrefless anchor did not degrade to text: %+v", texts)
	}
}

func TestTranslateUnorderedList(t *testing.T) {
	root := translateBody(t, `<ul><li>first</li><li>second <div>nested block</div></li></ul>`)
	items := findKind(root, KindListItem)
	if len(items) != 2 {
		t.Fatalf("expected 2 list items, got %d", len(items))
	}
	if items[0].Marker != "•" || items[0].Text != "first" {
		t.Errorf("item 0 = %q %q", items[0].Marker, items[0].Text)
	}
	// Nested block content is flattened to plain text.
	if items[1].Text != "second nested block" {
		t.Errorf("item 1 text = %q, want flattened %q", items[1].Text, "second nested block")
	}
}

func TestTranslateOrderedList(t *testing.T) {
	root := translateBody(t, `<ol><li>one</li><li>two</li><li>three</li></ol>`)
	items := findKind(root, KindListItem)
	if len(items) != 3 {
		t.Fatalf("expected 3 list items, got %d", len(items))
	}
	for i, want := range []string{"1.", "2.", "3."} {
		if items[i].Marker != want {
			t.Errorf("item %d marker = %q, want %q", i, items[i].Marker, want)
		}
	}
}

func TestTranslateImage(t *testing.T) {
	root := translateBody(t, `<img src="pic.png" alt="a painting">`)
	texts := findKind(root, KindText)
	if len(texts) != 1 || texts[0].Text != "a painting" {
		t.Fatalf("img alt widget = %+v", texts)
	}

	root = translateBody(t, `<img src="pic.png">`)
	if root != nil && len(findKind(root, KindText)) != 0 {
		t.Error("alt-less image should produce no widget")
	}
}

func TestTranslateTable(t *testing.T) {
	root := translateBody(t, `<table>
		<tr><th>name</th><th>value</th></tr>
		<tr><td>a</td><td>1</td></tr>
	</table>`)
	rows := findKind(root, KindTableRow)
	if len(rows) != 2 {
		t.Fatalf("expected 2 table rows, got %d", len(rows))
	}
	if got := rows[1].Label(); got != "a | 1" {
		t.Errorf("row label = %q, want %q", got, "a | 1")
	}
}

func TestTranslateIgnorables(t *testing.T) {
	root := translateBody(t, `<script>alert(1)</script><style>p{}</style><meta name="x">`)
	if root != nil {
		t.Errorf("ignorable-only body should translate to nil, got %+v", root)
	}
}

func TestTranslateUnwrapsPresentational(t *testing.T) {
	root := translateBody(t, `<center>  <p>centered</p><p>dropped</p></center>`)
	blocks := findKind(root, KindBlock)
	framed := 0
	for _, b := range blocks {
		if b.Framed {
			framed++
		}
	}
	if framed != 1 {
		t.Errorf("center should keep only its first meaningful child, got %d paragraphs", framed)
	}
}

func TestTranslateUnknownTagKeepsChildren(t *testing.T) {
	root := translateBody(t, `<figure><p>caption text</p></figure>`)
	texts := findKind(root, KindText)
	if len(texts) != 1 || texts[0].Text != "caption text" {
		t.Errorf("unknown tag dropped its children: %+v", texts)
	}
}

func TestTranslateFormPlaceholders(t *testing.T) {
	root := translateBody(t, `<form>
		<input type="text" placeholder="query">
		<input type="hidden" name="token" value="x">
		<input type="submit" value="Go">
		<button>Send</button>
	</form>`)

	fields := findKind(root, KindField)
	if len(fields) != 1 || fields[0].Text != "query" {
		t.Fatalf("fields = %+v, want one labeled \"query\"", fields)
	}
	buttons := findKind(root, KindButton)
	if len(buttons) != 2 {
		t.Fatalf("expected 2 buttons, got %d", len(buttons))
	}
	if buttons[0].Text != "Go" || buttons[1].Text != "Send" {
		t.Errorf("button labels = %q, %q", buttons[0].Text, buttons[1].Text)
	}
}

func TestTranslateDividers(t *testing.T) {
	root := translateBody(t, `<p>a</p><hr><p>b</p>`)
	divs := findKind(root, KindDivider)
	if len(divs) != 1 || !divs[0].Rule {
		t.Fatalf("hr widget = %+v, want one rule divider", divs)
	}

	root = translateBody(t, `<div>line one<br>line two</div>`)
	divs = findKind(root, KindDivider)
	if len(divs) != 1 || divs[0].Rule {
		t.Fatalf("br widget = %+v, want one plain divider", divs)
	}
}

func TestTranslateCollapsesWhitespace(t *testing.T) {
	root := translateBody(t, "<p>spread\n\t\tover   several\n lines</p>")
	texts := findKind(root, KindText)
	if len(texts) != 1 {
		t.Fatalf("expected 1 text widget, got %d", len(texts))
	}
	if texts[0].Text != "spread over several lines" {
		t.Errorf("text = %q", texts[0].Text)
	}
}

func TestTranslatePre(t *testing.T) {
	root := translateBody(t, "<pre>func main() {\n\tgo run()\n}</pre>")
	texts := findKind(root, KindText)
	if len(texts) != 3 {
		t.Fatalf("expected 3 code lines, got %d", len(texts))
	}
	for _, n := range texts {
		if n.Style&StyleCode == 0 {
			t.Errorf("code line %q lost fixed-width style", n.Text)
		}
	}
}

func TestLabelDecoration(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{&Node{Kind: KindText, Text: "plain"}, "plain"},
		{&Node{Kind: KindLink, Text: "go", URL: "http://x"}, "go"},
		{&Node{Kind: KindField, Text: "query"}, "[query]"},
		{&Node{Kind: KindButton, Text: "Send"}, "[ Send ]"},
		{&Node{Kind: KindListItem, Marker: "•", Text: "item"}, "• item"},
		{&Node{Kind: KindTableRow, Cells: []string{"a", "b"}}, "a | b"},
	}
	for _, tt := range tests {
		if got := tt.node.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
		if want := runewidth.StringWidth(tt.want); tt.node.Width() != want {
			t.Errorf("Width(%q) = %d, want %d", tt.want, tt.node.Width(), want)
		}
	}
}

func TestErrorDocumentAlwaysRenders(t *testing.T) {
	doc := ErrorDocument("https://down.example", errTest("connection refused"))
	if doc == nil || doc.Kind != KindBlock || len(doc.Children) == 0 {
		t.Fatalf("error document = %+v", doc)
	}
	plain := doc.Plain()
	for _, want := range []string{"https://down.example", "connection refused"} {
		if !strings.Contains(plain, want) {
			t.Errorf("error document %q missing %q", plain, want)
		}
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
