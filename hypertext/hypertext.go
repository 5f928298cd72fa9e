// Package hypertext models a page as a tree of terminal widgets and
// translates parsed HTML into that form.
package hypertext

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Kind identifies the widget variant. The set is closed: layout and
// rendering switch over it exhaustively.
type Kind int

const (
	KindText Kind = iota
	KindLink
	KindBlock
	KindRow
	KindDivider
	KindListItem
	KindTableRow
	KindField
	KindButton
)

// Style is a bit set of text attributes.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUnderline
	StyleCode
)

// Node is one widget in the page tree. Trees are built by Translate
// (or by the small builders below) and never mutated afterwards.
type Node struct {
	Kind     Kind
	Text     string
	Style    Style
	URL      string   // KindLink target, absolute
	Marker   string   // KindListItem bullet or ordinal
	Cells    []string // KindTableRow cell texts
	Framed   bool     // KindBlock paragraph border
	Rule     bool     // KindDivider horizontal rule
	Children []*Node
}

// Label returns the exact text the widget displays inline. Interactive
// placeholders carry their bracket decoration so packing and rendering
// agree on widths.
func (n *Node) Label() string {
	switch n.Kind {
	case KindField:
		return "[" + n.Text + "]"
	case KindButton:
		return "[ " + n.Text + " ]"
	case KindListItem:
		return n.Marker + " " + n.Text
	case KindTableRow:
		return strings.Join(n.Cells, " | ")
	default:
		return n.Text
	}
}

// Width returns the display width of Label in terminal cells.
func (n *Node) Width() int {
	return runewidth.StringWidth(n.Label())
}

// Plain returns the text content of the subtree with no styling.
func (n *Node) Plain() string {
	var sb strings.Builder
	n.appendPlain(&sb)
	return sb.String()
}

func (n *Node) appendPlain(sb *strings.Builder) {
	if n.Kind == KindTableRow {
		sb.WriteString(strings.Join(n.Cells, " | "))
		return
	}
	if n.Text != "" {
		sb.WriteString(n.Text)
	}
	for _, c := range n.Children {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		c.appendPlain(sb)
	}
}

// ErrorDocument builds the page shown in place of one that could not
// be loaded. The browser keeps running; the failure is just content.
func ErrorDocument(url string, err error) *Node {
	return &Node{Kind: KindBlock, Children: []*Node{
		{Kind: KindText, Text: "Unable to load " + url, Style: StyleBold},
		{Kind: KindDivider},
		{Kind: KindText, Text: err.Error()},
	}}
}
