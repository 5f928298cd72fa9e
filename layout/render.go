package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wisp/hypertext"
	"wisp/theme"
)

// Line is one rendered display line. Links lists the link widgets that
// landed on it, so the caller can map focus to a scroll position.
type Line struct {
	Text  string
	Links []*hypertext.Node
}

// Renderer lays a widget tree out at a fixed width. Rendering the same
// tree at the same width always produces the same lines; resizing means
// rendering again, focus identity is the caller's to keep.
type Renderer struct {
	width int
	th    *theme.Theme
}

// New returns a renderer for the given terminal width.
func New(width int, th *theme.Theme) *Renderer {
	if width < 1 {
		width = 1
	}
	if th == nil {
		th = theme.Plain()
	}
	return &Renderer{width: width, th: th}
}

// Render walks the tree and produces display lines. Exactly one widget
// renders in the focused style per call: the one focused points at.
func (r *Renderer) Render(root, focused *hypertext.Node) []Line {
	if root == nil {
		return nil
	}
	return r.node(root, r.width, focused)
}

// Height reports how many lines root occupies at the given width.
func Height(root *hypertext.Node, width int) int {
	return len(New(width, theme.Plain()).Render(root, nil))
}

func (r *Renderer) node(n *hypertext.Node, width int, focused *hypertext.Node) []Line {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case hypertext.KindBlock:
		inner := width
		if n.Framed {
			inner = width - frameOverhead
			if inner < 1 {
				inner = 1
			}
		}
		lines := r.children(n.Children, inner, focused)
		if n.Framed {
			return r.frame(lines, inner)
		}
		return lines

	case hypertext.KindRow:
		return r.inline(n.Children, width, focused)

	case hypertext.KindText, hypertext.KindLink, hypertext.KindField, hypertext.KindButton:
		return r.inline([]*hypertext.Node{n}, width, focused)

	case hypertext.KindListItem:
		return r.listItem(n, width)

	case hypertext.KindTableRow:
		return []Line{{Text: r.textStyle(n.Style).Render(n.Label())}}

	case hypertext.KindDivider:
		if n.Rule {
			return []Line{{Text: r.th.Rule.Render(strings.Repeat("─", width))}}
		}
		return nil
	}
	return nil
}

// children stacks block-level siblings with one blank line between
// them. Line-oriented runs (list items, table rows, code lines) stack
// without a gap, and a plain divider suppresses the gap around itself
// so text split by one lands on adjacent lines.
func (r *Renderer) children(nodes []*hypertext.Node, width int, focused *hypertext.Node) []Line {
	var out []Line
	var prev *hypertext.Node
	suppress := false
	for _, c := range nodes {
		if c == nil {
			continue
		}
		if c.Kind == hypertext.KindDivider && !c.Rule {
			suppress = true
			continue
		}
		lines := r.node(c, width, focused)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 && !suppress && !adjacent(prev, c) {
			out = append(out, Line{})
		}
		out = append(out, lines...)
		prev = c
		suppress = false
	}
	return out
}

func adjacent(prev, cur *hypertext.Node) bool {
	if prev == nil || cur == nil {
		return false
	}
	if prev.Kind != cur.Kind {
		return false
	}
	switch cur.Kind {
	case hypertext.KindListItem, hypertext.KindTableRow:
		return true
	case hypertext.KindText:
		return prev.Style&hypertext.StyleCode != 0 && cur.Style&hypertext.StyleCode != 0
	}
	return false
}

// inline packs a run of inline widgets into rows and renders each row
// as one line. Plain text is exploded into word widgets first; links,
// fields and buttons pack whole.
func (r *Renderer) inline(items []*hypertext.Node, width int, focused *hypertext.Node) []Line {
	var out []Line
	for _, row := range Pack(explode(items), width) {
		if len(row.Items) == 0 {
			continue
		}
		parts := make([]string, 0, len(row.Items))
		var links []*hypertext.Node
		for _, item := range row.Items {
			parts = append(parts, r.item(item, focused))
			if item.Kind == hypertext.KindLink {
				links = append(links, item)
			}
		}
		out = append(out, Line{Text: strings.Join(parts, " "), Links: links})
	}
	return out
}

func explode(items []*hypertext.Node) []*hypertext.Node {
	var out []*hypertext.Node
	for _, item := range items {
		if item.Kind != hypertext.KindText {
			out = append(out, item)
			continue
		}
		for _, word := range strings.Fields(item.Text) {
			out = append(out, &hypertext.Node{Kind: hypertext.KindText, Text: word, Style: item.Style})
		}
	}
	return out
}

func (r *Renderer) item(n, focused *hypertext.Node) string {
	label := n.Label()
	switch n.Kind {
	case hypertext.KindLink:
		if n == focused {
			return r.th.LinkFocused.Render(label)
		}
		return r.th.Link.Render(label)
	case hypertext.KindField, hypertext.KindButton:
		return r.th.Marker.Render(label)
	default:
		return r.textStyle(n.Style).Render(label)
	}
}

func (r *Renderer) textStyle(s hypertext.Style) lipgloss.Style {
	switch {
	case s&hypertext.StyleCode != 0:
		return r.th.Code
	case s&hypertext.StyleBold != 0:
		return r.th.Bold
	case s&hypertext.StyleItalic != 0:
		return r.th.Italic
	case s&hypertext.StyleUnderline != 0:
		return r.th.Underline
	}
	return r.th.Text
}

// listItem renders "marker text" with continuation lines indented under
// the text, not the marker.
func (r *Renderer) listItem(n *hypertext.Node, width int) []Line {
	indent := runewidth.StringWidth(n.Marker) + 1
	avail := width - indent
	if avail < 1 {
		avail = 1
	}
	words := explode([]*hypertext.Node{{Kind: hypertext.KindText, Text: n.Text, Style: n.Style}})
	var out []Line
	for i, row := range Pack(words, avail) {
		if len(row.Items) == 0 {
			continue
		}
		parts := make([]string, 0, len(row.Items))
		for _, item := range row.Items {
			parts = append(parts, r.textStyle(item.Style).Render(item.Text))
		}
		text := strings.Join(parts, " ")
		if i == 0 {
			text = r.th.Marker.Render(n.Marker) + " " + text
		} else {
			text = strings.Repeat(" ", indent) + text
		}
		out = append(out, Line{Text: text})
	}
	return out
}

// A frame costs two border cells and two padding cells per line.
const frameOverhead = 4

// frame wraps content lines in a rounded border sized to the content
// budget. Assembling the box by hand keeps the line count exact, which
// the link-to-line mapping depends on.
func (r *Renderer) frame(lines []Line, inner int) []Line {
	b := lipgloss.RoundedBorder()
	top := r.th.Frame.Render(b.TopLeft + strings.Repeat(b.Top, inner+2) + b.TopRight)
	bottom := r.th.Frame.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner+2) + b.BottomRight)
	left := r.th.Frame.Render(b.Left)
	right := r.th.Frame.Render(b.Right)

	out := make([]Line, 0, len(lines)+2)
	out = append(out, Line{Text: top})
	for _, ln := range lines {
		pad := inner - lipgloss.Width(ln.Text)
		if pad < 0 {
			pad = 0
		}
		out = append(out, Line{
			Text:  left + " " + ln.Text + strings.Repeat(" ", pad) + " " + right,
			Links: ln.Links,
		})
	}
	return append(out, Line{Text: bottom})
}
