package layout

import (
	"testing"

	"wisp/hypertext"
)

func text(s string) *hypertext.Node {
	return &hypertext.Node{Kind: hypertext.KindText, Text: s}
}

func link(s, url string) *hypertext.Node {
	return &hypertext.Node{Kind: hypertext.KindLink, Text: s, URL: url}
}

func rowTexts(r Row) []string {
	out := make([]string, 0, len(r.Items))
	for _, n := range r.Items {
		out = append(out, n.Label())
	}
	return out
}

func TestPackFillsRowsGreedily(t *testing.T) {
	items := []*hypertext.Node{text("ab"), text("cd"), text("ef")}
	rows := Pack(items, 5)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rowTexts(rows[0]); len(got) != 2 || got[0] != "ab" || got[1] != "cd" {
		t.Errorf("row 0 = %v", got)
	}
	if rows[0].Width != 5 {
		t.Errorf("row 0 width = %d, want 5 (two widgets plus separator)", rows[0].Width)
	}
	if got := rowTexts(rows[1]); len(got) != 1 || got[0] != "ef" {
		t.Errorf("row 1 = %v", got)
	}
}

func TestPackSeparatorArithmetic(t *testing.T) {
	// Two 2-cell widgets need 5 columns: 2 + 1 separator + 2.
	items := []*hypertext.Node{text("ab"), text("cd")}

	if rows := Pack(items, 4); len(rows) != 2 {
		t.Errorf("at 4 columns got %d rows, want 2", len(rows))
	}
	if rows := Pack(items, 5); len(rows) != 1 {
		t.Errorf("at 5 columns got %d rows, want 1", len(rows))
	}
}

func TestPackOversizedWidgetOwnsRow(t *testing.T) {
	items := []*hypertext.Node{text("a"), link("considerable", "http://x"), text("b")}
	rows := Pack(items, 3)

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	mid := rows[1]
	if len(mid.Items) != 1 || mid.Items[0].Kind != hypertext.KindLink {
		t.Fatalf("oversized widget shares row %v", rowTexts(mid))
	}
	if mid.Items[0].Text != "considerable" {
		t.Errorf("oversized widget truncated to %q", mid.Items[0].Text)
	}
}

func TestPackEmptyInput(t *testing.T) {
	rows := Pack(nil, 10)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want one empty row", len(rows))
	}
	if len(rows[0].Items) != 0 || rows[0].Width != 0 {
		t.Errorf("empty row = %+v", rows[0])
	}
}

func TestPackNarrowColumnsFloor(t *testing.T) {
	items := []*hypertext.Node{text("a"), text("b")}
	for _, columns := range []int{1, 0, -3} {
		rows := Pack(items, columns)
		if len(rows) != 2 {
			t.Errorf("columns=%d: rows = %d, want 2 (one widget per row)", columns, len(rows))
		}
	}
}

func TestPackLinkNeverSplits(t *testing.T) {
	items := []*hypertext.Node{text("go"), link("a very long link label", "http://x")}
	rows := Pack(items, 10)

	for _, r := range rows {
		for _, n := range r.Items {
			if n.Kind == hypertext.KindLink && n.Text != "a very long link label" {
				t.Fatalf("link label split: %q", n.Text)
			}
		}
	}
}
