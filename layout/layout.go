// Package layout flows widget trees into terminal lines. Packing is
// greedy: widgets fill a row left to right and wrap to the next row
// when the column budget runs out. Widgets are indivisible packing
// units, so a link never splits across rows; the renderer pre-splits
// plain prose into word widgets before packing so ordinary text still
// wraps like text.
package layout

import "wisp/hypertext"

// Row is one packed line of widgets. Width counts the widgets plus the
// single-column separators between them.
type Row struct {
	Items []*hypertext.Node
	Width int
}

// Pack distributes items over rows of at most columns cells. A widget
// wider than the budget gets a row of its own, untruncated. Zero items
// produce a single empty row. A budget below one column is treated as
// one.
func Pack(items []*hypertext.Node, columns int) []Row {
	if columns < 1 {
		columns = 1
	}
	var rows []Row
	var row Row
	for _, item := range items {
		w := item.Width()
		need := w
		if len(row.Items) > 0 {
			need++ // separator
		}
		if len(row.Items) > 0 && row.Width+need > columns {
			rows = append(rows, row)
			row = Row{}
			need = w
		}
		row.Items = append(row.Items, item)
		row.Width += need
	}
	return append(rows, row)
}
