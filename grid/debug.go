package grid

import (
	"fmt"
	"strings"

	"gsdoc/common"
	"gsdoc/utils/debug"
)

// Dump returns human readable block structure, used in debug reports.
func Dump(blocks []Block) string {
	tw := debug.NewTreeWriter()
	DumpTo(tw, 0, blocks)
	return tw.String()
}

// DumpTo appends block structure to tree writer at given depth.
func DumpTo(tw *debug.TreeWriter, depth int, blocks []Block) {
	for i, b := range blocks {
		switch b.Kind {
		case common.BlockKindTable:
			tw.Line(depth, "Block[%d] table rows=%d header=%d widths=%s page-break=%t",
				i, len(b.Table.Rows), b.Table.HeaderRows, formatWidths(b.Table.ColumnWidths), b.Table.PageBreak)
			for _, r := range b.Table.Rows {
				dumpRow(tw, depth+1, r)
			}
		case common.BlockKindParagraph:
			tw.Line(depth, "Block[%d] paragraph", i)
			dumpRow(tw, depth+1, b.Paragraph.Row)
		}
	}
}

func dumpRow(tw *debug.TreeWriter, depth int, r Row) {
	tw.Line(depth, "Row[%d] height=%.1f", r.Index, r.Height)
	for _, c := range r.Cells {
		if c.Empty && !c.Merge.Spanned() {
			continue
		}
		var attrs []string
		if c.Merge.Spanned() {
			attrs = append(attrs, fmt.Sprintf("merge=%s/%s", c.Merge.MultiRow, c.Merge.MultiCol))
			if c.Merge.RowSpan > 0 {
				attrs = append(attrs, fmt.Sprintf("span=%dx%d", c.Merge.RowSpan, c.Merge.ColSpan))
			}
		}
		if c.Ghost {
			attrs = append(attrs, "ghost")
		}
		if c.Image != nil {
			attrs = append(attrs, fmt.Sprintf("image=%q mode=%d fit=%.2fx%.2f", c.Image.Source, c.Image.Mode, c.Image.FitWidth, c.Image.FitHeight))
		}
		tw.Line(depth+1, "Cell[%d,%d] %.2fx%.2f %s", c.Row, c.Col, c.EffectiveWidth, c.EffectiveHeight, strings.Join(attrs, " "))
		tw.OptionalText(depth+2, "text", c.Text())
		tw.OptionalText(depth+2, "link", c.Hyperlink)
	}
}

func formatWidths(w []float64) string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
