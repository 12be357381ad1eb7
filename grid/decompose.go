package grid

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gsdoc/common"
)

// Options control merge geometry. Sizes are in sheet pixels, PixelsPerUnit
// converts them into physical units kept in cells and tables.
type Options struct {
	PixelsPerUnit      float64
	ColumnSeparator    float64
	RowSeparator       float64
	DefaultColumnWidth float64
	DefaultRowHeight   float64
	// StrictMerges turns merge consistency warnings into MergeError.
	StrictMerges bool
}

// DefaultOptions match spreadsheet defaults at screen resolution, sizes
// end up in inches.
func DefaultOptions() Options {
	return Options{
		PixelsPerUnit:      96,
		ColumnSeparator:    1,
		RowSeparator:       1,
		DefaultColumnWidth: 100,
		DefaultRowHeight:   21,
	}
}

// MergeWarning describes merged region inconsistent with grid data.
type MergeWarning struct {
	Sheet  string
	Merge  Merge
	Row    int
	Col    int
	Reason string
}

func (w MergeWarning) String() string {
	var b strings.Builder
	if w.Sheet != "" {
		fmt.Fprintf(&b, "%s: ", w.Sheet)
	}
	fmt.Fprintf(&b, "merge [%d,%d]-[%d,%d] at (%d,%d): %s",
		w.Merge.StartRow, w.Merge.StartCol, w.Merge.EndRow, w.Merge.EndCol, w.Row, w.Col, w.Reason)
	return b.String()
}

// MergeError is returned in strict mode instead of tolerating inconsistent
// merges.
type MergeError struct {
	Warnings []MergeWarning
}

func (e *MergeError) Error() string {
	msgs := make([]string, 0, len(e.Warnings))
	for _, w := range e.Warnings {
		msgs = append(msgs, w.String())
	}
	return "inconsistent merged regions: " + strings.Join(msgs, "; ")
}

const (
	reasonNoAnchor = "anchor cell is absent from grid"
	reasonInvalid  = "empty or inverted range"
	reasonContent  = "covered cell is not empty, content kept"
	reasonOverlap  = "cell already belongs to another merge"
)

// Decomposer resolves merge geometry of a grid and partitions its rows into
// table and paragraph blocks. It is not safe for concurrent use, warnings of
// the last call are kept in decomposer.
type Decomposer struct {
	opts     Options
	log      *zap.Logger
	sheet    string
	warnings []MergeWarning
}

func NewDecomposer(opts Options, log *zap.Logger) *Decomposer {
	def := DefaultOptions()
	if opts.PixelsPerUnit <= 0 {
		opts.PixelsPerUnit = def.PixelsPerUnit
	}
	if opts.DefaultColumnWidth <= 0 {
		opts.DefaultColumnWidth = def.DefaultColumnWidth
	}
	if opts.DefaultRowHeight <= 0 {
		opts.DefaultRowHeight = def.DefaultRowHeight
	}
	return &Decomposer{opts: opts, log: log.Named("grid")}
}

// Warnings returns merge consistency problems found by the last call.
func (d *Decomposer) Warnings() []MergeWarning {
	return d.warnings
}

// DecomposeSheet decomposes sheet grid. In strict mode any merge
// inconsistency results in *MergeError and no blocks.
func (d *Decomposer) DecomposeSheet(s *Sheet) ([]Block, error) {
	d.sheet = s.Name
	defer func() { d.sheet = "" }()

	blocks := d.Decompose(s.Rows, s.Merges, s.ColumnWidths)
	if d.opts.StrictMerges && len(d.warnings) > 0 {
		return nil, &MergeError{Warnings: d.warnings}
	}
	return blocks, nil
}

// Decompose turns rows into ordered blocks. Input is never modified: rows
// are cloned before merge geometry is applied.
func (d *Decomposer) Decompose(rows []Row, merges []Merge, columnWidths []float64) []Block {
	d.warnings = nil

	g := &layout{
		rows:   make([]Row, len(rows)),
		widths: columnWidths,
		opts:   &d.opts,
	}
	// anchors must be checked against grid as it was delivered
	present := make([]int, len(rows))
	for i := range rows {
		g.rows[i] = rows[i].clone()
		for c := range g.rows[i].Cells {
			g.rows[i].Cells[c].Merge = MergeSpec{}
			g.rows[i].Cells[c].Ghost = false
		}
		present[i] = len(rows[i].Cells)
	}
	anchors := make(map[[2]int]bool, len(merges))
	for _, m := range merges {
		switch {
		case !m.valid():
			d.warn(m, m.StartRow, m.StartCol, reasonInvalid)
		case m.StartRow >= len(present) || m.StartCol >= present[m.StartRow]:
			d.warn(m, m.StartRow, m.StartCol, reasonNoAnchor)
		case anchors[[2]int{m.StartRow, m.StartCol}] || g.rows[m.StartRow].Cells[m.StartCol].Merge.Spanned():
			d.warn(m, m.StartRow, m.StartCol, reasonOverlap)
		default:
			d.applyMerge(g, m, present)
			anchors[[2]int{m.StartRow, m.StartCol}] = true
		}
	}

	g.pad()
	for r := range g.rows {
		for c := range g.rows[r].Cells {
			cell := &g.rows[r].Cells[c]
			cell.Row, cell.Col = r, c
			cell.Empty = !cell.HasContent()
			if !anchors[[2]int{r, c}] {
				cell.EffectiveWidth = g.colWidth(c) / d.opts.PixelsPerUnit
				cell.EffectiveHeight = g.rowHeight(r) / d.opts.PixelsPerUnit
			}
			fitImage(cell, d.opts.PixelsPerUnit)
		}
	}
	return partition(g.rows, g.physicalWidths())
}

func (d *Decomposer) warn(m Merge, row, col int, reason string) {
	w := MergeWarning{Sheet: d.sheet, Merge: m, Row: row, Col: col, Reason: reason}
	d.warnings = append(d.warnings, w)
	d.log.Warn("Merge consistency problem",
		zap.String("sheet", d.sheet),
		zap.Int("row", row), zap.Int("col", col),
		zap.Int("start_row", m.StartRow), zap.Int("end_row", m.EndRow),
		zap.Int("start_col", m.StartCol), zap.Int("end_col", m.EndCol),
		zap.String("reason", reason))
}

func axisPos(i, start, end int) common.MergePos {
	switch {
	case end-start < 2:
		return common.MergePosNo
	case i == start:
		return common.MergePosFirstCell
	case i == end-1:
		return common.MergePosLastCell
	default:
		return common.MergePosInnerCell
	}
}

// applyMerge tags cells covered by merge and sizes its anchor. Cells which
// were not delivered with the grid become ghosts copying anchor format.
func (d *Decomposer) applyMerge(g *layout, m Merge, present []int) {
	g.ensureRows(m.EndRow)

	anchor := g.rows[m.StartRow].Cells[m.StartCol]
	for r := m.StartRow; r < m.EndRow; r++ {
		for c := m.StartCol; c < m.EndCol; c++ {
			tag := MergeSpec{
				MultiCol: axisPos(c, m.StartCol, m.EndCol),
				MultiRow: axisPos(r, m.StartRow, m.EndRow),
			}
			if r == m.StartRow && c == m.StartCol {
				continue
			}
			g.ensureCells(r, c+1)
			cell := &g.rows[r].Cells[c]
			if cell.Merge.Spanned() || cell.Ghost {
				d.warn(m, r, c, reasonOverlap)
				continue
			}
			if r >= len(present) || c >= present[r] {
				*cell = Cell{Row: r, Col: c, Format: anchor.Format, Empty: true, Ghost: true, Merge: tag}
				continue
			}
			if cell.HasContent() {
				d.warn(m, r, c, reasonContent)
			}
			cell.Merge = tag
		}
	}

	a := &g.rows[m.StartRow].Cells[m.StartCol]
	a.Merge = MergeSpec{
		MultiCol: axisPos(m.StartCol, m.StartCol, m.EndCol),
		MultiRow: axisPos(m.StartRow, m.StartRow, m.EndRow),
		ColSpan:  m.ColSpan(),
		RowSpan:  m.RowSpan(),
	}
	var w, h float64
	for c := m.StartCol; c < m.EndCol; c++ {
		w += g.colWidth(c)
	}
	for r := m.StartRow; r < m.EndRow; r++ {
		h += g.rowHeight(r)
	}
	w -= float64(m.ColSpan()-1) * d.opts.ColumnSeparator
	h -= float64(m.RowSpan()-1) * d.opts.RowSeparator
	a.EffectiveWidth = w / d.opts.PixelsPerUnit
	a.EffectiveHeight = h / d.opts.PixelsPerUnit
}

// fitImage sizes image to its cell, custom size is explicit and original
// size is left to renderer.
func fitImage(c *Cell, ppu float64) {
	if c.Image == nil {
		return
	}
	switch c.Image.Mode {
	case ImageModeCustom:
		c.Image.FitWidth = c.Image.Width / ppu
		c.Image.FitHeight = c.Image.Height / ppu
	case ImageModeOrigin:
		c.Image.FitWidth, c.Image.FitHeight = 0, 0
	default:
		c.Image.FitWidth = c.EffectiveWidth
		c.Image.FitHeight = c.EffectiveHeight
	}
}

// partition splits rows into blocks in strict row order. Out-of-table rows
// become paragraphs, table start rows close current table and open a new
// one.
func partition(rows []Row, widths []float64) []Block {
	var (
		blocks []Block
		start  int
		header int
		brk    bool
	)
	flush := func(end int) {
		if end <= start {
			return
		}
		blocks = append(blocks, Block{
			Kind: common.BlockKindTable,
			Table: &Table{
				Rows:         rows[start:end:end],
				ColumnWidths: widths,
				HeaderRows:   min(header, end-start),
				PageBreak:    brk,
			},
		})
	}

	for i, row := range rows {
		switch {
		case row.Directives.OutOfTable:
			flush(i)
			blocks = append(blocks, Block{Kind: common.BlockKindParagraph, Paragraph: &Paragraph{Row: row}})
			start, header, brk = i+1, 0, false
		case row.Directives.TableStart():
			flush(i)
			start, header, brk = i, row.Directives.RepeatRows, row.Directives.NewPage
		}
	}
	flush(len(rows))
	return blocks
}

// layout is working copy of the grid.
type layout struct {
	rows   []Row
	widths []float64
	opts   *Options
}

func (g *layout) colWidth(c int) float64 {
	if c < len(g.widths) && g.widths[c] > 0 {
		return g.widths[c]
	}
	return g.opts.DefaultColumnWidth
}

func (g *layout) rowHeight(r int) float64 {
	if r < len(g.rows) && g.rows[r].Height > 0 {
		return g.rows[r].Height
	}
	return g.opts.DefaultRowHeight
}

func (g *layout) ensureRows(n int) {
	for i := len(g.rows); i < n; i++ {
		g.rows = append(g.rows, Row{Index: i})
	}
}

// ensureCells extends row with cells which are not part of anything yet,
// they are replaced or padded later.
func (g *layout) ensureCells(r, n int) {
	for c := len(g.rows[r].Cells); c < n; c++ {
		g.rows[r].Cells = append(g.rows[r].Cells, Cell{Row: r, Col: c, Empty: true})
	}
}

func (g *layout) columns() int {
	n := len(g.widths)
	for _, r := range g.rows {
		n = max(n, len(r.Cells))
	}
	return n
}

// pad fills grid holes so every row has full column count.
func (g *layout) pad() {
	n := g.columns()
	for r := range g.rows {
		g.ensureCells(r, n)
	}
}

func (g *layout) physicalWidths() []float64 {
	out := make([]float64, g.columns())
	for c := range out {
		out[c] = g.colWidth(c) / g.opts.PixelsPerUnit
	}
	return out
}
