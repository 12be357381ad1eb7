// Package grid is the format-neutral model of a worksheet (cells, rows,
// merged regions) and the decomposer turning a grid into renderable table
// and paragraph blocks.
package grid

import (
	"slices"

	"gsdoc/common"
)

type Font struct {
	Family    string  `yaml:"family,omitempty"`
	Size      float64 `yaml:"size,omitempty"`
	Bold      bool    `yaml:"bold,omitempty"`
	Italic    bool    `yaml:"italic,omitempty"`
	Underline bool    `yaml:"underline,omitempty"`
	Strike    bool    `yaml:"strike,omitempty"`
	Color     string  `yaml:"color,omitempty"`
}

type Fill struct {
	Color   string `yaml:"color,omitempty"`
	Pattern int    `yaml:"pattern,omitempty"`
}

type Border struct {
	Style int    `yaml:"style,omitempty"`
	Color string `yaml:"color,omitempty"`
}

type Borders struct {
	Left   Border `yaml:"left,omitempty"`
	Top    Border `yaml:"top,omitempty"`
	Right  Border `yaml:"right,omitempty"`
	Bottom Border `yaml:"bottom,omitempty"`
}

type Align struct {
	Horizontal string `yaml:"horizontal,omitempty"`
	Vertical   string `yaml:"vertical,omitempty"`
	Wrap       bool   `yaml:"wrap,omitempty"`
	Indent     int    `yaml:"indent,omitempty"`
	Rotation   int    `yaml:"rotation,omitempty"`
}

// Format is visual cell format. It is a plain value so ghost cells can copy
// it from merge anchor by assignment.
type Format struct {
	Font    Font    `yaml:"font,omitempty"`
	Fill    Fill    `yaml:"fill,omitempty"`
	Borders Borders `yaml:"borders,omitempty"`
	Align   Align   `yaml:"align,omitempty"`
	NumFmt  string  `yaml:"num_fmt,omitempty"`
}

// MergeSpec tags cell position inside merged region along each axis
// independently. Spans are only set on the anchor cell.
type MergeSpec struct {
	MultiCol common.MergePos `yaml:"multi_col"`
	MultiRow common.MergePos `yaml:"multi_row"`
	ColSpan  int             `yaml:"col_span,omitempty"`
	RowSpan  int             `yaml:"row_span,omitempty"`
}

// Spanned reports whether cell belongs to any merged region.
func (m MergeSpec) Spanned() bool {
	return m.MultiCol.Spanned() || m.MultiRow.Spanned()
}

// Image sizing modes of IMAGE formula.
const (
	ImageModeFit     = 1
	ImageModeStretch = 2
	ImageModeOrigin  = 3
	ImageModeCustom  = 4
)

// ImageRef describes image placed in a cell by IMAGE formula. Width and
// Height are explicit pixel sizes for ImageModeCustom, FitWidth and
// FitHeight are computed by decomposer in physical units (zero means
// natural image size).
type ImageRef struct {
	Source    string  `yaml:"source"`
	Mode      int     `yaml:"mode"`
	Width     float64 `yaml:"width,omitempty"`
	Height    float64 `yaml:"height,omitempty"`
	FitWidth  float64 `yaml:"fit_width,omitempty"`
	FitHeight float64 `yaml:"fit_height,omitempty"`
	// Local path when image was acquired.
	Path string `yaml:"path,omitempty"`
}

type Cell struct {
	Row       int       `yaml:"row"`
	Col       int       `yaml:"col"`
	Value     string    `yaml:"value,omitempty"`
	Formatted string    `yaml:"formatted,omitempty"`
	Formula   string    `yaml:"formula,omitempty"`
	Image     *ImageRef `yaml:"image,omitempty"`
	Hyperlink string    `yaml:"hyperlink,omitempty"`
	Note      string    `yaml:"note,omitempty"`
	Format    Format    `yaml:"format,omitempty"`
	Merge     MergeSpec `yaml:"merge,omitempty"`

	EffectiveWidth  float64 `yaml:"effective_width"`
	EffectiveHeight float64 `yaml:"effective_height"`

	Empty bool `yaml:"empty,omitempty"`
	Ghost bool `yaml:"ghost,omitempty"`
}

// Text returns what should be displayed for the cell.
func (c *Cell) Text() string {
	if c.Formatted != "" {
		return c.Formatted
	}
	return c.Value
}

// HasContent reports whether cell carries anything renderable. Formatting
// alone is not content.
func (c *Cell) HasContent() bool {
	return c.Value != "" || c.Formatted != "" || c.Formula != "" || c.Image != nil
}

func (c Cell) clone() Cell {
	if c.Image != nil {
		img := *c.Image
		c.Image = &img
	}
	return c
}

// Directives are processing instructions attached to a row through a note
// on its first cell.
type Directives struct {
	// Row is emitted as standalone paragraph outside of any table.
	OutOfTable bool `yaml:"out-of-table,omitempty"`
	// Row starts a new table which repeats this many rows on every page.
	RepeatRows int `yaml:"repeat-rows,omitempty"`
	// Row starts a new table on a new page.
	NewPage bool `yaml:"new-page,omitempty"`
}

// TableStart reports whether row closes previous table and opens new one.
func (d Directives) TableStart() bool {
	return d.RepeatRows > 0 || d.NewPage
}

type Row struct {
	Index      int        `yaml:"index"`
	Height     float64    `yaml:"height"`
	Cells      []Cell     `yaml:"cells"`
	Directives Directives `yaml:"directives,omitempty"`
}

func (r Row) clone() Row {
	cells := make([]Cell, len(r.Cells))
	for i := range r.Cells {
		cells[i] = r.Cells[i].clone()
	}
	r.Cells = cells
	return r
}

// Merge is merged region, ranges are half-open.
type Merge struct {
	StartRow int `yaml:"start_row"`
	EndRow   int `yaml:"end_row"`
	StartCol int `yaml:"start_col"`
	EndCol   int `yaml:"end_col"`
}

func (m Merge) RowSpan() int {
	return m.EndRow - m.StartRow
}

func (m Merge) ColSpan() int {
	return m.EndCol - m.StartCol
}

func (m Merge) Contains(row, col int) bool {
	return row >= m.StartRow && row < m.EndRow && col >= m.StartCol && col < m.EndCol
}

func (m Merge) valid() bool {
	return m.StartRow >= 0 && m.StartCol >= 0 && m.RowSpan() > 0 && m.ColSpan() > 0
}

// Sheet is a worksheet as delivered by data source. Rows are positional:
// Rows[i] is i-th row of the sheet. Widths and heights are in pixels.
// Consumers must treat it as read-only since sheets are shared through
// fetch cache.
type Sheet struct {
	Name         string    `yaml:"name"`
	Rows         []Row     `yaml:"rows"`
	Merges       []Merge   `yaml:"merges,omitempty"`
	ColumnWidths []float64 `yaml:"column_widths"`
}

// Cell returns cell at position or nil if grid does not have it.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row].Cells) {
		return nil
	}
	return &s.Rows[row].Cells[col]
}

// Table is run of rows rendered as single table. ColumnWidths are in
// physical units.
type Table struct {
	Rows         []Row     `yaml:"rows"`
	ColumnWidths []float64 `yaml:"column_widths"`
	HeaderRows   int       `yaml:"header_rows,omitempty"`
	PageBreak    bool      `yaml:"page_break,omitempty"`
}

type Paragraph struct {
	Row Row `yaml:"row"`
}

// Block is renderable unit: either Table or Paragraph depending on Kind.
type Block struct {
	Kind      common.BlockKind `yaml:"kind"`
	Table     *Table           `yaml:"table,omitempty"`
	Paragraph *Paragraph       `yaml:"paragraph,omitempty"`
}

// Rows returns grid rows covered by the block in order.
func (b Block) Rows() []Row {
	switch b.Kind {
	case common.BlockKindTable:
		if b.Table != nil {
			return b.Table.Rows
		}
	case common.BlockKindParagraph:
		if b.Paragraph != nil {
			return []Row{b.Paragraph.Row}
		}
	}
	return nil
}

// RowsOf concatenates rows of all blocks.
func RowsOf(blocks []Block) []Row {
	var out []Row
	for _, b := range blocks {
		out = slices.Concat(out, b.Rows())
	}
	return out
}
