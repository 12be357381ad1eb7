package toc

import (
	"math"
	"strconv"
	"strings"

	"gsdoc/common"
	"gsdoc/grid"
)

// Supported outline depth.
const (
	MinLevel = 0
	MaxLevel = 6
)

// Record gives access to TOC data row by logical column names. Columns
// absent from the header read as empty.
type Record struct {
	index ColumnIndex
	row   *grid.Row
}

func NewRecord(index ColumnIndex, row *grid.Row) Record {
	return Record{index: index, row: row}
}

// Index returns sheet row index of the record.
func (r Record) Index() int {
	return r.row.Index
}

// Cell returns cell for the column or nil when column or cell is absent.
func (r Record) Cell(name string) *grid.Cell {
	i, ok := r.index.Lookup(name)
	if !ok || i >= len(r.row.Cells) {
		return nil
	}
	return &r.row.Cells[i]
}

// Text returns trimmed display text of the column.
func (r Record) Text(name string) string {
	c := r.Cell(name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

// Empty reports whether column cell has nothing to link to.
func (r Record) Empty(name string) bool {
	return Blank(r.Cell(name))
}

// Blank reports whether cell is absent or carries neither text nor link.
func Blank(c *grid.Cell) bool {
	return c == nil || (strings.TrimSpace(c.Text()) == "" && c.Formula == "" && c.Hyperlink == "")
}

func (r Record) Flag(name string) bool {
	return Affirmative(r.Text(name))
}

// Level returns outline level when it is an integer within supported range.
func (r Record) Level() (int, bool) {
	c := r.Cell(ColLevel)
	if c == nil {
		return 0, false
	}
	for _, s := range []string{c.Value, c.Formatted} {
		if level, ok := parseLevel(s); ok {
			return level, true
		}
	}
	return 0, false
}

func parseLevel(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, n >= MinLevel && n <= MaxLevel
	}
	// numeric cells may come as "1.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), f >= MinLevel && f <= MaxLevel
}

// Retained reports whether row takes part in the document: marked for
// processing and has supported level.
func (r Record) Retained() (int, bool) {
	if !r.Flag(ColProcess) {
		return 0, false
	}
	return r.Level()
}

// ContentType returns declared content type. Unknown values are reported
// with ok=false and ContentTypeNone.
func (r Record) ContentType() (common.ContentType, bool) {
	s := r.Text(ColContent)
	if s == "" {
		return common.ContentTypeNone, true
	}
	ct, err := common.ParseContentType(s)
	if err != nil {
		return common.ContentTypeNone, false
	}
	return ct, true
}

// Break returns requested break kind.
func (r Record) Break() common.BreakKind {
	return ParseBreak(r.Text(ColBreak))
}

// Affirmative recognizes "yes" style values, case-insensitive.
func Affirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

// ParseBreak maps break column values, anything unrecognized ("-", "no",
// empty) means no break.
func ParseBreak(s string) common.BreakKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "page":
		return common.BreakKindPage
	case "section":
		return common.BreakKindSection
	}
	return common.BreakKindNone
}
