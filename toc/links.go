package toc

import (
	"strings"

	"gsdoc/common"
	"gsdoc/grid"
)

// Link is content reference from TOC link column. Display is what the
// author sees (worksheet name for table content), Target is address to
// resolve, empty when cell has no separate target.
type Link struct {
	Display string
	Target  string
}

func (l Link) Empty() bool {
	return l.Display == "" && l.Target == ""
}

// ParseLink extracts link from a cell according to content type.
func ParseLink(ct common.ContentType, c *grid.Cell) Link {
	if c == nil {
		return Link{}
	}
	switch {
	case ct == common.ContentTypeTable:
		return Link{Display: worksheetOf(c)}
	case ct == common.ContentTypeGsheet || ct == common.ContentTypePdf:
		return Hyperlink(c)
	default:
		return Link{Display: Normalize(c.Text())}
	}
}

// Hyperlink accepts HYPERLINK formula, cell hyperlink or plain value which
// is used as both display and target.
func Hyperlink(c *grid.Cell) Link {
	if c == nil {
		return Link{}
	}
	if target, display, ok := grid.ParseHyperlinkFormula(c.Formula); ok {
		return Link{Display: Normalize(display), Target: target}
	}
	text := Normalize(c.Text())
	if h := strings.TrimSpace(c.Hyperlink); h != "" {
		if text == "" {
			text = h
		}
		return Link{Display: text, Target: h}
	}
	return Link{Display: text, Target: text}
}

// worksheetOf returns worksheet name referenced by cell. Internal links
// pointing to "#gid=..." carry worksheet name only as display text, links
// to locations ("'Name'!A1") and plain values name worksheet directly.
func worksheetOf(c *grid.Cell) string {
	target, display := strings.TrimSpace(c.Hyperlink), c.Text()
	if t, d, ok := grid.ParseHyperlinkFormula(c.Formula); ok {
		target, display = t, d
	}
	switch {
	case target == "":
		return WorksheetRef(display)
	case isGidLink(target):
		return Normalize(display)
	case strings.Contains(target, "!"):
		return WorksheetRef(target)
	}
	return WorksheetRef(display)
}

func isGidLink(s string) bool {
	s = strings.TrimPrefix(s, "#")
	return strings.HasPrefix(s, "gid=") || strings.Contains(s, "#gid=")
}

// WorksheetRef reduces cell reference ("'My sheet'!A1", "Data!B2:C4",
// "#Sheet1!A1") to worksheet name, bare names are returned as is.
func WorksheetRef(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "="), "#")
	if i := strings.LastIndexByte(s, '!'); i >= 0 {
		s = s[:i]
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return Normalize(s)
}
