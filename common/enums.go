// Package common keeps enumerations shared between configuration, grid model
// and section tree so none of them has to import the others.
package common

// Kind of content linked from a TOC row.
// ENUM(none, table, gsheet, pdf, docx, odt)
type ContentType int

// Grid reports whether content of this type is a worksheet grid that goes
// through layout decomposition (directly or via nested spreadsheet).
func (c ContentType) Grid() bool {
	return c == ContentTypeTable || c == ContentTypeGsheet
}

// External reports whether content is an opaque file handled by acquirer.
func (c ContentType) External() bool {
	return c == ContentTypePdf || c == ContentTypeDocx || c == ContentTypeOdt
}

// Position of a cell along one axis of a merged region.
// ENUM(No, FirstCell, InnerCell, LastCell)
type MergePos int

// Spanned reports whether cell participates in a merge along this axis.
func (m MergePos) Spanned() bool {
	return m != MergePosNo
}

// Kind of renderable block produced by grid decomposition.
// ENUM(table, paragraph)
type BlockKind int

// Whether TOC column must be present in the header row.
// ENUM(must, preferred)
type ColumnRequirement int

// Break requested before a section.
// ENUM(none, page, section)
type BreakKind int

// Format used for images stored in the work directory.
// ENUM(jpeg, png)
type ImageFormat int

func (f ImageFormat) Ext() string {
	switch f {
	case ImageFormatPng:
		return ".png"
	default:
		return ".jpg"
	}
}
