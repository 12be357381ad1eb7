// Package toc interprets table of contents worksheet: its column schema,
// per-row values and link cells.
package toc

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"gsdoc/common"
	"gsdoc/grid"
)

// Logical TOC columns, header names are case-sensitive.
const (
	ColSection    = "section"
	ColHeading    = "heading"
	ColProcess    = "process"
	ColLevel      = "level"
	ColContent    = "content-type"
	ColLink       = "link"
	ColBreak      = "break"
	ColLandscape  = "landscape"
	ColPageSpec   = "page-spec"
	ColMarginSpec = "margin-spec"

	ColHidePageNo         = "hide-pageno"
	ColHideHeading        = "hide-heading"
	ColDifferentFirstPage = "different-firstpage"
	ColHeaderFirst        = "header-first"
	ColHeaderOdd          = "header-odd"
	ColHeaderEven         = "header-even"
	ColFooterFirst        = "footer-first"
	ColFooterOdd          = "footer-odd"
	ColFooterEven         = "footer-even"
	ColOverrideHeader     = "override-header"
	ColOverrideFooter     = "override-footer"
	ColBackgroundImage    = "background-image"
	ColResponsible        = "responsible"
	ColReviewer           = "reviewer"
	ColStatus             = "status"
	ColComment            = "comment"
)

type ColumnSpec struct {
	Name        string
	Requirement common.ColumnRequirement
}

// Catalog lists every column TOC may have.
var Catalog = []ColumnSpec{
	{ColSection, common.ColumnRequirementMust},
	{ColHeading, common.ColumnRequirementMust},
	{ColProcess, common.ColumnRequirementMust},
	{ColLevel, common.ColumnRequirementMust},
	{ColContent, common.ColumnRequirementMust},
	{ColLink, common.ColumnRequirementMust},
	{ColBreak, common.ColumnRequirementMust},
	{ColLandscape, common.ColumnRequirementMust},
	{ColPageSpec, common.ColumnRequirementMust},
	{ColMarginSpec, common.ColumnRequirementMust},
	{ColHidePageNo, common.ColumnRequirementPreferred},
	{ColHideHeading, common.ColumnRequirementPreferred},
	{ColDifferentFirstPage, common.ColumnRequirementPreferred},
	{ColHeaderFirst, common.ColumnRequirementPreferred},
	{ColHeaderOdd, common.ColumnRequirementPreferred},
	{ColHeaderEven, common.ColumnRequirementPreferred},
	{ColFooterFirst, common.ColumnRequirementPreferred},
	{ColFooterOdd, common.ColumnRequirementPreferred},
	{ColFooterEven, common.ColumnRequirementPreferred},
	{ColOverrideHeader, common.ColumnRequirementPreferred},
	{ColOverrideFooter, common.ColumnRequirementPreferred},
	{ColBackgroundImage, common.ColumnRequirementPreferred},
	{ColResponsible, common.ColumnRequirementPreferred},
	{ColReviewer, common.ColumnRequirementPreferred},
	{ColStatus, common.ColumnRequirementPreferred},
	{ColComment, common.ColumnRequirementPreferred},
}

// ColumnIndex maps header names to column positions. It is never modified
// after BuildColumnIndex returns.
type ColumnIndex struct {
	idx map[string]int
}

// BuildColumnIndex scans header row once. Names are trimmed and normalized
// to NFC, when name repeats the leftmost column wins.
func BuildColumnIndex(header grid.Row) ColumnIndex {
	idx := make(map[string]int, len(header.Cells))
	for i := range header.Cells {
		name := Normalize(header.Cells[i].Text())
		if name == "" {
			continue
		}
		if _, exists := idx[name]; !exists {
			idx[name] = i
		}
	}
	return ColumnIndex{idx: idx}
}

// Lookup returns position of named column.
func (ci ColumnIndex) Lookup(name string) (int, bool) {
	i, ok := ci.idx[name]
	return i, ok
}

func (ci ColumnIndex) Len() int {
	return len(ci.idx)
}

// SchemaError lists required columns absent from TOC header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table of contents is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Validate checks index against Catalog. All missing required columns are
// reported in a single *SchemaError, every missing preferred column is
// logged.
func Validate(ci ColumnIndex, log *zap.Logger) error {
	var missing []string
	for _, spec := range Catalog {
		if _, ok := ci.Lookup(spec.Name); ok {
			continue
		}
		switch spec.Requirement {
		case common.ColumnRequirementMust:
			missing = append(missing, spec.Name)
		case common.ColumnRequirementPreferred:
			log.Warn("Missing preferred TOC column, values will be treated as absent", zap.String("column", spec.Name))
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Normalize trims and brings text to NFC so composed and decomposed
// spellings of the same name match.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
