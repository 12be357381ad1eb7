// Package section resolves table of contents worksheets into a tree of
// document sections with inherited page geometry, headers and footers.
package section

import (
	"fmt"
	"maps"

	"gsdoc/common"
	"gsdoc/grid"
	"gsdoc/source"
	"gsdoc/utils/debug"
)

// HeaderFooter holds resolved header (or footer) slots. Nil slot means no
// content.
type HeaderFooter struct {
	First            []grid.Block `yaml:"first,omitempty"`
	Odd              []grid.Block `yaml:"odd,omitempty"`
	Even             []grid.Block `yaml:"even,omitempty"`
	DifferentOddEven bool         `yaml:"different_odd_even,omitempty"`
}

// Contents is what section link resolved to, exactly one of Blocks,
// Sections or File is set according to Kind.
type Contents struct {
	Kind     common.ContentType `yaml:"kind"`
	Blocks   []grid.Block       `yaml:"blocks,omitempty"`
	Sections []*Section         `yaml:"sections,omitempty"`
	File     *source.File       `yaml:"file,omitempty"`
}

// Section is a single resolved TOC row. Sections are not modified once
// attached to their parent.
type Section struct {
	DocumentName    string `yaml:"document_name"`
	DocumentIndex   int    `yaml:"document_index"`
	SectionName     string `yaml:"section_name"`
	SectionIndex    int    `yaml:"section_index"`
	NestingLevel    int    `yaml:"nesting_level"`
	FirstOfDocument bool   `yaml:"first_of_document,omitempty"`
	FirstOverall    bool   `yaml:"first_overall,omitempty"`

	Label       string             `yaml:"label,omitempty"`
	Heading     string             `yaml:"heading,omitempty"`
	Level       int                `yaml:"level"`
	ContentType common.ContentType `yaml:"content_type"`
	Link        string             `yaml:"link,omitempty"`
	LinkTarget  string             `yaml:"link_target,omitempty"`

	PageBreak    bool   `yaml:"page_break,omitempty"`
	SectionBreak bool   `yaml:"section_break,omitempty"`
	Landscape    bool   `yaml:"landscape,omitempty"`
	PageSpec     string `yaml:"page_spec"`
	MarginSpec   string `yaml:"margin_spec"`

	HidePageNumber     bool `yaml:"hide_page_number,omitempty"`
	HideHeading        bool `yaml:"hide_heading,omitempty"`
	DifferentFirstPage bool `yaml:"different_first_page,omitempty"`
	DifferentOddEven   bool `yaml:"different_odd_even,omitempty"`
	OverrideHeader     bool `yaml:"override_header,omitempty"`
	OverrideFooter     bool `yaml:"override_footer,omitempty"`

	Header HeaderFooter `yaml:"header,omitempty"`
	Footer HeaderFooter `yaml:"footer,omitempty"`

	BackgroundImage string `yaml:"background_image,omitempty"`

	Responsible string `yaml:"responsible,omitempty"`
	Reviewer    string `yaml:"reviewer,omitempty"`
	Status      string `yaml:"status,omitempty"`
	Comment     string `yaml:"comment,omitempty"`

	Contents *Contents `yaml:"contents,omitempty"`
}

// Children returns sections of nested spreadsheet, nil for other content.
func (s *Section) Children() []*Section {
	if s.Contents == nil || s.Contents.Kind != common.ContentTypeGsheet {
		return nil
	}
	return s.Contents.Sections
}

// Tree is list of top level sections.
type Tree []*Section

// Flatten returns sections in rendering order: sections of nested
// spreadsheets immediately follow section which links to them.
func Flatten(sections []*Section) []*Section {
	var out []*Section
	for _, s := range sections {
		out = append(out, s)
		out = append(out, Flatten(s.Children())...)
	}
	return out
}

func (t Tree) String() string {
	tw := debug.NewTreeWriter()
	dumpSections(tw, 0, t)
	return tw.String()
}

func dumpSections(tw *debug.TreeWriter, depth int, sections []*Section) {
	for _, s := range sections {
		tw.Line(depth, "Section[%d] %s level=%d doc=%d %q type=%s",
			s.SectionIndex, s.SectionName, s.Level, s.DocumentIndex, s.DocumentName, s.ContentType)
		tw.OptionalText(depth+1, "label", s.Label)
		tw.OptionalText(depth+1, "heading", s.Heading)
		tw.OptionalText(depth+1, "link", s.Link)
		tw.OptionalText(depth+1, "target", s.LinkTarget)
		tw.Line(depth+1, "page: %s margin: %s", s.PageSpec, s.MarginSpec)
		tw.Flags(depth+1, "flags", map[string]bool{
			"first-of-document":   s.FirstOfDocument,
			"first-overall":       s.FirstOverall,
			"page-break":          s.PageBreak,
			"section-break":       s.SectionBreak,
			"landscape":           s.Landscape,
			"hide-pageno":         s.HidePageNumber,
			"hide-heading":        s.HideHeading,
			"different-firstpage": s.DifferentFirstPage,
			"different-oddeven":   s.DifferentOddEven,
			"override-header":     s.OverrideHeader,
			"override-footer":     s.OverrideFooter,
		})
		tw.OptionalText(depth+1, "background", s.BackgroundImage)
		tw.Map(depth+1, "meta", meta(s))
		dumpHeaderFooter(tw, depth+1, "header", s.Header)
		dumpHeaderFooter(tw, depth+1, "footer", s.Footer)
		dumpContents(tw, depth+1, s.Contents)
	}
}

func meta(s *Section) map[string]string {
	m := map[string]string{
		"responsible": s.Responsible,
		"reviewer":    s.Reviewer,
		"status":      s.Status,
		"comment":     s.Comment,
	}
	maps.DeleteFunc(m, func(_, v string) bool { return v == "" })
	return m
}

func dumpHeaderFooter(tw *debug.TreeWriter, depth int, label string, hf HeaderFooter) {
	for _, slot := range []struct {
		name   string
		blocks []grid.Block
	}{{"first", hf.First}, {"odd", hf.Odd}, {"even", hf.Even}} {
		if slot.blocks == nil {
			continue
		}
		tw.Line(depth, "%s-%s: %d block(s)", label, slot.name, len(slot.blocks))
		grid.DumpTo(tw, depth+1, slot.blocks)
	}
}

func dumpContents(tw *debug.TreeWriter, depth int, c *Contents) {
	if c == nil {
		return
	}
	switch {
	case c.Kind == common.ContentTypeGsheet:
		tw.Line(depth, "contents: %d section(s)", len(c.Sections))
		dumpSections(tw, depth+1, c.Sections)
	case c.Kind == common.ContentTypeTable:
		tw.Line(depth, "contents: %d block(s)", len(c.Blocks))
		grid.DumpTo(tw, depth+1, c.Blocks)
	case c.File != nil:
		tw.Line(depth, "contents: %s", fileLine(c.File))
	}
}

func fileLine(f *source.File) string {
	s := fmt.Sprintf("%s %q (%s, %d bytes)", f.Kind, f.Name, f.MimeType, f.Size)
	if f.Title != "" {
		s += fmt.Sprintf(" title=%q", f.Title)
	}
	if f.Pages > 0 {
		s += fmt.Sprintf(" pages=%d", f.Pages)
	}
	return s
}
