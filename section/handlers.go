package section

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"gsdoc/common"
	"gsdoc/source"
)

func (r *Resolver) tableContents(ctx context.Context, doc *document, s *Section) (*Contents, error) {
	blocks, err := r.blocks(ctx, doc, s.Link)
	if err != nil {
		return nil, err
	}
	return &Contents{Kind: common.ContentTypeTable, Blocks: blocks}, nil
}

// gsheetContents resolves nested spreadsheet with s as parent. Spreadsheet
// already being resolved higher up is a cycle.
func (r *Resolver) gsheetContents(ctx context.Context, doc *document, s *Section) (*Contents, error) {
	ref := linkRef(s)
	sheet, id, err := r.src.ResolveSpreadsheet(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve spreadsheet %q: %w", ref, err)
	}
	if slices.Contains(doc.ancestry, id) {
		return nil, &source.CycleError{Path: append(slices.Clone(doc.ancestry), id)}
	}

	name := s.Link
	if name == "" {
		name = documentName(ref)
	}
	nested := doc.run.document(id, name, doc)
	r.log.Debug("Resolving nested document", zap.String("section", s.SectionName), zap.String("id", id), zap.Int("index", nested.index))

	sections, err := r.resolve(ctx, nested, sheet, s)
	if err != nil {
		return nil, err
	}
	return &Contents{Kind: common.ContentTypeGsheet, Sections: sections}, nil
}

func (r *Resolver) fileContents(ctx context.Context, doc *document, s *Section) (*Contents, error) {
	if r.files == nil {
		return nil, fmt.Errorf("unable to acquire %s %q: %w", s.ContentType, s.Link, source.ErrUnsupported)
	}
	ref := linkRef(s)
	f, err := r.files.Acquire(ctx, s.ContentType, ref, doc.id)
	if err != nil {
		return nil, fmt.Errorf("unable to acquire %s %q: %w", s.ContentType, ref, err)
	}
	return &Contents{Kind: s.ContentType, File: f}, nil
}

// linkRef is address link points to.
func linkRef(s *Section) string {
	if s.LinkTarget != "" {
		return s.LinkTarget
	}
	return s.Link
}
