package section

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"gsdoc/common"
	"gsdoc/config"
	"gsdoc/grid"
	"gsdoc/source"
	"gsdoc/toc"
)

// Options of section resolution.
type Options struct {
	// Layout is catalog page and margin identifiers are checked against,
	// when nil identifiers are taken as is.
	Layout *config.LayoutConfig
	Grid   grid.Options
}

// contentHandler produces contents of a section with non empty link.
type contentHandler func(ctx context.Context, doc *document, s *Section) (*Contents, error)

// Resolver builds section trees. It keeps no state between Resolve calls
// but is not safe for concurrent use.
type Resolver struct {
	src      source.DataSource
	images   source.ImageAcquirer
	files    source.FileAcquirer
	opts     Options
	dec      *grid.Decomposer
	log      *zap.Logger
	handlers map[common.ContentType]contentHandler
}

func NewResolver(src source.DataSource, images source.ImageAcquirer, files source.FileAcquirer, opts Options, log *zap.Logger) *Resolver {
	r := &Resolver{
		src:    src,
		images: images,
		files:  files,
		opts:   opts,
		log:    log.Named("resolver"),
	}
	r.dec = grid.NewDecomposer(opts.Grid, log)
	r.handlers = map[common.ContentType]contentHandler{
		common.ContentTypeTable:  r.tableContents,
		common.ContentTypeGsheet: r.gsheetContents,
		common.ContentTypePdf:    r.fileContents,
		common.ContentTypeDocx:   r.fileContents,
		common.ContentTypeOdt:    r.fileContents,
	}
	return r
}

type sheetKey struct {
	spreadsheet string
	worksheet   string
}

// run is state shared by all spreadsheets of a single Resolve call.
type run struct {
	sheets    map[sheetKey]*grid.Sheet
	documents int
}

// document is spreadsheet being resolved.
type document struct {
	run   *run
	id    string
	name  string
	index int
	// identities of this spreadsheet and all its ancestors
	ancestry []string
}

func (rn *run) document(id, name string, parent *document) *document {
	doc := &document{run: rn, id: id, name: name, index: rn.documents}
	rn.documents++
	if parent != nil {
		doc.ancestry = append(doc.ancestry, parent.ancestry...)
	}
	doc.ancestry = append(doc.ancestry, id)
	return doc
}

// Resolve reads TOC of the spreadsheet and returns fully resolved section
// tree. Any fatal problem anywhere in the tree results in error and no
// sections.
func (r *Resolver) Resolve(ctx context.Context, spreadsheet string) (Tree, error) {
	sheet, id, err := r.src.ResolveSpreadsheet(ctx, spreadsheet)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve spreadsheet %q: %w", spreadsheet, err)
	}

	rn := &run{sheets: make(map[sheetKey]*grid.Sheet)}
	doc := rn.document(id, documentName(spreadsheet), nil)

	r.log.Debug("Resolving document", zap.String("spreadsheet", spreadsheet), zap.String("id", id))
	sections, err := r.resolve(ctx, doc, sheet, nil)
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func documentName(ref string) string {
	base := filepath.Base(filepath.FromSlash(strings.TrimSpace(ref)))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolve builds sections of a single TOC sheet. Column schema is checked
// before anything else, so on schema error no section is constructed.
func (r *Resolver) resolve(ctx context.Context, doc *document, sheet *grid.Sheet, parent *Section) ([]*Section, error) {
	var header grid.Row
	if len(sheet.Rows) > 0 {
		header = sheet.Rows[0]
	}
	ci := toc.BuildColumnIndex(header)
	if err := toc.Validate(ci, r.log.With(zap.String("document", doc.name))); err != nil {
		return nil, fmt.Errorf("unable to use %q as table of contents: %w", sheet.Name, err)
	}

	var sections []*Section
	for i := 1; i < len(sheet.Rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := toc.NewRecord(ci, &sheet.Rows[i])
		level, ok := rec.Retained()
		if !ok {
			r.log.Debug("Skipping TOC row", zap.String("document", doc.name), zap.Int("row", rec.Index()+1))
			continue
		}
		s, err := r.section(ctx, doc, rec, level, len(sections), parent)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve row %d of %q: %w", rec.Index()+1, doc.name, err)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func (r *Resolver) section(ctx context.Context, doc *document, rec toc.Record, level, index int, parent *Section) (*Section, error) {
	s := &Section{
		DocumentName:    doc.name,
		DocumentIndex:   doc.index,
		SectionName:     fmt.Sprintf("%s__%02d_%03d", slug.Make(doc.name), doc.index, index),
		SectionIndex:    index,
		FirstOfDocument: index == 0,
		FirstOverall:    index == 0 && doc.index == 0,
		Label:           rec.Text(toc.ColSection),
		Heading:         rec.Text(toc.ColHeading),
		Level:           level,
		Landscape:       rec.Flag(toc.ColLandscape),
		HidePageNumber:  rec.Flag(toc.ColHidePageNo),
		HideHeading:     rec.Flag(toc.ColHideHeading),
		OverrideHeader:  rec.Flag(toc.ColOverrideHeader),
		OverrideFooter:  rec.Flag(toc.ColOverrideFooter),
		Responsible:     rec.Text(toc.ColResponsible),
		Reviewer:        rec.Text(toc.ColReviewer),
		Status:          rec.Text(toc.ColStatus),
		Comment:         rec.Text(toc.ColComment),
	}
	if parent != nil {
		s.NestingLevel = parent.NestingLevel + 1
	}
	log := r.log.With(zap.String("section", s.SectionName))

	ct, ok := rec.ContentType()
	if !ok {
		log.Warn("Unknown content type, section will have no contents", zap.String("value", rec.Text(toc.ColContent)))
	}
	s.ContentType = ct

	link := toc.ParseLink(ct, rec.Cell(toc.ColLink))
	s.Link, s.LinkTarget = link.Display, link.Target

	switch rec.Break() {
	case common.BreakKindPage:
		s.PageBreak = true
	case common.BreakKindSection:
		s.SectionBreak = true
	}

	if parent != nil {
		s.PageSpec, s.MarginSpec = parent.PageSpec, parent.MarginSpec
	} else {
		s.PageSpec, s.MarginSpec = r.pageSpec(rec.Text(toc.ColPageSpec), log), r.marginSpec(rec.Text(toc.ColMarginSpec), log)
	}

	hf, err := resolveHeaderFooter(ctx, r.slotFetcher(doc),
		slotCells{rec.Cell(toc.ColHeaderFirst), rec.Cell(toc.ColHeaderOdd), rec.Cell(toc.ColHeaderEven)},
		slotCells{rec.Cell(toc.ColFooterFirst), rec.Cell(toc.ColFooterOdd), rec.Cell(toc.ColFooterEven)},
		rec.Flag(toc.ColDifferentFirstPage), parent)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve header and footer: %w", err)
	}
	s.Header, s.Footer, s.DifferentFirstPage = hf.Header, hf.Footer, hf.DifferentFirstPage
	s.DifferentOddEven = s.Header.DifferentOddEven || s.Footer.DifferentOddEven

	if c := rec.Cell(toc.ColBackgroundImage); !toc.Blank(c) {
		s.BackgroundImage = r.acquireImage(ctx, doc, imageRef(c), log)
	}

	if link.Empty() {
		return s, nil
	}
	handler, ok := r.handlers[ct]
	if !ok {
		log.Debug("No content handler", zap.Stringer("type", ct), zap.String("link", s.Link))
		return s, nil
	}
	if s.Contents, err = handler(ctx, doc, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Resolver) pageSpec(id string, log *zap.Logger) string {
	if r.opts.Layout == nil {
		return id
	}
	if id == "" {
		return r.opts.Layout.DefaultPage
	}
	if !r.opts.Layout.HasPage(id) {
		log.Warn("Unknown page spec, using default", zap.String("page", id), zap.String("default", r.opts.Layout.DefaultPage))
		return r.opts.Layout.DefaultPage
	}
	return id
}

func (r *Resolver) marginSpec(id string, log *zap.Logger) string {
	if r.opts.Layout == nil {
		return id
	}
	if id == "" {
		return r.opts.Layout.DefaultMargin
	}
	if !r.opts.Layout.HasMargin(id) {
		log.Warn("Unknown margin spec, using default", zap.String("margin", id), zap.String("default", r.opts.Layout.DefaultMargin))
		return r.opts.Layout.DefaultMargin
	}
	return id
}

// imageRef returns image address from IMAGE formula, hyperlink or plain
// cell value.
func imageRef(c *grid.Cell) string {
	if c.Image != nil {
		return c.Image.Source
	}
	link := toc.Hyperlink(c)
	if link.Target != "" {
		return link.Target
	}
	return link.Display
}

// acquireImage returns local path of the image, failures are not fatal.
func (r *Resolver) acquireImage(ctx context.Context, doc *document, ref string, log *zap.Logger) string {
	if r.images == nil || ref == "" {
		return ""
	}
	path, err := r.images.Acquire(ctx, ref, doc.id)
	if err != nil {
		log.Warn("Unable to acquire image, ignoring", zap.String("image", ref), zap.Error(err))
		return ""
	}
	return path
}

// worksheet returns worksheet grid fetching it once per run.
func (r *Resolver) worksheet(ctx context.Context, doc *document, name string) (*grid.Sheet, error) {
	key := sheetKey{spreadsheet: doc.id, worksheet: name}
	if sheet, ok := doc.run.sheets[key]; ok {
		return sheet, nil
	}
	sheet, err := r.src.FetchWorksheetGrid(ctx, doc.id, name)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch worksheet %q: %w", name, err)
	}
	doc.run.sheets[key] = sheet
	return sheet, nil
}

// blocks decomposes worksheet and acquires images placed in its cells.
func (r *Resolver) blocks(ctx context.Context, doc *document, name string) ([]grid.Block, error) {
	sheet, err := r.worksheet(ctx, doc, name)
	if err != nil {
		return nil, err
	}
	blocks, err := r.dec.DecomposeSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to decompose worksheet %q: %w", name, err)
	}
	log := r.log.With(zap.String("worksheet", name))
	for _, row := range grid.RowsOf(blocks) {
		for i := range row.Cells {
			if img := row.Cells[i].Image; img != nil {
				img.Path = r.acquireImage(ctx, doc, img.Source, log)
			}
		}
	}
	return blocks, nil
}

func (r *Resolver) slotFetcher(doc *document) slotFetcher {
	return func(ctx context.Context, c *grid.Cell) ([]grid.Block, error) {
		name := toc.ParseLink(common.ContentTypeTable, c).Display
		if name == "" {
			return nil, nil
		}
		return r.blocks(ctx, doc, name)
	}
}
