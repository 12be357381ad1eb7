package section

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"gsdoc/common"
	"gsdoc/config"
	"gsdoc/grid"
	"gsdoc/source"
	"gsdoc/toc"
)

var mustColumns = []string{
	toc.ColSection, toc.ColHeading, toc.ColProcess, toc.ColLevel, toc.ColContent,
	toc.ColLink, toc.ColBreak, toc.ColLandscape, toc.ColPageSpec, toc.ColMarginSpec,
}

func textRow(index int, values ...string) grid.Row {
	r := grid.Row{Index: index, Height: 21}
	for c, v := range values {
		r.Cells = append(r.Cells, grid.Cell{Row: index, Col: c, Value: v, Formatted: v, Empty: v == ""})
	}
	return r
}

func textSheet(name string, rows ...[]string) *grid.Sheet {
	s := &grid.Sheet{Name: name}
	for i, vals := range rows {
		s.Rows = append(s.Rows, textRow(i, vals...))
	}
	return s
}

// tocSheet builds TOC with all must columns plus extra ones. Rows are
// processed level 0 entries unless values say otherwise.
func tocSheet(extra []string, rows ...map[string]string) *grid.Sheet {
	cols := slices.Concat(mustColumns, extra)
	s := &grid.Sheet{Name: "toc", Rows: []grid.Row{textRow(0, cols...)}}
	for i, m := range rows {
		vals := make([]string, len(cols))
		for j, c := range cols {
			vals[j] = m[c]
		}
		if _, ok := m[toc.ColProcess]; !ok {
			vals[slices.Index(cols, toc.ColProcess)] = "yes"
		}
		if _, ok := m[toc.ColLevel]; !ok {
			vals[slices.Index(cols, toc.ColLevel)] = "0"
		}
		s.Rows = append(s.Rows, textRow(i+1, vals...))
	}
	return s
}

type fakeBook struct {
	toc    *grid.Sheet
	sheets map[string]*grid.Sheet
}

// fakeSource serves books by name, identity of a book is "id:" + name.
type fakeSource struct {
	books     map[string]*fakeBook
	transient map[string]bool
	fetches   map[string]int
	resolves  int
}

func newFakeSource(books map[string]*fakeBook) *fakeSource {
	return &fakeSource{books: books, transient: map[string]bool{}, fetches: map[string]int{}}
}

func (f *fakeSource) ResolveSpreadsheet(_ context.Context, name string) (*grid.Sheet, string, error) {
	f.resolves++
	b, ok := f.books[name]
	if !ok {
		return nil, "", &source.AmbiguousSourceError{Name: name}
	}
	return b.toc, "id:" + name, nil
}

func (f *fakeSource) FetchWorksheetGrid(_ context.Context, id, worksheet string) (*grid.Sheet, error) {
	key := id + "/" + worksheet
	f.fetches[key]++
	if f.transient[worksheet] {
		return nil, &source.TransientFetchError{Op: "fetch " + worksheet, Err: errors.New("rate limited")}
	}
	b, ok := f.books[strings.TrimPrefix(id, "id:")]
	if !ok {
		return nil, fmt.Errorf("unknown spreadsheet %s", id)
	}
	s, ok := b.sheets[worksheet]
	if !ok {
		return nil, fmt.Errorf("worksheet %q not found", worksheet)
	}
	return s, nil
}

type fakeImages struct {
	fail bool
	refs []string
}

func (f *fakeImages) Acquire(_ context.Context, ref, relativeTo string) (string, error) {
	f.refs = append(f.refs, ref)
	if f.fail {
		return "", errors.New("image not found")
	}
	return "/work/images/" + ref, nil
}

type fakeFiles struct{}

func (fakeFiles) Acquire(_ context.Context, kind common.ContentType, ref, relativeTo string) (*source.File, error) {
	return &source.File{Kind: kind, Source: ref, Path: "/work/files/" + ref, Name: ref, Pages: 3}, nil
}

func testLayout() *config.LayoutConfig {
	return &config.LayoutConfig{
		DefaultPage:   "A4",
		DefaultMargin: "normal",
		Pages: map[string]config.PageConfig{
			"A4":     {Width: 8.27, Height: 11.69},
			"Letter": {Width: 8.5, Height: 11},
		},
		Margins: map[string]config.MarginConfig{
			"normal": {Top: 1, Bottom: 1, Left: 1, Right: 1},
			"narrow": {Top: 0.5, Bottom: 0.5, Left: 0.5, Right: 0.5},
		},
	}
}

func newTestResolver(t *testing.T, ds source.DataSource, images source.ImageAcquirer) *Resolver {
	return NewResolver(ds, images, fakeFiles{}, Options{Layout: testLayout(), Grid: grid.DefaultOptions()}, zaptest.NewLogger(t))
}

func TestResolve_Scenario(t *testing.T) {
	summary := textSheet("Summary", []string{"Overview"})
	summary.Merges = []grid.Merge{{StartRow: 0, EndRow: 2, StartCol: 0, EndCol: 2}}
	summary.ColumnWidths = []float64{100, 100}

	ds := newFakeSource(map[string]*fakeBook{
		"report": {
			toc: tocSheet(nil,
				map[string]string{toc.ColLevel: "0", toc.ColContent: "table", toc.ColLink: "Summary", toc.ColBreak: "page", toc.ColPageSpec: "A4"},
				map[string]string{toc.ColLevel: "1", toc.ColContent: "table", toc.ColLink: "Detail", toc.ColBreak: "-", toc.ColPageSpec: "Letter"},
			),
			sheets: map[string]*grid.Sheet{
				"Summary": summary,
				"Detail":  textSheet("Detail", []string{"a", "b"}, []string{"c", "d"}),
			},
		},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "report")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("sections = %d, want 2", len(tree))
	}

	first, second := tree[0], tree[1]
	if !first.PageBreak || second.PageBreak {
		t.Errorf("page breaks = %t, %t, want true, false", first.PageBreak, second.PageBreak)
	}
	if first.PageSpec != "A4" || second.PageSpec != "Letter" {
		t.Errorf("page specs = %q, %q", first.PageSpec, second.PageSpec)
	}
	if second.Level != 1 || second.SectionIndex != 1 {
		t.Errorf("second section level=%d index=%d", second.Level, second.SectionIndex)
	}
	if !first.FirstOfDocument || !first.FirstOverall || second.FirstOfDocument || second.FirstOverall {
		t.Errorf("first flags: %+v / %+v", first, second)
	}
	if first.MarginSpec != "normal" {
		t.Errorf("margin spec = %q, want default", first.MarginSpec)
	}

	if first.Contents == nil || first.Contents.Kind != common.ContentTypeTable {
		t.Fatalf("contents = %+v", first.Contents)
	}
	blocks := first.Contents.Blocks
	if len(blocks) != 1 || blocks[0].Kind != common.BlockKindTable {
		t.Fatalf("blocks = %+v, want one table", blocks)
	}
	rows := blocks[0].Table.Rows
	anchor := rows[0].Cells[0]
	if anchor.Text() != "Overview" || anchor.Merge.MultiRow != common.MergePosFirstCell || anchor.Merge.MultiCol != common.MergePosFirstCell {
		t.Errorf("anchor = %+v", anchor)
	}
	ghosts := []struct {
		r, c     int
		row, col common.MergePos
	}{
		{0, 1, common.MergePosFirstCell, common.MergePosLastCell},
		{1, 0, common.MergePosLastCell, common.MergePosFirstCell},
		{1, 1, common.MergePosLastCell, common.MergePosLastCell},
	}
	for _, g := range ghosts {
		c := rows[g.r].Cells[g.c]
		if !c.Ghost || !c.Empty || c.Merge.MultiRow != g.row || c.Merge.MultiCol != g.col {
			t.Errorf("cell [%d,%d] = %+v", g.r, g.c, c)
		}
	}
	if summary.Rows[0].Cells[0].Merge.Spanned() || len(summary.Rows) != 1 {
		t.Error("fetched worksheet was modified by decomposition")
	}
}

func TestResolve_SchemaError(t *testing.T) {
	sheet := tocSheet(nil, map[string]string{toc.ColContent: "table", toc.ColLink: "Data"})
	// drop content-type header
	sheet.Rows[0].Cells[slices.Index(mustColumns, toc.ColContent)].Value = ""
	sheet.Rows[0].Cells[slices.Index(mustColumns, toc.ColContent)].Formatted = ""

	ds := newFakeSource(map[string]*fakeBook{"report": {toc: sheet}})
	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "report")

	var se *toc.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want SchemaError", err)
	}
	if !slices.Equal(se.Missing, []string{toc.ColContent}) {
		t.Errorf("missing = %v", se.Missing)
	}
	if tree != nil {
		t.Errorf("tree = %v, want nil", tree)
	}
	if len(ds.fetches) != 0 {
		t.Errorf("worksheets fetched before schema check: %v", ds.fetches)
	}
}

func TestResolve_EmptyTOC(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{"report": {toc: &grid.Sheet{Name: "toc"}}})
	_, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "report")
	var se *toc.SchemaError
	if !errors.As(err, &se) || len(se.Missing) != len(mustColumns) {
		t.Fatalf("error = %v, want SchemaError listing all required columns", err)
	}
}

func TestResolve_RowFiltering(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{
		"report": {toc: tocSheet(nil,
			map[string]string{toc.ColProcess: "no", toc.ColHeading: "skipped"},
			map[string]string{toc.ColHeading: "one"},
			map[string]string{toc.ColLevel: "7", toc.ColHeading: "too deep"},
			map[string]string{toc.ColLevel: "x", toc.ColHeading: "bad level"},
			map[string]string{toc.ColProcess: "YES", toc.ColLevel: "6", toc.ColHeading: "two"},
			map[string]string{toc.ColProcess: "", toc.ColHeading: "skipped"},
		)},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "report")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	var headings []string
	for i, s := range tree {
		headings = append(headings, s.Heading)
		if s.SectionIndex != i {
			t.Errorf("section %q index = %d, want %d", s.Heading, s.SectionIndex, i)
		}
		if s.Contents != nil {
			t.Errorf("section %q without link has contents", s.Heading)
		}
	}
	if !slices.Equal(headings, []string{"one", "two"}) {
		t.Errorf("headings = %v", headings)
	}
	if tree[0].SectionName == tree[1].SectionName {
		t.Errorf("section names are not unique: %q", tree[0].SectionName)
	}
}

func TestResolve_HeaderOverride(t *testing.T) {
	hfCols := []string{toc.ColDifferentFirstPage, toc.ColHeaderFirst, toc.ColHeaderOdd, toc.ColHeaderEven,
		toc.ColFooterOdd, toc.ColOverrideHeader, toc.ColOverrideFooter}

	ds := newFakeSource(map[string]*fakeBook{
		"main": {
			toc: tocSheet(hfCols, map[string]string{
				toc.ColContent: "gsheet", toc.ColLink: "child", toc.ColPageSpec: "Letter", toc.ColMarginSpec: "narrow",
				toc.ColDifferentFirstPage: "yes", toc.ColHeaderFirst: "TitleHead", toc.ColHeaderOdd: "Head",
				toc.ColFooterOdd: "Foot", toc.ColOverrideHeader: "yes",
			}),
			sheets: map[string]*grid.Sheet{
				"TitleHead": textSheet("TitleHead", []string{"title page"}),
				"Head":      textSheet("Head", []string{"head"}),
				"Foot":      textSheet("Foot", []string{"foot"}),
			},
		},
		"child": {
			toc: tocSheet(hfCols, map[string]string{
				toc.ColLevel: "1", toc.ColPageSpec: "A4", toc.ColMarginSpec: "normal",
				toc.ColHeaderOdd: "OwnHead", toc.ColHeaderEven: "OwnEven", toc.ColFooterOdd: "OwnFoot",
			}),
			sheets: map[string]*grid.Sheet{
				"OwnHead": textSheet("OwnHead", []string{"own head"}),
				"OwnEven": textSheet("OwnEven", []string{"own even"}),
				"OwnFoot": textSheet("OwnFoot", []string{"own foot"}),
			},
		},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	parent := tree[0]
	if parent.Header.First == nil || parent.Header.Odd == nil {
		t.Fatalf("parent header = %+v", parent.Header)
	}

	children := parent.Children()
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}
	child := children[0]
	if !reflect.DeepEqual(child.Header, parent.Header) {
		t.Errorf("child header differs from overriding parent:\n%s", Tree{child})
	}
	if !child.DifferentFirstPage {
		t.Error("different-firstpage is not inherited with header")
	}
	// footer is not overridden, child has its own
	if reflect.DeepEqual(child.Footer, parent.Footer) || child.Footer.Odd == nil {
		t.Errorf("child footer = %+v", child.Footer)
	}
	if child.PageSpec != "Letter" || child.MarginSpec != "narrow" {
		t.Errorf("child geometry = %s/%s, want parent's Letter/narrow", child.PageSpec, child.MarginSpec)
	}
	if child.NestingLevel != 1 || child.DocumentIndex != 1 || child.DocumentName != "child" || child.FirstOverall {
		t.Errorf("child document data = %+v", child)
	}
}

func TestResolve_OverrideDecidesFirstPage(t *testing.T) {
	hfCols := []string{toc.ColDifferentFirstPage, toc.ColHeaderOdd, toc.ColFooterFirst, toc.ColFooterOdd, toc.ColOverrideHeader}

	ds := newFakeSource(map[string]*fakeBook{
		"main": {
			toc: tocSheet(hfCols, map[string]string{
				toc.ColContent: "gsheet", toc.ColLink: "child", toc.ColHeaderOdd: "Head", toc.ColOverrideHeader: "yes",
			}),
			sheets: map[string]*grid.Sheet{"Head": textSheet("Head", []string{"head"})},
		},
		"child": {
			toc: tocSheet(hfCols, map[string]string{
				toc.ColLevel: "1", toc.ColDifferentFirstPage: "yes", toc.ColFooterFirst: "TitleFoot", toc.ColFooterOdd: "Foot",
			}),
			sheets: map[string]*grid.Sheet{
				"TitleFoot": textSheet("TitleFoot", []string{"title foot"}),
				"Foot":      textSheet("Foot", []string{"foot"}),
			},
		},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	children := tree[0].Children()
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}
	child := children[0]
	if child.DifferentFirstPage {
		t.Error("different-firstpage must come from overriding parent")
	}
	if child.Footer.First != nil {
		t.Errorf("first page footer resolved without different first page: %+v", child.Footer.First)
	}
	if child.Footer.Odd == nil {
		t.Error("own footer is lost")
	}
	if ds.fetches["id:child/TitleFoot"] != 0 {
		t.Errorf("first page footer fetched %d times, want 0", ds.fetches["id:child/TitleFoot"])
	}
}

func TestResolve_EvenFallback(t *testing.T) {
	hfCols := []string{toc.ColDifferentFirstPage, toc.ColHeaderFirst, toc.ColHeaderOdd, toc.ColHeaderEven,
		toc.ColFooterOdd, toc.ColFooterEven}

	ds := newFakeSource(map[string]*fakeBook{
		"report": {
			toc: tocSheet(hfCols,
				map[string]string{toc.ColHeading: "fallback", toc.ColHeaderOdd: "Head", toc.ColHeaderFirst: "Head"},
				map[string]string{toc.ColHeading: "own even", toc.ColHeaderOdd: "Head", toc.ColHeaderEven: "Even"},
				map[string]string{toc.ColHeading: "nothing", toc.ColFooterEven: ""},
			),
			sheets: map[string]*grid.Sheet{
				"Head": textSheet("Head", []string{"head"}),
				"Even": textSheet("Even", []string{"even"}),
			},
		},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "report")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	fallback := tree[0]
	if fallback.Header.Odd == nil || !reflect.DeepEqual(fallback.Header.Even, fallback.Header.Odd) {
		t.Errorf("even header did not fall back to odd: %+v", fallback.Header)
	}
	if fallback.DifferentOddEven || fallback.Header.DifferentOddEven {
		t.Error("different-oddeven must stay false on fallback")
	}
	if fallback.Header.First != nil {
		t.Error("first page header resolved without different-firstpage")
	}

	own := tree[1]
	if !own.DifferentOddEven || !own.Header.DifferentOddEven {
		t.Error("different-oddeven is not set for own even header")
	}
	if reflect.DeepEqual(own.Header.Even, own.Header.Odd) {
		t.Error("own even header equals odd")
	}

	nothing := tree[2]
	if nothing.Header.Odd != nil || nothing.Header.Even != nil || nothing.Footer.Even != nil {
		t.Errorf("empty slots resolved to %+v / %+v", nothing.Header, nothing.Footer)
	}

	if n := ds.fetches["id:report/Head"]; n != 1 {
		t.Errorf("Head fetched %d times, want 1", n)
	}
}

func TestResolve_WorksheetMemoized(t *testing.T) {
	data := textSheet("Data", []string{"x"})
	ds := newFakeSource(map[string]*fakeBook{
		"report": {
			toc: tocSheet([]string{toc.ColFooterOdd},
				map[string]string{toc.ColContent: "table", toc.ColLink: "Data", toc.ColFooterOdd: "Data"},
				map[string]string{toc.ColContent: "table", toc.ColLink: "'Data'!A1:B2"},
				map[string]string{toc.ColContent: "gsheet", toc.ColLink: "other"},
			),
			sheets: map[string]*grid.Sheet{"Data": data},
		},
		"other": {
			toc:    tocSheet(nil, map[string]string{toc.ColContent: "table", toc.ColLink: "Data"}),
			sheets: map[string]*grid.Sheet{"Data": textSheet("Data", []string{"other"})},
		},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "report")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := map[string]int{"id:report/Data": 1, "id:other/Data": 1}
	if !reflect.DeepEqual(ds.fetches, want) {
		t.Errorf("fetches = %v, want %v", ds.fetches, want)
	}
	nested := tree[2].Children()
	if len(nested) != 1 || grid.RowsOf(nested[0].Contents.Blocks)[0].Cells[0].Text() != "other" {
		t.Error("same worksheet name in different spreadsheets collided")
	}
}

func TestResolve_Cycle(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{
		"a": {toc: tocSheet(nil, map[string]string{toc.ColContent: "gsheet", toc.ColLink: "b"})},
		"b": {toc: tocSheet(nil, map[string]string{toc.ColContent: "gsheet", toc.ColLink: "a"})},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "a")
	var ce *source.CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want CycleError", err)
	}
	if !slices.Equal(ce.Path, []string{"id:a", "id:b", "id:a"}) {
		t.Errorf("cycle path = %v", ce.Path)
	}
	if tree != nil {
		t.Error("partial tree returned")
	}
}

func TestResolve_SameSpreadsheetTwice(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{
		"main": {toc: tocSheet(nil,
			map[string]string{toc.ColContent: "gsheet", toc.ColLink: "part"},
			map[string]string{toc.ColContent: "gsheet", toc.ColLink: "part"},
		)},
		"part": {toc: tocSheet(nil, map[string]string{toc.ColHeading: "p"})},
	})

	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	flat := Flatten(tree)
	if len(flat) != 4 {
		t.Fatalf("flattened = %d sections, want 4", len(flat))
	}
	if flat[1].DocumentIndex == flat[3].DocumentIndex || flat[1].SectionName == flat[3].SectionName {
		t.Errorf("nested documents are not distinguished: %q, %q", flat[1].SectionName, flat[3].SectionName)
	}
	if flat[0] != tree[0] || flat[2] != tree[1] {
		t.Error("flatten order is not depth-first")
	}
}

func TestResolve_FetchExhausted(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{
		"report": {
			toc: tocSheet(nil,
				map[string]string{toc.ColContent: "table", toc.ColLink: "Good"},
				map[string]string{toc.ColContent: "table", toc.ColLink: "Flaky"},
			),
			sheets: map[string]*grid.Sheet{"Good": textSheet("Good", []string{"ok"})},
		},
	})
	ds.transient["Flaky"] = true

	r := newTestResolver(t, source.Retrying(ds, 3, time.Millisecond, zap.NewNop()), nil)
	tree, err := r.Resolve(context.Background(), "report")

	var fe *source.FetchExhaustedError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want FetchExhaustedError", err)
	}
	if tree != nil {
		t.Error("partial tree returned")
	}
	if n := ds.fetches["id:report/Flaky"]; n != 3 {
		t.Errorf("Flaky fetched %d times, want 3", n)
	}
}

func TestResolve_AmbiguousNested(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{
		"main": {toc: tocSheet(nil, map[string]string{toc.ColContent: "gsheet", toc.ColLink: "missing"})},
	})
	_, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "main")
	var ae *source.AmbiguousSourceError
	if !errors.As(err, &ae) || ae.Name != "missing" {
		t.Fatalf("error = %v, want AmbiguousSourceError", err)
	}
}

func TestResolve_FilesAndImages(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	link := grid.Cell{Formula: `HYPERLINK("docs/manual.pdf","Manual")`}
	sheet := tocSheet([]string{toc.ColBackgroundImage, toc.ColStatus},
		map[string]string{toc.ColContent: "pdf", toc.ColBackgroundImage: "bg.png", toc.ColStatus: "draft"},
		map[string]string{toc.ColContent: "docx", toc.ColLink: "notes.docx"},
		map[string]string{toc.ColContent: "spreadsheet", toc.ColLink: "whatever", toc.ColPageSpec: "B5"},
		map[string]string{toc.ColContent: "table", toc.ColLink: "Pictures"},
	)
	col := slices.Index(mustColumns, toc.ColLink)
	link.Row, link.Col = 1, col
	sheet.Rows[1].Cells[col] = link

	pictures := textSheet("Pictures", []string{"logo"})
	pictures.Rows[0].Cells[0].Image = &grid.ImageRef{Source: "logo.png", Mode: grid.ImageModeFit}

	ds := newFakeSource(map[string]*fakeBook{
		"report": {toc: sheet, sheets: map[string]*grid.Sheet{"Pictures": pictures}},
	})
	images := &fakeImages{fail: true}
	r := NewResolver(ds, images, fakeFiles{}, Options{Layout: testLayout(), Grid: grid.DefaultOptions()}, zap.New(core))

	tree, err := r.Resolve(context.Background(), "report")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	pdf := tree[0]
	if pdf.Link != "Manual" || pdf.LinkTarget != "docs/manual.pdf" {
		t.Errorf("pdf link = %q -> %q", pdf.Link, pdf.LinkTarget)
	}
	if pdf.Contents == nil || pdf.Contents.File == nil || pdf.Contents.File.Source != "docs/manual.pdf" || pdf.Contents.Kind != common.ContentTypePdf {
		t.Errorf("pdf contents = %+v", pdf.Contents)
	}
	if pdf.BackgroundImage != "" || pdf.Status != "draft" {
		t.Errorf("background = %q, status = %q", pdf.BackgroundImage, pdf.Status)
	}

	if docx := tree[1]; docx.Contents == nil || docx.Contents.File.Kind != common.ContentTypeDocx {
		t.Errorf("docx contents = %+v", docx.Contents)
	}
	if docx := tree[1]; docx.Link != "notes.docx" || docx.LinkTarget != "" || docx.Contents.File.Source != "notes.docx" {
		t.Errorf("docx link = %q -> %q, acquired %q", docx.Link, docx.LinkTarget, docx.Contents.File.Source)
	}

	unknown := tree[2]
	if unknown.Contents != nil || unknown.ContentType != common.ContentTypeNone {
		t.Errorf("unknown content type resolved to %+v", unknown.Contents)
	}
	if unknown.PageSpec != "A4" {
		t.Errorf("unknown page spec = %q, want default A4", unknown.PageSpec)
	}

	pics := tree[3].Contents.Blocks
	if img := grid.RowsOf(pics)[0].Cells[0].Image; img == nil || img.Path != "" {
		t.Errorf("failed image acquisition result = %+v", img)
	}
	if pictures.Rows[0].Cells[0].Image.Path != "" || pictures.Rows[0].Cells[0].Image.FitWidth != 0 {
		t.Error("fetched worksheet image was modified")
	}
	if !slices.Equal(images.refs, []string{"bg.png", "logo.png"}) {
		t.Errorf("image requests = %v", images.refs)
	}

	for _, msg := range []string{
		"Unable to acquire image, ignoring",
		"Unknown content type, section will have no contents",
		"Unknown page spec, using default",
	} {
		if logs.FilterMessage(msg).Len() == 0 {
			t.Errorf("expected warning %q", msg)
		}
	}
}

func TestResolve_Cancelled(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{
		"report": {toc: tocSheet(nil, map[string]string{toc.ColHeading: "one"})},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestResolver(t, ds, nil).Resolve(ctx, "report"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestTree_String(t *testing.T) {
	ds := newFakeSource(map[string]*fakeBook{
		"main": {toc: tocSheet([]string{toc.ColResponsible},
			map[string]string{toc.ColHeading: "Intro", toc.ColContent: "gsheet", toc.ColLink: "part", toc.ColResponsible: "ops", toc.ColBreak: "section"},
		)},
		"part": {
			toc:    tocSheet(nil, map[string]string{toc.ColHeading: "Numbers", toc.ColContent: "table", toc.ColLink: "Data"}),
			sheets: map[string]*grid.Sheet{"Data": textSheet("Data", []string{"42"})},
		},
	})
	tree, err := newTestResolver(t, ds, nil).Resolve(context.Background(), "main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	dump := tree.String()
	for _, want := range []string{
		`heading: "Intro"`,
		"flags: first-of-document, first-overall, section-break",
		`responsible: "ops"`,
		"contents: 1 section(s)",
		`heading: "Numbers"`,
		"contents: 1 block(s)",
		`text: "42"`,
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump does not contain %q:\n%s", want, dump)
		}
	}
}
