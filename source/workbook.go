package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"gsdoc/grid"
	"gsdoc/toc"
)

const (
	workbookExt = ".xlsx"
	// Calibri 11 maximum digit width, column width in characters is
	// converted to pixels using it.
	maxDigitWidth = 7.0
	pointsToPx    = 96.0 / 72.0
)

// Workbook is data source reading local .xlsx files. Spreadsheet identity
// is absolute path of the file.
type Workbook struct {
	root    string
	tocName string
	log     *zap.Logger
	open    map[string]*excelize.File
}

// NewWorkbook creates data source resolving relative paths and bare names
// against root. TOC is read from worksheet named tocName, or from the first
// worksheet when workbook does not have it.
func NewWorkbook(root, tocName string, log *zap.Logger) *Workbook {
	if root == "" {
		root = "."
	}
	return &Workbook{root: root, tocName: tocName, log: log.Named("workbook"), open: make(map[string]*excelize.File)}
}

// Close releases all opened workbooks.
func (w *Workbook) Close() error {
	var err error
	for _, name := range slices.Sorted(maps.Keys(w.open)) {
		err = multierr.Append(err, w.open[name].Close())
	}
	clear(w.open)
	return err
}

func (w *Workbook) ResolveSpreadsheet(ctx context.Context, nameOrURL string) (*grid.Sheet, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	path, err := w.locate(nameOrURL)
	if err != nil {
		return nil, "", err
	}
	f, err := w.workbook(path)
	if err != nil {
		return nil, "", err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("workbook %s has no worksheets", path)
	}
	name := sheets[0]
	if slices.Contains(sheets, w.tocName) {
		name = w.tocName
	} else {
		w.log.Debug("TOC worksheet not found, using first worksheet", zap.String("workbook", path), zap.String("worksheet", name))
	}

	sheet, err := w.readSheet(f, name)
	if err != nil {
		return nil, "", err
	}
	return sheet, path, nil
}

func (w *Workbook) FetchWorksheetGrid(ctx context.Context, spreadsheetID, worksheet string) (*grid.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := w.workbook(spreadsheetID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(f.GetSheetList(), worksheet) {
		return nil, fmt.Errorf("worksheet %q not found in %s", worksheet, spreadsheetID)
	}
	return w.readSheet(f, worksheet)
}

// Worksheets lists worksheet names of spreadsheet in workbook order.
func (w *Workbook) Worksheets(ctx context.Context, spreadsheetID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := w.workbook(spreadsheetID)
	if err != nil {
		return nil, err
	}
	return f.GetSheetList(), nil
}

// locate turns spreadsheet reference into absolute path. Paths (anything
// with separator or extension, file:// URLs) are taken relative to root,
// bare names are searched for under root ignoring case.
func (w *Workbook) locate(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &AmbiguousSourceError{Name: ref}
	}

	if u, err := url.Parse(ref); err == nil && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return "", fmt.Errorf("unable to resolve spreadsheet %q: %w", ref, ErrUnsupported)
		}
		ref = filepath.FromSlash(u.Path)
	}

	if strings.ContainsAny(ref, `/\`) || strings.EqualFold(filepath.Ext(ref), workbookExt) {
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(w.root, path)
		}
		path, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("unable to resolve spreadsheet %q: %w", ref, err)
		}
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			return "", &AmbiguousSourceError{Name: ref}
		}
		return path, nil
	}

	want := toc.Normalize(ref) + workbookExt
	var candidates []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(toc.Normalize(d.Name()), want) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("unable to search for spreadsheet %q: %w", ref, err)
	}
	if len(candidates) != 1 {
		return "", &AmbiguousSourceError{Name: ref, Candidates: candidates}
	}
	return filepath.Abs(candidates[0])
}

// workbook returns opened workbook. File which exists but cannot be opened
// may be in the middle of being written, so this is reported as transient.
func (w *Workbook) workbook(path string) (*excelize.File, error) {
	if f, ok := w.open[path]; ok {
		return f, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to open workbook: %w", err)
		}
		return nil, &TransientFetchError{Op: "open " + filepath.Base(path), Err: err}
	}
	w.open[path] = f
	return f, nil
}

func (w *Workbook) readSheet(f *excelize.File, name string) (*grid.Sheet, error) {
	formatted, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read worksheet %q: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read worksheet %q: %w", name, err)
	}

	sheet := &grid.Sheet{Name: name}

	mcs, err := f.GetMergeCells(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read merged cells of %q: %w", name, err)
	}
	for _, mc := range mcs {
		m, err := mergeOf(mc)
		if err != nil {
			w.log.Warn("Ignoring malformed merged range", zap.String("worksheet", name), zap.Error(err))
			continue
		}
		sheet.Merges = append(sheet.Merges, m)
	}

	notes, err := w.notes(f, name)
	if err != nil {
		return nil, err
	}

	nrows, ncols := len(formatted), 0
	for _, r := range formatted {
		ncols = max(ncols, len(r))
	}
	for _, m := range sheet.Merges {
		nrows, ncols = max(nrows, m.EndRow), max(ncols, m.EndCol)
	}
	if dim, err := f.GetSheetDimension(name); err == nil {
		if r, c, ok := dimensionOf(dim); ok {
			nrows, ncols = max(nrows, r), max(ncols, c)
		}
	}

	sheet.ColumnWidths = make([]float64, ncols)
	for c := range ncols {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return nil, err
		}
		width, err := f.GetColWidth(name, col)
		if err != nil {
			return nil, fmt.Errorf("unable to get width of column %s in %q: %w", col, name, err)
		}
		sheet.ColumnWidths[c] = math.Trunc(width*maxDigitWidth + 5)
	}

	styles := make(map[int]grid.Format)
	sheet.Rows = make([]grid.Row, nrows)
	for r := range nrows {
		height, err := f.GetRowHeight(name, r+1)
		if err != nil {
			return nil, fmt.Errorf("unable to get height of row %d in %q: %w", r+1, name, err)
		}
		row := grid.Row{Index: r, Height: height * pointsToPx, Cells: make([]grid.Cell, ncols)}
		for c := range ncols {
			cell, err := w.readCell(f, name, r, c, at(formatted, r, c), at(raw, r, c), styles)
			if err != nil {
				return nil, err
			}
			cell.Note = notes[[2]int{r, c}]
			row.Cells[c] = cell
		}
		if ncols > 0 && row.Cells[0].Note != "" {
			d, err := grid.ParseDirectives(row.Cells[0].Note)
			if err != nil {
				w.log.Warn("Ignoring row directives", zap.String("worksheet", name), zap.Int("row", r+1), zap.Error(err))
			}
			row.Directives = d
		}
		sheet.Rows[r] = row
	}
	return sheet, nil
}

func (w *Workbook) readCell(f *excelize.File, sheet string, r, c int, formatted, raw string, styles map[int]grid.Format) (grid.Cell, error) {
	cell := grid.Cell{Row: r, Col: c, Value: raw, Formatted: formatted}

	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return cell, err
	}
	if cell.Formula, err = f.GetCellFormula(sheet, axis); err != nil {
		return cell, fmt.Errorf("unable to read formula of %s!%s: %w", sheet, axis, err)
	}
	if cell.Formula != "" {
		if img, ok := grid.ParseImageFormula(cell.Formula); ok {
			cell.Image = img
		}
		if target, _, ok := grid.ParseHyperlinkFormula(cell.Formula); ok {
			cell.Hyperlink = target
		}
	}
	if cell.Hyperlink == "" {
		ok, target, err := f.GetCellHyperLink(sheet, axis)
		if err != nil {
			return cell, fmt.Errorf("unable to read hyperlink of %s!%s: %w", sheet, axis, err)
		}
		if ok {
			cell.Hyperlink = target
		}
	}

	id, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return cell, fmt.Errorf("unable to read style of %s!%s: %w", sheet, axis, err)
	}
	format, ok := styles[id]
	if !ok {
		if format, err = formatOf(f, id); err != nil {
			return cell, err
		}
		styles[id] = format
	}
	cell.Format = format
	cell.Empty = !cell.HasContent()
	return cell, nil
}

func formatOf(f *excelize.File, id int) (grid.Format, error) {
	var format grid.Format
	if id == 0 {
		return format, nil
	}
	style, err := f.GetStyle(id)
	if err != nil {
		return format, fmt.Errorf("unable to read style %d: %w", id, err)
	}
	if style == nil {
		return format, nil
	}
	if fn := style.Font; fn != nil {
		format.Font = grid.Font{
			Family:    fn.Family,
			Size:      fn.Size,
			Bold:      fn.Bold,
			Italic:    fn.Italic,
			Underline: fn.Underline != "" && fn.Underline != "none",
			Strike:    fn.Strike,
			Color:     fn.Color,
		}
	}
	if len(style.Fill.Color) > 0 {
		format.Fill = grid.Fill{Color: style.Fill.Color[0], Pattern: style.Fill.Pattern}
	}
	for _, b := range style.Border {
		border := grid.Border{Style: b.Style, Color: b.Color}
		switch b.Type {
		case "left":
			format.Borders.Left = border
		case "top":
			format.Borders.Top = border
		case "right":
			format.Borders.Right = border
		case "bottom":
			format.Borders.Bottom = border
		}
	}
	if a := style.Alignment; a != nil {
		format.Align = grid.Align{
			Horizontal: a.Horizontal,
			Vertical:   a.Vertical,
			Wrap:       a.WrapText,
			Indent:     a.Indent,
			Rotation:   a.TextRotation,
		}
	}
	if style.CustomNumFmt != nil {
		format.NumFmt = *style.CustomNumFmt
	}
	return format, nil
}

// notes collects cell comments keyed by zero based position.
func (w *Workbook) notes(f *excelize.File, sheet string) (map[[2]int]string, error) {
	comments, err := f.GetComments(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read comments of %q: %w", sheet, err)
	}
	out := make(map[[2]int]string, len(comments))
	for _, cm := range comments {
		c, r, err := excelize.CellNameToCoordinates(cm.Cell)
		if err != nil {
			w.log.Debug("Ignoring comment with bad reference", zap.String("worksheet", sheet), zap.String("cell", cm.Cell))
			continue
		}
		var b strings.Builder
		b.WriteString(cm.Text)
		for _, run := range cm.Paragraph {
			b.WriteString(run.Text)
		}
		out[[2]int{r - 1, c - 1}] = strings.TrimSpace(b.String())
	}
	return out, nil
}

func mergeOf(mc excelize.MergeCell) (grid.Merge, error) {
	c1, r1, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
	if err != nil {
		return grid.Merge{}, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
	if err != nil {
		return grid.Merge{}, err
	}
	return grid.Merge{StartRow: r1 - 1, EndRow: r2, StartCol: c1 - 1, EndCol: c2}, nil
}

// dimensionOf returns row and column count covered by "A1:D10" style
// dimension.
func dimensionOf(dim string) (rows, cols int, ok bool) {
	_, last, found := strings.Cut(dim, ":")
	if !found {
		last = dim
	}
	c, r, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return 0, 0, false
	}
	return r, c, true
}

func at(rows [][]string, r, c int) string {
	if r < len(rows) && c < len(rows[r]) {
		return rows[r][c]
	}
	return ""
}
