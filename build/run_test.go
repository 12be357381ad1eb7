package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"gsdoc/common"
	"gsdoc/config"
	"gsdoc/section"
	"gsdoc/state"
)

var tocHeader = []string{"section", "heading", "process", "level", "content-type", "link", "break", "landscape", "page-spec", "margin-spec"}

func writeReport(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unable to prepare workbook: %v", err)
		}
	}

	must(f.SetSheetName("Sheet1", "toc"))
	rows := [][]string{
		tocHeader,
		{"1", "Introduction", "yes", "0", "table", "Data", "page", "", "A3", ""},
		{"2", "Skipped", "no", "0", "table", "Data", "", "", "", ""},
		{"3", "Appendix", "yes", "1", "", "", "", "yes", "", "narrow"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			must(err)
			must(f.SetCellValue("toc", cell, v))
		}
	}

	_, err := f.NewSheet("Data")
	must(err)
	must(f.SetCellValue("Data", "A1", "Name"))
	must(f.SetCellValue("Data", "B1", "Value"))
	must(f.SetCellValue("Data", "A2", "alpha"))
	must(f.SetCellValue("Data", "B2", 1))

	must(os.MkdirAll(filepath.Dir(path), 0755))
	must(f.SaveAs(path))
}

func testEnv(t *testing.T, root string) *state.LocalEnv {
	t.Helper()

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Document.Root = root
	cfg.Document.Fetch.Delay = 0

	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	return env
}

func TestProcess(t *testing.T) {
	root := t.TempDir()
	writeReport(t, filepath.Join(root, "books", "Report.xlsx"))

	env := testEnv(t, root)
	dst := filepath.Join(t.TempDir(), "out", "report.yaml")

	tree, err := Process(context.Background(), env, "report", Options{Destination: dst}, env.Log)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(tree) != 2 {
		t.Fatalf("got %d top level sections, want 2", len(tree))
	}
	intro := tree[0]
	if intro.Heading != "Introduction" || !intro.PageBreak || intro.PageSpec != "A3" {
		t.Errorf("unexpected first section: %+v", intro)
	}
	if intro.MarginSpec != env.Cfg.Document.Layout.DefaultMargin {
		t.Errorf("MarginSpec = %q, want default %q", intro.MarginSpec, env.Cfg.Document.Layout.DefaultMargin)
	}
	if intro.Contents == nil || intro.Contents.Kind != common.ContentTypeTable || len(intro.Contents.Blocks) == 0 {
		t.Fatalf("table contents missing: %+v", intro.Contents)
	}
	appendix := tree[1]
	if appendix.Heading != "Appendix" || !appendix.Landscape || appendix.MarginSpec != "narrow" || appendix.Contents != nil {
		t.Errorf("unexpected second section: %+v", appendix)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("destination was not written: %v", err)
	}
	defer f.Close()

	got, err := ReadTree(f)
	if err != nil {
		t.Fatalf("ReadTree() error = %v", err)
	}
	if len(section.Flatten(got)) != len(section.Flatten(tree)) {
		t.Errorf("read back %d sections, want %d", len(section.Flatten(got)), len(section.Flatten(tree)))
	}
	if got.String() != tree.String() {
		t.Errorf("tree changed after write/read:\n%s\nwant:\n%s", got, tree)
	}
}

func TestProcess_DryRun(t *testing.T) {
	root := t.TempDir()
	writeReport(t, filepath.Join(root, "Report.xlsx"))

	env := testEnv(t, root)
	out := t.TempDir()
	dst := filepath.Join(out, "report.yaml")

	if _, err := Process(context.Background(), env, "Report.xlsx", Options{Destination: dst, DryRun: true}, env.Log); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("dry run produced output: %v", err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run left %d entries in destination directory", len(entries))
	}
}

func TestProcess_MissingSpreadsheet(t *testing.T) {
	env := testEnv(t, t.TempDir())
	dst := filepath.Join(t.TempDir(), "x.yaml")

	_, err := Process(context.Background(), env, "absent", Options{Destination: dst}, env.Log)
	if err == nil {
		t.Fatal("expected error for missing spreadsheet")
	}
	if !strings.Contains(err.Error(), "absent") {
		t.Errorf("error does not name source: %v", err)
	}
}

func TestDestination(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.yaml")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		src, dst  string
		overwrite bool
		want      string
		wantErr   bool
	}{
		{name: "directory", src: "books/Report.xlsx", dst: dir, want: filepath.Join(dir, "Report.yaml")},
		{name: "file", src: "report", dst: filepath.Join(dir, "new.yaml"), want: filepath.Join(dir, "new.yaml")},
		{name: "exists", src: "report", dst: existing, wantErr: true},
		{name: "overwrite", src: "report", dst: existing, overwrite: true, want: existing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := destination(tt.src, tt.dst, tt.overwrite)
			if (err != nil) != tt.wantErr {
				t.Fatalf("destination() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("destination() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteTree(t *testing.T) {
	tree := section.Tree{{
		DocumentName: "report",
		SectionName:  "report__00_001",
		SectionIndex: 1,
		Heading:      "Only",
		ContentType:  common.ContentTypePdf,
		PageSpec:     "A4",
		MarginSpec:   "normal",
	}}

	var buf bytes.Buffer
	if err := WriteTree(&buf, "report", "run", tree); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}
	out := buf.String()
	for _, s := range []string{"source: report", "content_type: pdf", "section_name: report__00_001"} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q:\n%s", s, out)
		}
	}

	got, err := ReadTree(&buf)
	if err != nil {
		t.Fatalf("ReadTree() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadTree() returned %d sections, want 1", len(got))
	}
	if s := got[0]; s.SectionName != "report__00_001" || s.ContentType != common.ContentTypePdf || s.PageSpec != "A4" || s.Heading != "Only" {
		t.Errorf("ReadTree() = %+v, want %+v", s, tree[0])
	}

	if _, err := ReadTree(strings.NewReader("sections: []\nunknown: 1\n")); err == nil {
		t.Error("expected error for unknown field")
	}
}
