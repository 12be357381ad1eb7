package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"gsdoc/archive"
	"gsdoc/common"
)

const (
	odtMimeType  = "application/vnd.oasis.opendocument.text"
	docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	pdfMimeType  = "application/pdf"

	metaLimit = 1 << 20
)

// LocalFiles acquires external documents from local files copying them to
// work directory.
type LocalFiles struct {
	root  string
	dir   string
	log   *zap.Logger
	cache map[string]*File
	names map[string]int
}

func NewLocalFiles(root, workDir string, log *zap.Logger) *LocalFiles {
	return &LocalFiles{
		root:  root,
		dir:   filepath.Join(workDir, "files"),
		log:   log.Named("files"),
		cache: make(map[string]*File),
		names: make(map[string]int),
	}
}

// Acquire verifies that file is of declared kind, copies it and collects
// whatever metadata could be found.
func (lf *LocalFiles) Acquire(ctx context.Context, kind common.ContentType, ref, relativeTo string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !kind.External() {
		return nil, fmt.Errorf("unable to acquire %q as %s: %w", ref, kind, ErrUnsupported)
	}
	src, err := localPath(lf.root, ref, relativeTo)
	if err != nil {
		return nil, err
	}
	if f, ok := lf.cache[src]; ok {
		if f.Kind != kind {
			return nil, fmt.Errorf("file %s is already acquired as %s, not %s", src, f.Kind, kind)
		}
		return f, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}

	f := &File{Kind: kind, Source: src, Name: filepath.Base(src), Size: int64(len(data))}
	switch kind {
	case common.ContentTypePdf:
		if !filetype.Is(data, "pdf") {
			return nil, fmt.Errorf("file %s is not a pdf document", src)
		}
		f.MimeType, f.Pages = pdfMimeType, pdfPages(data)
	case common.ContentTypeDocx:
		f.MimeType = docxMimeType
		if err := lf.docxMeta(src, f); err != nil {
			return nil, err
		}
	case common.ContentTypeOdt:
		f.MimeType = odtMimeType
		if err := lf.odtMeta(src, f); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(lf.dir, 0700); err != nil {
		return nil, fmt.Errorf("unable to create files directory: %w", err)
	}
	f.Path = filepath.Join(lf.dir, uniqueName(lf.names, src, "."+kind.String()))
	if err := os.WriteFile(f.Path, data, 0644); err != nil {
		return nil, fmt.Errorf("unable to store file: %w", err)
	}
	lf.log.Debug("File acquired", zap.Stringer("kind", kind), zap.String("source", src), zap.String("path", f.Path),
		zap.String("title", f.Title), zap.Int("pages", f.Pages))

	lf.cache[src] = f
	return f, nil
}

func (lf *LocalFiles) docxMeta(src string, f *File) error {
	if _, err := archive.ReadFile(src, "word/document.xml", 0); err != nil {
		return fmt.Errorf("file %s is not a docx document: %w", src, err)
	}
	if doc, err := readXML(src, "docProps/core.xml"); err == nil {
		if e := doc.FindElement("//dc:title"); e != nil {
			f.Title = strings.TrimSpace(e.Text())
		}
	}
	if doc, err := readXML(src, "docProps/app.xml"); err == nil {
		if e := doc.FindElement("//Pages"); e != nil {
			f.Pages, _ = strconv.Atoi(strings.TrimSpace(e.Text()))
		}
	}
	return nil
}

func (lf *LocalFiles) odtMeta(src string, f *File) error {
	mt, err := archive.ReadFile(src, "mimetype", 256)
	if err != nil || strings.TrimSpace(string(mt)) != odtMimeType {
		return fmt.Errorf("file %s is not an odt document", src)
	}
	doc, err := readXML(src, "meta.xml")
	if err != nil {
		lf.log.Debug("No document metadata", zap.String("source", src), zap.Error(err))
		return nil
	}
	if e := doc.FindElement("//dc:title"); e != nil {
		f.Title = strings.TrimSpace(e.Text())
	}
	if e := doc.FindElement("//meta:document-statistic"); e != nil {
		f.Pages, _ = strconv.Atoi(e.SelectAttrValue("meta:page-count", ""))
	}
	return nil
}

func readXML(src, name string) (*etree.Document, error) {
	data, err := archive.ReadFile(src, name, metaLimit)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", name, err)
	}
	return doc, nil
}

var pdfPageRe = regexp.MustCompile(`/Type\s*/Page\b`)

// pdfPages counts page objects, compressed object streams hide them so zero
// means unknown.
func pdfPages(data []byte) int {
	if !bytes.Contains(data, []byte("/Page")) {
		return 0
	}
	return len(pdfPageRe.FindAllIndex(data, -1))
}
