// Package source defines collaborators section resolver relies on to read
// spreadsheets and acquire external resources, and provides local
// implementations backed by files on disk.
package source

import (
	"context"

	"gsdoc/common"
	"gsdoc/grid"
)

// DataSource reads spreadsheet grids. Spreadsheet identity returned by
// ResolveSpreadsheet is opaque to callers and passed back to
// FetchWorksheetGrid. Failures worth retrying are reported as
// *TransientFetchError.
type DataSource interface {
	FetchWorksheetGrid(ctx context.Context, spreadsheetID, worksheet string) (*grid.Sheet, error)
	ResolveSpreadsheet(ctx context.Context, nameOrURL string) (toc *grid.Sheet, spreadsheetID string, err error)
}

// ImageAcquirer makes image referenced from a document available locally.
// relativeTo is identity of spreadsheet the reference comes from.
type ImageAcquirer interface {
	Acquire(ctx context.Context, ref, relativeTo string) (string, error)
}

// FileAcquirer makes external document (pdf, docx, odt) available locally.
type FileAcquirer interface {
	Acquire(ctx context.Context, kind common.ContentType, ref, relativeTo string) (*File, error)
}

// File is opaque content descriptor for external documents, renderers embed
// or attach it as is.
type File struct {
	Kind     common.ContentType `yaml:"kind"`
	Source   string             `yaml:"source"`
	Path     string             `yaml:"path"`
	Name     string             `yaml:"name"`
	MimeType string             `yaml:"mime_type"`
	Size     int64              `yaml:"size"`
	Title    string             `yaml:"title,omitempty"`
	Pages    int                `yaml:"pages,omitempty"`
}
