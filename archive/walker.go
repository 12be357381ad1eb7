// Package archive builds Walk abstraction on top of "archive/zip" to look
// inside office document packages (docx, odt) without unpacking them.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// ErrStop may be returned by WalkFunc to end walk early without error.
var ErrStop = errors.New("stop walking")

// WalkFunc is called for each file in archive visited by Walk. The archive
// argument contains path to archive passed to Walk. If an error is returned,
// processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits all files in the archive with names starting with prefix,
// calling walkFn for each item. Entries with absolute paths or ".."
// components make whole archive invalid.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadFile returns content of a single archive entry reading no more than
// limit bytes. Missing entry results in error wrapping fs.ErrNotExist.
func ReadFile(archive, name string, limit int64) ([]byte, error) {
	var (
		data  []byte
		found bool
	)
	err := Walk(archive, name, func(_ string, f *zip.File) error {
		if f.Name != name {
			return nil
		}
		found = true
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		if data, err = io.ReadAll(io.LimitReader(rc, limit)); err != nil {
			return err
		}
		return ErrStop
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s in %s: %w", name, archive, fs.ErrNotExist)
	}
	return data, nil
}

// isSafePath returns false for absolute paths and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
