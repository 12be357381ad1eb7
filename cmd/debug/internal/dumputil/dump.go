// Package dumputil provides output helpers shared by debug tools.
package dumputil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// OutputPath places <stem>-<part>... next to input file, or in outDir when
// it is set. Parts are slugified so worksheet names are safe to use.
func OutputPath(inPath, outDir, ext string, parts ...string) string {
	base := filepath.Base(inPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	for _, p := range parts {
		s := slug.Make(p)
		if s == "" {
			s = "unnamed"
		}
		name += "-" + s
	}
	dir := filepath.Dir(inPath)
	if outDir != "" {
		dir = outDir
	}
	return filepath.Join(dir, name+ext)
}

// WriteOutput writes data to path refusing to replace existing file unless
// asked to.
func WriteOutput(path string, data []byte, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s (use -overwrite)", path)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}
