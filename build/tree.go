// Package build wires configuration, data sources and section resolver
// together for the command line.
package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"

	"gsdoc/misc"
	"gsdoc/section"
)

type treeDocument struct {
	Generator string       `yaml:"generator"`
	Source    string       `yaml:"source"`
	RunID     string       `yaml:"run_id,omitempty"`
	Created   time.Time    `yaml:"created"`
	Sections  section.Tree `yaml:"sections"`
}

// WriteTree encodes section tree as YAML document.
func WriteTree(w io.Writer, src, runID string, tree section.Tree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	doc := treeDocument{
		Generator: misc.GetAppName() + " " + misc.GetVersion(),
		Source:    src,
		RunID:     runID,
		Created:   time.Now().UTC().Truncate(time.Second),
		Sections:  tree,
	}
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("unable to encode section tree: %w", err)
	}
	return enc.Close()
}

// ReadTree decodes YAML produced by WriteTree.
func ReadTree(r io.Reader) (section.Tree, error) {
	var doc treeDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode section tree: %w", err)
	}
	return doc.Sections, nil
}

func writeTreeFile(path, src, runID string, tree section.Tree) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteTree(f, src, runID, tree)
}
