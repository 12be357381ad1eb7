// Package debug has helpers producing human readable dumps of resolved
// section trees and grids.
package debug

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value, empty values are left unquoted.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// OptionalText is TextBlock which skips empty values completely.
func (tw TreeWriter) OptionalText(depth int, label, value string) {
	if value == "" {
		return
	}
	tw.TextBlock(depth, label, value)
}

// Flags writes names of set flags on a single line, nothing if none is set.
func (tw TreeWriter) Flags(depth int, label string, flags map[string]bool) {
	var set []string
	for name, on := range flags {
		if on {
			set = append(set, name)
		}
	}
	if len(set) == 0 {
		return
	}
	slices.SortFunc(set, strings.Compare)
	tw.Line(depth, "%s: %s", label, strings.Join(set, ", "))
}

// Map writes key/value pairs in natural key order so "Sheet10" follows
// "Sheet9".
func (tw TreeWriter) Map(depth int, label string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	tw.Line(depth, "%s:", label)
	for _, k := range keys {
		tw.TextBlock(depth+1, k, m[k])
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
