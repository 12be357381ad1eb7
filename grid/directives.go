package grid

import (
	"fmt"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// ParseDirectives extracts row directives from a cell note. Two forms are
// accepted: a flow mapping anywhere in the note, e.g.
//
//	Author: {out-of-table: true}
//	{repeat-rows: 2, new-page: yes}
//
// or bare keywords separated by commas, semicolons or new lines:
//
//	out-of-table
//	repeat-rows=2; new-page
//
// Notes without recognizable directives result in zero value and no error,
// most notes are ordinary comments.
func ParseDirectives(note string) (Directives, error) {
	var d Directives

	note = strings.TrimSpace(note)
	if note == "" {
		return d, nil
	}

	if start := strings.IndexByte(note, '{'); start >= 0 {
		end := strings.LastIndexByte(note, '}')
		if end < start {
			return d, fmt.Errorf("unable to parse directives, unbalanced braces: %q", note)
		}
		dec := yaml.NewDecoder(strings.NewReader(note[start : end+1]))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return Directives{}, fmt.Errorf("unable to parse directives: %w", err)
		}
		if d.RepeatRows < 0 {
			return Directives{}, fmt.Errorf("unable to parse directives, negative repeat-rows: %d", d.RepeatRows)
		}
		return d, nil
	}

	fields := strings.FieldsFunc(note, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})
	for _, f := range fields {
		key, value, _ := strings.Cut(strings.TrimSpace(f), "=")
		if k, v, found := strings.Cut(key, ":"); found {
			key, value = k, v
		}
		key, value = strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)
		switch key {
		case "out-of-table":
			d.OutOfTable = true
		case "new-page":
			d.NewPage = true
		case "repeat-rows":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return Directives{}, fmt.Errorf("unable to parse directives, bad repeat-rows value: %q", value)
			}
			d.RepeatRows = n
		}
	}
	return d, nil
}
