package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by local adapters for remote references.
var ErrUnsupported = errors.New("remote references are not supported")

// AmbiguousSourceError is returned when spreadsheet name does not resolve to
// exactly one candidate.
type AmbiguousSourceError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousSourceError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("spreadsheet %q not found", e.Name)
	}
	return fmt.Sprintf("spreadsheet %q is ambiguous, candidates: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// TransientFetchError marks read failure which may succeed if repeated.
type TransientFetchError struct {
	Op  string
	Err error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("transient failure during %s: %v", e.Op, e.Err)
}

func (e *TransientFetchError) Unwrap() error {
	return e.Err
}

// FetchExhaustedError is returned when transient failure persisted through
// all attempts.
type FetchExhaustedError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *FetchExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *FetchExhaustedError) Unwrap() error {
	return e.Err
}

// CycleError is returned when nested spreadsheet links back to one of its
// ancestors.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "spreadsheet links form a cycle: " + strings.Join(e.Path, " -> ")
}
