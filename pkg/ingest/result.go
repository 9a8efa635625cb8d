package ingest

import (
	"errors"
	"fmt"
)

// Mode selects what an ingestion reports upward.
type Mode string

const (
	ModeRaw    Mode = "raw"
	ModeBase64 Mode = "base64"
)

var (
	// ErrTooLarge is returned when a file exceeds the configured size limit.
	ErrTooLarge = errors.New("ingest: file exceeds size limit")
	// ErrNotAccepted is returned when a file does not match the accept filter.
	ErrNotAccepted = errors.New("ingest: file type not accepted")
	// ErrNilHandle is returned when ingestion is requested without a file.
	ErrNilHandle = errors.New("ingest: file handle is nil")
)

// Selection is what an uploader pushes to its host. Exactly one of Raw and
// Encoded is populated, matching Mode.
type Selection struct {
	Mode    Mode
	Raw     Handle
	Encoded string
}

// Empty reports whether nothing has been selected.
func (s Selection) Empty() bool {
	return s.Raw == nil && s.Encoded == ""
}

// Result is either Ok carrying a Selection or a ReadError carrying its cause.
type Result struct {
	selection  Selection
	err        error
	generation uint64
}

// Ok builds a successful result.
func Ok(selection Selection) Result {
	return Result{selection: selection}
}

// ReadError builds a failed result for the named file.
func ReadError(name string, cause error) Result {
	if cause == nil {
		cause = errors.New("unknown read failure")
	}
	return Result{err: fmt.Errorf("ingest: read %q: %w", name, cause)}
}

// Failed reports whether the result is a ReadError.
func (r Result) Failed() bool { return r.err != nil }

// Err returns the failure cause, or nil for Ok results.
func (r Result) Err() error { return r.err }

// Selection returns the selection carried by an Ok result.
func (r Result) Selection() Selection { return r.selection }

// Generation returns the request token the result belongs to.
func (r Result) Generation() uint64 { return r.generation }
