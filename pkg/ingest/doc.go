// Package ingest turns a picked file into what an uploader reports upward:
// either the raw handle, or the full content encoded as a base64 data URI.
//
// Encoding runs off the caller's goroutine. Each request carries a generation
// token; picking another file cancels the previous read and any result that
// still arrives for it is dropped, so the deliver callback only ever sees the
// latest selection. Read failures are delivered as a ReadError result rather
// than swallowed.
package ingest
