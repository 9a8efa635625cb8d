package ingest

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const defaultMediaType = "application/octet-stream"

// EncodeDataURI reads the whole of h and returns it as a base64 data URI. It
// is the synchronous core of base64 ingestion; maxSize <= 0 disables the size
// check.
func EncodeDataURI(ctx context.Context, h Handle, maxSize int64) (string, error) {
	if h == nil {
		return "", ErrNilHandle
	}
	if maxSize > 0 && h.Size() > maxSize {
		return "", ErrTooLarge
	}

	rc, err := h.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var src io.Reader = &contextReader{ctx: ctx, r: rc}
	if maxSize > 0 {
		src = io.LimitReader(src, maxSize+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", ErrTooLarge
	}

	mediaType := strings.TrimSpace(h.ContentType())
	if mediaType == "" {
		mediaType = defaultMediaType
	}

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mediaType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), nil
}

// DecodeDataURI splits a base64 data URI produced by EncodeDataURI back into
// its media type and content.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("ingest: not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("ingest: data URI has no payload separator")
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("ingest: data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("ingest: decode data URI: %w", err)
	}
	return mediaType, data, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
