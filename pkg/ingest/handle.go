package ingest

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Handle is an opened-on-demand reference to a picked file.
type Handle interface {
	Name() string
	Size() int64
	// ContentType returns the declared media type, or "" when unknown.
	ContentType() string
	Open() (io.ReadCloser, error)
}

type memoryFile struct {
	name        string
	contentType string
	data        []byte
}

// FromBytes wraps in-memory content. The slice is not copied.
func FromBytes(name, contentType string, data []byte) Handle {
	return &memoryFile{name: name, contentType: strings.TrimSpace(contentType), data: data}
}

func (f *memoryFile) Name() string        { return f.name }
func (f *memoryFile) Size() int64         { return int64(len(f.data)) }
func (f *memoryFile) ContentType() string { return f.contentType }

func (f *memoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type diskFile struct {
	path string
	size int64
}

// FromPath references a file on the local disk. The file is only stat'ed here;
// content is read when the handle is opened.
func FromPath(path string) (Handle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("ingest: %q is a directory", path)
	}
	return &diskFile{path: path, size: info.Size()}, nil
}

func (f *diskFile) Name() string { return filepath.Base(f.path) }
func (f *diskFile) Size() int64  { return f.size }

func (f *diskFile) ContentType() string {
	return typeByExtension(f.path)
}

func (f *diskFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

type multipartFile struct {
	header *multipart.FileHeader
}

// FromMultipart wraps a file part received in a multipart/form-data request.
func FromMultipart(header *multipart.FileHeader) Handle {
	return &multipartFile{header: header}
}

func (f *multipartFile) Name() string { return f.header.Filename }
func (f *multipartFile) Size() int64  { return f.header.Size }

func (f *multipartFile) ContentType() string {
	ct := strings.TrimSpace(f.header.Header.Get("Content-Type"))
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if guessed := typeByExtension(f.header.Filename); guessed != "" {
		return guessed
	}
	return ct
}

func (f *multipartFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}

func typeByExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// IsImage reports whether the handle declares an image media type.
func IsImage(h Handle) bool {
	if h == nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(h.ContentType()), "image/")
}
