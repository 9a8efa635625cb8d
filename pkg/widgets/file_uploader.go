package widgets

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwidgets/pkg/binding"
	"github.com/goliatone/go-formwidgets/pkg/ingest"
)

// FileUploaderProps configures a FileUploader.
type FileUploaderProps struct {
	Base
	// AcceptedTypes is an HTML accept filter such as "image/*,.pdf".
	AcceptedTypes string
	Selected      binding.Value[ingest.Selection]
	// ConvertToBase64 switches from pushing the raw handle to pushing a data URI.
	ConvertToBase64 bool
	// OnError receives ingestion failures. Optional.
	OnError func(error)
	// MaxSize caps base64 reads in bytes; zero means unlimited.
	MaxSize int64
}

// FileUploaderOption mutates props during construction or Update.
type FileUploaderOption func(*FileUploaderProps)

// DefaultFileUploaderProps returns the documented defaults.
func DefaultFileUploaderProps() FileUploaderProps {
	return FileUploaderProps{
		Base: Base{
			ID:          "file-input",
			HTMLFor:     "default",
			Placeholder: "File, Image, Document",
			Title:       "Title Field",
			HelperText:  "Click to upload or drag and drop",
			Style:       DefaultStyle("xl"),
		},
	}
}

// FileUploader is a drop zone backed by a hidden file input.
type FileUploader struct {
	mu       sync.Mutex
	props    FileUploaderProps
	ingestor *ingest.Ingestor
	inputID  string

	preview    ingest.Handle
	previewURI string
	err        error
}

// NewFileUploader builds a FileUploader from the defaults plus fns. The hidden
// input gets an id unique to this instance, so the drop zone addresses its own
// picker rather than whichever element happens to carry the configured id.
func NewFileUploader(fns ...FileUploaderOption) *FileUploader {
	props := DefaultFileUploaderProps()
	for _, fn := range fns {
		if fn != nil {
			fn(&props)
		}
	}
	return &FileUploader{
		props:    props,
		ingestor: ingest.New(),
		inputID:  props.ID + "-" + uuid.NewString()[:8],
	}
}

func (u *FileUploader) Kind() Kind { return KindFileUploader }

func (u *FileUploader) ID() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.props.ID
}

func (u *FileUploader) FieldName() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.props.fieldName()
}

// InputID is the instance-owned id of the hidden file input.
func (u *FileUploader) InputID() string { return u.inputID }

// Props returns a copy of the current configuration.
func (u *FileUploader) Props() FileUploaderProps {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.props
}

// Update applies fns to the current props, keeping local UI state. A changed
// MaxSize applies to the next selection.
func (u *FileUploader) Update(fns ...FileUploaderOption) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, fn := range fns {
		if fn != nil {
			fn(&u.props)
		}
	}
}

// Rebind replaces the selection binding with the host's latest state.
func (u *FileUploader) Rebind(selected binding.Value[ingest.Selection]) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.props.Selected = selected
}

// Select handles a file-picker change. A nil handle (empty pick) is ignored.
//
// Every other pick becomes the tracked selection, even one that is rejected.
// In raw mode the handle is pushed before Select returns. In base64 mode the
// encoded content is pushed once the read completes; call Wait to block on
// it. Picking again supersedes any read still running. Failures never reach
// the binding: they are stored for Err and passed to OnError, and the preview
// keeps showing the previous file.
func (u *FileUploader) Select(ctx context.Context, h ingest.Handle) {
	if h == nil {
		return
	}

	u.mu.Lock()
	props := u.props
	in := u.ingestor
	u.mu.Unlock()

	if !ingest.Accepts(props.AcceptedTypes, h) {
		in.Supersede()
		u.fail(props, fmt.Errorf("%w: %s does not match %q", ingest.ErrNotAccepted, h.Name(), props.AcceptedTypes))
		return
	}

	if props.Selected.ReadOnly() {
		in.Supersede()
		uri := previewURI(ctx, h, props.MaxSize)
		u.mu.Lock()
		u.preview, u.previewURI, u.err = h, uri, nil
		u.mu.Unlock()
		return
	}

	mode := ingest.ModeRaw
	if props.ConvertToBase64 {
		mode = ingest.ModeBase64
	}
	in.Ingest(ctx, h, mode, func(res ingest.Result) {
		if res.Failed() {
			u.fail(props, res.Err())
			return
		}
		sel := res.Selection()

		uri := sel.Encoded
		if sel.Mode != ingest.ModeBase64 {
			uri = previewURI(ctx, h, props.MaxSize)
		} else if !ingest.IsImage(h) {
			uri = ""
		}

		u.mu.Lock()
		u.preview, u.previewURI, u.err = h, uri, nil
		selected := u.props.Selected
		u.mu.Unlock()

		selected.Push(sel)
	}, ingest.Limit(props.MaxSize))
}

// previewLimit caps the bytes read to preview a raw-mode image when the
// uploader itself has no limit.
const previewLimit = 8 << 20

// previewURI encodes h for the local preview. Only images get one, and a
// read failure just leaves the preview without a thumbnail.
func previewURI(ctx context.Context, h ingest.Handle, maxSize int64) string {
	if !ingest.IsImage(h) {
		return ""
	}
	if maxSize <= 0 || maxSize > previewLimit {
		maxSize = previewLimit
	}
	uri, err := ingest.EncodeDataURI(ctx, h, maxSize)
	if err != nil {
		return ""
	}
	return uri
}

// Wait blocks until any base64 read in flight has been delivered or dropped.
func (u *FileUploader) Wait() {
	u.mu.Lock()
	in := u.ingestor
	u.mu.Unlock()
	in.Wait()
}

// Err returns the failure of the latest selection, if any.
func (u *FileUploader) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Preview returns the locally previewed file, or nil.
func (u *FileUploader) Preview() ingest.Handle {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.preview
}

func (u *FileUploader) fail(props FileUploaderProps, err error) {
	u.mu.Lock()
	u.err = err
	u.mu.Unlock()
	if props.OnError != nil {
		props.OnError(err)
	}
}

func (u *FileUploader) View() View {
	u.mu.Lock()
	defer u.mu.Unlock()

	view := baseView(KindFileUploader, u.props.Base)
	view.ReadOnly = u.props.Selected.ReadOnly()
	view.Accept = u.props.AcceptedTypes
	view.InputID = u.inputID
	view.Base64 = u.props.ConvertToBase64
	if u.preview != nil {
		view.File = &FileView{
			Name:    u.preview.Name(),
			Size:    u.preview.Size(),
			Image:   ingest.IsImage(u.preview),
			Preview: u.previewURI,
		}
	}
	if u.err != nil {
		view.Valid = false
		view.IngestError = u.err.Error()
	}
	return view
}
