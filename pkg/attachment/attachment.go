// Package attachment manages the image attached to a draft.
// Selecting a file validates it and builds a local preview; the upload itself
// is deferred until the owning form submits.
package attachment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/docker/go-units"
	"github.com/gabriel-vasile/mimetype"

	"github.com/JaimeStill/portfolio-admin/pkg/form"
)

// File is a user selection awaiting upload.
type File struct {
	Name string

	// ContentType is the declared type. When empty the type is sniffed.
	ContentType string
	Data        []byte
}

// Size returns the file length in bytes.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Uploader stores a file and returns its reference URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// UploaderFunc adapts a function to Uploader.
type UploaderFunc func(ctx context.Context, f File) (string, error)

func (fn UploaderFunc) Upload(ctx context.Context, f File) (string, error) {
	return fn(ctx, f)
}

// Picker is the file selection control bound to the flow.
type Picker interface {
	Reset()
}

// State describes what the draft's attachment currently refers to.
type State int

const (
	StateNone State = iota
	// StatePreview is a local selection not yet uploaded.
	StatePreview
	// StateStored is a server-issued reference.
	StateStored
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StatePreview:
		return "preview"
	case StateStored:
		return "stored"
	default:
		return "unknown"
	}
}

// Option configures a Flow.
type Option func(*Flow)

// WithPicker binds the selection control reset by Clear.
func WithPicker(p Picker) Option {
	return func(f *Flow) { f.picker = p }
}

// WithPreviewer replaces the preview renderer.
func WithPreviewer(fn func(data []byte, contentType string) string) Option {
	return func(f *Flow) { f.previewer = fn }
}

// Flow tracks one draft's attachment from selection to stored reference.
type Flow struct {
	mu        sync.Mutex
	maxSize   int64
	pending   *File
	preview   string
	reference string
	picker    Picker
	previewer func([]byte, string) string

	// touched is set once Load, Select or Clear has run. An untouched flow
	// has no opinion about the draft's reference.
	touched bool
}

// New creates an empty Flow bounded by cfg.
func New(cfg *Config, opts ...Option) *Flow {
	f := &Flow{
		maxSize:   cfg.MaxSizeBytes(),
		previewer: Preview,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load seeds the flow with an existing record's reference.
// preview is the renderable form of ref, typically an absolute URL.
func (f *Flow) Load(ref, preview string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touched = true
	f.pending = nil
	f.reference = ref
	f.preview = preview
	if f.preview == "" {
		f.preview = ref
	}
}

// Select validates file and, when acceptable, makes it the pending upload.
// A rejected selection leaves the previous state untouched.
func (f *Flow) Select(file File) error {
	if file.Size() == 0 {
		return &SelectionError{Err: ErrEmpty, Message: "Please select an image file"}
	}

	ct := file.ContentType
	if ct == "" {
		ct = mimetype.Detect(file.Data).String()
	}
	if !strings.HasPrefix(ct, "image/") {
		return &SelectionError{Err: ErrNotImage, Message: "Please select an image file"}
	}

	if f.maxSize > 0 && file.Size() > f.maxSize {
		return &SelectionError{
			Err:     ErrTooLarge,
			Message: fmt.Sprintf("Image size must be less than %s", sizeLabel(f.maxSize)),
		}
	}

	file.ContentType = ct
	preview := f.previewer(file.Data, ct)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = true
	f.pending = &file
	f.preview = preview
	return nil
}

// Clear returns to the no-attachment state and resets the picker.
func (f *Flow) Clear() {
	f.mu.Lock()
	f.touched = true
	f.pending = nil
	f.preview = ""
	f.reference = ""
	picker := f.picker
	f.mu.Unlock()

	if picker != nil {
		picker.Reset()
	}
}

// Preview returns the renderable preview, or "".
func (f *Flow) Preview() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview
}

// Reference returns the stored reference, or "".
func (f *Flow) Reference() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reference
}

// Pending reports whether a selected file awaits upload.
func (f *Flow) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending != nil
}

// Touched reports whether the flow has been loaded, selected into or cleared.
func (f *Flow) Touched() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}

// State reports what the attachment refers to.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.pending != nil:
		return StatePreview
	case f.reference != "":
		return StateStored
	default:
		return StateNone
	}
}

// Resolve uploads a pending file and returns the reference to store on the
// record. Without a pending file the current reference is returned unchanged.
// After a successful upload the file is no longer pending, so a retried
// submission reuses the reference instead of uploading again.
func (f *Flow) Resolve(ctx context.Context, up Uploader) (string, error) {
	f.mu.Lock()
	pending := f.pending
	ref := f.reference
	f.mu.Unlock()

	if pending == nil {
		return ref, nil
	}

	url, err := up.Upload(ctx, *pending)
	if err != nil {
		return "", &UploadError{Err: err}
	}

	f.mu.Lock()
	if f.pending == pending {
		f.pending = nil
		f.reference = url
	}
	f.mu.Unlock()

	return url, nil
}

// Hook binds the flow to a form controller: at submit time the pending file
// is uploaded and assign stores the resulting reference on the draft.
// An untouched flow leaves the draft's reference as it is.
func Hook[D form.Draft](flow *Flow, up Uploader, assign func(*D, string)) form.Hook[D] {
	return func(ctx context.Context, draft *D) error {
		if !flow.Touched() {
			return nil
		}
		ref, err := flow.Resolve(ctx, up)
		if err != nil {
			return err
		}
		assign(draft, ref)
		return nil
	}
}

func sizeLabel(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return units.BytesSize(float64(n))
}
