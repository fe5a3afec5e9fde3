package attachment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImage rejects selections outside the image MIME family.
	ErrNotImage = errors.New("attachment: not an image")

	// ErrTooLarge rejects selections above the configured ceiling.
	ErrTooLarge = errors.New("attachment: file too large")

	// ErrEmpty rejects selections with no content.
	ErrEmpty = errors.New("attachment: empty file")
)

// SelectionError is a local rejection of a selected file.
type SelectionError struct {
	Err     error
	Message string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// LocalMessage returns the user-facing rejection text.
func (e *SelectionError) LocalMessage() string {
	return e.Message
}

// UploadError wraps a failed deferred upload.
type UploadError struct {
	Err error
}

// UploadFallback is shown when an upload fails without a server message.
const UploadFallback = "Failed to upload image"

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload attachment: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func (e *UploadError) LocalMessage() string {
	return UploadFallback
}
