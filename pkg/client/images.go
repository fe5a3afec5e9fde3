package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ImageField is the multipart field name the upload endpoint reads.
const ImageField = "image"

// File describes an uploaded image as reported by the upload endpoint.
type File struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName,omitempty"`
	MimeType     string `json:"mimetype,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

// UploadImage uploads an image and returns the stored file reference.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, data []byte) (*File, error) {
	p, err := c.Upload(ctx, UploadImage, ImageField, filename, contentType, data)
	if err != nil {
		return nil, err
	}

	var f File
	if err := p.DecodeFile(&f); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if f.URL == "" {
		return nil, transportError(p.Status, fmt.Errorf("upload response missing file url"))
	}
	return &f, nil
}

// DeleteImage removes an uploaded image by file name.
func (c *Client) DeleteImage(ctx context.Context, filename string) error {
	_, err := c.Do(ctx, http.MethodDelete, Image(filename), nil)
	return err
}

// ImageURL returns the absolute URL serving filename.
func (c *Client) ImageURL(filename string) string {
	return c.URL(Image(filename))
}

// ResolveImage returns an absolute URL for a stored image reference.
// Absolute and data URLs are returned unchanged; relative references are
// resolved against the base address.
func (c *Client) ResolveImage(ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"),
		strings.HasPrefix(ref, "https://"),
		strings.HasPrefix(ref, "data:"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return c.baseURL + ref
	default:
		return c.ImageURL(ref)
	}
}
