package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	var (
		path, field, filename, partType string
		content                         []byte
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			respond(w, http.StatusBadRequest, `{"success":false,"error":"bad form"}`)
			return
		}
		for name := range r.MultipartForm.File {
			field = name
		}
		f, hdr, err := r.FormFile(client.ImageField)
		if err != nil {
			respond(w, http.StatusBadRequest, `{"success":false,"error":"No file uploaded"}`)
			return
		}
		defer f.Close()
		filename = hdr.Filename
		partType = hdr.Header.Get("Content-Type")
		content, _ = io.ReadAll(f)

		respond(w, http.StatusOK, `{"success":true,"file":{"url":"/uploads/abc.png","filename":"abc.png","size":4}}`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, nil)

	file, err := c.UploadImage(context.Background(), "logo.png", "image/png", []byte("\x89PNG"))
	require.NoError(t, err)

	assert.Equal(t, "/api/upload/image", path)
	assert.Equal(t, client.ImageField, field)
	assert.Equal(t, "logo.png", filename)
	assert.Equal(t, "image/png", partType)
	assert.Equal(t, []byte("\x89PNG"), content)
	assert.Equal(t, "/uploads/abc.png", file.URL)
	assert.Equal(t, "abc.png", file.Filename)
	assert.EqualValues(t, 4, file.Size)
}

func TestDeleteImage(t *testing.T) {
	var method, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.EscapedPath()
		if r.URL.Path == "/api/upload/image/missing.png" {
			respond(w, http.StatusNotFound, `{"success":false,"error":"File not found"}`)
			return
		}
		respond(w, http.StatusOK, `{"success":true,"message":"File deleted successfully"}`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, nil)

	require.NoError(t, c.DeleteImage(context.Background(), "my logo.png"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/upload/image/my%20logo.png", path)

	err := c.DeleteImage(context.Background(), "missing.png")
	msg, ok := client.ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "File not found", msg)
}

func TestUploadImage_ServerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusBadRequest, `{"success":false,"error":"Only image files are allowed"}`)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, nil).UploadImage(context.Background(), "a.txt", "text/plain", []byte("x"))

	msg, ok := client.ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Only image files are allowed", msg)
}

func TestUploadImage_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, `{"success":true,"file":{}}`)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, nil).UploadImage(context.Background(), "a.png", "image/png", []byte("x"))
	require.Error(t, err)
	assert.True(t, client.IsKind(err, client.KindTransport))
}

func TestResolveImage(t *testing.T) {
	c := newClient(t, "http://api.example.com/", nil)

	tests := []struct {
		ref  string
		want string
	}{
		{"", ""},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"http://other/a.png", "http://other/a.png"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"/uploads/a.png", "http://api.example.com/uploads/a.png"},
		{"a.png", "http://api.example.com/api/upload/image/a.png"},
	}

	for _, tt := range tests {
		if got := c.ResolveImage(tt.ref); got != tt.want {
			t.Errorf("ResolveImage(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
