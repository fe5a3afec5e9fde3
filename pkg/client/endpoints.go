package client

import (
	"net/url"
	"strings"
)

// Endpoint is a logical API path relative to the configured base address.
type Endpoint string

// Logical endpoints exposed by the portfolio API.
const (
	AdminLogin  Endpoint = "/api/admin/login"
	AdminMe     Endpoint = "/api/admin/me"
	Projects    Endpoint = "/api/projects"
	Skills      Endpoint = "/api/skills"
	Experience  Endpoint = "/api/experience"
	UploadImage Endpoint = "/api/upload/image"
)

// ID returns the endpoint addressing a single member of e.
func (e Endpoint) ID(id string) Endpoint {
	return Endpoint(strings.TrimRight(string(e), "/") + "/" + url.PathEscape(id))
}

// Image returns the endpoint addressing an uploaded image by file name.
func Image(filename string) Endpoint {
	return UploadImage.ID(filename)
}
