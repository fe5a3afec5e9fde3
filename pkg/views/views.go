// Package views renders console views from embedded text templates.
// Templates are parsed once when the set is built so a broken template fails
// at startup instead of on first render.
package views

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/template"
	"time"
)

// ViewDef names a view template and its heading.
type ViewDef struct {
	Name     string
	Template string
	Title    string
}

// ViewData is passed to every view template.
type ViewData struct {
	Title string
	Data  any
}

// TemplateSet holds pre-parsed view templates, each cloned from the shared
// layout templates.
type TemplateSet struct {
	views map[string]*template.Template
	defs  map[string]ViewDef
}

// NewTemplateSet parses layoutGlob from fsys and clones the result for each
// view found under viewDir. funcs is merged over the default helpers.
func NewTemplateSet(fsys fs.FS, layoutGlob, viewDir string, defs []ViewDef, funcs template.FuncMap) (*TemplateSet, error) {
	fm := Funcs()
	for k, v := range funcs {
		fm[k] = v
	}

	layouts, err := template.New("").Funcs(fm).ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewFS, err := fs.Sub(fsys, viewDir)
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{
		views: make(map[string]*template.Template, len(defs)),
		defs:  make(map[string]ViewDef, len(defs)),
	}

	for _, d := range defs {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", d.Template, err)
		}
		if _, err := t.ParseFS(viewFS, d.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", d.Template, err)
		}
		ts.views[d.Name] = t
		ts.defs[d.Name] = d
	}

	return ts, nil
}

// Render executes the layout template for the named view with data.
func (ts *TemplateSet) Render(w io.Writer, layout, name string, data any) error {
	t, ok := ts.views[name]
	if !ok {
		return fmt.Errorf("view not found: %s", name)
	}
	return t.ExecuteTemplate(w, layout, ViewData{
		Title: ts.defs[name].Title,
		Data:  data,
	})
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":     FormatDate,
		"month":    FormatMonth,
		"join":     strings.Join,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"truncate": Truncate,
	}
}

// FormatDate renders t as a short calendar date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("1/2/2006")
}

// FormatMonth renders t as "Jan 2006", or "Present" for the zero time.
func FormatMonth(t time.Time) string {
	if t.IsZero() {
		return "Present"
	}
	return t.Format("Jan 2006")
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
