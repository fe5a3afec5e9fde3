// Package projects manages portfolio project records.
package projects

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/portfolio-admin/internal/records"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
)

// Project is a project record as returned by the API.
type Project struct {
	records.Meta
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	Featured     bool     `json:"featured"`
}

// Draft is the editable form of a Project. Order holds raw text input.
type Draft struct {
	ID           records.ID `json:"-" toml:"-"`
	Title        string     `json:"title" toml:"title" validate:"required"`
	Description  string     `json:"description" toml:"description" validate:"required"`
	Image        string     `json:"image" toml:"image"`
	Technologies []string   `json:"technologies" toml:"technologies"`
	LiveURL      string     `json:"liveUrl" toml:"live_url"`
	GithubURL    string     `json:"githubUrl" toml:"github_url"`
	Featured     bool       `json:"featured" toml:"featured"`
	Order        string     `json:"order" toml:"order"`
}

func (d Draft) RecordID() string {
	return string(d.ID)
}

// NewDraft copies p into a draft. The technology list is copied so edits
// to the draft never reach p.
func NewDraft(p *Project) Draft {
	if p == nil {
		return BlankDraft()
	}

	techs := slices.Clone(p.Technologies)
	if techs == nil {
		techs = []string{}
	}

	return Draft{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		Technologies: techs,
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
		Featured:     p.Featured,
		Order:        form.Text(p.Order),
	}
}

// BlankDraft returns a draft for a new project with every field zeroed.
func BlankDraft() Draft {
	return Draft{
		Technologies: []string{},
		Order:        "0",
	}
}

// AddTechnology appends a trimmed technology tag. Blank and duplicate tags
// are ignored; the return value reports whether the tag was added.
func (d *Draft) AddTechnology(tech string) bool {
	tech = strings.TrimSpace(tech)
	if tech == "" || slices.Contains(d.Technologies, tech) {
		return false
	}
	d.Technologies = append(d.Technologies, tech)
	return true
}

// RemoveTechnology deletes the tag at index. Out of range indexes are ignored.
func (d *Draft) RemoveTechnology(index int) {
	if index < 0 || index >= len(d.Technologies) {
		return
	}
	d.Technologies = slices.Delete(slices.Clone(d.Technologies), index, index+1)
}

type body struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order"`
}

// Body converts d into the request payload.
func Body(d Draft) any {
	techs := d.Technologies
	if techs == nil {
		techs = []string{}
	}
	return body{
		Title:        d.Title,
		Description:  d.Description,
		Image:        d.Image,
		Technologies: techs,
		LiveURL:      d.LiveURL,
		GithubURL:    d.GithubURL,
		Featured:     d.Featured,
		Order:        form.Int(d.Order),
	}
}

// System reads and writes projects.
type System = records.Repository[Project, Draft]

// New creates the projects System.
func New(c *client.Client, logger *slog.Logger) *System {
	return records.NewRepository[Project, Draft](c, client.Projects, Body, logger.With("system", "projects"))
}
