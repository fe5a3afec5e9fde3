package console

import (
	"embed"
	"io"
	"text/template"

	"github.com/JaimeStill/portfolio-admin/internal/experience"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/skills"
	"github.com/JaimeStill/portfolio-admin/pkg/presenter"
	"github.com/JaimeStill/portfolio-admin/pkg/views"
)

//go:embed templates
var templateFS embed.FS

const layout = "console"

// View names.
const (
	ViewProjects   = "projects"
	ViewSkills     = "skills"
	ViewExperience = "experience"
)

var viewDefs = []views.ViewDef{
	{Name: ViewProjects, Template: "projects.tmpl", Title: "Projects"},
	{Name: ViewSkills, Template: "skills.tmpl", Title: "Skills"},
	{Name: ViewExperience, Template: "experience.tmpl", Title: "Experience"},
}

// Renderer writes list views as plain text.
type Renderer struct {
	templates *views.TemplateSet
}

// NewRenderer parses the embedded templates. resolveImage turns stored image
// references into displayable URLs; nil leaves them unchanged.
func NewRenderer(resolveImage func(string) string) (*Renderer, error) {
	if resolveImage == nil {
		resolveImage = func(ref string) string { return ref }
	}

	ts, err := views.NewTemplateSet(
		templateFS,
		"templates/layouts/*.tmpl",
		"templates/views",
		viewDefs,
		template.FuncMap{
			"image":      resolveImage,
			"skillGroup": skills.GroupTitle,
		},
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: ts}, nil
}

func (r *Renderer) Projects(w io.Writer, v presenter.View[projects.Project]) error {
	return r.templates.Render(w, layout, ViewProjects, v)
}

func (r *Renderer) Skills(w io.Writer, v presenter.View[skills.Skill]) error {
	return r.templates.Render(w, layout, ViewSkills, v)
}

func (r *Renderer) Experience(w io.Writer, v presenter.View[experience.Experience]) error {
	return r.templates.Render(w, layout, ViewExperience, v)
}
