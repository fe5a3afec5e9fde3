package console

import (
	"log/slog"
	"sync"

	"github.com/JaimeStill/portfolio-admin/internal/experience"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/skills"
	"github.com/JaimeStill/portfolio-admin/pkg/attachment"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
)

// Console wires one collection per entity to a shared API client.
type Console struct {
	Projects   *Projects
	Skills     *Collection[skills.Skill, skills.Draft]
	Experience *Collection[experience.Experience, experience.Draft]
	Renderer   *Renderer
}

// New builds the console collections.
func New(c *client.Client, upload *attachment.Config, logger *slog.Logger) (*Console, error) {
	logger = logger.With("system", "console")

	renderer, err := NewRenderer(c.ResolveImage)
	if err != nil {
		return nil, err
	}

	skillSys := skills.New(c, logger)
	expSys := experience.New(c, logger)

	return &Console{
		Projects: NewProjects(c, upload, logger),
		Skills: NewCollection[skills.Skill, skills.Draft](
			skillSys,
			func(rec *skills.Skill) (*form.Controller[skills.Draft], error) {
				ctrl := skills.NewForm(skillSys, form.WithLogger[skills.Draft](logger))
				return ctrl, ctrl.Edit(skills.NewDraft(rec))
			},
			func(s skills.Skill) string { return s.Key() },
			logger.With("collection", "skills"),
		),
		Experience: NewCollection[experience.Experience, experience.Draft](
			expSys,
			func(rec *experience.Experience) (*form.Controller[experience.Draft], error) {
				ctrl := experience.NewForm(expSys, form.WithLogger[experience.Draft](logger))
				return ctrl, ctrl.Edit(experience.NewDraft(rec))
			},
			func(e experience.Experience) string { return e.Key() },
			logger.With("collection", "experience"),
		),
		Renderer: renderer,
	}, nil
}

// Projects is the project collection plus the attachment flow of its open form.
type Projects struct {
	*Collection[projects.Project, projects.Draft]

	mu   sync.Mutex
	flow *attachment.Flow
}

// NewProjects builds the project collection. Each opened form gets a fresh
// attachment flow seeded with the record's current image.
func NewProjects(c *client.Client, upload *attachment.Config, logger *slog.Logger) *Projects {
	sys := projects.New(c, logger)
	up := projects.ImageUploader(c)

	p := &Projects{}
	p.Collection = NewCollection[projects.Project, projects.Draft](
		sys,
		func(rec *projects.Project) (*form.Controller[projects.Draft], error) {
			flow := attachment.New(upload)
			if rec != nil && rec.Image != "" {
				flow.Load(rec.Image, c.ResolveImage(rec.Image))
			}

			p.mu.Lock()
			p.flow = flow
			p.mu.Unlock()

			ctrl := projects.NewForm(sys, flow, up, form.WithLogger[projects.Draft](logger))
			return ctrl, ctrl.Edit(projects.NewDraft(rec))
		},
		func(proj projects.Project) string { return proj.Key() },
		logger.With("collection", "projects"),
	)
	return p
}

// Attachment returns the attachment flow of the most recently opened form.
func (p *Projects) Attachment() *attachment.Flow {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flow
}
