package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JaimeStill/portfolio-admin/internal/console"
	"github.com/JaimeStill/portfolio-admin/internal/experience"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/records"
	"github.com/JaimeStill/portfolio-admin/internal/skills"
	"github.com/JaimeStill/portfolio-admin/pkg/attachment"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
	"github.com/JaimeStill/portfolio-admin/pkg/presenter"
	"github.com/pelletier/go-toml/v2"
)

// resource binds one entity collection to the list/save/delete subcommands.
type resource[T any, D form.Draft] struct {
	name   string
	coll   *console.Collection[T, D]
	render func(w io.Writer, items []T) error
	setID  func(d *D, id records.ID)

	// flags registers entity specific save flags and returns the step that
	// applies them once the form is open.
	flags func(fs *flag.FlagSet) func(draft D) error
}

func (app *Application) projects(ctx context.Context, args []string) error {
	c := app.console
	return runResource(ctx, app, resource[projects.Project, projects.Draft]{
		name: "projects",
		coll: c.Projects.Collection,
		render: func(w io.Writer, items []projects.Project) error {
			return c.Renderer.Projects(w, projects.Present(items))
		},
		setID: func(d *projects.Draft, id records.ID) { d.ID = id },
		flags: app.imageFlags,
	}, args)
}

func (app *Application) skills(ctx context.Context, args []string) error {
	c := app.console
	return runResource(ctx, app, resource[skills.Skill, skills.Draft]{
		name: "skills",
		coll: c.Skills,
		render: func(w io.Writer, items []skills.Skill) error {
			return c.Renderer.Skills(w, skills.Present(items))
		},
		setID: func(d *skills.Draft, id records.ID) { d.ID = id },
	}, args)
}

func (app *Application) experience(ctx context.Context, args []string) error {
	c := app.console
	return runResource(ctx, app, resource[experience.Experience, experience.Draft]{
		name: "experience",
		coll: c.Experience,
		render: func(w io.Writer, items []experience.Experience) error {
			return c.Renderer.Experience(w, experience.Present(items))
		},
		setID: func(d *experience.Draft, id records.ID) { d.ID = id },
	}, args)
}

func runResource[T any, D form.Draft](ctx context.Context, app *Application, r resource[T, D], args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s: missing subcommand (list, save, delete)", r.name)
	}

	switch args[0] {
	case "list":
		if err := r.coll.Refresh(ctx); err != nil {
			return err
		}
		return r.render(app.out, r.coll.Items())
	case "save":
		return saveRecord(ctx, app, r, args[1:])
	case "delete":
		return deleteRecord(ctx, app, r, args[1:])
	default:
		return fmt.Errorf("%s: unknown subcommand %q", r.name, args[0])
	}
}

func saveRecord[T any, D form.Draft](ctx context.Context, app *Application, r resource[T, D], args []string) error {
	fs := flag.NewFlagSet(r.name+" save", flag.ContinueOnError)
	file := fs.String("file", "", "TOML draft file")
	id := fs.String("id", "", "Record ID to update (omit to create)")

	var apply func(D) error
	if r.flags != nil {
		apply = r.flags(fs)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("%s save: -file is required", r.name)
	}

	draft, err := readDraft[D](*file)
	if err != nil {
		return err
	}

	ctrl, err := openForm(ctx, r.coll, *id)
	if err != nil {
		return err
	}
	defer r.coll.Close()

	if err := ctrl.Update(func(d *D) {
		current := records.ID(d.RecordID())
		*d = draft
		r.setID(d, current)
	}); err != nil {
		return err
	}

	if apply != nil {
		if err := apply(draft); err != nil {
			return err
		}
	}

	creating := ctrl.Creating()
	if err := r.coll.Save(ctx); err != nil {
		if errors.Is(err, form.ErrValidation) {
			return err
		}
		if msg := ctrl.Message(); msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}

	verb := "updated"
	if creating {
		verb = "created"
	}
	app.logger.Info("record saved", "resource", r.name, "id", *id, "action", verb)
	fmt.Fprintf(app.out, "%s: record %s (%d total)\n", r.name, verb, len(r.coll.Items()))
	return nil
}

// openForm opens a blank form, or the form for an existing record after
// locating it in a fresh copy of the collection.
func openForm[T any, D form.Draft](ctx context.Context, coll *console.Collection[T, D], id string) (*form.Controller[D], error) {
	if id == "" {
		return coll.Open(nil)
	}

	if err := coll.Refresh(ctx); err != nil {
		return nil, err
	}
	record, ok := coll.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("record %s not found", id)
	}
	if err := coll.Dispatch(ctx, presenter.Edit(record)); err != nil {
		return nil, err
	}
	return coll.Active(), nil
}

func deleteRecord[T any, D form.Draft](ctx context.Context, app *Application, r resource[T, D], args []string) error {
	fs := flag.NewFlagSet(r.name+" delete", flag.ContinueOnError)
	id := fs.String("id", "", "Record ID to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("%s delete: -id is required", r.name)
	}

	if err := r.coll.Dispatch(ctx, presenter.Delete[T](*id)); err != nil {
		return err
	}

	fmt.Fprintf(app.out, "%s: record %s deleted (%d remaining)\n", r.name, *id, len(r.coll.Items()))
	return nil
}

// imageFlags adds -image and -clear-image to the project save command.
func (app *Application) imageFlags(fs *flag.FlagSet) func(projects.Draft) error {
	image := fs.String("image", "", "Image file to upload before saving")
	clearImage := fs.Bool("clear-image", false, "Remove the project's image")

	return func(draft projects.Draft) error {
		flow := app.console.Projects.Attachment()
		if flow == nil {
			return nil
		}

		if draft.Image != "" && draft.Image != flow.Reference() {
			flow.Load(draft.Image, app.client.ResolveImage(draft.Image))
		}

		if *clearImage {
			flow.Clear()
		}

		if *image == "" {
			return nil
		}

		data, err := os.ReadFile(*image)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		return flow.Select(attachment.File{
			Name: filepath.Base(*image),
			Data: data,
		})
	}
}

// readDraft decodes a TOML draft file. Unknown keys are rejected.
func readDraft[D any](path string) (D, error) {
	var draft D

	f, err := os.Open(path)
	if err != nil {
		return draft, fmt.Errorf("open draft: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&draft); err != nil {
		return draft, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return draft, nil
}
