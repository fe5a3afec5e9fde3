package console_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/JaimeStill/portfolio-admin/internal/experience"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/skills"
	"github.com/JaimeStill/portfolio-admin/pkg/attachment"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
	"github.com/JaimeStill/portfolio-admin/pkg/presenter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFile(t *testing.T) attachment.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return attachment.File{Name: "shot.png", Data: buf.Bytes()}
}

func TestProjects_CreateWithImage(t *testing.T) {
	api := newFakeAPI()
	con, _ := newConsole(t, api)
	ctx := context.Background()

	ctrl, err := con.Projects.Open(nil)
	require.NoError(t, err)
	assert.True(t, ctrl.Creating())

	require.NoError(t, ctrl.Update(func(d *projects.Draft) {
		d.Title = "Portfolio"
		d.Description = "Personal site"
		d.Order = "abc"
		d.AddTechnology("Go")
	}))
	require.NoError(t, con.Projects.Attachment().Select(pngFile(t)))

	require.NoError(t, con.Projects.Save(ctx))

	assert.Equal(t, []string{
		"POST /api/upload/image",
		"POST /api/projects",
		"GET /api/projects",
	}, api.callLog())

	body := api.lastBody()
	assert.Equal(t, "/uploads/img1.png", body["image"])
	assert.Equal(t, float64(0), body["order"])
	assert.Equal(t, []any{"Go"}, body["technologies"])

	assert.Nil(t, con.Projects.Active())
	items := con.Projects.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Portfolio", items[0].Title)
	assert.Equal(t, "1", items[0].Key())
}

func TestSave_ValidationMakesNoCalls(t *testing.T) {
	api := newFakeAPI()
	con, _ := newConsole(t, api)

	ctrl, err := con.Projects.Open(nil)
	require.NoError(t, err)
	require.NoError(t, ctrl.Update(func(d *projects.Draft) { d.Description = "x" }))

	err = con.Projects.Save(context.Background())

	require.ErrorIs(t, err, form.ErrValidation)
	assert.Equal(t, "Title is required", ctrl.FieldError("title"))
	assert.Empty(t, api.callLog())
	assert.Same(t, ctrl, con.Projects.Active())
}

func TestSave_ServerFailureKeepsForm(t *testing.T) {
	api := newFakeAPI()
	api.failWrite = "Database error"
	con, _ := newConsole(t, api)

	ctrl, err := con.Skills.Open(nil)
	require.NoError(t, err)
	require.NoError(t, ctrl.Update(func(d *skills.Draft) {
		d.Name = "Go"
		d.Category = "backend"
		d.Level = "5"
	}))

	require.Error(t, con.Skills.Save(context.Background()))

	assert.Equal(t, "Database error", ctrl.Message())
	assert.Same(t, ctrl, con.Skills.Active())
	assert.Equal(t, "Go", ctrl.Draft().Name)
	assert.False(t, con.Skills.Loaded())
	assert.Equal(t, []string{"POST /api/skills"}, api.callLog())
}

func TestSave_RequiresOpenForm(t *testing.T) {
	con, _ := newConsole(t, newFakeAPI())
	assert.ErrorIs(t, con.Experience.Save(context.Background()), form.ErrNotEditing)
}

func TestDispatch_Edit(t *testing.T) {
	api := newFakeAPI()
	id := api.seed("projects", map[string]any{
		"title":        "Site",
		"description":  "d",
		"image":        "/uploads/old.png",
		"technologies": []any{"Go", "SQL"},
		"order":        2,
	})
	con, _ := newConsole(t, api)
	ctx := context.Background()

	require.NoError(t, con.Projects.Refresh(ctx))
	rec, ok := con.Projects.Lookup(id)
	require.True(t, ok)

	require.NoError(t, con.Projects.Dispatch(ctx, presenter.Edit(rec)))

	ctrl := con.Projects.Active()
	require.NotNil(t, ctrl)
	assert.False(t, ctrl.Creating())
	assert.Equal(t, "2", ctrl.Draft().Order)

	flow := con.Projects.Attachment()
	assert.Equal(t, attachment.StateStored, flow.State())
	assert.Equal(t, "/uploads/old.png", flow.Reference())

	require.NoError(t, ctrl.Update(func(d *projects.Draft) {
		d.Technologies[0] = "Rust"
		d.AddTechnology("Docker")
	}))
	held, _ := con.Projects.Lookup(id)
	assert.Equal(t, []string{"Go", "SQL"}, held.Technologies)

	api.resetCalls()
	require.NoError(t, con.Projects.Save(ctx))

	assert.Equal(t, []string{"PUT /api/projects/" + id, "GET /api/projects"}, api.callLog())
	body := api.lastBody()
	assert.Equal(t, "/uploads/old.png", body["image"])
	assert.Equal(t, []any{"Rust", "SQL", "Docker"}, body["technologies"])
}

func TestDispatch_Delete(t *testing.T) {
	api := newFakeAPI()
	id := api.seed("experience", map[string]any{"title": "Engineer", "company": "Acme", "type": "work"})
	con, _ := newConsole(t, api)
	ctx := context.Background()

	require.NoError(t, con.Experience.Refresh(ctx))
	require.Len(t, con.Experience.Items(), 1)
	api.resetCalls()

	require.NoError(t, con.Experience.Dispatch(ctx, presenter.Delete[experience.Experience](id)))

	assert.Equal(t, []string{"DELETE /api/experience/" + id, "GET /api/experience"}, api.callLog())
	assert.Empty(t, con.Experience.Items())
}

func TestDispatch_DeleteFailureKeepsList(t *testing.T) {
	api := newFakeAPI()
	api.seed("skills", map[string]any{"name": "Go", "category": "backend"})
	con, _ := newConsole(t, api)
	ctx := context.Background()

	require.NoError(t, con.Skills.Refresh(ctx))

	err := con.Skills.Dispatch(ctx, presenter.Delete[skills.Skill]("999"))
	require.Error(t, err)
	assert.Len(t, con.Skills.Items(), 1)
}

func TestClose(t *testing.T) {
	con, _ := newConsole(t, newFakeAPI())

	ctrl, err := con.Skills.Open(nil)
	require.NoError(t, err)

	con.Skills.Close()
	assert.Nil(t, con.Skills.Active())
	assert.Equal(t, form.StateEmpty, ctrl.State())
}
