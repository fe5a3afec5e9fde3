package projects

import (
	"context"

	"github.com/JaimeStill/portfolio-admin/pkg/attachment"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
	"github.com/JaimeStill/portfolio-admin/pkg/presenter"
)

// VisibleTags is how many technology tags a list row shows.
const VisibleTags = 3

// Tags returns the technology tags shown in a list row.
func (p Project) Tags() []string {
	if len(p.Technologies) <= VisibleTags {
		return p.Technologies
	}
	return p.Technologies[:VisibleTags]
}

// MoreTags returns how many technology tags a list row hides.
func (p Project) MoreTags() int {
	return max(0, len(p.Technologies)-VisibleTags)
}

// Layout groups projects into a single ordered section.
var Layout = presenter.Layout[Project]{
	Order: func(p Project) int { return p.Order },
	Sections: []presenter.Section{
		{Key: "", Title: "Projects"},
	},
	Empty: presenter.EmptyState{
		Title:   "No projects yet",
		Message: "Get started by adding your first project.",
	},
}

// Present builds the list view for items.
func Present(items []Project) presenter.View[Project] {
	return presenter.Build(items, Layout)
}

// Fallback is the message shown when a save fails without a server message.
const Fallback = "Failed to save project"

// NewForm creates a project form whose image upload runs before the write.
func NewForm(sys form.Store[Draft], flow *attachment.Flow, up attachment.Uploader, opts ...form.Option[Draft]) *form.Controller[Draft] {
	base := []form.Option[Draft]{
		form.WithFallback[Draft](Fallback),
		form.WithHook(attachment.Hook(flow, up, func(d *Draft, ref string) {
			d.Image = ref
		})),
	}
	return form.New(sys, append(base, opts...)...)
}

// ImageUploader uploads attachments through the API upload endpoint.
func ImageUploader(c *client.Client) attachment.Uploader {
	return attachment.UploaderFunc(func(ctx context.Context, f attachment.File) (string, error) {
		file, err := c.UploadImage(ctx, f.Name, f.ContentType, f.Data)
		if err != nil {
			return "", err
		}
		return file.URL, nil
	})
}
