package experience

import (
	"github.com/JaimeStill/portfolio-admin/pkg/form"
	"github.com/JaimeStill/portfolio-admin/pkg/presenter"
	"github.com/JaimeStill/portfolio-admin/pkg/views"
)

// Period renders the date range, e.g. "Jan 2020 - Present".
func (e Experience) Period() string {
	end := views.FormatMonth(e.EndDate.Time)
	if e.Current {
		end = "Present"
	}
	return views.FormatMonth(e.StartDate.Time) + " - " + end
}

// Layout renders work and education sections, each shown even when empty.
var Layout = presenter.Layout[Experience]{
	Key:   func(e Experience) string { return e.Type },
	Order: func(e Experience) int { return e.Order },
	Sections: []presenter.Section{
		{Key: TypeWork, Title: "Work Experience", EmptyMessage: "No work experience added yet."},
		{Key: TypeEducation, Title: "Education", EmptyMessage: "No education records added yet."},
	},
	Empty: presenter.EmptyState{
		Title:   "No experience yet",
		Message: "Get started by adding your first work experience or education.",
	},
}

// Present builds the sectioned list view for items.
func Present(items []Experience) presenter.View[Experience] {
	return presenter.Build(items, Layout)
}

// Fallback is the message shown when a save fails without a server message.
const Fallback = "Failed to save experience"

// NewValidator returns a draft validator that understands the date tag.
func NewValidator() *form.Validator {
	v := form.NewValidator()
	if err := v.RegisterString("date", ValidDate); err != nil {
		panic(err)
	}
	return v
}

// NewForm creates an experience form.
func NewForm(sys form.Store[Draft], opts ...form.Option[Draft]) *form.Controller[Draft] {
	base := []form.Option[Draft]{
		form.WithFallback[Draft](Fallback),
		form.WithValidator[Draft](NewValidator()),
	}
	return form.New(sys, append(base, opts...)...)
}
