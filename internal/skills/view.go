package skills

import (
	"fmt"

	"github.com/JaimeStill/portfolio-admin/pkg/form"
	"github.com/JaimeStill/portfolio-admin/pkg/presenter"
)

var levels = map[int]string{
	1: "Beginner",
	2: "Basic",
	3: "Intermediate",
	4: "Advanced",
	5: "Expert",
}

// LevelLabel names a proficiency level; unknown levels are "Unknown".
func LevelLabel(level int) string {
	if l, ok := levels[level]; ok {
		return l
	}
	return "Unknown"
}

// LevelText returns the label for the skill's level.
func (s Skill) LevelText() string {
	return LevelLabel(s.Level)
}

// Layout groups skills by category in first-seen order.
var Layout = presenter.Layout[Skill]{
	Key:   func(s Skill) string { return s.Category },
	Order: func(s Skill) int { return s.Order },
	Empty: presenter.EmptyState{
		Title:   "No skills yet",
		Message: "Get started by adding your first skill.",
	},
}

// Present builds the grouped list view for items.
func Present(items []Skill) presenter.View[Skill] {
	return presenter.Build(items, Layout)
}

// GroupTitle renders a category heading with its size, e.g. "frontend (3)".
func GroupTitle(g presenter.Group[Skill]) string {
	return fmt.Sprintf("%s (%d)", g.Title, g.Count())
}

// Fallback is the message shown when a save fails without a server message.
const Fallback = "Failed to save skill"

// NewForm creates a skill form.
func NewForm(sys form.Store[Draft], opts ...form.Option[Draft]) *form.Controller[Draft] {
	return form.New(sys, append([]form.Option[Draft]{form.WithFallback[Draft](Fallback)}, opts...)...)
}
