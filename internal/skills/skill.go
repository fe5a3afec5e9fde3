// Package skills manages skill records grouped by category.
package skills

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/portfolio-admin/internal/records"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
)

// Skill is a skill record as returned by the API.
type Skill struct {
	records.Meta
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
}

// Draft is the editable form of a Skill. Level and Order hold raw text input.
type Draft struct {
	ID       records.ID `json:"-" toml:"-"`
	Name     string     `json:"name" toml:"name" validate:"required"`
	Category string     `json:"category" toml:"category" validate:"required"`
	Level    string     `json:"level" toml:"level"`
	Icon     string     `json:"icon" toml:"icon"`
	Order    string     `json:"order" toml:"order"`
}

func (d Draft) RecordID() string {
	return string(d.ID)
}

// NewDraft copies s into a draft.
func NewDraft(s *Skill) Draft {
	if s == nil {
		return BlankDraft()
	}
	return Draft{
		ID:       s.ID,
		Name:     s.Name,
		Category: s.Category,
		Level:    form.Text(s.Level),
		Icon:     s.Icon,
		Order:    form.Text(s.Order),
	}
}

// BlankDraft returns a draft for a new skill with every field zeroed.
func BlankDraft() Draft {
	return Draft{Level: "0", Order: "0"}
}

type body struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	Order    int    `json:"order"`
}

// Body converts d into the request payload.
func Body(d Draft) any {
	return body{
		Name:     d.Name,
		Category: d.Category,
		Level:    form.Int(d.Level),
		Icon:     d.Icon,
		Order:    form.Int(d.Order),
	}
}

// List decodes a skill collection delivered either as a flat array or as
// an object keyed by category. Category order is preserved.
type List []Skill

func (l *List) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = List{}
		return nil
	}

	if data[0] == '[' {
		var flat []Skill
		if err := json.Unmarshal(data, &flat); err != nil {
			return err
		}
		*l = flat
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}

	out := List{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		category, ok := tok.(string)
		if !ok {
			return fmt.Errorf("skills: unexpected key %v", tok)
		}

		var group []Skill
		if err := dec.Decode(&group); err != nil {
			return fmt.Errorf("skills: category %s: %w", category, err)
		}
		for _, s := range group {
			if s.Category == "" {
				s.Category = category
			}
			out = append(out, s)
		}
	}

	*l = out
	return nil
}

// System reads and writes skills.
type System = records.Repository[Skill, Draft]

// New creates the skills System.
func New(c *client.Client, logger *slog.Logger) *System {
	r := records.NewRepository[Skill, Draft](c, client.Skills, Body, logger.With("system", "skills"))
	return r.WithList(func(ctx context.Context, res *client.Resource[Skill]) ([]Skill, error) {
		var l List
		if err := res.ListInto(ctx, &l); err != nil {
			return nil, err
		}
		if l == nil {
			l = List{}
		}
		return l, nil
	})
}
