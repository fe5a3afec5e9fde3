// Package experience manages work and education history records.
package experience

import (
	"log/slog"

	"github.com/JaimeStill/portfolio-admin/internal/records"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
)

// Experience types.
const (
	TypeWork      = "work"
	TypeEducation = "education"
)

// Experience is a work or education record as returned by the API.
type Experience struct {
	records.Meta
	Title       string `json:"title"`
	Company     string `json:"company"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Draft is the editable form of an Experience. Dates and Order hold raw
// text input.
type Draft struct {
	ID          records.ID `json:"-" toml:"-"`
	Title       string     `json:"title" toml:"title" validate:"required"`
	Company     string     `json:"company" toml:"company" validate:"required"`
	Type        string     `json:"type" toml:"type" validate:"required,oneof=work education"`
	Location    string     `json:"location" toml:"location"`
	StartDate   string     `json:"startDate" toml:"start_date" validate:"required,date"`
	EndDate     string     `json:"endDate" toml:"end_date" validate:"omitempty,date"`
	Current     bool       `json:"current" toml:"current"`
	Description string     `json:"description" toml:"description"`
	Order       string     `json:"order" toml:"order"`
}

func (d Draft) RecordID() string {
	return string(d.ID)
}

// NewDraft copies e into a draft.
func NewDraft(e *Experience) Draft {
	if e == nil {
		return BlankDraft()
	}
	return Draft{
		ID:          e.ID,
		Title:       e.Title,
		Company:     e.Company,
		Type:        e.Type,
		Location:    e.Location,
		StartDate:   e.StartDate.Input(),
		EndDate:     e.EndDate.Input(),
		Current:     e.Current,
		Description: e.Description,
		Order:       form.Text(e.Order),
	}
}

// BlankDraft returns a draft for a new work entry with every other field zeroed.
func BlankDraft() Draft {
	return Draft{Type: TypeWork, Order: "0"}
}

type body struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// Body converts d into the request payload. Dates are checked by the form
// validator before Body runs; a current position never carries an end date.
func Body(d Draft) any {
	start, _ := ParseDate(d.StartDate)
	end, _ := ParseDate(d.EndDate)
	if d.Current {
		end = Date{}
	}

	return body{
		Title:       d.Title,
		Company:     d.Company,
		Type:        d.Type,
		Location:    d.Location,
		StartDate:   start,
		EndDate:     end,
		Current:     d.Current,
		Description: d.Description,
		Order:       form.Int(d.Order),
	}
}

// System reads and writes experience records.
type System = records.Repository[Experience, Draft]

// New creates the experience System.
func New(c *client.Client, logger *slog.Logger) *System {
	return records.NewRepository[Experience, Draft](c, client.Experience, Body, logger.With("system", "experience"))
}
