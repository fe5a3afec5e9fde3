package experience

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the layout of date form inputs.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateLayout,
	"2006-01",
}

// Date is a calendar date that tolerates the layouts the API emits.
// The zero Date means "no date" and encodes as null.
type Date struct {
	time.Time
}

// ParseDate reads s in any accepted layout. Blank input is the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// ValidDate reports whether s is blank or parses in an accepted layout.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// Input renders the date for a date form input.
func (d Date) Input() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
