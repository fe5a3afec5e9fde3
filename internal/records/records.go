// Package records defines the metadata shared by every portfolio record.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID is an opaque server-assigned identifier. The API may encode it as a
// JSON string or number; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Meta holds the server-managed fields common to all records.
type Meta struct {
	ID        ID        `json:"id"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key returns the record identifier as a string.
func (m Meta) Key() string {
	return string(m.ID)
}

// Position returns the display order.
func (m Meta) Position() int {
	return m.Order
}

// Updated reports whether the record has been modified since creation.
func (m Meta) Updated() bool {
	return !m.UpdatedAt.Equal(m.CreatedAt)
}
