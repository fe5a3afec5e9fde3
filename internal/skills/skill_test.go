package skills_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/portfolio-admin/internal/records"
	"github.com/JaimeStill/portfolio-admin/internal/skills"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []skills.Skill) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Category + "/" + s.Name
	}
	return out
}

func TestList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "flat array",
			json: `[{"name":"Go","category":"backend"},{"name":"Vue","category":"frontend"}]`,
			want: []string{"backend/Go", "frontend/Vue"},
		},
		{
			name: "grouped by category",
			json: `{"frontend":[{"name":"Vue"},{"name":"CSS"}],"backend":[{"name":"Go"}]}`,
			want: []string{"frontend/Vue", "frontend/CSS", "backend/Go"},
		},
		{
			name: "grouped keeps explicit category",
			json: `{"tools":[{"name":"Docker","category":"devops"}]}`,
			want: []string{"devops/Docker"},
		},
		{
			name: "null",
			json: `null`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l skills.List
			require.NoError(t, json.Unmarshal([]byte(tt.json), &l))
			assert.Equal(t, tt.want, names(l))
		})
	}
}

func TestList_UnmarshalJSON_Invalid(t *testing.T) {
	var l skills.List
	assert.Error(t, json.Unmarshal([]byte(`{"backend":"Go"}`), &l))
}

func TestSystem_ListGrouped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"frontend":[{"id":1,"name":"Vue","level":4}],"backend":[{"id":"2","name":"Go","level":5}]}}`))
	}))
	defer srv.Close()

	cfg := &client.Config{BaseURL: srv.URL}
	require.NoError(t, cfg.Finalize(nil))
	sys := skills.New(client.New(cfg, nil, logging.Discard()), logging.Discard())

	items, err := sys.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Key())
	assert.Equal(t, "frontend", items[0].Category)
	assert.Equal(t, "2", items[1].Key())

	view := skills.Present(items)
	require.Len(t, view.Groups, 2)
	assert.Equal(t, "frontend (1)", skills.GroupTitle(view.Groups[0]))
}

func TestLevelLabel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Unknown"},
		{1, "Beginner"},
		{2, "Basic"},
		{3, "Intermediate"},
		{4, "Advanced"},
		{5, "Expert"},
		{6, "Unknown"},
	}

	for _, tt := range tests {
		if got := skills.LevelLabel(tt.level); got != tt.want {
			t.Errorf("LevelLabel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestDraft(t *testing.T) {
	s := &skills.Skill{Meta: records.Meta{ID: "3", Order: 1}, Name: "Go", Category: "backend", Level: 5}

	d := skills.NewDraft(s)
	assert.Equal(t, "3", d.RecordID())
	assert.Equal(t, "5", d.Level)
	assert.Equal(t, "1", d.Order)

	d.Level = "x"
	d.Order = "4th"
	data, err := json.Marshal(skills.Body(d))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Go","category":"backend","level":0,"icon":"","order":4}`, string(data))
}
