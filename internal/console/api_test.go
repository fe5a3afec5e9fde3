package console_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/JaimeStill/portfolio-admin/internal/console"
	"github.com/JaimeStill/portfolio-admin/pkg/attachment"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/logging"
	"github.com/JaimeStill/portfolio-admin/pkg/session"
	"github.com/stretchr/testify/require"
)

const (
	createdAt = "2024-01-02T03:04:05Z"
	updatedAt = "2024-02-03T00:00:00Z"
)

// fakeAPI is an in-memory portfolio API.
type fakeAPI struct {
	mu        sync.Mutex
	nextID    int
	records   map[string][]map[string]any
	calls     []string
	bodies    []map[string]any
	failWrite string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{records: map[string][]map[string]any{}}
}

func (a *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload/image", a.upload)
	mux.HandleFunc("GET /api/{res}", a.list)
	mux.HandleFunc("POST /api/{res}", a.create)
	mux.HandleFunc("PUT /api/{res}/{id}", a.update)
	mux.HandleFunc("DELETE /api/{res}/{id}", a.remove)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.calls = append(a.calls, r.Method+" "+r.URL.Path)
		a.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

func (a *fakeAPI) seed(res string, rec map[string]any) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextID++
	rec["id"] = a.nextID
	if _, ok := rec["createdAt"]; !ok {
		rec["createdAt"] = createdAt
		rec["updatedAt"] = createdAt
	}
	a.records[res] = append(a.records[res], rec)
	return strconv.Itoa(a.nextID)
}

func (a *fakeAPI) resetCalls() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = nil
	a.bodies = nil
}

func (a *fakeAPI) callLog() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

func (a *fakeAPI) lastBody() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.bodies) == 0 {
		return nil
	}
	return a.bodies[len(a.bodies)-1]
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (a *fakeAPI) upload(w http.ResponseWriter, r *http.Request) {
	if _, _, err := r.FormFile(client.ImageField); err != nil {
		reply(w, http.StatusBadRequest, map[string]any{"success": false, "error": "No file uploaded"})
		return
	}
	reply(w, http.StatusOK, map[string]any{
		"success": true,
		"file":    map[string]any{"url": "/uploads/img1.png", "filename": "img1.png"},
	})
}

func (a *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	data := append([]map[string]any{}, a.records[r.PathValue("res")]...)
	a.mu.Unlock()

	reply(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (a *fakeAPI) decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		reply(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad body"})
		return nil, false
	}

	a.mu.Lock()
	a.bodies = append(a.bodies, body)
	fail := a.failWrite
	a.mu.Unlock()

	if fail != "" {
		reply(w, http.StatusInternalServerError, map[string]any{"success": false, "error": fail})
		return nil, false
	}
	return body, true
}

func (a *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	body, ok := a.decode(w, r)
	if !ok {
		return
	}

	rec := map[string]any{}
	for k, v := range body {
		rec[k] = v
	}
	a.seed(r.PathValue("res"), rec)

	reply(w, http.StatusCreated, map[string]any{"success": true, "data": rec})
}

func (a *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	body, ok := a.decode(w, r)
	if !ok {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	res, id := r.PathValue("res"), r.PathValue("id")
	for _, rec := range a.records[res] {
		if fmt.Sprint(rec["id"]) == id {
			for k, v := range body {
				rec[k] = v
			}
			rec["updatedAt"] = updatedAt
			reply(w, http.StatusOK, map[string]any{"success": true, "data": rec})
			return
		}
	}
	reply(w, http.StatusNotFound, map[string]any{"success": false, "error": "Not found"})
}

func (a *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, id := r.PathValue("res"), r.PathValue("id")
	kept := a.records[res][:0]
	found := false
	for _, rec := range a.records[res] {
		if fmt.Sprint(rec["id"]) == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	a.records[res] = kept

	if !found {
		reply(w, http.StatusNotFound, map[string]any{"success": false, "error": "Not found"})
		return
	}
	reply(w, http.StatusOK, map[string]any{"success": true, "message": "Deleted"})
}

func newConsole(t *testing.T, api *fakeAPI) (*console.Console, *client.Client) {
	t.Helper()

	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	cfg := &client.Config{BaseURL: srv.URL}
	require.NoError(t, cfg.Finalize(nil))
	c := client.New(cfg, session.NewMemory("token"), logging.Discard())

	upload := &attachment.Config{}
	require.NoError(t, upload.Finalize(nil))

	con, err := console.New(c, upload, logging.Discard())
	require.NoError(t, err)
	return con, c
}
