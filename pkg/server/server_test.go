package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/oadl/heatsheet/pkg/cache"
	"github.com/oadl/heatsheet/pkg/pipeline"
	"github.com/oadl/heatsheet/pkg/render"
	"github.com/oadl/heatsheet/pkg/store"
)

const examplePayload = `{
	"rows": [
		{"dimensions": ["50m Free", "Heat 1", 3, "Smith", "11-12", "Dolphins"]},
		{"dimensions": ["50m Free", "Heat 1", 4, "Jones", "11-12", "Sharks"]},
		{"dimensions": ["50m Free", "Heat 2", 3, "Lee", "13-14", "Dolphins"]}
	]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, log.New(io.Discard))
	srv, err := New(Config{Addr: ":0"}, runner, store.NewMemoryStore(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if ct := rec.Header().Get("Content-Type"); strings.HasPrefix(ct, "application/json") {
		// Only object bodies decode into the map; array responses (e.g.
		// the sheet list) are decoded by the caller from rec directly.
		if b := bytes.TrimSpace(rec.Body.Bytes()); len(b) > 0 && b[0] == '{' {
			if err := json.Unmarshal(b, &out); err != nil {
				t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
			}
		}
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec, body := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestDrawPopulated(t *testing.T) {
	srv := newTestServer(t)
	rec, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/draw", examplePayload)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	if body["state"] != string(render.StatePopulated) {
		t.Errorf("state = %v, want %s", body["state"], render.StatePopulated)
	}
	if body["generation"] != float64(1) {
		t.Errorf("generation = %v, want 1", body["generation"])
	}
}

func TestDrawEmptyRows(t *testing.T) {
	srv := newTestServer(t)
	_, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/draw", `{"rows": []}`)
	if body["state"] != string(render.StateEmpty) {
		t.Errorf("state = %v, want %s", body["state"], render.StateEmpty)
	}
}

func TestDrawMalformedPayloadMountsError(t *testing.T) {
	srv := newTestServer(t)
	rec, body := doJSON(t, srv.Handler(), http.MethodPost, "/api/draw", `{"rows": not json`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["state"] != string(render.StateError) {
		t.Errorf("state = %v, want %s", body["state"], render.StateError)
	}
}

func TestViewBeforeAnyDraw(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(render.EmptyMessage)) {
		t.Errorf("view before draw should show the empty-state message")
	}
}

func TestViewAfterDraw(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv.Handler(), http.MethodPost, "/api/draw", examplePayload)

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	for _, want := range []string{"50m Free", "Heat 2", "Smith", "Sharks"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTreeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv.Handler(), http.MethodPost, "/api/draw", examplePayload)

	req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var tree render.Tree
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	if tree.State != render.StatePopulated {
		t.Fatalf("tree state = %s, want %s", tree.State, render.StatePopulated)
	}
	if len(tree.Races) != 1 || len(tree.Races[0].Heats) != 2 {
		t.Errorf("tree shape = %d races, want 1 race with 2 heats", len(tree.Races))
	}
}

func TestSheetLifecycle(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	saveBody := `{"name": "City Championships", "payload": ` + examplePayload + `}`
	rec, sheet := doJSON(t, h, http.MethodPost, "/api/sheets/", saveBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}
	id, _ := sheet["id"].(string)
	if id == "" {
		t.Fatal("saved sheet has no id")
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/api/sheets/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0]["name"] != "City Championships" {
		t.Errorf("list = %v, want one sheet named City Championships", list)
	}

	rec, body := doJSON(t, h, http.MethodPost, "/api/sheets/"+id+"/draw", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("replay status = %d, want 200", rec.Code)
	}
	if body["state"] != string(render.StatePopulated) {
		t.Errorf("replay state = %v, want %s", body["state"], render.StatePopulated)
	}

	rec, _ = doJSON(t, h, http.MethodDelete, "/api/sheets/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec, body = doJSON(t, h, http.MethodGet, "/api/sheets/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted status = %d, want 404", rec.Code)
	}
	if body["code"] != "SHEET_NOT_FOUND" {
		t.Errorf("error code = %v, want SHEET_NOT_FOUND", body["code"])
	}
}

func TestSaveSheetRejectsInvalid(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"payload": {"rows": []}}`},
		{"payload not decodable", `{"name": "x", "payload": {"rows": [[{"nested": true}]]}}`},
		{"not json", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doJSON(t, srv.Handler(), http.MethodPost, "/api/sheets/", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := newTestServer(t)
	srv.addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("ListenAndServe() after cancel = %v, want nil", err)
	}
}
