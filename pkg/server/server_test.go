package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/observability"
	"github.com/matzehuels/depscan/pkg/scan"
)

func testReport() *scan.Report {
	return &scan.Report{
		ID:           "7d3c1b52-2f7e-4f0e-9d1c-0c8f2f7f4a11",
		Root:         "/src/project",
		StartedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:     250 * time.Millisecond,
		FilesVisited: 12,
		FilesMatched: 4,
		Result: deps.NewResult(
			deps.Record{Name: "OpenSSL", Version: "1.1", Locations: []string{"CMakeLists.txt"}},
			deps.Record{Name: "openssl", Locations: []string{"src/net/tls.cpp"}},
			deps.Record{Name: "zlib", Version: "1.2.13", Locations: []string{"conanfile.txt", "src/net/tls.cpp"}},
		),
		Errors: []scan.FileError{
			{Path: "/src/project/blob.cpp", Err: errors.New(errors.ErrCodeFileDecode, "content is not valid UTF-8 text")},
		},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := get(t, New(testReport(), Options{}).Handler(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["status"] != "ok" {
		t.Errorf("body = %v", got)
	}
}

func TestReportSummary(t *testing.T) {
	rec := get(t, New(testReport(), Options{}).Handler(), "/api/report")
	got := decode[map[string]any](t, rec)

	if got["dependencies"] != float64(3) || got["errors"] != float64(1) {
		t.Errorf("summary = %v", got)
	}
	if got["duration_ms"] != float64(250) {
		t.Errorf("duration_ms = %v", got["duration_ms"])
	}
}

func TestDependencies(t *testing.T) {
	h := New(testReport(), Options{}).Handler()

	rec := get(t, h, "/api/dependencies")
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	list := decode[[]dependencyJSON](t, rec)

	var names []string
	for _, d := range list {
		names = append(names, d.Name)
	}
	if strings.Join(names, ",") != "OpenSSL,openssl,zlib" {
		t.Errorf("names = %v", names)
	}
	if list[1].Version != nil {
		t.Errorf("openssl version = %v, want null", *list[1].Version)
	}
	if list[2].Version == nil || *list[2].Version != "1.2.13" {
		t.Errorf("zlib version = %v", list[2].Version)
	}

	filtered := decode[[]dependencyJSON](t, get(t, h, "/api/dependencies?q=SSL"))
	if len(filtered) != 2 {
		t.Errorf("?q=SSL returned %d, want 2", len(filtered))
	}
}

func TestDependency(t *testing.T) {
	h := New(testReport(), Options{}).Handler()

	tests := []struct {
		path   string
		status int
	}{
		{"/api/dependencies/zlib", http.StatusOK},
		{"/api/dependencies/OpenSSL", http.StatusOK},
		{"/api/dependencies/Zlib", http.StatusNotFound},
		{"/api/dependencies/boost", http.StatusNotFound},
		{"/api/dependencies/a..b", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}

	d := decode[dependencyJSON](t, get(t, h, "/api/dependencies/zlib"))
	if strings.Join(d.Locations, ",") != "conanfile.txt,src/net/tls.cpp" {
		t.Errorf("locations = %v", d.Locations)
	}

	e := decode[map[string]string](t, get(t, h, "/api/dependencies/boost"))
	if e["code"] != "NOT_FOUND" || e["message"] == "" {
		t.Errorf("error body = %v, want code and message", e)
	}
}

func TestFile(t *testing.T) {
	h := New(testReport(), Options{}).Handler()

	rec := get(t, h, "/api/files/src/net/tls.cpp")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	got := decode[struct {
		Path         string   `json:"path"`
		Dependencies []string `json:"dependencies"`
	}](t, rec)
	if got.Path != "src/net/tls.cpp" || strings.Join(got.Dependencies, ",") != "openssl,zlib" {
		t.Errorf("body = %+v", got)
	}

	if rec := get(t, h, "/api/files/src/missing.cpp"); rec.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d", rec.Code)
	}

	// Dots inside a file name are not traversal.
	if rec := get(t, h, "/api/files/src/a..b.cpp"); rec.Code != http.StatusNotFound {
		t.Errorf("dotted file status = %d, want 404", rec.Code)
	}
}

func TestErrors(t *testing.T) {
	rec := get(t, New(testReport(), Options{}).Handler(), "/api/errors")
	got := decode[[]map[string]string](t, rec)
	if len(got) != 1 || got[0]["path"] != "/src/project/blob.cpp" {
		t.Errorf("errors = %v", got)
	}
}

func TestGraph(t *testing.T) {
	rec := get(t, New(testReport(), Options{}).Handler(), "/api/graph.dot")
	if !strings.HasPrefix(rec.Body.String(), "digraph G {") {
		t.Errorf("body = %s", rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"file:CMakeLists.txt" -> "dep:OpenSSL";`) {
		t.Errorf("missing edge in %s", rec.Body)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	h.statuses = append(h.statuses, status)
	h.mu.Unlock()
}

func TestObserveHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	var logged []string
	h := New(testReport(), Options{Logger: func(format string, args ...any) {
		logged = append(logged, format)
	}}).Handler()

	get(t, h, "/healthz")
	get(t, h, "/api/dependencies/nope")

	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 404 {
		t.Errorf("statuses = %v, want [200 404]", hooks.statuses)
	}
	if len(logged) != 2 {
		t.Errorf("logged %d requests, want 2", len(logged))
	}
}
