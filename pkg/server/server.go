// Package server exposes a scan report over a read-only HTTP API.
//
// Routes:
//
//	GET /healthz                    liveness probe
//	GET /api/report                 report summary
//	GET /api/dependencies           all dependencies, sorted by name (?q= filters by substring)
//	GET /api/dependencies/{name}    one dependency, 404 if unknown
//	GET /api/files/*                dependencies detected in one file
//	GET /api/errors                 per-file errors from the scan
//	GET /api/graph.dot              file-to-dependency graph in DOT format
//
// Every request is reported to the [observability.HTTPHooks] registered at
// the time the server was created.
//
// [observability.HTTPHooks]: github.com/matzehuels/depscan/pkg/observability.HTTPHooks
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/observability"
	"github.com/matzehuels/depscan/pkg/render/nodelink"
	"github.com/matzehuels/depscan/pkg/scan"
)

const shutdownTimeout = 5 * time.Second

// Options configures the server.
type Options struct {
	Logger func(string, ...any) // Request log callback (optional)
}

// Server serves one report.
type Server struct {
	report *scan.Report
	files  map[string][]string // location -> dependency names
	logger func(string, ...any)
	router chi.Router
}

// New creates a server for report.
func New(report *scan.Report, opts Options) *Server {
	s := &Server{
		report: report,
		files:  indexFiles(report.Result),
		logger: opts.Logger,
	}
	if s.logger == nil {
		s.logger = func(string, ...any) {}
	}
	s.router = s.routes()
	return s
}

func indexFiles(result *deps.Result) map[string][]string {
	idx := make(map[string][]string)
	for _, rec := range result.Records() {
		for _, loc := range rec.Locations {
			idx[loc] = append(idx[loc], rec.Name)
		}
	}
	return idx
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/dependencies", s.handleDependencies)
		r.Get("/dependencies/{name}", s.handleDependency)
		r.Get("/files/*", s.handleFile)
		r.Get("/errors", s.handleErrors)
		r.Get("/graph.dot", s.handleGraph)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) observe(next http.Handler) http.Handler {
	hooks := observability.HTTP()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger("%s %s %d %s", r.Method, r.URL.Path, status, elapsed.Round(time.Microsecond))
	})
}

type dependencyJSON struct {
	Name      string   `json:"name"`
	Version   *string  `json:"version"`
	Locations []string `json:"locations"`
}

func toJSON(rec deps.Record) dependencyJSON {
	d := dependencyJSON{Name: rec.Name, Locations: rec.Locations}
	if rec.HasVersion() {
		v := rec.Version
		d.Version = &v
	}
	if d.Locations == nil {
		d.Locations = []string{}
	}
	return d
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id":               s.report.ID,
		"root":             s.report.Root,
		"started_at":       s.report.StartedAt,
		"duration_ms":      s.report.Duration.Milliseconds(),
		"files_visited":    s.report.FilesVisited,
		"files_matched":    s.report.FilesMatched,
		"files_by_dialect": s.report.FilesByDialect,
		"dependencies":     s.report.Result.Len(),
		"errors":           len(s.report.Errors),
	})
}

func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	out := []dependencyJSON{}
	for _, rec := range s.report.Result.Records() {
		if q != "" && !strings.Contains(strings.ToLower(rec.Name), q) {
			continue
		}
		out = append(out, toJSON(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDependency(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateDependencyName(name); err != nil {
		writeError(w, err)
		return
	}
	rec, ok := s.report.Result.Get(name)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "dependency %q not found", name))
		return
	}
	writeJSON(w, http.StatusOK, toJSON(rec))
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if err := errors.ValidatePath(path); err != nil {
		writeError(w, err)
		return
	}
	names, ok := s.files[path]
	if !ok {
		writeError(w, errors.New(errors.ErrCodeFileNotFound, "no dependencies recorded for %s", path))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"path":         path,
		"dependencies": names,
	})
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	type fileError struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	}
	out := make([]fileError, 0, len(s.report.Errors))
	for _, fe := range s.report.Errors {
		out = append(out, fileError{Path: fe.Path, Message: fe.Err.Error()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	detailed := r.URL.Query().Get("detailed") == "true"
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(nodelink.ToDOT(s.report.Result, nodelink.Options{Detailed: detailed})))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{
		"code":    string(errors.GetCode(err)),
		"message": errors.UserMessage(err),
	})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeReportNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidName, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
