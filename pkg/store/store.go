// Package store persists scan reports.
//
// Implementations:
//   - [FileStore]: one JSON file per report, for local CLI use
//   - [MongoStore]: a MongoDB collection, for CI pipelines sharing history
//   - [MemoryStore]: in-process, for tests and one-shot serving
//
// Reports are keyed by [scan.Report.ID]. [Store.Latest] returns the report
// with the most recent start time, which is what `depscan serve` shows when
// no report file is given.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/scan"
)

// Store saves and loads scan reports.
type Store interface {
	// Save stores a report, replacing any report with the same ID.
	Save(ctx context.Context, r *scan.Report) error
	// Get returns the report with the given ID. A missing report is an
	// error with code REPORT_NOT_FOUND.
	Get(ctx context.Context, id string) (*scan.Report, error)
	// Latest returns the most recently started report.
	Latest(ctx context.Context) (*scan.Report, error)
	// Close releases backend resources.
	Close() error
}

// document is the persisted form of a report, shared by all backends.
type document struct {
	ID             string         `json:"id" bson:"_id"`
	Root           string         `json:"root" bson:"root"`
	StartedAt      time.Time      `json:"started_at" bson:"started_at"`
	DurationMS     int64          `json:"duration_ms" bson:"duration_ms"`
	FilesVisited   int            `json:"files_visited" bson:"files_visited"`
	FilesMatched   int            `json:"files_matched" bson:"files_matched"`
	FilesByDialect map[string]int `json:"files_by_dialect,omitempty" bson:"files_by_dialect,omitempty"`
	Dependencies   []dependency   `json:"dependencies" bson:"dependencies"`
	Errors         []fileError    `json:"errors,omitempty" bson:"errors,omitempty"`
}

type dependency struct {
	Name      string   `json:"name" bson:"name"`
	Version   string   `json:"version,omitempty" bson:"version,omitempty"`
	Locations []string `json:"locations" bson:"locations"`
}

type fileError struct {
	Path    string `json:"path" bson:"path"`
	Message string `json:"message" bson:"message"`
}

func toDocument(r *scan.Report) (*document, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidReport, "report is nil")
	}
	if err := validateID(r.ID); err != nil {
		return nil, err
	}

	doc := &document{
		ID:             r.ID,
		Root:           r.Root,
		StartedAt:      r.StartedAt.UTC(),
		DurationMS:     r.Duration.Milliseconds(),
		FilesVisited:   r.FilesVisited,
		FilesMatched:   r.FilesMatched,
		FilesByDialect: r.FilesByDialect,
		Dependencies:   []dependency{},
	}
	if r.Result != nil {
		for _, rec := range r.Result.Records() {
			doc.Dependencies = append(doc.Dependencies, dependency{
				Name:      rec.Name,
				Version:   rec.Version,
				Locations: rec.Locations,
			})
		}
	}
	for _, fe := range r.Errors {
		doc.Errors = append(doc.Errors, fileError{Path: fe.Path, Message: fe.Err.Error()})
	}
	return doc, nil
}

func (d *document) report() *scan.Report {
	records := make([]deps.Record, len(d.Dependencies))
	for i, dep := range d.Dependencies {
		records[i] = deps.Record{Name: dep.Name, Version: dep.Version, Locations: dep.Locations}
	}

	r := &scan.Report{
		ID:             d.ID,
		Root:           d.Root,
		StartedAt:      d.StartedAt,
		Duration:       time.Duration(d.DurationMS) * time.Millisecond,
		FilesVisited:   d.FilesVisited,
		FilesMatched:   d.FilesMatched,
		FilesByDialect: d.FilesByDialect,
		Result:         deps.NewResult(records...),
	}
	for _, fe := range d.Errors {
		r.Errors = append(r.Errors, scan.FileError{Path: fe.Path, Err: fmt.Errorf("%s", fe.Message)})
	}
	return r
}

// validateID rejects IDs that are not UUIDs, which also keeps them safe to
// use as file names.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid report id %q", id)
	}
	return nil
}

func notFound(id string) error {
	if id == "" {
		return errors.New(errors.ErrCodeReportNotFound, "no reports stored")
	}
	return errors.New(errors.ErrCodeReportNotFound, "report %s not found", id)
}
