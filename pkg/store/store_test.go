package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/scan"
)

func newReport(started time.Time) *scan.Report {
	return &scan.Report{
		ID:             uuid.NewString(),
		Root:           "/src/project",
		StartedAt:      started,
		Duration:       1500 * time.Millisecond,
		FilesVisited:   10,
		FilesMatched:   3,
		FilesByDialect: map[string]int{"cmake": 1, "source": 2},
		Result: deps.NewResult(
			deps.Record{Name: "OpenSSL", Version: "1.1", Locations: []string{"CMakeLists.txt"}},
			deps.Record{Name: "fmt", Locations: []string{"src/a.cpp", "src/b.cpp"}},
		),
		Errors: []scan.FileError{
			{Path: "/src/project/blob.cpp", Err: errors.New(errors.ErrCodeFileDecode, "content is not valid UTF-8 text")},
		},
	}
}

func checkReport(t *testing.T, got, want *scan.Report) {
	t.Helper()
	if got.ID != want.ID || got.Root != want.Root {
		t.Errorf("ID/Root = %s/%s, want %s/%s", got.ID, got.Root, want.ID, want.Root)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
	if got.Duration != want.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, want.Duration)
	}
	if got.FilesVisited != want.FilesVisited || got.FilesMatched != want.FilesMatched {
		t.Errorf("files = %d/%d, want %d/%d", got.FilesVisited, got.FilesMatched, want.FilesVisited, want.FilesMatched)
	}
	if !slices.Equal(got.Result.Names(), want.Result.Names()) {
		t.Errorf("Names() = %v, want %v", got.Result.Names(), want.Result.Names())
	}
	for _, rec := range want.Result.Records() {
		g, _ := got.Result.Get(rec.Name)
		if g.Version != rec.Version || !slices.Equal(g.Locations, rec.Locations) {
			t.Errorf("%s = %+v, want %+v", rec.Name, g, rec)
		}
	}
	if len(got.Errors) != len(want.Errors) {
		t.Fatalf("Errors = %v, want %v", got.Errors, want.Errors)
	}
	for i := range want.Errors {
		if got.Errors[i].Error() != want.Errors[i].Error() {
			t.Errorf("Errors[%d] = %q, want %q", i, got.Errors[i].Error(), want.Errors[i].Error())
		}
	}
}

func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := s.Latest(ctx); !errors.Is(err, errors.ErrCodeReportNotFound) {
		t.Errorf("Latest() on empty store error = %v, want REPORT_NOT_FOUND", err)
	}

	older := newReport(base)
	newer := newReport(base.Add(time.Hour))
	for _, r := range []*scan.Report{newer, older} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := s.Get(ctx, older.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	checkReport(t, got, older)

	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != newer.ID {
		t.Errorf("Latest().ID = %s, want %s", latest.ID, newer.ID)
	}

	if _, err := s.Get(ctx, uuid.NewString()); !errors.Is(err, errors.ErrCodeReportNotFound) {
		t.Errorf("Get(unknown) error = %v, want REPORT_NOT_FOUND", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStoreRejectsBadID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get(context.Background(), "../../etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get() error = %v, want INVALID_INPUT", err)
	}

	r := newReport(time.Now())
	r.ID = "not-a-uuid"
	if err := s.Save(context.Background(), r); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save() error = %v, want INVALID_INPUT", err)
	}
}

func TestFileStoreSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	r := newReport(time.Now())
	if err := s.Save(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, uuid.NewString()+".json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	latest, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != r.ID {
		t.Errorf("Latest().ID = %s, want %s", latest.ID, r.ID)
	}
}

func TestSaveNilReport(t *testing.T) {
	if err := NewMemoryStore().Save(context.Background(), nil); !errors.Is(err, errors.ErrCodeInvalidReport) {
		t.Errorf("Save(nil) error = %v, want INVALID_REPORT", err)
	}
}

func TestNewMongoStoreBadURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), "http://localhost", "")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("NewMongoStore() error = %v, want INVALID_CONFIG", err)
	}
}
