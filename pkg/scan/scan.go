package scan

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/observability"
)

// Run scans every file under root and returns the consolidated report.
//
// Per-file failures are collected in [Report.Errors] and never abort the
// scan. Run returns an error only when root is not a readable directory or
// ctx is cancelled.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "scan root %s is not a directory", root)
	}

	s := &scanner{
		ctx:     ctx,
		root:    root,
		opts:    opts.WithDefaults(),
		merger:  deps.NewMerger(),
		dialect: make(map[string]int),
	}

	hooks := observability.Scan()
	hooks.OnScanStart(ctx, root)

	start := time.Now()
	if err := s.run(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:             uuid.NewString(),
		Root:           root,
		StartedAt:      start,
		Duration:       time.Since(start),
		FilesVisited:   s.visited,
		FilesMatched:   s.matched,
		FilesByDialect: s.dialect,
		Result:         s.merger.Result(),
		Errors:         s.errs,
	}
	hooks.OnScanComplete(ctx, root, report.Result.Len(), len(report.Errors), report.Duration)
	return report, nil
}

type scanner struct {
	ctx  context.Context
	root string
	opts Options

	// Owned by the walking goroutine.
	visited int

	// Owned by the collector.
	merger  *deps.Merger
	matched int
	dialect map[string]int
	errs    []FileError
}

type job struct {
	path      string // Root-joined path, used in error messages
	rel       string // Slash-separated path relative to root, used as location
	extractor deps.Extractor
	err       error // Set for entries the walk itself could not read
}

type result struct {
	job
	detections []deps.Detection
	err        error
}

func (s *scanner) run() error {
	if s.opts.Workers <= 1 {
		return s.walk(func(j job) { s.collect(s.process(j)) })
	}

	workers := s.opts.Workers
	jobs := make(chan job, workers*2)
	results := make(chan result, workers*2)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if s.ctx.Err() != nil {
					continue
				}
				results <- s.process(j)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			s.collect(r)
		}
	}()

	err := s.walk(func(j job) { jobs <- j })
	close(jobs)
	wg.Wait()
	close(results)
	<-done
	return err
}

// walk visits the tree in lexical order and emits one job per claimed file.
func (s *scanner) walk(emit func(job)) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			emit(job{path: path, rel: s.rel(path), err: errors.Wrap(errors.ErrCodeFileRead, err, "walk")})
			return nil
		}

		if d.IsDir() {
			if path != s.root && s.opts.excluded(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if s.opts.excluded(d.Name()) || !isRegular(path, d) {
			return nil
		}

		s.visited++
		e, ok := deps.Classify(path, s.opts.Extractors...)
		if !ok {
			return nil
		}
		emit(job{path: path, rel: s.rel(path), extractor: e})
		return nil
	})
}

// process reads and extracts one file. It is safe for concurrent use.
func (s *scanner) process(j job) result {
	if j.err != nil {
		return result{job: j, err: j.err}
	}

	data, err := os.ReadFile(j.path)
	if err != nil {
		return result{job: j, err: errors.Wrap(errors.ErrCodeFileRead, err, "read")}
	}
	if !utf8.Valid(data) {
		return result{job: j, err: errors.New(errors.ErrCodeFileDecode, "content is not valid UTF-8 text")}
	}

	detections, err := s.extract(j.extractor, data, j.rel)
	return result{job: j, detections: detections, err: err}
}

// extract runs one extractor on data through the cache. A panicking
// extractor fails only the file it was given.
func (s *scanner) extract(e deps.Extractor, data []byte, rel string) (detections []deps.Detection, err error) {
	defer func() {
		if r := recover(); r != nil {
			detections, err = nil, errors.New(errors.ErrCodeInternal, "%s extractor panicked: %v", e.Type(), r)
		}
	}()
	return s.extractCached(e, data, rel)
}

// collect folds one result into the report. Only one goroutine calls it.
func (s *scanner) collect(r result) {
	var dialect string
	if r.extractor != nil {
		dialect = r.extractor.Type()
		s.matched++
		s.dialect[dialect]++
	}

	observability.Scan().OnFileProcessed(s.ctx, r.rel, dialect, len(r.detections), r.err)

	if r.err != nil {
		fe := FileError{Path: r.path, Err: r.err}
		s.errs = append(s.errs, fe)
		s.opts.OnError(fe)
		return
	}
	s.merger.Add(r.rel, r.detections...)
}

func (s *scanner) extractCached(e deps.Extractor, data []byte, rel string) ([]deps.Detection, error) {
	if s.opts.Cache == nil {
		return e.Extract(string(data), rel)
	}

	hooks := observability.Cache()
	key := s.opts.Keyer.ExtractKey(e.Type(), data)

	cached, ok, err := s.opts.Cache.Get(s.ctx, key)
	if err != nil {
		s.opts.Logger("cache read failed: %s: %v", rel, err)
	}
	if ok {
		var detections []deps.Detection
		if err := json.Unmarshal(cached, &detections); err == nil {
			hooks.OnCacheHit(s.ctx, key)
			return detections, nil
		}
	}
	hooks.OnCacheMiss(s.ctx, key)

	detections, err := e.Extract(string(data), rel)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(detections)
	if err != nil {
		return detections, nil
	}
	if err := s.opts.Cache.Set(s.ctx, key, payload, s.opts.CacheTTL); err != nil {
		s.opts.Logger("cache write failed: %s: %v", rel, err)
	} else {
		hooks.OnCacheSet(s.ctx, key, len(payload))
	}
	return detections, nil
}

func (s *scanner) rel(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// isRegular reports whether an entry is a regular file, following symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
