package scan

import (
	"path/filepath"
	"time"

	"github.com/matzehuels/depscan/pkg/cache"
	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/deps/dialects"
)

const (
	DefaultWorkers = 1 // Sequential processing
	MaxWorkers     = 64
)

// Options configures a scan.
type Options struct {
	Extractors []deps.Extractor     // Dispatch table in precedence order (default: dialects.All)
	Exclude    []string             // Glob patterns matched against file and directory base names
	Workers    int                  // Parallel extraction workers (default: 1)
	Cache      cache.Cache          // Extraction cache (nil disables caching)
	Keyer      cache.Keyer          // Cache key builder (default: cache.DefaultKeyer)
	CacheTTL   time.Duration        // Cache entry lifetime (default: cache.DefaultTTL)
	Logger     func(string, ...any) // Warning callback (optional)
	OnError    func(FileError)      // Called as each file error occurs (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if len(opts.Extractors) == 0 {
		opts.Extractors = dialects.All(dialects.Options{})
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OnError == nil {
		opts.OnError = func(FileError) {}
	}
	return opts
}

// excluded reports whether a base name matches any exclude pattern.
// Malformed patterns never match.
func (o Options) excluded(name string) bool {
	for _, pattern := range o.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
