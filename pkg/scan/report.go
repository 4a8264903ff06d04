package scan

import (
	"fmt"
	"time"

	"github.com/matzehuels/depscan/pkg/deps"
)

// FileError records a failure to process a single file.
type FileError struct {
	Path string // Path as visited (root-joined)
	Err  error
}

// Error returns the error log line for the failure.
func (e FileError) Error() string {
	return fmt.Sprintf("Error processing %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e FileError) Unwrap() error { return e.Err }

// Report is the outcome of one scan.
type Report struct {
	ID             string         // Unique scan identifier (UUID)
	Root           string         // Scanned directory as given
	StartedAt      time.Time      // Wall-clock start
	Duration       time.Duration  // Total scan time
	FilesVisited   int            // Regular files seen
	FilesMatched   int            // Files claimed by an extractor
	FilesByDialect map[string]int // Claimed files per extractor type
	Result         *deps.Result   // Consolidated dependencies
	Errors         []FileError    // Per-file failures, in the order they occurred
}

// ErrorCount returns the number of file errors.
func (r *Report) ErrorCount() int { return len(r.Errors) }
