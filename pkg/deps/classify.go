package deps

import (
	"path/filepath"
	"strings"
)

// Classify finds the first extractor that supports the file at path.
// Matching is done on the lowercased base name, so the order of extractors
// is the dispatch precedence. It returns false when no extractor applies,
// which means the file is skipped without being read.
func Classify(path string, extractors ...Extractor) (Extractor, bool) {
	name := strings.ToLower(filepath.Base(path))
	for _, e := range extractors {
		if e.Supports(name) {
			return e, true
		}
	}
	return nil, false
}
