package source

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/depscan/pkg/deps"
)

var (
	// DefaultExtensions are the file extensions scanned for includes and defines.
	DefaultExtensions = []string{".cpp", ".hpp", ".h", ".cc"}

	// DefaultStdlib are the header names never reported by the include pass.
	DefaultStdlib = []string{"string", "vector", "iostream"}
)

var (
	include = deps.MustPattern(deps.PatternInclude)
	define  = deps.MustPattern(deps.PatternDefine)
)

// Files extracts includes and version defines from native source files.
type Files struct {
	extensions []string
	stdlib     map[string]bool
}

// New creates a source extractor. Nil slices select the defaults; an empty
// non-nil stdlib slice disables the exclusion set.
func New(extensions, stdlib []string) *Files {
	if extensions == nil {
		extensions = DefaultExtensions
	}
	if stdlib == nil {
		stdlib = DefaultStdlib
	}
	f := &Files{stdlib: make(map[string]bool, len(stdlib))}
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.extensions = append(f.extensions, ext)
	}
	for _, name := range stdlib {
		f.stdlib[name] = true
	}
	return f
}

func (f *Files) Type() string { return "source" }

func (f *Files) Supports(name string) bool {
	return slices.Contains(f.extensions, strings.ToLower(filepath.Ext(name)))
}

func (f *Files) Extract(content, _ string) ([]deps.Detection, error) {
	var out []deps.Detection
	for _, m := range include.Match(content) {
		if f.stdlib[m[0]] {
			continue
		}
		out = append(out, deps.Detection{Name: m[0]})
	}
	for _, m := range define.Match(content) {
		out = append(out, deps.Detection{Name: libraryName(m[0]), Version: m[1]})
	}
	return out, nil
}

// libraryName derives a library name from a version macro:
// ZLIB_VERSION becomes zlib. Unrelated macros ending in _VERSION are
// treated the same way.
func libraryName(macro string) string {
	return strings.ToLower(strings.TrimSuffix(macro, "_VERSION"))
}
