// Package dialects provides the ordered list of manifest and source extractors.
//
// This package exists to break import cycles: the individual dialect packages
// (cmake, conan, etc.) import pkg/deps, so pkg/deps cannot import them back.
// Consumers that need the full dispatch table import this package.
//
// Usage:
//
//	extractors := dialects.All(dialects.Options{})
//	if e, ok := deps.Classify("src/main.cpp", extractors...); ok {
//	    detections, _ := e.Extract(content, "src/main.cpp")
//	}
package dialects

import (
	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/deps/cmake"
	"github.com/matzehuels/depscan/pkg/deps/conan"
	"github.com/matzehuels/depscan/pkg/deps/source"
	"github.com/matzehuels/depscan/pkg/deps/vcpkg"
)

// Options customizes the source extractor. Nil fields select the defaults
// from the source package.
type Options struct {
	SourceExtensions []string // File extensions scanned for includes/defines
	StdlibExclusions []string // Header names never reported
}

// All returns the extractors in dispatch precedence: build scripts, Conan
// manifests, vcpkg manifests, then source files.
func All(opts Options) []deps.Extractor {
	return []deps.Extractor{
		cmake.CMakeLists{},
		conan.Conanfile{},
		vcpkg.Manifest{},
		source.New(opts.SourceExtensions, opts.StdlibExclusions),
	}
}

// Types returns the dialect identifiers in dispatch order.
func Types() []string {
	var out []string
	for _, e := range All(Options{}) {
		out = append(out, e.Type())
	}
	return out
}
