package deps

import (
	"maps"
	"regexp"
	"slices"
)

// Pattern rule identifiers.
const (
	PatternCMake   = "cmake"
	PatternConan   = "conan"
	PatternVcpkg   = "vcpkg"
	PatternInclude = "include"
	PatternDefine  = "define"
)

// PatternRule is a named, immutable text-matching rule.
type PatternRule struct {
	ID string
	re *regexp.Regexp
}

// Expr returns the rule's regular expression source.
func (r *PatternRule) Expr() string { return r.re.String() }

// Match returns the capture groups of every non-overlapping match in text,
// scanned left to right. The full match is not included.
func (r *PatternRule) Match(text string) [][]string {
	all := r.re.FindAllStringSubmatch(text, -1)
	out := make([][]string, 0, len(all))
	for _, m := range all {
		out = append(out, m[1:])
	}
	return out
}

var patterns = map[string]*PatternRule{
	PatternCMake:   newRule(PatternCMake, `find_package\s*\(\s*(\w+)\s+(\d+[\.\d]*)`),
	PatternConan:   newRule(PatternConan, `(\w+)/([\d\.]+)@`),
	PatternVcpkg:   newRule(PatternVcpkg, `"name":\s*"([^"]+)"[^}]+"version":\s*"([^"]+)"`),
	PatternInclude: newRule(PatternInclude, `#include\s*[<"](\w+)(?:/[\w\.]+)*[>"]`),
	PatternDefine:  newRule(PatternDefine, `#define\s+(\w+_VERSION)\s+["]?([\d\.]+)["]?`),
}

func newRule(id, expr string) *PatternRule {
	return &PatternRule{ID: id, re: regexp.MustCompile(expr)}
}

// Pattern returns the rule registered under id.
func Pattern(id string) (*PatternRule, bool) {
	r, ok := patterns[id]
	return r, ok
}

// MustPattern is like [Pattern] but panics for an unknown id.
// It is meant for package-level initialization of extractors.
func MustPattern(id string) *PatternRule {
	r, ok := patterns[id]
	if !ok {
		panic("deps: unknown pattern " + id)
	}
	return r
}

// PatternIDs returns all rule identifiers in sorted order.
func PatternIDs() []string {
	return slices.Sorted(maps.Keys(patterns))
}
