package cmake

import (
	"strings"

	"github.com/matzehuels/depscan/pkg/deps"
)

var findPackage = deps.MustPattern(deps.PatternCMake)

// CMakeLists extracts find_package directives.
type CMakeLists struct{}

func (CMakeLists) Type() string { return "cmake" }

func (CMakeLists) Supports(name string) bool {
	return strings.Contains(name, "cmakelists.txt")
}

func (CMakeLists) Extract(content, _ string) ([]deps.Detection, error) {
	var out []deps.Detection
	for _, m := range findPackage.Match(content) {
		out = append(out, deps.Detection{Name: m[0], Version: m[1]})
	}
	return out, nil
}
