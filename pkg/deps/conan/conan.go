package conan

import (
	"strings"

	"github.com/matzehuels/depscan/pkg/deps"
)

var reference = deps.MustPattern(deps.PatternConan)

// Conanfile extracts name/version@ references from any conanfile.
type Conanfile struct{}

func (Conanfile) Type() string              { return "conan" }
func (Conanfile) Supports(name string) bool { return strings.Contains(name, "conanfile") }

func (Conanfile) Extract(content, _ string) ([]deps.Detection, error) {
	var out []deps.Detection
	for _, m := range reference.Match(content) {
		out = append(out, deps.Detection{Name: m[0], Version: m[1]})
	}
	return out, nil
}
