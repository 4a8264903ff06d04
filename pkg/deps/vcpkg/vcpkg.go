package vcpkg

import (
	"encoding/json"

	"github.com/matzehuels/depscan/pkg/deps"
)

var namedVersion = deps.MustPattern(deps.PatternVcpkg)

// Manifest extracts dependencies from vcpkg.json.
type Manifest struct{}

func (Manifest) Type() string              { return "vcpkg" }
func (Manifest) Supports(name string) bool { return name == "vcpkg.json" }

func (Manifest) Extract(content, _ string) ([]deps.Detection, error) {
	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return fallback(content), nil
	}
	return fromJSON(raw), nil
}

func fromJSON(raw any) []deps.Detection {
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := doc["dependencies"].([]any)
	if !ok {
		return nil
	}

	var out []deps.Detection
	for _, item := range list {
		switch v := item.(type) {
		case string:
			if v != "" {
				out = append(out, deps.Detection{Name: v})
			}
		case map[string]any:
			name, _ := v["name"].(string)
			if name == "" {
				continue
			}
			version, _ := v["version"].(string)
			out = append(out, deps.Detection{Name: name, Version: version})
		}
	}
	return out
}

func fallback(content string) []deps.Detection {
	var out []deps.Detection
	for _, m := range namedVersion.Match(content) {
		out = append(out, deps.Detection{Name: m[0], Version: m[1]})
	}
	return out
}
