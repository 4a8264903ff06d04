package vcpkg

import (
	"testing"

	"github.com/matzehuels/depscan/pkg/deps"
)

func TestManifest_Supports(t *testing.T) {
	parser := Manifest{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"vcpkg.json", true},
		{"vcpkg-configuration.json", false},
		{"my-vcpkg.json", false},
		{"package.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestManifest_Extract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []deps.Detection
	}{
		{
			name:    "strings and objects",
			content: `{"dependencies":["fmt",{"name":"boost","version":"1.75"}]}`,
			want: []deps.Detection{
				{Name: "fmt"},
				{Name: "boost", Version: "1.75"},
			},
		},
		{
			name:    "object without version",
			content: `{"dependencies":[{"name":"zlib","features":["x"]}]}`,
			want:    []deps.Detection{{Name: "zlib"}},
		},
		{
			name:    "object without name is skipped",
			content: `{"dependencies":[{"version":"1.0"},"curl"]}`,
			want:    []deps.Detection{{Name: "curl"}},
		},
		{
			name:    "no dependencies key",
			content: `{"name":"app","version":"0.1.0"}`,
			want:    nil,
		},
		{
			name:    "valid json that is not an object",
			content: `["fmt"]`,
			want:    nil,
		},
		{
			name: "malformed json falls back to text",
			content: `{
  "dependencies": [
    { "name": "fmt", "version": "9.1" },
  ]
`,
			want: []deps.Detection{{Name: "fmt", Version: "9.1"}},
		},
		{
			name:    "parsed content is never matched as text",
			content: `{"dependencies":[{"name":"fmt","version":"9.1"}]}`,
			want:    []deps.Detection{{Name: "fmt", Version: "9.1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Manifest{}.Extract(tt.content, "vcpkg.json")
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d detections, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("detection[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
