package conan

import (
	"testing"

	"github.com/matzehuels/depscan/pkg/deps"
)

func TestConanfile_Supports(t *testing.T) {
	parser := Conanfile{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"conanfile.txt", true},
		{"conanfile.py", true},
		{"test_conanfile.py", true},
		{"conan.lock", false},
		{"vcpkg.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestConanfile_ExtractText(t *testing.T) {
	content := `[requires]
zlib/1.2.11@conan/stable
fmt/9.1.0@
spdlog/1.11.0

[generators]
CMakeDeps
`
	got, err := Conanfile{}.Extract(content, "conanfile.txt")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []deps.Detection{
		{Name: "zlib", Version: "1.2.11"},
		{Name: "fmt", Version: "9.1.0"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d detections, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("detection[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestConanfile_ExtractPython(t *testing.T) {
	content := `from conan import ConanFile

class App(ConanFile):
    requires = "boost/1.80.0@", "openssl/3.0.5@demo/testing"
`
	got, err := Conanfile{}.Extract(content, "conanfile.py")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d detections, want 2: %v", len(got), got)
	}
	if got[0].Name != "boost" || got[0].Version != "1.80.0" {
		t.Errorf("first detection = %+v", got[0])
	}
	if got[1].Name != "openssl" || got[1].Version != "3.0.5" {
		t.Errorf("second detection = %+v", got[1])
	}
}
