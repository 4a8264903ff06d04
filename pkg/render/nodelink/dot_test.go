package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/depscan/pkg/deps"
)

func testResult() *deps.Result {
	return deps.NewResult(
		deps.Record{Name: "OpenSSL", Version: "1.1", Locations: []string{"CMakeLists.txt"}},
		deps.Record{Name: "fmt", Locations: []string{"src/a.cpp", "src/b.cpp"}},
		deps.Record{Name: "zlib", Version: "1.2.13", Locations: []string{"conanfile.txt", "src/a.cpp"}},
	)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testResult(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"file:src/a.cpp" [label="src/a.cpp", shape=note`,
		`"dep:OpenSSL" [label="OpenSSL"];`,
		`"dep:fmt" [label="fmt", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`"file:CMakeLists.txt" -> "dep:OpenSSL";`,
		`"file:src/a.cpp" -> "dep:zlib";`,
		`"file:src/b.cpp" -> "dep:fmt";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	if n := strings.Count(dot, "shape=note"); n != 4 {
		t.Errorf("file nodes = %d, want 4 (shared files appear once)", n)
	}
	if n := strings.Count(dot, " -> "); n != 5 {
		t.Errorf("edges = %d, want 5", n)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testResult(), Options{Detailed: true})

	for _, want := range []string{
		`label="OpenSSL\n1.1\nfiles: 1"`,
		`label="fmt\nVersion not found\nfiles: 2"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(deps.NewResult(), Options{})
	if strings.Contains(dot, "->") || strings.Contains(dot, "label=") {
		t.Errorf("empty result produced nodes or edges:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT not closed:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(testResult(), Options{Detailed: true})
	b := ToDOT(testResult(), Options{Detailed: true})
	if a != b {
		t.Error("ToDOT output differs between calls")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() =\n%s\nwant\n%s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
