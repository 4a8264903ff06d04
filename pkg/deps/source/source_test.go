package source

import (
	"testing"

	"github.com/matzehuels/depscan/pkg/deps"
)

func TestFiles_Supports(t *testing.T) {
	parser := New(nil, nil)

	tests := []struct {
		filename string
		want     bool
	}{
		{"main.cpp", true},
		{"util.hpp", true},
		{"config.h", true},
		{"module.cc", true},
		{"main.c", false},
		{"readme.md", false},
		{"makefile", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestFiles_SupportsCustomExtensions(t *testing.T) {
	parser := New([]string{"c", ".CXX"}, nil)

	if !parser.Supports("main.c") {
		t.Error("Supports(main.c) = false, want true")
	}
	if !parser.Supports("main.cxx") {
		t.Error("Supports(main.cxx) = false, want true")
	}
	if parser.Supports("main.cpp") {
		t.Error("Supports(main.cpp) = true, want false")
	}
}

func TestFiles_Extract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []deps.Detection
	}{
		{
			name:    "stdlib vector excluded",
			content: "#include <vector>\n",
			want:    nil,
		},
		{
			name:    "stdlib set",
			content: "#include <string>\n#include <iostream>\n#include <map>\n",
			want:    []deps.Detection{{Name: "map"}},
		},
		{
			name:    "first path segment",
			content: "#include <openssl/ssl.h>\n#include \"boost/asio/io_context.hpp\"\n",
			want:    []deps.Detection{{Name: "openssl"}, {Name: "boost"}},
		},
		{
			name:    "header with extension is not matched",
			content: "#include <stdio.h>\n#include \"config.h\"\n",
			want:    nil,
		},
		{
			name:    "version define",
			content: "#define ZLIB_VERSION \"1.2.11\"\n",
			want:    []deps.Detection{{Name: "zlib", Version: "1.2.11"}},
		},
		{
			name:    "unquoted version define",
			content: "#define MY_LIB_VERSION 2.0\n",
			want:    []deps.Detection{{Name: "my_lib", Version: "2.0"}},
		},
		{
			name:    "both passes",
			content: "#include <zlib/zlib.h>\n#define ZLIB_VERSION \"1.3\"\n",
			want:    []deps.Detection{{Name: "zlib"}, {Name: "zlib", Version: "1.3"}},
		},
	}

	parser := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Extract(tt.content, "main.cpp")
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

func TestFiles_ExtractEmptyStdlib(t *testing.T) {
	parser := New(nil, []string{})
	got, _ := parser.Extract("#include <vector>\n", "main.cpp")
	if len(got) != 1 || got[0].Name != "vector" {
		t.Errorf("got %v, want a single vector detection", got)
	}
}

func TestLibraryName(t *testing.T) {
	tests := map[string]string{
		"ZLIB_VERSION":    "zlib",
		"OPENSSL_VERSION": "openssl",
		"Boost_VERSION":   "boost",
		"MY_LIB_VERSION":  "my_lib",
		"APP_API_VERSION": "app_api",
	}
	for macro, want := range tests {
		if got := libraryName(macro); got != want {
			t.Errorf("libraryName(%q) = %q, want %q", macro, got, want)
		}
	}
}
