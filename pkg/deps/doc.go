// Package deps provides heuristic dependency detection for native-language
// projects.
//
// # Overview
//
// Depscan infers third-party dependencies by pattern-matching package
// manifests and source include statements. Nothing is compiled or resolved;
// a dependency is reported when its name is mentioned.
//
// This package holds the dialect-independent core:
//
//   - The pattern table ([Pattern], [PatternRule]): five named regular
//     expressions shared by all extractors
//   - The [Extractor] interface and [Classify], which picks the first
//     extractor that supports a file name
//   - The [Merger], which folds [Detection]s from many files into one
//     [Record] per dependency name
//
// # Extractors
//
// Each dialect lives in its own subpackage:
//
//   - [cmake]: find_package directives in CMakeLists.txt
//   - [conan]: name/version@ references in conanfile.txt and conanfile.py
//   - [vcpkg]: vcpkg.json, strict JSON with a text fallback
//   - [source]: #include and *_VERSION defines in C/C++ files
//
// The [dialects] package returns them in dispatch precedence.
//
// # Merging
//
// A record's version is filled by the first detection that carries one
// and is never replaced afterwards. Locations accumulate with set
// semantics. The final state does not depend on the order in which a
// versioned and an unversioned detection arrive:
//
//	m := deps.NewMerger()
//	m.Record("boost", "", "src/main.cpp")
//	m.Record("boost", "1.75", "vcpkg.json")
//	rec, _ := m.Result().Get("boost") // {boost 1.75 [src/main.cpp vcpkg.json]}
//
// Names are compared case-sensitively.
//
// [cmake]: github.com/matzehuels/depscan/pkg/deps/cmake
// [conan]: github.com/matzehuels/depscan/pkg/deps/conan
// [vcpkg]: github.com/matzehuels/depscan/pkg/deps/vcpkg
// [source]: github.com/matzehuels/depscan/pkg/deps/source
// [dialects]: github.com/matzehuels/depscan/pkg/deps/dialects
package deps
