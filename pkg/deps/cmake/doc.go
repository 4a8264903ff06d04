// Package cmake extracts dependencies from CMake build scripts.
//
// Every `find_package(NAME VERSION ...)` directive with a dotted numeric
// version yields one detection. Directives without a version, or whose
// version is a variable, are not reported:
//
//	find_package(OpenSSL 1.1 REQUIRED)   // OpenSSL 1.1
//	find_package(Threads REQUIRED)       // ignored
//
// Any file whose name contains "cmakelists.txt" is handled.
package cmake
