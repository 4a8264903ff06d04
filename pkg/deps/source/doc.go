// Package source extracts dependencies from C and C++ source and header files.
//
// Two independent passes run over every file:
//
//   - Include pass: `#include <name/...>` and `#include "name/..."` report the
//     first path segment as a dependency with no version. Standard library
//     headers in the exclusion set (string, vector, iostream by default) are
//     not reported. Headers whose first segment carries an extension
//     (`<stdio.h>`) are not matched at all.
//   - Define pass: `#define NAME_VERSION "x.y.z"` reports `name` (suffix
//     removed, lowercased) at version x.y.z.
//
// Names are case-sensitive: `#include <openssl/ssl.h>` yields "openssl",
// which is a different dependency from a CMake "OpenSSL".
package source
