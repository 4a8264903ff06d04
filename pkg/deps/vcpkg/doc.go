// Package vcpkg extracts dependencies from vcpkg.json manifests.
//
// The manifest is parsed as strict JSON first. Each element of the
// top-level "dependencies" array is either a plain string (a name without
// a version) or an object with "name" and an optional "version":
//
//	{"dependencies": ["fmt", {"name": "boost", "version": "1.75"}]}
//
// When the content is not valid JSON, adjacent "name"/"version" pairs are
// matched as text instead. A malformed manifest is never an error, and the
// two strategies never both run on the same file.
package vcpkg
