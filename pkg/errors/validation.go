package errors

import (
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// ValidateDependencyName validates a dependency name received from outside
// the scanner, such as an HTTP route parameter.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateDependencyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "dependency name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "dependency name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "dependency name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "dependency name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a file path relative to a scan root.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (locations are always slash-separated)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if slices.Contains(strings.Split(path, "/"), "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURI validates a backend connection string and checks that its
// scheme is one of schemes (e.g. "redis", "mongodb").
func ValidateURI(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidConfig, "URI cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid URI")
	}

	if !slices.Contains(schemes, u.Scheme) {
		return New(ErrCodeInvalidConfig, "URI scheme %q not supported (want one of: %s)",
			u.Scheme, strings.Join(schemes, ", "))
	}

	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "URI must include a host")
	}

	return nil
}
