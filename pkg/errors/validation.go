package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// graphNameRegex matches names usable as store keys, file names and URL segments.
var graphNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateGraphName validates a graph name for safety and correctness.
// Graph names become file names, redis keys and URL path segments, so the
// rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, '.', '_' and '-' only, starting with a letter or digit
//   - No path traversal sequences (..)
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "graph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "graph name too long (max 128 characters)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "graph name cannot contain path traversal sequences (..)")
	}

	if !graphNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid graph name: %q", name)
	}

	return nil
}

// ValidateTypeName validates a node type name from a catalog file.
// Type names are display labels, so spaces are allowed, but they must
// not be blank and must not contain control characters.
func ValidateTypeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidCatalog, "node type name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidCatalog, "node type name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "node type name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a user-supplied file path for import and export.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}
