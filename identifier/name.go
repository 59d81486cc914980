package identifier

import (
	"strings"
	"unicode"

	"github.com/jmgilman/go/fsdriver/errors"
)

// SanitizeFileName makes name safe to use as a single path segment.
//
// Surrounding whitespace is trimmed, control characters and path separators
// are replaced with "_" and trailing dots are removed. A name that ends up
// empty fails with errors.CodeInvalidName.
func SanitizeFileName(name string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	cleaned = strings.TrimRight(cleaned, ".")
	if cleaned == "" {
		return "", errors.WithContext(
			errors.New(errors.CodeInvalidName, "name is empty after sanitization"),
			"name", name,
		)
	}
	return cleaned, nil
}

// IsValidFileName reports whether name can be used unchanged as a file name.
func IsValidFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
