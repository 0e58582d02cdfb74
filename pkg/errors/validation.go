package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds person and family identifiers.
const maxIDLength = 128

// ValidateID validates a person or family identifier for safety.
// Identifiers end up in store keys, file names and URLs, so the rules are
// conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id contains invalid characters: %q", id)
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateStepLimit validates a layout step limit. Zero means unlimited.
func ValidateStepLimit(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "step limit cannot be negative: %d", n)
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed names.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates a file path supplied by a remote caller.
// It prevents path traversal and ensures reasonable path length.
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
