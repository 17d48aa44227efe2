package errors

import (
	"unicode"
)

// MaxNameLength bounds node, group, and graph names accepted from documents.
const MaxNameLength = 256

// ValidateName validates a node or group name read from an external document.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters (including newlines and null bytes)
//   - Maximum length of [MaxNameLength] bytes
//
// Graph names are validated with [ValidateGraphName], which allows empty names.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	return validateChars(name)
}

// ValidateGraphName validates a topology name. Unlike node names, the graph
// name may be empty.
func ValidateGraphName(name string) error {
	if name == "" {
		return nil
	}
	return validateChars(name)
}

func validateChars(name string) error {
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name %q contains invalid control characters", name)
		}
	}
	return nil
}
