package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateNetworkPath validates a netlist path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be .bench or .json
func ValidateNetworkPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".bench" && ext != ".json" {
		return New(ErrCodeInvalidFormat, "unsupported netlist extension %q (want .bench or .json)", ext)
	}

	return nil
}

// ValidateCutSize validates the cut size option. Cuts are enumerated with
// explicit truth tables, so the bound is kept small.
func ValidateCutSize(k int) error {
	if k < 2 || k > 10 {
		return New(ErrCodeInvalidConfig, "cut size must be between 2 and 10, got %d", k)
	}
	return nil
}

// ValidateCutLimit validates the per-node cut limit option.
func ValidateCutLimit(n int) error {
	if n < 2 {
		return New(ErrCodeInvalidConfig, "cut limit must be at least 2, got %d", n)
	}
	return nil
}
