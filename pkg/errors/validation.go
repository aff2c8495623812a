package errors

import (
	"math"
	"unicode"
)

// ValidatePositive checks that v is a finite number greater than zero.
// The name is used in the error message (e.g. "step size", "clearance").
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "%s must be finite, got %g", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidArgument, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateCount checks that n is a positive integer count.
func ValidateCount(name string, n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidArgument, "%s must be positive, got %d", name, n)
	}
	return nil
}

// ValidateFinite checks that every coordinate is a finite number.
func ValidateFinite(name string, coords ...float64) error {
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return New(ErrCodeInvalidInput, "%s has a non-finite coordinate", name)
		}
	}
	return nil
}

// ValidateIdentifier validates a feature, tag, or family identifier.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "%s id too long (max 256 characters)", kind)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid control characters", kind)
		}
	}

	return nil
}

// ValidatePath validates a local scene or output file path. Relative paths,
// including ones that climb with "..", are allowed.
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
