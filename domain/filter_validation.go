package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ValidateCategoryFilters validates caller-supplied category filters for
// security before they reach any adapter.
func ValidateCategoryFilters(categories []string) error {
	if len(categories) > 10 {
		return fmt.Errorf("too many category filters: maximum 10 allowed, got %d", len(categories))
	}

	// Regex for allowed characters: alphanumeric, spaces, hyphens, underscores, and Unicode letters
	validCategoryRegex := regexp.MustCompile(`^[\p{L}\p{N}\s\-_]+$`)

	for _, category := range categories {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("empty or whitespace-only category not allowed")
		}

		if len(category) > 100 {
			return fmt.Errorf("category too long: maximum 100 characters, got %d", len(category))
		}

		if !validCategoryRegex.MatchString(category) {
			return fmt.Errorf("invalid characters in category: %s", category)
		}

		for _, r := range category {
			if unicode.IsControl(r) {
				return fmt.Errorf("control characters not allowed in category: %s", category)
			}
		}
	}

	return nil
}
