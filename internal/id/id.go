package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sprout-dev/sprout/internal/model"
)

// FormatCategoryRef returns a category reference like "default_3" or "custom_7".
func FormatCategoryRef(scope model.CategoryScope, id int64) string {
	return fmt.Sprintf("%s_%d", scope, id)
}

// ParseCategoryRef parses a category reference into scope and numeric ID.
// Bare numeric refs are a legacy format and parse as default scope.
func ParseCategoryRef(ref string) (model.CategoryScope, int64, error) {
	if ref == "" {
		return "", 0, fmt.Errorf("empty category ref")
	}

	scope := model.ScopeDefault
	numPart := ref
	switch {
	case strings.HasPrefix(ref, "default_"):
		numPart = strings.TrimPrefix(ref, "default_")
	case strings.HasPrefix(ref, "custom_"):
		scope = model.ScopeCustom
		numPart = strings.TrimPrefix(ref, "custom_")
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid category ref %q: %w", ref, err)
	}
	return scope, n, nil
}
