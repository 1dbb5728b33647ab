package category

import "github.com/sprout-dev/sprout/internal/model"

// DefaultSet returns the categories seeded once for every new user. Budgets
// start at zero; sub-budgets are opt-in per category.
func DefaultSet(userID int64) []model.Category {
	defaults := []struct {
		name  string
		icon  string
		color string
	}{
		{"Food & Dining", "🍽️", "#FF6B6B"},
		{"Transportation", "🚗", "#4ECDC4"},
		{"Shopping", "🛒", "#45B7D1"},
		{"Health & Fitness", "💪", "#96CEB4"},
		{"Entertainment", "🎬", "#FECA57"},
		{"Bills & Utilities", "⚡", "#FF9FF3"},
		{"Other", "📝", "#6B7280"},
	}

	cats := make([]model.Category, len(defaults))
	for i, d := range defaults {
		cats[i] = model.Category{
			UserID: userID,
			Scope:  model.ScopeDefault,
			Name:   d.name,
			Icon:   d.icon,
			Color:  d.color,
		}
	}
	return cats
}
