package category

import (
	"github.com/sprout-dev/sprout/internal/model"
)

// Service provides in-memory lookup over a user's categories.
type Service struct {
	categories []model.Category
	byRef      map[string]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(categories []model.Category) *Service {
	byRef := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byRef[c.Ref()] = c
	}
	return &Service{categories: categories, byRef: byRef}
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by its reference.
func (s *Service) Get(ref string) (model.Category, bool) {
	c, ok := s.byRef[ref]
	return c, ok
}

// Exists reports whether a category reference resolves.
func (s *Service) Exists(ref string) bool {
	_, ok := s.byRef[ref]
	return ok
}

// Budgeted returns the categories carrying a daily sub-budget.
func (s *Service) Budgeted() []model.Category {
	var out []model.Category
	for _, c := range s.categories {
		if c.HasBudget() {
			out = append(out, c)
		}
	}
	return out
}
