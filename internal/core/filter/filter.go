// Package filter derives the visible product subset from filter criteria.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Apply returns the products that match both the category and the search
// predicate of c, ordered by c.Sort. Ties keep catalog order. The input is
// never reordered and the result is never nil.
func Apply(products []domain.Product, c domain.FilterCriteria) []domain.Product {
	category := domain.NormalizeCategory(c.Category)
	search := strings.ToLower(strings.TrimSpace(c.Search))

	res := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchCategory(p, category) && matchSearch(p, search) {
			res = append(res, p)
		}
	}

	switch c.Sort {
	case domain.SortPriceAsc:
		slices.SortStableFunc(res, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(res, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}
	return res
}

func matchCategory(p domain.Product, category string) bool {
	return category == domain.CategoryAll ||
		strings.ToLower(p.Category) == category
}

func matchSearch(p domain.Product, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}
