package domain

import (
	"fmt"
	"strings"
)

const CategoryAll = "all"

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// ParseSortOrder accepts the three storefront sort options.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortFeatured, SortPriceAsc, SortPriceDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidSort)
	}
}

type FilterCriteria struct {
	Category string
	Search   string
	Sort     SortOrder
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Category: CategoryAll,
		Search:   "",
		Sort:     SortFeatured,
	}
}

// NormalizeCategory lowercases a category selection, mapping an empty
// selection to "all".
func NormalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return CategoryAll
	}
	return c
}
