package domain_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]domain.SortOrder{
		"featured":    domain.SortFeatured,
		" Price-Asc ": domain.SortPriceAsc,
		"price-desc":  domain.SortPriceDesc,
	} {
		got, err := domain.ParseSortOrder(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := domain.ParseSortOrder("rating")
	assert.ErrorIs(t, err, domain.ErrInvalidSort)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "all", domain.NormalizeCategory(""))
	assert.Equal(t, "all", domain.NormalizeCategory("  "))
	assert.Equal(t, "dairy", domain.NormalizeCategory(" Dairy"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹0.00", domain.FormatPrice("₹", 0))
	assert.Equal(t, "₹417.00", domain.FormatPrice("₹", 417))
	assert.Equal(t, "$1.50", domain.FormatPrice("$", 1.5))
}
