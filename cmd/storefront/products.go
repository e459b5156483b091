package main

import (
	"context"
	"fmt"
	"os"

	"github.com/niksmo/storefront/internal/adapter/render"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	productsCategory string
	productsSearch   string
	productsSort     string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products matching the filters",
	Run: func(cmd *cobra.Command, args []string) {
		sort, err := domain.ParseSortOrder(productsSort)
		if err != nil {
			die(err)
		}

		cfg := mustConfig(cmd)
		a := mustApp(cmd.Context(), cfg)
		defer a.Close(context.Background())

		ps := a.Storefront().Browse(domain.FilterCriteria{
			Category: domain.NormalizeCategory(productsCategory),
			Search:   productsSearch,
			Sort:     sort,
		})
		if len(ps) == 0 {
			fmt.Println("No products found")
			return
		}
		if err := render.Products(os.Stdout, ps, cfg.CurrencySymbol); err != nil {
			die(err)
		}
	},
}

func init() {
	f := productsCmd.Flags()
	f.StringVar(&productsCategory, "category", domain.CategoryAll, "category id")
	f.StringVar(&productsSearch, "search", "", "case-insensitive name search")
	f.StringVar(&productsSort, "sort", string(domain.SortFeatured), "featured, price-asc or price-desc")
	rootCmd.AddCommand(productsCmd)
}
