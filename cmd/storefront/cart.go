package main

import (
	"context"
	"os"

	"github.com/niksmo/storefront/internal/adapter/render"
	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Print the saved cart",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)
		a := mustApp(cmd.Context(), cfg)
		defer a.Close(context.Background())

		v := a.Storefront().Start(cmd.Context())
		if err := render.Cart(os.Stdout, v.Cart, cfg.CurrencySymbol); err != nil {
			die(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
}
