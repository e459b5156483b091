package main

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/niksmo/storefront/internal/adapter/render"
	"github.com/niksmo/storefront/internal/adapter/shell"
	"github.com/niksmo/storefront/internal/app"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/cobra"
)

var noBanner bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse and shop interactively",
	Run: func(cmd *cobra.Command, args []string) {
		sigCtx, stop := sigctx.NotifyContext()
		defer stop()

		cfg := mustConfig(cmd)
		renderer := render.NewText(os.Stdout, cfg.CurrencySymbol)
		a := mustApp(sigCtx, cfg, app.WithRenderer(renderer))
		defer a.Close(context.Background())

		var opts []shell.Opt
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			opts = append(opts, shell.WithPrompt("> "))
			if !noBanner {
				opts = append(opts, shell.WithBanner("storefront"))
			}
		}

		sh := shell.New(a.Storefront(), renderer, os.Stdin, os.Stdout, opts...)
		if err := sh.Run(sigCtx); err != nil {
			die(err)
		}
	},
}

func init() {
	shellCmd.Flags().BoolVar(&noBanner, "no-banner", false, "skip the welcome banner")
	rootCmd.AddCommand(shellCmd)
}
