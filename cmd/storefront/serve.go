package main

import (
	"context"
	"os"
	"time"

	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/cobra"
)

const closeTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront JSON API",
	Run: func(cmd *cobra.Command, args []string) {
		sigCtx, stop := sigctx.NotifyContext()
		defer stop()

		cfg := mustConfig(cmd)
		cfg.Print(os.Stdout)
		a := mustApp(sigCtx, cfg)

		err := a.Serve(sigCtx)

		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		a.Close(ctx)

		if err != nil {
			die(err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "HTTP listen address")
	rootCmd.AddCommand(serveCmd)
}
