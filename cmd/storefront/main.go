package main

import (
	"context"
	"fmt"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Demo storefront with a persistent cart",
	Long: `storefront serves a small product catalog with filters and a cart that
survives restarts. Run "serve" for the JSON API or "shell" for an
interactive session.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to a YAML config file")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("storage", "", "cart storage: memory, file, sqlite, redis, postgres")
	pf.String("codec", "", "cart snapshot codec: json or avro")
	pf.String("catalog", "", "path to a YAML catalog file, empty for the built-in one")
	pf.String("currency", "", "currency symbol shown before prices")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func mustConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		die(err)
	}
	return cfg
}

func mustApp(ctx context.Context, cfg config.Config, opts ...app.Opt) *app.App {
	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		die(err)
	}
	return a
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
	os.Exit(2)
}
