package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/kotoba/internal/app"
	"github.com/at-ishikawa/kotoba/internal/config"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "kotoba-server",
		Short:         "Kotoba vocabulary trainer HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			slog.SetDefault(logger)
			return app.Serve(cmd.Context(), cfg, logger)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", os.Getenv("KOTOBA_CONFIG"), "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
