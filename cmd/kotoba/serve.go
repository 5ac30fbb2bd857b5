package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/kotoba/internal/app"
)

func newServeCommand() *cobra.Command {
	var port int
	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and Connect server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			return app.Serve(cmd.Context(), cfg, slog.Default())
		},
	}
	command.Flags().IntVar(&port, "port", 0, "port to listen on instead of server.port")
	return command
}
