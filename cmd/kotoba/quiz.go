package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
	"github.com/at-ishikawa/kotoba/internal/app"
	"github.com/at-ishikawa/kotoba/internal/cli"
	"github.com/at-ishikawa/kotoba/internal/client"
)

func newQuizCommand() *cobra.Command {
	var (
		dictionaryID string
		serverURL    string
		useConnect   bool
	)
	mode := cli.ModeNormal

	command := &cobra.Command{
		Use:   "quiz",
		Short: "Practice words in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useConnect && serverURL == "" {
				return errors.New("--connect requires --server")
			}

			var backend cli.Backend
			switch {
			case useConnect:
				backend = cli.NewConnectBackend(client.New(serverURL), apiv1.NewTrainerServiceClient(http.DefaultClient, serverURL))
			case serverURL != "":
				backend = cli.NewRemoteBackend(client.New(serverURL))
			default:
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				service, closeService, err := app.NewService(cfg, slog.Default())
				if err != nil {
					return fmt.Errorf("app.NewService() > %w", err)
				}
				defer func() {
					_ = closeService()
				}()
				backend = cli.NewLocalBackend(service)
			}

			return cli.NewQuizCLI(backend, dictionaryID, mode, cmd.InOrStdin(), cmd.OutOrStdout()).
				Run(cmd.Context())
		},
	}
	flags := command.Flags()
	flags.StringVar(&dictionaryID, "dict", "", "dictionary name, path, or file name; the default dictionary when empty")
	flags.Var(&mode, "mode", fmt.Sprintf("%s shows the reading as a hint, %s hides it", cli.ModeNormal, cli.ModeStudy))
	flags.StringVar(&serverURL, "server", "", "URL of a kotoba server to practice against, instead of local dictionaries")
	flags.BoolVar(&useConnect, "connect", false, "ask the server for questions and judgments over Connect instead of REST")
	return command
}
