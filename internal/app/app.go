// Package app builds the trainer service and the HTTP server from the configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/at-ishikawa/kotoba/internal/bootstrap"
	"github.com/at-ishikawa/kotoba/internal/config"
	"github.com/at-ishikawa/kotoba/internal/database"
	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/scoreboard"
	"github.com/at-ishikawa/kotoba/internal/server"
	"github.com/at-ishikawa/kotoba/internal/session"
	"github.com/at-ishikawa/kotoba/internal/trainer"
	"github.com/at-ishikawa/kotoba/internal/transliterate"
)

// NewLoader uses the configured sources, or every JSON file of the
// dictionary directory when none are configured.
func NewLoader(cfg config.DictionariesConfig, t transliterate.Transliterator, logger *slog.Logger) (*dictionary.Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Sources) > 0 {
		sources := make([]dictionary.Source, 0, len(cfg.Sources))
		for _, s := range cfg.Sources {
			sources = append(sources, dictionary.Source{Name: s.Name, Path: s.Path})
		}
		return dictionary.NewLoader(sources, cfg.Default, t, logger), nil
	}

	sources, defaultID, err := dictionary.DiscoverSources(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("dictionary.DiscoverSources() > %w", err)
	}
	if cfg.Default != "" {
		defaultID = cfg.Default
	}
	logger.Debug("discovered dictionaries",
		slog.String("directory", cfg.Directory),
		slog.Int("count", len(sources)),
		slog.String("default", defaultID),
	)
	return dictionary.NewLoader(sources, defaultID, t, logger), nil
}

// NewAnswerRepository returns the MySQL answer log when the database is
// enabled and an in-memory one otherwise. The returned function releases
// the connection.
func NewAnswerRepository(cfg config.DatabaseConfig) (scoreboard.Repository, func() error, error) {
	if !cfg.Enabled {
		return scoreboard.NewMemoryRepository(), func() error { return nil }, nil
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	return scoreboard.NewDBRepository(db), db.Close, nil
}

// NewService wires the trainer service. The returned function closes what
// the service holds open.
func NewService(cfg *config.Config, logger *slog.Logger) (*trainer.Service, func() error, error) {
	kagome, err := transliterate.NewKagome()
	if err != nil {
		return nil, nil, fmt.Errorf("transliterate.NewKagome() > %w", err)
	}
	loader, err := NewLoader(cfg.Dictionaries, kagome, logger)
	if err != nil {
		return nil, nil, err
	}
	answers, closeAnswers, err := NewAnswerRepository(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	service := trainer.NewService(
		loader,
		quiz.NewEvaluator(kagome),
		session.NewTracker(cfg.Sessions.TTL()),
		answers,
		trainer.WithLogger(logger),
	)
	return service, closeAnswers, nil
}

// Serve runs the HTTP server until the context ends or a signal arrives.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app := bootstrap.New(bootstrap.WithLogger(logger))

	service, closeService, err := NewService(cfg, logger)
	if err != nil {
		return err
	}
	app.AddShutdownHook(func(context.Context) error {
		return closeService()
	})

	srv, err := server.New(service, logger)
	if err != nil {
		return fmt.Errorf("server.New() > %w", err)
	}
	httpServer := server.NewHTTPServer(cfg.Server.Port, srv.Handler(cfg.Server.CORS.AllowedOrigins))
	app.AddShutdownHook(httpServer.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}
