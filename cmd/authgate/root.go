package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

type app struct {
	cfg AppConfig
	log *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "authgate",
		Short: "Token-based authentication service",
		Long: `authgate issues and revokes JWTs, sends email verification codes
and registers accounts. Configuration is read from the environment
and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	cmd.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newMailerCommand(a),
	)
	return cmd
}

func (a *app) init() error {
	if err := config.Load(&a.cfg); err != nil {
		return err
	}
	if err := a.cfg.validate(); err != nil {
		return err
	}
	a.log = logger.New(
		logger.WithEnvironment(a.cfg.Env, a.cfg.Name),
		logger.WithLevelName(a.cfg.LogLevel),
		logger.WithContextExtractors(httpserver.RequestIDExtractor()),
	)
	logger.SetAsDefault(a.log)
	return nil
}
