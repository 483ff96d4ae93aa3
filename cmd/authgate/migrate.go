package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/pg"
	"github.com/dmitrymomot/authgate/svc/account"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg pg.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := pg.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pg.Migrate(ctx, pool, account.Migrations, cfg, a.log); err != nil {
				return err
			}
			a.log.Info("migrations applied")
			return nil
		},
	}
}
