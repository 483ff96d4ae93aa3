// Package pg wraps pgx/v5 connection pooling and goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	defer pool.Close()
//	err = pg.Migrate(ctx, pool, account.Migrations, cfg, log)
//
// IsDuplicateKeyError and ViolatedConstraint classify *pgconn.PgError values
// so repositories can translate unique violations into domain errors.
package pg
