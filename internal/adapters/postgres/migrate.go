package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"IdentityIntake/internal/adapters/postgres/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// RunMigrations sets up goose with the embedded migrations and runs them.
// goose wants a database/sql handle, so a short-lived pgx stdlib connection
// is opened next to the pool and closed when migrations finish.
func RunMigrations(ctx context.Context, dsn string, baseLogger *zerolog.Logger) error {
	log := baseLogger.With().Str("component", "migrations").Logger()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close migration connection")
		}
	}()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info().Msg("Database schema is up to date")
	return nil
}
