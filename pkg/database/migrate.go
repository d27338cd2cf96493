package database

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"healthapp/pkg/database/migrations"
)

// Migrate applies all pending embedded migrations on startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
