package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aghannam/manassa/internal/cache/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded cache schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the cache database at dsn, migrates it, and returns a
// ready Store. The sqlite driver must be registered by the caller
// (modernc.org/sqlite, imported for side effects in cmd packages).
func InitDatabase(ctx context.Context, dsn string) (*Store, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return NewStore(db), db, nil
}
