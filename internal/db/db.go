package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Init opens and pings a pool for one of the supported drivers: "sqlite"
// (modernc, the default) or "pgx" (PostgreSQL).
func Init(driver, connection string) (*sqlx.DB, error) {
	if _, ok := migrationDirs[driver]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	// SQLite: create data directory if needed
	if driver == "sqlite" {
		path, _, _ := strings.Cut(connection, "?")
		dir := filepath.Dir(strings.TrimPrefix(path, "file:"))
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Connection pool configuration (good defaults for all drivers)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected", "driver", driver)

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
