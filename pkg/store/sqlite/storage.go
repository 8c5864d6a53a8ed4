package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const ScenarioTableSchema = `
	CREATE TABLE IF NOT EXISTS scenarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		variables TEXT NOT NULL,
		owner TEXT NULL,
		created_at INTEGER NOT NULL
	);
`

const ScenarioOwnerIndex = `
	CREATE INDEX IF NOT EXISTS scenarios_owner_idx ON scenarios (owner);
`

var bootQueries = []string{
	ScenarioTableSchema,
	ScenarioOwnerIndex,
}

type Settings struct {
	DbPath string
}

// NewDB opens the SQLite database at settings.DbPath and applies the schema.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	path := strings.TrimSpace(settings.DbPath)
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}
