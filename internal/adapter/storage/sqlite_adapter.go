package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `
		CREATE TABLE IF NOT EXISTS software_records (
			id TEXT NOT NULL,
			sort_key TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id, sort_key)
		)`,
	upsert: `
		INSERT INTO software_records (id, sort_key, name, version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id, sort_key) DO UPDATE SET
			name = excluded.name, version = excluded.version, updated_at = CURRENT_TIMESTAMP`,
	insertIgnore: `
		INSERT OR IGNORE INTO software_records (id, sort_key, name, version)
		VALUES (?, ?, ?, ?)`,
}

func NewSQLiteStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, dialect: sqliteDialect}
}

// OpenSQLite opens the database at path. Use ":memory:" for tests.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite only allows one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	return db, nil
}
