package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

var mysqlDialect = dialect{
	name: "mysql",
	schema: `
		CREATE TABLE IF NOT EXISTS software_records (
			id VARCHAR(191) NOT NULL,
			sort_key VARCHAR(191) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			version VARCHAR(191) NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id, sort_key)
		) DEFAULT CHARSET = utf8mb4 COLLATE = utf8mb4_bin`,
	upsert: `
		INSERT INTO software_records (id, sort_key, name, version)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), version = VALUES(version), updated_at = CURRENT_TIMESTAMP`,
	insertIgnore: `
		INSERT IGNORE INTO software_records (id, sort_key, name, version)
		VALUES (?, ?, ?, ?)`,
}

func NewMySQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, dialect: mysqlDialect}
}

// OpenMySQL connects with client-found-rows enabled so a conditional update that
// matches but does not change a row still counts as affected.
func OpenMySQL(ctx context.Context, dsn string) (*sqlx.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	cfg.ParseTime = true

	db, err := sqlx.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
