package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

// dialect holds the statements that differ between SQL engines.
type dialect struct {
	name         string
	schema       string
	upsert       string
	insertIgnore string
}

type recordRow struct {
	ID      string `db:"id"`
	SortKey string `db:"sort_key"`
	Name    string `db:"name"`
	Version string `db:"version"`
}

func (r recordRow) record() domain.SoftwareRecord {
	return domain.SoftwareRecord{ID: r.ID, SortKey: r.SortKey, Name: r.Name, Version: r.Version}
}

// SQLStore keeps software records in a single table keyed by (id, sort_key).
type SQLStore struct {
	db      *sqlx.DB
	dialect dialect
}

func (s *SQLStore) CreateSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("create %s schema: %w", s.dialect.name, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key domain.RecordKey) (*domain.SoftwareRecord, error) {
	var row recordRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, sort_key, name, version
		FROM software_records WHERE id = ? AND sort_key = ?`, key.ID, key.SortKey,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query record %s/%s: %w", key.ID, key.SortKey, err)
	}

	rec := row.record()
	return &rec, nil
}

func (s *SQLStore) Put(ctx context.Context, record domain.SoftwareRecord) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, record.ID, record.SortKey, record.Name, record.Version)
	if err != nil {
		return fmt.Errorf("upsert record %s/%s: %w", record.ID, record.SortKey, err)
	}
	return nil
}

func (s *SQLStore) PutIfVersion(ctx context.Context, record domain.SoftwareRecord, previous string) error {
	var (
		result sql.Result
		err    error
	)
	if previous == "" {
		result, err = s.db.ExecContext(ctx, s.dialect.insertIgnore, record.ID, record.SortKey, record.Name, record.Version)
	} else {
		result, err = s.db.ExecContext(ctx, `
			UPDATE software_records
			SET name = ?, version = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND sort_key = ? AND version = ?`,
			record.Name, record.Version, record.ID, record.SortKey, previous,
		)
	}
	if err != nil {
		return fmt.Errorf("conditional write %s/%s: %w", record.ID, record.SortKey, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConditionFailed
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key domain.RecordKey) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM software_records WHERE id = ? AND sort_key = ?`, key.ID, key.SortKey)
	if err != nil {
		return fmt.Errorf("delete record %s/%s: %w", key.ID, key.SortKey, err)
	}
	return nil
}

func (s *SQLStore) ScanAll(ctx context.Context) ([]domain.SoftwareRecord, error) {
	var rows []recordRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, sort_key, name, version
		FROM software_records ORDER BY id, sort_key`)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return toRecords(rows), nil
}

func (s *SQLStore) Query(ctx context.Context, id string) ([]domain.SoftwareRecord, error) {
	var rows []recordRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, sort_key, name, version
		FROM software_records WHERE id = ? ORDER BY sort_key`, id)
	if err != nil {
		return nil, fmt.Errorf("query records of %s: %w", id, err)
	}
	return toRecords(rows), nil
}

func toRecords(rows []recordRow) []domain.SoftwareRecord {
	records := make([]domain.SoftwareRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records
}
