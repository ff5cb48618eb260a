package mediastore

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps media payloads as base64 rows in the media table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a media store backed by the media table.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put stores a new media row
func (s *PostgresStore) Put(ctx context.Context, rec Record) error {
	query := squirrel.Insert("media").
		Columns("media_id", "data_type", "base64_data").
		Values(rec.MediaID, rec.DataType, rec.Base64Data).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error storing media: %w", err)
	}

	return nil
}

// GetBatch resolves media ids to records in one query
func (s *PostgresStore) GetBatch(ctx context.Context, mediaIDs []string) (map[string]Record, error) {
	result := make(map[string]Record, len(mediaIDs))
	if len(mediaIDs) == 0 {
		return result, nil
	}

	query := squirrel.Select("media_id", "data_type", "base64_data").
		From("media").
		Where(squirrel.Eq{"media_id": mediaIDs}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.MediaID, &rec.DataType, &rec.Base64Data); err != nil {
			return nil, fmt.Errorf("error scanning media row: %w", err)
		}
		result[rec.MediaID] = rec
	}

	return result, rows.Err()
}
