package mediastore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds connection settings for the MinIO backend
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps media payloads as objects in a MinIO bucket. The media
// table still carries the id and MIME type so batch resolution stays a
// single row query; base64_data is left empty.
type MinioStore struct {
	db     *pgxpool.Pool
	client *minio.Client
	bucket string
}

// NewMinioStore creates a MinIO-backed media store and ensures the bucket exists.
func NewMinioStore(ctx context.Context, db *pgxpool.Pool, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioStore{db: db, client: client, bucket: cfg.Bucket}, nil
}

// Put stores a media row plus its payload as a bucket object
func (s *MinioStore) Put(ctx context.Context, rec Record) error {
	payload := []byte(rec.Base64Data)
	_, err := s.client.PutObject(ctx, s.bucket, rec.MediaID,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: rec.DataType})
	if err != nil {
		return fmt.Errorf("error uploading media object: %w", err)
	}

	query := squirrel.Insert("media").
		Columns("media_id", "data_type", "base64_data").
		Values(rec.MediaID, rec.DataType, "").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error storing media record: %w", err)
	}

	return nil
}

// GetBatch resolves media ids to rows, then fetches payloads from the bucket
func (s *MinioStore) GetBatch(ctx context.Context, mediaIDs []string) (map[string]Record, error) {
	result := make(map[string]Record, len(mediaIDs))
	if len(mediaIDs) == 0 {
		return result, nil
	}

	query := squirrel.Select("media_id", "data_type").
		From("media").
		Where(squirrel.Eq{"media_id": mediaIDs}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading media records: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.MediaID, &rec.DataType); err != nil {
			return nil, fmt.Errorf("error scanning media row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading media rows: %w", err)
	}

	for _, rec := range recs {
		payload, err := s.readObject(ctx, rec.MediaID)
		if err != nil {
			// A row without its object behaves like an absent id
			continue
		}
		rec.Base64Data = string(payload)
		result[rec.MediaID] = rec
	}

	return result, nil
}

func (s *MinioStore) readObject(ctx context.Context, mediaID string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, mediaID, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
