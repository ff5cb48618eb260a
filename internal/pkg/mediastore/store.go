package mediastore

import (
	"context"

	"github.com/google/uuid"
)

// Record is a stored media attachment: an opaque generated id, the MIME
// type, and the payload as base64 text.
type Record struct {
	MediaID    string
	DataType   string
	Base64Data string
}

// Store persists media payloads. Implementations keep the payload either
// inline in the media table or in an external object store; callers only
// see records.
type Store interface {
	// Put stores a new immutable media record.
	Put(ctx context.Context, rec Record) error

	// GetBatch resolves media ids to records in one round trip.
	// Ids with no stored media are silently omitted from the result.
	GetBatch(ctx context.Context, mediaIDs []string) (map[string]Record, error)
}

// NewMediaID generates a fresh opaque media identifier.
func NewMediaID() string {
	return uuid.New().String()
}
