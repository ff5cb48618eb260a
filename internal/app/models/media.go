package models

import "time"

// Media is an immutable attached image, addressed by a generated opaque id.
// The payload is base64 text; when an external blob backend holds the bytes
// Base64Data is empty and the store resolves it on read.
type Media struct {
	MediaID    string    `json:"mediaId" db:"media_id"`
	DataType   string    `json:"dataType" db:"data_type"` // MIME type
	Base64Data string    `json:"-" db:"base64_data"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
