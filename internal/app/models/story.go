package models

import "time"

// Story represents a published success story
type Story struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	AuthorID    int64      `json:"authorId" db:"author_id"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author   *User    `json:"author,omitempty"`
	MediaIDs []string `json:"mediaIds,omitempty"`
}

// IsDeleted reports whether the story has been soft-deleted.
func (s *Story) IsDeleted() bool {
	return s.DeletedAt != nil
}
