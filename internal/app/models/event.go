package models

import "time"

// Event represents a scheduled gathering
type Event struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	AuthorID    int64      `json:"authorId" db:"author_id"`
	Date        time.Time  `json:"date" db:"event_date"`
	Location    string     `json:"location" db:"location"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author   *User    `json:"author,omitempty"`
	MediaIDs []string `json:"mediaIds,omitempty"`
}

// IsDeleted reports whether the event has been soft-deleted.
func (e *Event) IsDeleted() bool {
	return e.DeletedAt != nil
}

// IsPast reports whether the event date has passed relative to now.
func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Before(now)
}
