package models

import "time"

// Comment is a user comment attached to a story
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	StoryID   int64     `json:"storyId" db:"story_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}
