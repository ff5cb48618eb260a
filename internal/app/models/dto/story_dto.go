package dto

import "time"

// MediaFileUpload is an inline base64 file attachment
type MediaFileUpload struct {
	Type string `json:"type" binding:"required"`
	Data string `json:"data" binding:"required"`
}

// CreateStoryRequest is the request body for publishing a story
type CreateStoryRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	MediaFiles  []MediaFileUpload `json:"mediaFiles"`
}

// UpdateStoryRequest is a partial story update; new media files are appended
type UpdateStoryRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	MediaFiles  []MediaFileUpload `json:"mediaFiles"`
}

// StoryResponse is the client-facing projection of a story
type StoryResponse struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Author       *AuthorResponse `json:"author,omitempty"`
	MediaURLs    []string        `json:"mediaUrls"`
	Likes        int64           `json:"likes"`
	CommentCount int64           `json:"comments"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// StoryDetailResponse is a story with its comment thread inlined
type StoryDetailResponse struct {
	StoryResponse
	Comments []CommentResponse `json:"commentList"`
}

// StoryListResponse is the paginated story listing
type StoryListResponse struct {
	Stories []StoryResponse `json:"stories"`
	PageMeta
}

// LikeToggleResponse reports like state after a toggle
type LikeToggleResponse struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}

// AddCommentRequest is the request body for commenting on a story
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is the client-facing projection of a comment
type CommentResponse struct {
	ID        int64           `json:"id"`
	Content   string          `json:"content"`
	Author    *AuthorResponse `json:"author,omitempty"`
	StoryID   int64           `json:"storyId"`
	CreatedAt time.Time       `json:"createdAt"`
}
