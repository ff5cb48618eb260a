package dto

// AuthorResponse is the minimal author projection inlined into content items
type AuthorResponse struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"firstname"`
	LastName     string  `json:"lastname"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// UpdateProfileRequest is a partial profile update; zero-valued fields are left unchanged
type UpdateProfileRequest struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Email        string `json:"email" binding:"omitempty,email"`
	ProfileImage string `json:"profileImage"` // Inline data URI
}

// UpdateStatusRequest sets a user's account status (admin only)
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive pending"`
}

// UpdateStatusResponse confirms a status change
type UpdateStatusResponse struct {
	ID      int64  `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UserDetailResponse is a user plus engagement counts
type UserDetailResponse struct {
	UserResponse
	StoryCount  int64 `json:"storyCount"`
	EventCount  int64 `json:"eventCount"`
	FriendCount int64 `json:"friendCount"`
}

// AlumniDirectoryResponse is the paginated alumni directory
type AlumniDirectoryResponse struct {
	Alumni []UserResponse `json:"alumni"`
	PageMeta
}

// FriendToggleResponse reports the friend edge state after a toggle
type FriendToggleResponse struct {
	IsFriend bool   `json:"isFriend"`
	Message  string `json:"message"`
}
