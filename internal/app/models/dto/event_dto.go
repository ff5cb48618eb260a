package dto

import "time"

// CreateEventRequest is the request body for scheduling an event (admin only)
type CreateEventRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Date        time.Time         `json:"date" binding:"required"`
	Location    string            `json:"location" binding:"required"`
	MediaFiles  []MediaFileUpload `json:"mediaFiles"`
}

// UpdateEventRequest is a partial event update; new media files are appended
type UpdateEventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        *time.Time        `json:"date"`
	Location    string            `json:"location"`
	MediaFiles  []MediaFileUpload `json:"mediaFiles"`
}

// CalendarResponse is the embedded schedule of an event
type CalendarResponse struct {
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

// EventResponse is the client-facing projection of an event
type EventResponse struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Author        *AuthorResponse  `json:"author,omitempty"`
	MediaURLs     []string         `json:"mediaUrls"`
	Calendar      CalendarResponse `json:"calendar"`
	AttendeeCount int64            `json:"attendeeCount"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// EventDetailResponse is an event with its attendees inlined
type EventDetailResponse struct {
	EventResponse
	Attendees []AuthorResponse `json:"attendees"`
}

// EventListResponse is the paginated event listing
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	PageMeta
}

// RegistrationToggleResponse reports attendance state after a toggle
type RegistrationToggleResponse struct {
	Registered bool   `json:"registered"`
	Message    string `json:"message"`
}
