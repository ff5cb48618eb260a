package dto

import "time"

// APIResponse is the standard response envelope for all endpoints
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse creates a success envelope around data
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse creates a success envelope carrying only a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// PageMeta carries pagination metadata for list responses
type PageMeta struct {
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}
