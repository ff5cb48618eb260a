package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAlumni RoleType = "alumni"
	RoleAdmin  RoleType = "admin"
)

// UserStatus defines the account status
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
	StatusPending  UserStatus = "pending"
)

// ValidStatus reports whether s is a known account status.
func ValidStatus(s UserStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}
