package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"` // Stored lowercase
	Password     string     `json:"-" db:"password"`  // Bcrypt hash, excluded from JSON
	FirstName    string     `json:"firstname" db:"first_name"`
	LastName     string     `json:"lastname" db:"last_name"`
	Role         RoleType   `json:"usertype" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
	ProfileImage *string    `json:"profileImage,omitempty" db:"profile_image"` // Data URI (nullable)
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// AlumniProfile is the 1:1 extension of an alumni-role user.
// Friend edges are stored unidirectionally: only the owning profile's
// friend set records the edge.
type AlumniProfile struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"userId" db:"user_id"`
	Status    UserStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	User    *User   `json:"user,omitempty"`
	Friends []int64 `json:"friends,omitempty"`
}
