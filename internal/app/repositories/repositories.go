package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	AlumniRepository  *AlumniRepository
	StoryRepository   *StoryRepository
	CommentRepository *CommentRepository
	EventRepository   *EventRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		AlumniRepository:  NewAlumniRepository(db),
		StoryRepository:   NewStoryRepository(db),
		CommentRepository: NewCommentRepository(db),
		EventRepository:   NewEventRepository(db),
	}
}
