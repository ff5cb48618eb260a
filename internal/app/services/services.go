package services

import (
	"github.com/alumnihub/alumnihub/internal/app/repositories"
	"github.com/alumnihub/alumnihub/internal/pkg/auth"
	"github.com/alumnihub/alumnihub/internal/pkg/mediastore"
)

// Services holds all the service instances
type Services struct {
	AuthService  *AuthService
	UserService  *UserService
	StoryService *StoryService
	EventService *EventService
}

// NewServices initializes all services on top of the repositories and
// the configured media store
func NewServices(repos *repositories.Repositories, media mediastore.Store, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.AlumniRepository,
			jwtService,
		),
		UserService: NewUserService(
			repos.UserRepository,
			repos.AlumniRepository,
			repos.StoryRepository,
			repos.EventRepository,
			media,
		),
		StoryService: NewStoryService(
			repos.StoryRepository,
			repos.CommentRepository,
			repos.UserRepository,
			media,
		),
		EventService: NewEventService(
			repos.EventRepository,
			repos.UserRepository,
			media,
		),
	}
}
