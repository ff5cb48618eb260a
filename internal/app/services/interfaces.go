package services

import (
	"context"
	"time"

	"github.com/alumnihub/alumnihub/internal/app/models"
)

// The store interfaces below are what the services require of the
// persistence layer. The concrete pgx repositories satisfy them; tests
// substitute in-memory fakes.

// UserStore is the persistence surface for user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)
	EmailExistsForOther(ctx context.Context, email string, excludeUserID int64) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateStatus(ctx context.Context, userID int64, status models.UserStatus) error
	ListAll(ctx context.Context) ([]*models.User, error)
	ListAlumni(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, error)
	CountAlumni(ctx context.Context, search string) (int64, error)
}

// ProfileStore is the persistence surface for alumni profiles and friend links
type ProfileStore interface {
	CreateProfile(ctx context.Context, userID int64) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.AlumniProfile, error)
	AddFriend(ctx context.Context, profileID, friendUserID int64) (bool, error)
	RemoveFriend(ctx context.Context, profileID, friendUserID int64) (bool, error)
	CountFriends(ctx context.Context, profileID int64) (int64, error)
}

// StoryStore is the persistence surface for stories, likes and story media
type StoryStore interface {
	Create(ctx context.Context, story *models.Story, mediaIDs []string) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Story, error)
	ListVisible(ctx context.Context, offset uint64, limit int) ([]*models.Story, error)
	CountVisible(ctx context.Context) (int64, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Story, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.Story, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	Update(ctx context.Context, story *models.Story) error
	SoftDelete(ctx context.Context, id int64) error
	AddLike(ctx context.Context, storyID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, storyID, userID int64) (bool, error)
	CountLikes(ctx context.Context, storyID int64) (int64, error)
	CountLikesBatch(ctx context.Context, storyIDs []int64) (map[int64]int64, error)
	AddMedia(ctx context.Context, storyID int64, mediaIDs []string) error
	GetMediaIDsBatch(ctx context.Context, storyIDs []int64) (map[int64][]string, error)
}

// CommentStore is the persistence surface for story comments
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	ListByStory(ctx context.Context, storyID int64) ([]*models.Comment, error)
	CountByStories(ctx context.Context, storyIDs []int64) (map[int64]int64, error)
}

// EventStore is the persistence surface for events, registrations and event media
type EventStore interface {
	Create(ctx context.Context, event *models.Event, mediaIDs []string) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListVisible(ctx context.Context, offset uint64, limit int) ([]*models.Event, error)
	CountVisible(ctx context.Context) (int64, error)
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]*models.Event, error)
	ListAttending(ctx context.Context, userID int64) ([]*models.Event, error)
	CountAttending(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, event *models.Event) error
	SoftDelete(ctx context.Context, id int64) error
	AddAttendee(ctx context.Context, eventID, userID int64) (bool, error)
	RemoveAttendee(ctx context.Context, eventID, userID int64) (bool, error)
	CountAttendees(ctx context.Context, eventID int64) (int64, error)
	CountAttendeesBatch(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	ListAttendees(ctx context.Context, eventID int64) ([]*models.User, error)
	AddMedia(ctx context.Context, eventID int64, mediaIDs []string) error
	GetMediaIDsBatch(ctx context.Context, eventIDs []int64) (map[int64][]string, error)
}
