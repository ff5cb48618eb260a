package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
	"github.com/alumnihub/alumnihub/internal/pkg/auth"
	"github.com/alumnihub/alumnihub/internal/pkg/dberrors"
	"github.com/alumnihub/alumnihub/internal/pkg/helpers"
	"github.com/alumnihub/alumnihub/internal/pkg/mediastore"
)

// UserService handles account management, the alumni directory and
// friend links
type UserService struct {
	users    UserStore
	profiles ProfileStore
	stories  StoryStore
	events   EventStore
	media    mediastore.Store
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, profiles ProfileStore, stories StoryStore, events EventStore, media mediastore.Store) *UserService {
	return &UserService{
		users:    users,
		profiles: profiles,
		stories:  stories,
		events:   events,
		media:    media,
	}
}

// ListUsers retrieves every account, newest first (admin only)
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, newUserResponse(user))
	}
	return responses, nil
}

// GetAlumniDirectory retrieves a page of active alumni, optionally
// filtered by a name/username/email search
func (s *UserService) GetAlumniDirectory(ctx context.Context, search string, page, limit int) (*dto.AlumniDirectoryResponse, error) {
	offset, size := helpers.CalculateOffsetLimit(page, limit)

	users, err := s.users.ListAlumni(ctx, search, offset, size)
	if err != nil {
		return nil, err
	}
	total, err := s.users.CountAlumni(ctx, search)
	if err != nil {
		return nil, err
	}

	alumni := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		alumni = append(alumni, newUserResponse(user))
	}

	return &dto.AlumniDirectoryResponse{
		Alumni:   alumni,
		PageMeta: helpers.NewPageMeta(total, page, size),
	}, nil
}

// GetUserDetail retrieves one account plus its engagement counts
func (s *UserService) GetUserDetail(ctx context.Context, userID int64) (*dto.UserDetailResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	storyCount, err := s.stories.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	eventCount, err := s.events.CountAttending(ctx, userID)
	if err != nil {
		return nil, err
	}

	var friendCount int64
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		friendCount, err = s.profiles.CountFriends(ctx, profile.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.UserDetailResponse{
		UserResponse: newUserResponse(user),
		StoryCount:   storyCount,
		EventCount:   eventCount,
		FriendCount:  friendCount,
	}, nil
}

// UpdateProfile applies a partial update to the caller's own account
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" && req.Email != user.Email {
		taken, err := s.users.EmailExistsForOther(ctx, req.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("email is already registered")
		}
		user.Email = req.Email
	}
	if req.ProfileImage != "" {
		dataType, payload, err := mediastore.ParseDataURI(req.ProfileImage)
		if err != nil {
			return nil, apperrors.NewBadRequestError("profile image must be a base64 data URI")
		}
		rec := mediastore.Record{
			MediaID:    mediastore.NewMediaID(),
			DataType:   dataType,
			Base64Data: payload,
		}
		if err := s.media.Put(ctx, rec); err != nil {
			return nil, err
		}
		image := req.ProfileImage
		user.ProfileImage = &image
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("email is already registered")
		}
		return nil, err
	}

	resp := newUserResponse(user)
	return &resp, nil
}

// ChangePassword replaces the caller's password after verifying the
// current one
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// UpdateStatus sets an account's status (admin only)
func (s *UserService) UpdateStatus(ctx context.Context, userID int64, req *dto.UpdateStatusRequest) (*dto.UpdateStatusResponse, error) {
	status := models.UserStatus(req.Status)
	if !models.ValidStatus(status) {
		return nil, apperrors.NewBadRequestError("unknown account status")
	}

	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	log.Info().Int64("userId", userID).Str("status", req.Status).Msg("Account status updated")

	return &dto.UpdateStatusResponse{
		ID:      userID,
		Status:  req.Status,
		Message: fmt.Sprintf("User status updated to %s", req.Status),
	}, nil
}

// ToggleFriend flips the friend link from the caller's profile to the
// target user and reports the new state. Links are unidirectional.
func (s *UserService) ToggleFriend(ctx context.Context, actorID, targetID int64) (*dto.FriendToggleResponse, error) {
	if actorID == targetID {
		return nil, apperrors.NewBadRequestError("cannot add yourself as a friend")
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	// Only alumni accounts can be befriended; admins are invisible here.
	if target == nil || target.Role != models.RoleAlumni {
		return nil, apperrors.ErrUserNotFound
	}

	profile, err := s.profiles.GetByUserID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}

	added, err := s.profiles.AddFriend(ctx, profile.ID, targetID)
	if err != nil {
		return nil, err
	}
	if added {
		return &dto.FriendToggleResponse{
			IsFriend: true,
			Message:  "Friend added successfully",
		}, nil
	}

	if _, err := s.profiles.RemoveFriend(ctx, profile.ID, targetID); err != nil {
		return nil, err
	}
	return &dto.FriendToggleResponse{
		IsFriend: false,
		Message:  "Friend removed successfully",
	}, nil
}
