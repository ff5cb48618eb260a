package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
	"github.com/alumnihub/alumnihub/internal/pkg/auth"
	"github.com/alumnihub/alumnihub/internal/pkg/dberrors"
)

// AuthService handles account registration, login and identity lookups
type AuthService struct {
	users      UserStore
	profiles   ProfileStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, profiles ProfileStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		users:      users,
		profiles:   profiles,
		jwtService: jwtService,
	}
}

// Signup registers a new alumni account, creates its profile and signs
// the caller in.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	exists, err := s.users.UsernameOrEmailExists(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("username or email is already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleAlumni,
		Status:    models.StatusActive,
	}

	userID, err := s.users.Create(ctx, user)
	if err != nil {
		// Concurrent signups can slip past the existence check and hit
		// the unique constraints on insert.
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("username or email is already registered")
		}
		return nil, err
	}
	user.ID = userID

	if _, err := s.profiles.CreateProfile(ctx, userID); err != nil {
		return nil, err
	}

	log.Info().Int64("userId", userID).Str("username", user.Username).Msg("New account registered")

	return s.issueToken(ctx, userID)
}

// Login authenticates by email and password. The same error is returned
// whether the email is unknown or the password wrong.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	}, nil
}

// GetCurrentUser resolves the authenticated user's own account
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	resp := newUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID int64) (*dto.AuthResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	token, _, err := s.jwtService.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	}, nil
}
