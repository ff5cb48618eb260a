package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
	"github.com/alumnihub/alumnihub/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "alumnihub.test",
	})
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeProfileStore) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	return NewAuthService(users, profiles, newTestJWTService()), users, profiles
}

func seedUser(t *testing.T, users *fakeUserStore, username, email, password string, role models.RoleType) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      role,
		Status:    models.StatusActive,
	}
	id, err := users.Create(context.Background(), user)
	require.NoError(t, err)
	user.ID = id
	return user
}

func TestSignup(t *testing.T) {
	svc, _, profiles := newTestAuthService()

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username:  "janedoe",
		Email:     "Jane.Doe@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "s3cret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "janedoe", resp.User.Username)
	assert.Equal(t, "jane.doe@example.com", resp.User.Email)
	assert.Equal(t, string(models.RoleAlumni), resp.User.UserType)
	assert.Equal(t, string(models.StatusActive), resp.User.Status)

	profile, err := profiles.GetByUserID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, resp.User.ID, profile.UserID)
}

func TestSignup_DuplicateUsernameOrEmail(t *testing.T) {
	svc, users, _ := newTestAuthService()
	seedUser(t, users, "janedoe", "jane@example.com", "password", models.RoleAlumni)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username:  "janedoe",
		Email:     "other@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "password",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Signup(context.Background(), &dto.SignupRequest{
		Username:  "otheruser",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "password",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestAuthService()
	seedUser(t, users, "janedoe", "jane@example.com", "s3cret-password", models.RoleAlumni)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "janedoe", resp.User.Username)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, users, _ := newTestAuthService()
	seedUser(t, users, "janedoe", "jane@example.com", "s3cret-password", models.RoleAlumni)

	// Unknown email and wrong password fail with the same error so the
	// response does not reveal which part was wrong.
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestGetCurrentUser(t *testing.T) {
	svc, users, _ := newTestAuthService()
	user := seedUser(t, users, "janedoe", "jane@example.com", "password", models.RoleAlumni)

	resp, err := svc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "janedoe", resp.Username)

	_, err = svc.GetCurrentUser(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
