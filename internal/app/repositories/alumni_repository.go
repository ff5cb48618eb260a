package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumnihub/alumnihub/internal/app/models"
)

// AlumniRepository handles database operations for alumni profiles and
// their friend links
type AlumniRepository struct {
	db *pgxpool.Pool
}

// NewAlumniRepository creates a new AlumniRepository
func NewAlumniRepository(db *pgxpool.Pool) *AlumniRepository {
	return &AlumniRepository{db: db}
}

// CreateProfile inserts an alumni profile for a user
func (r *AlumniRepository) CreateProfile(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO alumni_profiles (user_id, status)
		VALUES ($1, $2)
		RETURNING id`,
		userID, models.StatusActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating alumni profile: %w", err)
	}
	return id, nil
}

// GetByUserID retrieves the alumni profile owned by a user
func (r *AlumniRepository) GetByUserID(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	profile := &models.AlumniProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, status, created_at, updated_at
		FROM alumni_profiles
		WHERE user_id = $1`, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Status,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading alumni profile: %w", err)
	}
	return profile, nil
}

// AddFriend links a friend to a profile. Returns false when the link
// already existed.
func (r *AlumniRepository) AddFriend(ctx context.Context, profileID, friendUserID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO alumni_friends (profile_id, friend_user_id)
		VALUES ($1, $2)
		ON CONFLICT (profile_id, friend_user_id) DO NOTHING`,
		profileID, friendUserID)
	if err != nil {
		return false, fmt.Errorf("error adding friend: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RemoveFriend unlinks a friend from a profile. Returns false when no
// link existed.
func (r *AlumniRepository) RemoveFriend(ctx context.Context, profileID, friendUserID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM alumni_friends
		WHERE profile_id = $1 AND friend_user_id = $2`,
		profileID, friendUserID)
	if err != nil {
		return false, fmt.Errorf("error removing friend: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountFriends counts the friends linked to a profile
func (r *AlumniRepository) CountFriends(ctx context.Context, profileID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM alumni_friends WHERE profile_id = $1`,
		profileID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting friends: %w", err)
	}
	return count, nil
}
