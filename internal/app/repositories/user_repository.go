package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumnihub/alumnihub/internal/app/models"
)

const userColumns = "id, username, email, password, first_name, last_name, role, status, profile_image, created_at, updated_at"

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Role, &user.Status,
		&user.ProfileImage, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password, first_name, last_name, role, status, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		user.Username, strings.ToLower(user.Email), user.Password,
		user.FirstName, user.LastName, user.Role, user.Status, user.ProfileImage).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// UsernameOrEmailExists checks whether the username or the email is already taken
func (r *UserRepository) UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = LOWER($2))`,
		username, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username/email: %w", err)
	}
	return exists, nil
}

// EmailExistsForOther checks whether another user already owns this email
func (r *UserRepository) EmailExistsForOther(ctx context.Context, email string, excludeUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = LOWER($1) AND id <> $2)`,
		email, excludeUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, profile_image = $4, updated_at = NOW()
		WHERE id = $5`,
		user.FirstName, user.LastName, strings.ToLower(user.Email), user.ProfileImage, user.ID)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// UpdateStatus sets the account status
func (r *UserRepository) UpdateStatus(ctx context.Context, userID int64, status models.UserStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, userID)
	if err != nil {
		return fmt.Errorf("error updating status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListAll retrieves every user, newest first
func (r *UserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// ListAlumni retrieves a page of active alumni users, optionally filtered by a
// case-insensitive search over name, username and email.
func (r *UserRepository) ListAlumni(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, error) {
	query := squirrel.Select(
		"id", "username", "email", "password", "first_name", "last_name",
		"role", "status", "profile_image", "created_at", "updated_at",
	).
		From("users").
		Where(squirrel.Eq{"role": models.RoleAlumni, "status": models.StatusActive}).
		OrderBy("first_name ASC", "last_name ASC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing alumni: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountAlumni counts active alumni users matching the search filter
func (r *UserRepository) CountAlumni(ctx context.Context, search string) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"role": models.RoleAlumni, "status": models.StatusActive}).
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting alumni: %w", err)
	}
	return count, nil
}

// GetAlumniByID retrieves a user only if it is an alumni-role account
func (r *UserRepository) GetAlumniByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND role = $2`,
		id, models.RoleAlumni)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}
