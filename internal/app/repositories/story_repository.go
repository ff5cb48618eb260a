package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/db"
)

// storySelectColumns joins each story row with its author for one-query listings
var storySelectColumns = []string{
	"s.id", "s.title", "s.description", "s.author_id",
	"s.created_at", "s.updated_at", "s.deleted_at",
	"u.username", "u.first_name", "u.last_name", "u.profile_image",
}

// StoryRepository handles database operations for success stories,
// their likes and their media links
type StoryRepository struct {
	db *pgxpool.Pool
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(db *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{db: db}
}

func scanStory(row pgx.Row) (*models.Story, error) {
	story := &models.Story{Author: &models.User{}}
	err := row.Scan(
		&story.ID, &story.Title, &story.Description, &story.AuthorID,
		&story.CreatedAt, &story.UpdatedAt, &story.DeletedAt,
		&story.Author.Username, &story.Author.FirstName,
		&story.Author.LastName, &story.Author.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	story.Author.ID = story.AuthorID
	return story, nil
}

func (r *StoryRepository) collectStories(ctx context.Context, sql string, args ...interface{}) ([]*models.Story, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying stories: %w", err)
	}
	defer rows.Close()

	var stories []*models.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning story row: %w", err)
		}
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

func (r *StoryRepository) baseSelect() squirrel.SelectBuilder {
	return squirrel.Select(storySelectColumns...).
		From("stories s").
		Join("users u ON u.id = s.author_id").
		Where("s.deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a story and its media links in one transaction
func (r *StoryRepository) Create(ctx context.Context, story *models.Story, mediaIDs []string) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO stories (title, description, author_id)
			VALUES ($1, $2, $3)
			RETURNING id`,
			story.Title, story.Description, story.AuthorID).Scan(&id)
		if err != nil {
			return fmt.Errorf("error creating story: %w", err)
		}

		for _, mediaID := range mediaIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO story_media (story_id, media_id) VALUES ($1, $2)`,
				id, mediaID); err != nil {
				return fmt.Errorf("error linking story media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a story that has not been soft-deleted
func (r *StoryRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	story, err := scanStory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading story: %w", err)
	}
	return story, nil
}

// ListVisible retrieves a page of stories, newest first
func (r *StoryRepository) ListVisible(ctx context.Context, offset uint64, limit int) ([]*models.Story, error) {
	sql, args, err := r.baseSelect().
		OrderBy("s.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.collectStories(ctx, sql, args...)
}

// CountVisible counts stories that have not been soft-deleted
func (r *StoryRepository) CountVisible(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM stories WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting stories: %w", err)
	}
	return count, nil
}

// ListFeatured retrieves the top stories ranked by like count, ties
// broken by recency
func (r *StoryRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Story, error) {
	sql, args, err := squirrel.Select(storySelectColumns...).
		From("stories s").
		Join("users u ON u.id = s.author_id").
		LeftJoin("story_likes sl ON sl.story_id = s.id").
		Where("s.deleted_at IS NULL").
		GroupBy(storySelectColumns...).
		OrderBy("COUNT(sl.user_id) DESC", "s.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.collectStories(ctx, sql, args...)
}

// ListByAuthor retrieves an author's stories, newest first
func (r *StoryRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Story, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"s.author_id": authorID}).
		OrderBy("s.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.collectStories(ctx, sql, args...)
}

// CountByAuthor counts an author's stories that have not been soft-deleted
func (r *StoryRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM stories
		WHERE author_id = $1 AND deleted_at IS NULL`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting stories: %w", err)
	}
	return count, nil
}

// Update rewrites a story's title and description
func (r *StoryRepository) Update(ctx context.Context, story *models.Story) error {
	_, err := r.db.Exec(ctx, `
		UPDATE stories
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL`,
		story.Title, story.Description, story.ID)
	if err != nil {
		return fmt.Errorf("error updating story: %w", err)
	}
	return nil
}

// SoftDelete marks a story deleted without removing its row
func (r *StoryRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE stories SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("error deleting story: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddLike records a user's like. Returns false when the like already existed.
func (r *StoryRepository) AddLike(ctx context.Context, storyID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO story_likes (story_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (story_id, user_id) DO NOTHING`,
		storyID, userID)
	if err != nil {
		return false, fmt.Errorf("error adding like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RemoveLike removes a user's like. Returns false when no like existed.
func (r *StoryRepository) RemoveLike(ctx context.Context, storyID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM story_likes WHERE story_id = $1 AND user_id = $2`,
		storyID, userID)
	if err != nil {
		return false, fmt.Errorf("error removing like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountLikes counts the likes on a story
func (r *StoryRepository) CountLikes(ctx context.Context, storyID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM story_likes WHERE story_id = $1`,
		storyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return count, nil
}

// CountLikesBatch counts likes for several stories in one query. Stories
// with no likes are absent from the result.
func (r *StoryRepository) CountLikesBatch(ctx context.Context, storyIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(storyIDs))
	if len(storyIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT story_id, COUNT(*) FROM story_likes
		WHERE story_id = ANY($1)
		GROUP BY story_id`, storyIDs)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("error scanning like count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// AddMedia appends media links to an existing story
func (r *StoryRepository) AddMedia(ctx context.Context, storyID int64, mediaIDs []string) error {
	if len(mediaIDs) == 0 {
		return nil
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, mediaID := range mediaIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO story_media (story_id, media_id) VALUES ($1, $2)`,
				storyID, mediaID); err != nil {
				return fmt.Errorf("error linking story media: %w", err)
			}
		}
		return nil
	})
}

// GetMediaIDsBatch retrieves the media ids of several stories in one query,
// keyed by story id and kept in append order.
func (r *StoryRepository) GetMediaIDsBatch(ctx context.Context, storyIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(storyIDs))
	if len(storyIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT story_id, media_id FROM story_media
		WHERE story_id = ANY($1)
		ORDER BY id ASC`, storyIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing story media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var storyID int64
		var mediaID string
		if err := rows.Scan(&storyID, &mediaID); err != nil {
			return nil, fmt.Errorf("error scanning media link: %w", err)
		}
		result[storyID] = append(result[storyID], mediaID)
	}
	return result, rows.Err()
}
