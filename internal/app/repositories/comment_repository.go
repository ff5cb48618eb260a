package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumnihub/alumnihub/internal/app/models"
)

// CommentRepository handles database operations for story comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and returns its id
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO comments (story_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id`,
		comment.StoryID, comment.AuthorID, comment.Content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}
	return id, nil
}

// ListByStory retrieves a story's comments with their authors, oldest first
func (r *CommentRepository) ListByStory(ctx context.Context, storyID int64) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.story_id, c.author_id, c.content, c.created_at, c.updated_at,
		       u.username, u.first_name, u.last_name, u.profile_image
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.story_id = $1
		ORDER BY c.created_at ASC`, storyID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{Author: &models.User{}}
		err := rows.Scan(
			&comment.ID, &comment.StoryID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
			&comment.Author.Username, &comment.Author.FirstName,
			&comment.Author.LastName, &comment.Author.ProfileImage,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comment.Author.ID = comment.AuthorID
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// CountByStories counts comments for several stories in one query. Stories
// with no comments are absent from the result.
func (r *CommentRepository) CountByStories(ctx context.Context, storyIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(storyIDs))
	if len(storyIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT story_id, COUNT(*) FROM comments
		WHERE story_id = ANY($1)
		GROUP BY story_id`, storyIDs)
	if err != nil {
		return nil, fmt.Errorf("error counting comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("error scanning comment count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}
