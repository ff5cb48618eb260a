package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
	"github.com/alumnihub/alumnihub/internal/pkg/helpers"
	"github.com/alumnihub/alumnihub/internal/pkg/mediastore"
)

// FeaturedStoryCount is how many top-liked stories the featured rail shows
const FeaturedStoryCount = 3

// StoryService handles success stories, their likes, comments and media
type StoryService struct {
	stories  StoryStore
	comments CommentStore
	users    UserStore
	media    mediastore.Store
}

// NewStoryService creates a new StoryService
func NewStoryService(stories StoryStore, comments CommentStore, users UserStore, media mediastore.Store) *StoryService {
	return &StoryService{
		stories:  stories,
		comments: comments,
		users:    users,
		media:    media,
	}
}

// CreateStory publishes a new story with optional inline media
func (s *StoryService) CreateStory(ctx context.Context, authorID int64, req *dto.CreateStoryRequest) (*dto.StoryResponse, error) {
	mediaIDs, err := storeMediaFiles(ctx, s.media, req.MediaFiles)
	if err != nil {
		return nil, err
	}

	story := &models.Story{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    authorID,
	}

	storyID, err := s.stories.Create(ctx, story, mediaIDs)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("storyId", storyID).Int64("authorId", authorID).Msg("Story published")

	return s.getStoryResponse(ctx, storyID)
}

// GetStories retrieves a page of stories, newest first
func (s *StoryService) GetStories(ctx context.Context, page, limit int) (*dto.StoryListResponse, error) {
	offset, size := helpers.CalculateOffsetLimit(page, limit)

	stories, err := s.stories.ListVisible(ctx, offset, size)
	if err != nil {
		return nil, err
	}
	total, err := s.stories.CountVisible(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.buildStoryResponses(ctx, stories)
	if err != nil {
		return nil, err
	}

	return &dto.StoryListResponse{
		Stories:  items,
		PageMeta: helpers.NewPageMeta(total, page, size),
	}, nil
}

// GetFeaturedStories retrieves the most-liked stories, ties broken by recency
func (s *StoryService) GetFeaturedStories(ctx context.Context) ([]dto.StoryResponse, error) {
	stories, err := s.stories.ListFeatured(ctx, FeaturedStoryCount)
	if err != nil {
		return nil, err
	}
	return s.buildStoryResponses(ctx, stories)
}

// GetStory retrieves one story with its comment thread
func (s *StoryService) GetStory(ctx context.Context, storyID int64) (*dto.StoryDetailResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}

	resp, err := s.buildStoryResponse(ctx, story)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	detail := &dto.StoryDetailResponse{
		StoryResponse: *resp,
		Comments:      make([]dto.CommentResponse, 0, len(comments)),
	}
	for _, comment := range comments {
		detail.Comments = append(detail.Comments, newCommentResponse(comment))
	}
	return detail, nil
}

// GetStoriesByAuthor retrieves a user's stories, newest first
func (s *StoryService) GetStoriesByAuthor(ctx context.Context, authorID int64) ([]dto.StoryResponse, error) {
	user, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	stories, err := s.stories.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.buildStoryResponses(ctx, stories)
}

// UpdateStory applies a partial update. Only the author may edit a story.
func (s *StoryService) UpdateStory(ctx context.Context, actorID int64, storyID int64, req *dto.UpdateStoryRequest) (*dto.StoryResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}
	if story.AuthorID != actorID {
		return nil, apperrors.NewForbiddenError("only the author can edit this story")
	}

	if req.Title != "" {
		story.Title = req.Title
	}
	if req.Description != "" {
		story.Description = req.Description
	}
	if err := s.stories.Update(ctx, story); err != nil {
		return nil, err
	}

	if len(req.MediaFiles) > 0 {
		mediaIDs, err := storeMediaFiles(ctx, s.media, req.MediaFiles)
		if err != nil {
			return nil, err
		}
		if err := s.stories.AddMedia(ctx, storyID, mediaIDs); err != nil {
			return nil, err
		}
	}

	return s.getStoryResponse(ctx, storyID)
}

// DeleteStory soft-deletes a story. The author and admins may delete.
func (s *StoryService) DeleteStory(ctx context.Context, actorID int64, actorRole models.RoleType, storyID int64) error {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story == nil {
		return apperrors.ErrStoryNotFound
	}
	if story.AuthorID != actorID && actorRole != models.RoleAdmin {
		return apperrors.NewForbiddenError("only the author or an admin can delete this story")
	}

	if err := s.stories.SoftDelete(ctx, storyID); err != nil {
		return err
	}

	log.Info().Int64("storyId", storyID).Int64("actorId", actorID).Msg("Story deleted")
	return nil
}

// ToggleLike flips the caller's like on a story and reports the new state
func (s *StoryService) ToggleLike(ctx context.Context, userID, storyID int64) (*dto.LikeToggleResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}

	added, err := s.stories.AddLike(ctx, storyID, userID)
	if err != nil {
		return nil, err
	}
	liked := added
	if !added {
		if _, err := s.stories.RemoveLike(ctx, storyID, userID); err != nil {
			return nil, err
		}
		liked = false
	}

	likes, err := s.stories.CountLikes(ctx, storyID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeToggleResponse{Likes: likes, Liked: liked}, nil
}

// AddComment appends a comment to a story
func (s *StoryService) AddComment(ctx context.Context, userID, storyID int64, req *dto.AddCommentRequest) (*dto.CommentResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.ErrUserNotFound
	}

	comment := &models.Comment{
		StoryID:  storyID,
		AuthorID: userID,
		Content:  req.Content,
	}
	commentID, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = commentID
	comment.Author = author

	resp := newCommentResponse(comment)
	return &resp, nil
}

// GetComments retrieves a story's comment thread, oldest first
func (s *StoryService) GetComments(ctx context.Context, storyID int64) ([]dto.CommentResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}

	comments, err := s.comments.ListByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, newCommentResponse(comment))
	}
	return responses, nil
}

func (s *StoryService) getStoryResponse(ctx context.Context, storyID int64) (*dto.StoryResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}
	return s.buildStoryResponse(ctx, story)
}

func (s *StoryService) buildStoryResponse(ctx context.Context, story *models.Story) (*dto.StoryResponse, error) {
	responses, err := s.buildStoryResponses(ctx, []*models.Story{story})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// buildStoryResponses assembles projections for a page of stories using
// batched count and media lookups rather than per-item queries.
func (s *StoryService) buildStoryResponses(ctx context.Context, stories []*models.Story) ([]dto.StoryResponse, error) {
	responses := make([]dto.StoryResponse, 0, len(stories))
	if len(stories) == 0 {
		return responses, nil
	}

	ids := make([]int64, 0, len(stories))
	for _, story := range stories {
		ids = append(ids, story.ID)
	}

	likeCounts, err := s.stories.CountLikesBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.comments.CountByStories(ctx, ids)
	if err != nil {
		return nil, err
	}
	mediaIDs, err := s.stories.GetMediaIDsBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	mediaURLs, err := resolveMediaBatch(ctx, s.media, mediaIDs)
	if err != nil {
		return nil, err
	}

	for _, story := range stories {
		urls := mediaURLs[story.ID]
		if urls == nil {
			urls = []string{}
		}
		responses = append(responses, dto.StoryResponse{
			ID:           story.ID,
			Title:        story.Title,
			Description:  story.Description,
			Author:       newAuthorResponse(story.Author),
			MediaURLs:    urls,
			Likes:        likeCounts[story.ID],
			CommentCount: commentCounts[story.ID],
			CreatedAt:    story.CreatedAt,
			UpdatedAt:    story.UpdatedAt,
		})
	}
	return responses, nil
}

func newCommentResponse(comment *models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    newAuthorResponse(comment.Author),
		StoryID:   comment.StoryID,
		CreatedAt: comment.CreatedAt,
	}
}
