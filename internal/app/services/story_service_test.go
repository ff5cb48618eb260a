package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
)

type storyServiceFixture struct {
	svc      *StoryService
	users    *fakeUserStore
	stories  *fakeStoryStore
	comments *fakeCommentStore
	media    *fakeMediaStore
}

func newStoryServiceFixture() *storyServiceFixture {
	users := newFakeUserStore()
	f := &storyServiceFixture{
		users:    users,
		stories:  newFakeStoryStore(users),
		comments: newFakeCommentStore(),
		media:    newFakeMediaStore(),
	}
	f.svc = NewStoryService(f.stories, f.comments, f.users, f.media)
	return f
}

func (f *storyServiceFixture) seedStory(t *testing.T, authorID int64, title string) int64 {
	t.Helper()
	id, err := f.stories.Create(context.Background(), &models.Story{
		Title:       title,
		Description: "A story",
		AuthorID:    authorID,
	}, nil)
	require.NoError(t, err)
	return id
}

func TestCreateStory_WithMedia(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)

	resp, err := f.svc.CreateStory(context.Background(), author.ID, &dto.CreateStoryRequest{
		Title:       "From campus to startup",
		Description: "How it all started",
		MediaFiles: []dto.MediaFileUpload{
			{Type: "image/png", Data: "data:image/jpeg;base64,aGVsbG8="},
			{Type: "image/png", Data: "d29ybGQ="},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "From campus to startup", resp.Title)
	assert.Equal(t, int64(0), resp.Likes)
	assert.Equal(t, int64(0), resp.CommentCount)

	// A full data URI overrides the declared type; a bare payload keeps it.
	// Resolved media preserves upload order.
	require.Len(t, resp.MediaURLs, 2)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", resp.MediaURLs[0])
	assert.Equal(t, "data:image/png;base64,d29ybGQ=", resp.MediaURLs[1])
}

func TestCreateStory_RejectsEmptyMedia(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)

	_, err := f.svc.CreateStory(context.Background(), author.ID, &dto.CreateStoryRequest{
		Title:       "Story",
		Description: "Body",
		MediaFiles:  []dto.MediaFileUpload{{Type: "image/png", Data: ""}},
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestToggleLike(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)
	reader := seedUser(t, f.users, "reader", "reader@example.com", "password", models.RoleAlumni)
	storyID := f.seedStory(t, author.ID, "Story")

	resp, err := f.svc.ToggleLike(context.Background(), reader.ID, storyID)
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(1), resp.Likes)

	// Second toggle removes the like again.
	resp, err = f.svc.ToggleLike(context.Background(), reader.ID, storyID)
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, int64(0), resp.Likes)
}

func TestToggleLike_StoryNotFound(t *testing.T) {
	f := newStoryServiceFixture()
	reader := seedUser(t, f.users, "reader", "reader@example.com", "password", models.RoleAlumni)

	_, err := f.svc.ToggleLike(context.Background(), reader.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)
}

func TestUpdateStory_AuthorOnly(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)
	other := seedUser(t, f.users, "other", "other@example.com", "password", models.RoleAlumni)
	admin := seedUser(t, f.users, "admin", "admin@example.com", "password", models.RoleAdmin)
	storyID := f.seedStory(t, author.ID, "Original title")

	_, err := f.svc.UpdateStory(context.Background(), other.ID, storyID, &dto.UpdateStoryRequest{Title: "Hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Admins cannot edit either; editing is strictly author-only.
	_, err = f.svc.UpdateStory(context.Background(), admin.ID, storyID, &dto.UpdateStoryRequest{Title: "Hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := f.svc.UpdateStory(context.Background(), author.ID, storyID, &dto.UpdateStoryRequest{Title: "New title"})
	require.NoError(t, err)
	assert.Equal(t, "New title", resp.Title)
	assert.Equal(t, "A story", resp.Description)
}

func TestDeleteStory_AuthorOrAdmin(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)
	other := seedUser(t, f.users, "other", "other@example.com", "password", models.RoleAlumni)
	admin := seedUser(t, f.users, "admin", "admin@example.com", "password", models.RoleAdmin)

	storyID := f.seedStory(t, author.ID, "Story")

	err := f.svc.DeleteStory(context.Background(), other.ID, other.Role, storyID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = f.svc.DeleteStory(context.Background(), admin.ID, admin.Role, storyID)
	require.NoError(t, err)

	_, err = f.svc.GetStory(context.Background(), storyID)
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)

	// Author deletes their own story.
	otherStory := f.seedStory(t, author.ID, "Another story")
	err = f.svc.DeleteStory(context.Background(), author.ID, author.Role, otherStory)
	require.NoError(t, err)
}

func TestAddComment(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)
	reader := seedUser(t, f.users, "reader", "reader@example.com", "password", models.RoleAlumni)
	storyID := f.seedStory(t, author.ID, "Story")

	resp, err := f.svc.AddComment(context.Background(), reader.ID, storyID, &dto.AddCommentRequest{Content: "Congrats!"})
	require.NoError(t, err)
	assert.Equal(t, "Congrats!", resp.Content)
	assert.Equal(t, storyID, resp.StoryID)
	require.NotNil(t, resp.Author)
	assert.Equal(t, "reader", resp.Author.Username)

	comments, err := f.svc.GetComments(context.Background(), storyID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Congrats!", comments[0].Content)

	_, err = f.svc.AddComment(context.Background(), reader.ID, 9999, &dto.AddCommentRequest{Content: "?"})
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)
}

func TestGetStory_IncludesCommentsAndCounts(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)
	reader := seedUser(t, f.users, "reader", "reader@example.com", "password", models.RoleAlumni)
	storyID := f.seedStory(t, author.ID, "Story")

	_, err := f.svc.ToggleLike(context.Background(), reader.ID, storyID)
	require.NoError(t, err)
	_, err = f.svc.AddComment(context.Background(), reader.ID, storyID, &dto.AddCommentRequest{Content: "First"})
	require.NoError(t, err)
	_, err = f.svc.AddComment(context.Background(), author.ID, storyID, &dto.AddCommentRequest{Content: "Thanks"})
	require.NoError(t, err)

	detail, err := f.svc.GetStory(context.Background(), storyID)
	require.NoError(t, err)
	require.NotNil(t, detail.Author)
	assert.Equal(t, "author", detail.Author.Username)
	assert.Equal(t, int64(1), detail.Likes)
	assert.Equal(t, int64(2), detail.CommentCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "First", detail.Comments[0].Content)
	assert.NotNil(t, detail.MediaURLs)
}

func TestGetStories_Pagination(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)
	for i := 0; i < 25; i++ {
		f.seedStory(t, author.ID, fmt.Sprintf("Story %d", i))
	}

	resp, err := f.svc.GetStories(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Stories, 10)
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 3, resp.Pages)
	assert.True(t, resp.HasMore)

	resp, err = f.svc.GetStories(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Stories, 5)
	assert.False(t, resp.HasMore)
}

func TestGetFeaturedStories(t *testing.T) {
	f := newStoryServiceFixture()
	author := seedUser(t, f.users, "author", "author@example.com", "password", models.RoleAlumni)

	var readers []*models.User
	for i := 0; i < 3; i++ {
		readers = append(readers, seedUser(t, f.users,
			fmt.Sprintf("reader%d", i), fmt.Sprintf("reader%d@example.com", i), "password", models.RoleAlumni))
	}

	var ids []int64
	for i := 0; i < 4; i++ {
		ids = append(ids, f.seedStory(t, author.ID, fmt.Sprintf("Story %d", i)))
	}

	// ids[2] gets 3 likes, ids[0] gets 1. Remaining ties break on recency.
	for _, reader := range readers {
		_, err := f.svc.ToggleLike(context.Background(), reader.ID, ids[2])
		require.NoError(t, err)
	}
	_, err := f.svc.ToggleLike(context.Background(), readers[0].ID, ids[0])
	require.NoError(t, err)

	featured, err := f.svc.GetFeaturedStories(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, FeaturedStoryCount)
	assert.Equal(t, ids[2], featured[0].ID)
	assert.Equal(t, ids[0], featured[1].ID)
	assert.Equal(t, ids[3], featured[2].ID)
}

func TestGetStoriesByAuthor_UnknownUser(t *testing.T) {
	f := newStoryServiceFixture()

	_, err := f.svc.GetStoriesByAuthor(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
