package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/pkg/mediastore"
)

// In-memory store fakes backing the service tests. They mirror the
// row-absence conventions of the pgx repositories: nil for missing
// single rows, pgx.ErrNoRows when an update touches nothing.

var errNoRows = pgx.ErrNoRows

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	stored.Email = strings.ToLower(user.Email)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return f.lookup(id), nil
}

func (f *fakeUserStore) lookup(id int64) *models.User {
	user, ok := f.users[id]
	if !ok {
		return nil
	}
	copied := *user
	return &copied
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == strings.ToLower(email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UsernameOrEmailExists(_ context.Context, username, email string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username || user.Email == strings.ToLower(email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) EmailExistsForOther(_ context.Context, email string, excludeUserID int64) (bool, error) {
	for _, user := range f.users {
		if user.ID != excludeUserID && user.Email == strings.ToLower(email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	if stored, ok := f.users[user.ID]; ok {
		stored.FirstName = user.FirstName
		stored.LastName = user.LastName
		stored.Email = strings.ToLower(user.Email)
		stored.ProfileImage = user.ProfileImage
		stored.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	if stored, ok := f.users[userID]; ok {
		stored.Password = passwordHash
	}
	return nil
}

func (f *fakeUserStore) UpdateStatus(_ context.Context, userID int64, status models.UserStatus) error {
	stored, ok := f.users[userID]
	if !ok {
		return errNoRows
	}
	stored.Status = status
	return nil
}

func (f *fakeUserStore) ListAll(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (f *fakeUserStore) matchesAlumniSearch(user *models.User, search string) bool {
	if user.Role != models.RoleAlumni || user.Status != models.StatusActive {
		return false
	}
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(user.FirstName), needle) ||
		strings.Contains(strings.ToLower(user.LastName), needle) ||
		strings.Contains(strings.ToLower(user.Username), needle) ||
		strings.Contains(user.Email, needle)
}

func (f *fakeUserStore) ListAlumni(_ context.Context, search string, offset uint64, limit int) ([]*models.User, error) {
	var matched []*models.User
	for _, user := range f.users {
		if f.matchesAlumniSearch(user, search) {
			copied := *user
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start := int(offset)
	if start >= len(matched) {
		return nil, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (f *fakeUserStore) CountAlumni(_ context.Context, search string) (int64, error) {
	var count int64
	for _, user := range f.users {
		if f.matchesAlumniSearch(user, search) {
			count++
		}
	}
	return count, nil
}

type fakeProfileStore struct {
	nextID   int64
	profiles map[int64]*models.AlumniProfile // keyed by user id
	friends  map[int64]map[int64]bool        // profile id -> friend user ids
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		profiles: make(map[int64]*models.AlumniProfile),
		friends:  make(map[int64]map[int64]bool),
	}
}

func (f *fakeProfileStore) CreateProfile(_ context.Context, userID int64) (int64, error) {
	f.nextID++
	f.profiles[userID] = &models.AlumniProfile{
		ID:     f.nextID,
		UserID: userID,
		Status: models.StatusActive,
	}
	f.friends[f.nextID] = make(map[int64]bool)
	return f.nextID, nil
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (*models.AlumniProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileStore) AddFriend(_ context.Context, profileID, friendUserID int64) (bool, error) {
	set := f.friends[profileID]
	if set[friendUserID] {
		return false, nil
	}
	set[friendUserID] = true
	return true, nil
}

func (f *fakeProfileStore) RemoveFriend(_ context.Context, profileID, friendUserID int64) (bool, error) {
	set := f.friends[profileID]
	if !set[friendUserID] {
		return false, nil
	}
	delete(set, friendUserID)
	return true, nil
}

func (f *fakeProfileStore) CountFriends(_ context.Context, profileID int64) (int64, error) {
	return int64(len(f.friends[profileID])), nil
}

type fakeStoryStore struct {
	nextID  int64
	users   *fakeUserStore
	stories map[int64]*models.Story
	likes   map[int64]map[int64]bool
	media   map[int64][]string
}

func newFakeStoryStore(users *fakeUserStore) *fakeStoryStore {
	return &fakeStoryStore{
		users:   users,
		stories: make(map[int64]*models.Story),
		likes:   make(map[int64]map[int64]bool),
		media:   make(map[int64][]string),
	}
}

func (f *fakeStoryStore) Create(_ context.Context, story *models.Story, mediaIDs []string) (int64, error) {
	f.nextID++
	stored := *story
	stored.ID = f.nextID
	stored.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	stored.UpdatedAt = stored.CreatedAt
	f.stories[stored.ID] = &stored
	f.likes[stored.ID] = make(map[int64]bool)
	f.media[stored.ID] = append([]string(nil), mediaIDs...)
	return stored.ID, nil
}

func (f *fakeStoryStore) GetByID(_ context.Context, id int64) (*models.Story, error) {
	story, ok := f.stories[id]
	if !ok || story.IsDeleted() {
		return nil, nil
	}
	copied := *story
	copied.Author = f.users.lookup(story.AuthorID)
	return &copied, nil
}

func (f *fakeStoryStore) visible() []*models.Story {
	var stories []*models.Story
	for _, story := range f.stories {
		if !story.IsDeleted() {
			copied := *story
			copied.Author = f.users.lookup(story.AuthorID)
			stories = append(stories, &copied)
		}
	}
	sort.Slice(stories, func(i, j int) bool {
		return stories[i].CreatedAt.After(stories[j].CreatedAt)
	})
	return stories
}

func (f *fakeStoryStore) ListVisible(_ context.Context, offset uint64, limit int) ([]*models.Story, error) {
	stories := f.visible()
	start := int(offset)
	if start >= len(stories) {
		return nil, nil
	}
	end := start + limit
	if end > len(stories) {
		end = len(stories)
	}
	return stories[start:end], nil
}

func (f *fakeStoryStore) CountVisible(_ context.Context) (int64, error) {
	return int64(len(f.visible())), nil
}

func (f *fakeStoryStore) ListFeatured(_ context.Context, limit int) ([]*models.Story, error) {
	stories := f.visible()
	sort.SliceStable(stories, func(i, j int) bool {
		li, lj := len(f.likes[stories[i].ID]), len(f.likes[stories[j].ID])
		if li != lj {
			return li > lj
		}
		return stories[i].CreatedAt.After(stories[j].CreatedAt)
	})
	if len(stories) > limit {
		stories = stories[:limit]
	}
	return stories, nil
}

func (f *fakeStoryStore) ListByAuthor(_ context.Context, authorID int64) ([]*models.Story, error) {
	var stories []*models.Story
	for _, story := range f.visible() {
		if story.AuthorID == authorID {
			stories = append(stories, story)
		}
	}
	return stories, nil
}

func (f *fakeStoryStore) CountByAuthor(_ context.Context, authorID int64) (int64, error) {
	stories, _ := f.ListByAuthor(context.Background(), authorID)
	return int64(len(stories)), nil
}

func (f *fakeStoryStore) Update(_ context.Context, story *models.Story) error {
	if stored, ok := f.stories[story.ID]; ok && !stored.IsDeleted() {
		stored.Title = story.Title
		stored.Description = story.Description
		stored.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeStoryStore) SoftDelete(_ context.Context, id int64) error {
	stored, ok := f.stories[id]
	if !ok || stored.IsDeleted() {
		return errNoRows
	}
	now := time.Now()
	stored.DeletedAt = &now
	return nil
}

func (f *fakeStoryStore) AddLike(_ context.Context, storyID, userID int64) (bool, error) {
	set := f.likes[storyID]
	if set[userID] {
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (f *fakeStoryStore) RemoveLike(_ context.Context, storyID, userID int64) (bool, error) {
	set := f.likes[storyID]
	if !set[userID] {
		return false, nil
	}
	delete(set, userID)
	return true, nil
}

func (f *fakeStoryStore) CountLikes(_ context.Context, storyID int64) (int64, error) {
	return int64(len(f.likes[storyID])), nil
}

func (f *fakeStoryStore) CountLikesBatch(_ context.Context, storyIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, id := range storyIDs {
		if n := len(f.likes[id]); n > 0 {
			counts[id] = int64(n)
		}
	}
	return counts, nil
}

func (f *fakeStoryStore) AddMedia(_ context.Context, storyID int64, mediaIDs []string) error {
	f.media[storyID] = append(f.media[storyID], mediaIDs...)
	return nil
}

func (f *fakeStoryStore) GetMediaIDsBatch(_ context.Context, storyIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string)
	for _, id := range storyIDs {
		if ids := f.media[id]; len(ids) > 0 {
			result[id] = append([]string(nil), ids...)
		}
	}
	return result, nil
}

type fakeCommentStore struct {
	nextID   int64
	comments []*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{}
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) (int64, error) {
	f.nextID++
	stored := *comment
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.comments = append(f.comments, &stored)
	return stored.ID, nil
}

func (f *fakeCommentStore) ListByStory(_ context.Context, storyID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range f.comments {
		if comment.StoryID == storyID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (f *fakeCommentStore) CountByStories(_ context.Context, storyIDs []int64) (map[int64]int64, error) {
	perStory := make(map[int64]int64)
	for _, comment := range f.comments {
		perStory[comment.StoryID]++
	}

	counts := make(map[int64]int64)
	for _, id := range storyIDs {
		if n := perStory[id]; n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

type fakeEventStore struct {
	nextID    int64
	users     *fakeUserStore
	events    map[int64]*models.Event
	attendees map[int64]map[int64]bool
	media     map[int64][]string
}

func newFakeEventStore(users *fakeUserStore) *fakeEventStore {
	return &fakeEventStore{
		users:     users,
		events:    make(map[int64]*models.Event),
		attendees: make(map[int64]map[int64]bool),
		media:     make(map[int64][]string),
	}
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event, mediaIDs []string) (int64, error) {
	f.nextID++
	stored := *event
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.events[stored.ID] = &stored
	f.attendees[stored.ID] = make(map[int64]bool)
	f.media[stored.ID] = append([]string(nil), mediaIDs...)
	return stored.ID, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok || event.IsDeleted() {
		return nil, nil
	}
	copied := *event
	copied.Author = f.users.lookup(event.AuthorID)
	return &copied, nil
}

func (f *fakeEventStore) visible() []*models.Event {
	var events []*models.Event
	for _, event := range f.events {
		if !event.IsDeleted() {
			copied := *event
			copied.Author = f.users.lookup(event.AuthorID)
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

func (f *fakeEventStore) ListVisible(_ context.Context, offset uint64, limit int) ([]*models.Event, error) {
	events := f.visible()
	start := int(offset)
	if start >= len(events) {
		return nil, nil
	}
	end := start + limit
	if end > len(events) {
		end = len(events)
	}
	return events[start:end], nil
}

func (f *fakeEventStore) CountVisible(_ context.Context) (int64, error) {
	return int64(len(f.visible())), nil
}

func (f *fakeEventStore) ListUpcoming(_ context.Context, after time.Time, limit int) ([]*models.Event, error) {
	var events []*models.Event
	for _, event := range f.visible() {
		if !event.Date.Before(after) {
			events = append(events, event)
		}
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (f *fakeEventStore) ListAttending(_ context.Context, userID int64) ([]*models.Event, error) {
	var events []*models.Event
	for _, event := range f.visible() {
		if f.attendees[event.ID][userID] {
			events = append(events, event)
		}
	}
	return events, nil
}

func (f *fakeEventStore) CountAttending(_ context.Context, userID int64) (int64, error) {
	events, _ := f.ListAttending(context.Background(), userID)
	return int64(len(events)), nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	if stored, ok := f.events[event.ID]; ok && !stored.IsDeleted() {
		stored.Title = event.Title
		stored.Description = event.Description
		stored.Date = event.Date
		stored.Location = event.Location
		stored.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeEventStore) SoftDelete(_ context.Context, id int64) error {
	stored, ok := f.events[id]
	if !ok || stored.IsDeleted() {
		return errNoRows
	}
	now := time.Now()
	stored.DeletedAt = &now
	return nil
}

func (f *fakeEventStore) AddAttendee(_ context.Context, eventID, userID int64) (bool, error) {
	set := f.attendees[eventID]
	if set[userID] {
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (f *fakeEventStore) RemoveAttendee(_ context.Context, eventID, userID int64) (bool, error) {
	set := f.attendees[eventID]
	if !set[userID] {
		return false, nil
	}
	delete(set, userID)
	return true, nil
}

func (f *fakeEventStore) CountAttendees(_ context.Context, eventID int64) (int64, error) {
	return int64(len(f.attendees[eventID])), nil
}

func (f *fakeEventStore) CountAttendeesBatch(_ context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, id := range eventIDs {
		if n := len(f.attendees[id]); n > 0 {
			counts[id] = int64(n)
		}
	}
	return counts, nil
}

func (f *fakeEventStore) ListAttendees(_ context.Context, eventID int64) ([]*models.User, error) {
	var users []*models.User
	for userID := range f.attendees[eventID] {
		users = append(users, &models.User{ID: userID})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeEventStore) AddMedia(_ context.Context, eventID int64, mediaIDs []string) error {
	f.media[eventID] = append(f.media[eventID], mediaIDs...)
	return nil
}

func (f *fakeEventStore) GetMediaIDsBatch(_ context.Context, eventIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string)
	for _, id := range eventIDs {
		if ids := f.media[id]; len(ids) > 0 {
			result[id] = append([]string(nil), ids...)
		}
	}
	return result, nil
}

type fakeMediaStore struct {
	recs map[string]mediastore.Record
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{recs: make(map[string]mediastore.Record)}
}

func (f *fakeMediaStore) Put(_ context.Context, rec mediastore.Record) error {
	f.recs[rec.MediaID] = rec
	return nil
}

func (f *fakeMediaStore) GetBatch(_ context.Context, mediaIDs []string) (map[string]mediastore.Record, error) {
	result := make(map[string]mediastore.Record)
	for _, id := range mediaIDs {
		if rec, ok := f.recs[id]; ok {
			result[id] = rec
		}
	}
	return result, nil
}
