package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
	"github.com/alumnihub/alumnihub/internal/pkg/helpers"
	"github.com/alumnihub/alumnihub/internal/pkg/mediastore"
)

// UpcomingEventCount is how many future events the upcoming rail shows
const UpcomingEventCount = 3

// EventService handles events, registrations and event media
type EventService struct {
	events EventStore
	users  UserStore
	media  mediastore.Store
	now    func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(events EventStore, users UserStore, media mediastore.Store) *EventService {
	return &EventService{
		events: events,
		users:  users,
		media:  media,
		now:    time.Now,
	}
}

// CreateEvent schedules a new event with optional inline media
func (s *EventService) CreateEvent(ctx context.Context, authorID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	mediaIDs, err := storeMediaFiles(ctx, s.media, req.MediaFiles)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		AuthorID:    authorID,
	}

	eventID, err := s.events.Create(ctx, event, mediaIDs)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("eventId", eventID).Time("date", event.Date).Msg("Event scheduled")

	return s.getEventResponse(ctx, eventID)
}

// GetEvents retrieves a page of events ordered by date, soonest first
func (s *EventService) GetEvents(ctx context.Context, page, limit int) (*dto.EventListResponse, error) {
	offset, size := helpers.CalculateOffsetLimit(page, limit)

	events, err := s.events.ListVisible(ctx, offset, size)
	if err != nil {
		return nil, err
	}
	total, err := s.events.CountVisible(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.buildEventResponses(ctx, events)
	if err != nil {
		return nil, err
	}

	return &dto.EventListResponse{
		Events:   items,
		PageMeta: helpers.NewPageMeta(total, page, size),
	}, nil
}

// GetUpcomingEvents retrieves the next few future events, soonest first
func (s *EventService) GetUpcomingEvents(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.events.ListUpcoming(ctx, s.now(), UpcomingEventCount)
	if err != nil {
		return nil, err
	}
	return s.buildEventResponses(ctx, events)
}

// GetEvent retrieves one event with its attendee list
func (s *EventService) GetEvent(ctx context.Context, eventID int64) (*dto.EventDetailResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	resp, err := s.buildEventResponse(ctx, event)
	if err != nil {
		return nil, err
	}

	attendees, err := s.events.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	detail := &dto.EventDetailResponse{
		EventResponse: *resp,
		Attendees:     make([]dto.AuthorResponse, 0, len(attendees)),
	}
	for _, attendee := range attendees {
		detail.Attendees = append(detail.Attendees, *newAuthorResponse(attendee))
	}
	return detail, nil
}

// GetEventsAttending retrieves the events a user is registered for
func (s *EventService) GetEventsAttending(ctx context.Context, userID int64) ([]dto.EventResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	events, err := s.events.ListAttending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildEventResponses(ctx, events)
}

// UpdateEvent applies a partial update to an event
func (s *EventService) UpdateEvent(ctx context.Context, eventID int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	if len(req.MediaFiles) > 0 {
		mediaIDs, err := storeMediaFiles(ctx, s.media, req.MediaFiles)
		if err != nil {
			return nil, err
		}
		if err := s.events.AddMedia(ctx, eventID, mediaIDs); err != nil {
			return nil, err
		}
	}

	return s.getEventResponse(ctx, eventID)
}

// DeleteEvent soft-deletes an event
func (s *EventService) DeleteEvent(ctx context.Context, eventID int64) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}

	if err := s.events.SoftDelete(ctx, eventID); err != nil {
		return err
	}

	log.Info().Int64("eventId", eventID).Msg("Event deleted")
	return nil
}

// ToggleRegistration flips the caller's registration on a future event
// and reports the new state. Past events reject registration changes.
func (s *EventService) ToggleRegistration(ctx context.Context, userID, eventID int64) (*dto.RegistrationToggleResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	if event.IsPast(s.now()) {
		return nil, apperrors.NewInvalidStateError("cannot register for past events")
	}

	added, err := s.events.AddAttendee(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if added {
		return &dto.RegistrationToggleResponse{
			Registered: true,
			Message:    "Successfully registered for event",
		}, nil
	}

	if _, err := s.events.RemoveAttendee(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return &dto.RegistrationToggleResponse{
		Registered: false,
		Message:    "Registration cancelled",
	}, nil
}

func (s *EventService) getEventResponse(ctx context.Context, eventID int64) (*dto.EventResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	return s.buildEventResponse(ctx, event)
}

func (s *EventService) buildEventResponse(ctx context.Context, event *models.Event) (*dto.EventResponse, error) {
	responses, err := s.buildEventResponses(ctx, []*models.Event{event})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// buildEventResponses assembles projections for a page of events using
// batched count and media lookups rather than per-item queries.
func (s *EventService) buildEventResponses(ctx context.Context, events []*models.Event) ([]dto.EventResponse, error) {
	responses := make([]dto.EventResponse, 0, len(events))
	if len(events) == 0 {
		return responses, nil
	}

	ids := make([]int64, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}

	attendeeCounts, err := s.events.CountAttendeesBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	mediaIDs, err := s.events.GetMediaIDsBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	mediaURLs, err := resolveMediaBatch(ctx, s.media, mediaIDs)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		urls := mediaURLs[event.ID]
		if urls == nil {
			urls = []string{}
		}
		responses = append(responses, dto.EventResponse{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			Author:      newAuthorResponse(event.Author),
			MediaURLs:   urls,
			Calendar: dto.CalendarResponse{
				Date:     event.Date,
				Location: event.Location,
			},
			AttendeeCount: attendeeCounts[event.ID],
			CreatedAt:     event.CreatedAt,
			UpdatedAt:     event.UpdatedAt,
		})
	}
	return responses, nil
}
