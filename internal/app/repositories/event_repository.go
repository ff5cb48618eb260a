package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/db"
)

// eventSelectColumns joins each event row with its author for one-query listings
const eventSelectColumns = `e.id, e.title, e.description, e.event_date, e.location,
	       e.author_id, e.created_at, e.updated_at, e.deleted_at,
	       u.username, u.first_name, u.last_name, u.profile_image`

// EventRepository handles database operations for events, their
// attendee registrations and their media links
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	event := &models.Event{Author: &models.User{}}
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.Date,
		&event.Location, &event.AuthorID,
		&event.CreatedAt, &event.UpdatedAt, &event.DeletedAt,
		&event.Author.Username, &event.Author.FirstName,
		&event.Author.LastName, &event.Author.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	event.Author.ID = event.AuthorID
	return event, nil
}

func (r *EventRepository) collectEvents(ctx context.Context, sql string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Create inserts an event and its media links in one transaction
func (r *EventRepository) Create(ctx context.Context, event *models.Event, mediaIDs []string) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO events (title, description, event_date, location, author_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			event.Title, event.Description, event.Date, event.Location, event.AuthorID).Scan(&id)
		if err != nil {
			return fmt.Errorf("error creating event: %w", err)
		}

		for _, mediaID := range mediaIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO event_media (event_id, media_id) VALUES ($1, $2)`,
				id, mediaID); err != nil {
				return fmt.Errorf("error linking event media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves an event that has not been soft-deleted
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, `
		SELECT `+eventSelectColumns+`
		FROM events e
		JOIN users u ON u.id = e.author_id
		WHERE e.id = $1 AND e.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading event: %w", err)
	}
	return event, nil
}

// ListVisible retrieves a page of events ordered by date, soonest first
func (r *EventRepository) ListVisible(ctx context.Context, offset uint64, limit int) ([]*models.Event, error) {
	sql, args, err := squirrel.Select(
		"e.id", "e.title", "e.description", "e.event_date", "e.location",
		"e.author_id", "e.created_at", "e.updated_at", "e.deleted_at",
		"u.username", "u.first_name", "u.last_name", "u.profile_image",
	).
		From("events e").
		Join("users u ON u.id = e.author_id").
		Where("e.deleted_at IS NULL").
		OrderBy("e.event_date ASC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.collectEvents(ctx, sql, args...)
}

// CountVisible counts events that have not been soft-deleted
func (r *EventRepository) CountVisible(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM events WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return count, nil
}

// ListUpcoming retrieves the next events dated at or after the given
// instant, soonest first
func (r *EventRepository) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]*models.Event, error) {
	return r.collectEvents(ctx, `
		SELECT `+eventSelectColumns+`
		FROM events e
		JOIN users u ON u.id = e.author_id
		WHERE e.deleted_at IS NULL AND e.event_date >= $1
		ORDER BY e.event_date ASC
		LIMIT $2`, after, limit)
}

// ListAttending retrieves the events a user is registered for, newest first
func (r *EventRepository) ListAttending(ctx context.Context, userID int64) ([]*models.Event, error) {
	return r.collectEvents(ctx, `
		SELECT `+eventSelectColumns+`
		FROM events e
		JOIN users u ON u.id = e.author_id
		JOIN event_attendees ea ON ea.event_id = e.id
		WHERE ea.user_id = $1 AND e.deleted_at IS NULL
		ORDER BY e.event_date DESC`, userID)
}

// CountAttending counts the events a user is registered for
func (r *EventRepository) CountAttending(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_attendees ea
		JOIN events e ON e.id = ea.event_id
		WHERE ea.user_id = $1 AND e.deleted_at IS NULL`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

// Update rewrites an event's mutable fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	_, err := r.db.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, location = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL`,
		event.Title, event.Description, event.Date, event.Location, event.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	return nil
}

// SoftDelete marks an event deleted without removing its row
func (r *EventRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE events SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddAttendee registers a user. Returns false when the registration
// already existed.
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID)
	if err != nil {
		return false, fmt.Errorf("error registering attendee: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RemoveAttendee cancels a registration. Returns false when none existed.
func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
	if err != nil {
		return false, fmt.Errorf("error removing attendee: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountAttendees counts the registrations on an event
func (r *EventRepository) CountAttendees(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`,
		eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting attendees: %w", err)
	}
	return count, nil
}

// CountAttendeesBatch counts registrations for several events in one query.
// Events with no registrations are absent from the result.
func (r *EventRepository) CountAttendeesBatch(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT event_id, COUNT(*) FROM event_attendees
		WHERE event_id = ANY($1)
		GROUP BY event_id`, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("error counting attendees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("error scanning attendee count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// ListAttendees retrieves the users registered for an event in
// registration order
func (r *EventRepository) ListAttendees(ctx context.Context, eventID int64) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name, u.profile_image
		FROM event_attendees ea
		JOIN users u ON u.id = ea.user_id
		WHERE ea.event_id = $1
		ORDER BY ea.created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendees: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(&user.ID, &user.Username, &user.FirstName,
			&user.LastName, &user.ProfileImage)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendee row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// AddMedia appends media links to an existing event
func (r *EventRepository) AddMedia(ctx context.Context, eventID int64, mediaIDs []string) error {
	if len(mediaIDs) == 0 {
		return nil
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, mediaID := range mediaIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO event_media (event_id, media_id) VALUES ($1, $2)`,
				eventID, mediaID); err != nil {
				return fmt.Errorf("error linking event media: %w", err)
			}
		}
		return nil
	})
}

// GetMediaIDsBatch retrieves the media ids of several events in one query,
// keyed by event id and kept in append order.
func (r *EventRepository) GetMediaIDsBatch(ctx context.Context, eventIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT event_id, media_id FROM event_media
		WHERE event_id = ANY($1)
		ORDER BY id ASC`, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing event media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var mediaID string
		if err := rows.Scan(&eventID, &mediaID); err != nil {
			return nil, fmt.Errorf("error scanning media link: %w", err)
		}
		result[eventID] = append(result[eventID], mediaID)
	}
	return result, rows.Err()
}
