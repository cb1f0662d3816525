package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.EventWithVenue, error) {
	query := `
		SELECT e.id, e.name, e.total_capacity, e.left_capacity, e.ticket_price, e.venue_id, v.name
		FROM events e
		JOIN venues v ON e.venue_id = v.id
		WHERE e.id = $1
	`

	var event entity.EventWithVenue
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.TotalCapacity,
		&event.LeftCapacity,
		&event.TicketPrice,
		&event.VenueID,
		&event.VenueName,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*entity.EventWithVenue, error) {
	query := `
		SELECT e.id, e.name, e.total_capacity, e.left_capacity, e.ticket_price, e.venue_id, v.name
		FROM events e
		JOIN venues v ON e.venue_id = v.id
		ORDER BY e.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*entity.EventWithVenue
	for rows.Next() {
		var event entity.EventWithVenue
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.TotalCapacity,
			&event.LeftCapacity,
			&event.TicketPrice,
			&event.VenueID,
			&event.VenueName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// DecrementCapacity is the sole writer of left_capacity. The conditional
// UPDATE is the atomicity boundary: concurrent settlements for the same
// event serialize on the row, and the predicate keeps the counter >= 0.
func (r *eventRepository) DecrementCapacity(ctx context.Context, eventID, count int64) (bool, int64, error) {
	query := `
		UPDATE events
		SET left_capacity = left_capacity - $2
		WHERE id = $1 AND left_capacity >= $2
		RETURNING left_capacity
	`

	var remaining int64
	err := r.db.QueryRowContext(ctx, query, eventID, count).Scan(&remaining)
	if err == nil {
		return true, remaining, nil
	}
	if err != sql.ErrNoRows {
		return false, 0, fmt.Errorf("failed to decrement capacity: %w", err)
	}

	// Predicate failed or the event does not exist; one more read tells
	// the caller which.
	query = `SELECT left_capacity FROM events WHERE id = $1`
	err = r.db.QueryRowContext(ctx, query, eventID).Scan(&remaining)
	if err == sql.ErrNoRows {
		return false, 0, entity.ErrEventNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to read capacity: %w", err)
	}

	return false, remaining, nil
}
