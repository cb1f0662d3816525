package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type venueRepository struct {
	db *sql.DB
}

func NewVenueRepository(db *sql.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) GetByID(ctx context.Context, id int64) (*entity.Venue, error) {
	query := `SELECT id, name, total_capacity FROM venues WHERE id = $1`

	var venue entity.Venue
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.TotalCapacity,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return &venue, nil
}
