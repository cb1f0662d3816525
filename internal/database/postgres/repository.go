package repository

import (
	"context"
	"time"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.EventWithVenue, error)
	GetAll(ctx context.Context) ([]*entity.EventWithVenue, error)
	// DecrementCapacity applies `left_capacity -= count` only when the
	// predicate `left_capacity >= count` holds, as a single statement.
	// applied=false is the oversell guard, not an error.
	DecrementCapacity(ctx context.Context, eventID, count int64) (applied bool, remaining int64, err error)
}

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Venue, error)
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
}

type OrderRepository interface {
	// Create returns entity.ErrDuplicateReservation when an order with the
	// same dedup key already exists.
	Create(ctx context.Context, order *entity.Order) error
	GetByDedupKey(ctx context.Context, dedupKey string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error
	// SettleDecrement runs the conditional capacity decrement and the
	// matching order status transition in one transaction, so a settled
	// order can never be re-decremented on redelivery.
	SettleDecrement(ctx context.Context, orderID, eventID, ticketCount int64) (applied bool, remaining int64, err error)
	// GetStuckOrders lists orders persisted before the given time whose
	// decrement never ran, for the reconciliation sweep.
	GetStuckOrders(ctx context.Context, before time.Time) ([]*entity.Order, error)
}
