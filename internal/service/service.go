package service

import (
	"context"
	"time"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

// CapacityQuote is the point-in-time answer of the capacity gate. It is a
// read, not a reservation: remaining may be stale by the time settlement
// runs, which is why the conditional decrement re-validates.
type CapacityQuote struct {
	Approved  bool
	UnitPrice float64
	Remaining int64
}

type InventoryService interface {
	CheckAndQuote(ctx context.Context, eventID, ticketCount int64) (*CapacityQuote, error)
	GetAllEvents(ctx context.Context) ([]entity.EventInventoryResponse, error)
	GetEvent(ctx context.Context, eventID int64) (*entity.EventInventoryResponse, error)
	GetVenue(ctx context.Context, venueID int64) (*entity.VenueInventoryResponse, error)
	Decrement(ctx context.Context, eventID, ticketCount int64) (applied bool, remaining int64, err error)
}

type BookingService interface {
	Submit(ctx context.Context, req *entity.BookingRequest) (*entity.BookingResponse, error)
}

type SettlementService interface {
	Settle(ctx context.Context, fact *entity.ReservationAccepted) error
	ReconcileStuckOrders(ctx context.Context, grace time.Duration) (int, error)
	GetOrderByRequestID(ctx context.Context, requestID string) (*entity.Order, error)
}
