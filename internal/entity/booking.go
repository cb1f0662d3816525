package entity

type BookingRequest struct {
	UserID      int64  `json:"userId" binding:"required"`
	EventID     int64  `json:"eventId" binding:"required"`
	TicketCount int64  `json:"ticketCount" binding:"required,gt=0"`
	RequestID   string `json:"requestId,omitempty"`
}

// BookingResponse is an admission acknowledgment: the reservation was
// accepted and published, not that the order already exists.
type BookingResponse struct {
	UserID      int64   `json:"userId"`
	EventID     int64   `json:"eventId"`
	TicketCount int64   `json:"ticketCount"`
	TotalPrice  float64 `json:"totalPrice"`
	RequestID   string  `json:"requestId"`
}

// ReservationAccepted is the fact published to the event bus. RequestID is
// the dedup key: redelivery of the same fact carries the same RequestID.
type ReservationAccepted struct {
	RequestID   string  `json:"request_id"`
	UserID      int64   `json:"user_id"`
	EventID     int64   `json:"event_id"`
	TicketCount int64   `json:"ticket_count"`
	TotalPrice  float64 `json:"total_price"`
}
