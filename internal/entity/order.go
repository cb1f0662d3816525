package entity

import (
	"time"
)

type OrderStatus string

const (
	// OrderStatusPersisted means the order row exists but the capacity
	// decrement has not been applied yet.
	OrderStatusPersisted   OrderStatus = "persisted"
	OrderStatusDecremented OrderStatus = "decremented"
	// OrderStatusOversold means the event ran out of capacity between
	// admission and settlement; the row is kept for reconciliation.
	OrderStatusOversold OrderStatus = "oversold"
)

type Order struct {
	ID          int64       `json:"id" db:"id"`
	DedupKey    string      `json:"dedup_key" db:"dedup_key"`
	CustomerID  int64       `json:"customer_id" db:"customer_id"`
	EventID     int64       `json:"event_id" db:"event_id"`
	TicketCount int64       `json:"ticket_count" db:"ticket_count"`
	TotalPrice  float64     `json:"total_price" db:"total_price"`
	Status      OrderStatus `json:"status" db:"status"`
	PlacedAt    time.Time   `json:"placed_at" db:"placed_at"`
}
