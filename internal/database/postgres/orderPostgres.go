package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (dedup_key, customer_id, event_id, ticket_count, total_price, status, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		order.DedupKey,
		order.CustomerID,
		order.EventID,
		order.TicketCount,
		order.TotalPrice,
		order.Status,
		now,
	).Scan(&order.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateReservation
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	order.PlacedAt = now
	return nil
}

func (r *orderRepository) GetByDedupKey(ctx context.Context, dedupKey string) (*entity.Order, error) {
	query := `
		SELECT id, dedup_key, customer_id, event_id, ticket_count, total_price, status, placed_at
		FROM orders
		WHERE dedup_key = $1
	`

	var order entity.Order
	err := r.db.QueryRowContext(ctx, query, dedupKey).Scan(
		&order.ID,
		&order.DedupKey,
		&order.CustomerID,
		&order.EventID,
		&order.TicketCount,
		&order.TotalPrice,
		&order.Status,
		&order.PlacedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrOrderNotFound
	}

	return nil
}

// SettleDecrement applies the conditional decrement and records the outcome
// on the order inside one transaction. The predicate `left_capacity >= n`
// is what prevents overselling no matter how many admissions raced ahead.
func (r *orderRepository) SettleDecrement(ctx context.Context, orderID, eventID, ticketCount int64) (bool, int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Claim the order before touching the capacity counter. A redelivered
	// fact and the reconcile sweep can both observe the same persisted
	// order; the row lock taken here serializes them, and the loser sees a
	// non-persisted status and backs off without decrementing.
	query := `UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`
	result, err := tx.ExecContext(ctx, query,
		entity.OrderStatusDecremented, orderID, entity.OrderStatusPersisted)
	if err != nil {
		return false, 0, fmt.Errorf("failed to claim order: %w", err)
	}
	claimed, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if claimed == 0 {
		return false, 0, entity.ErrOrderAlreadySettled
	}

	applied := true
	var remaining int64
	query = `
		UPDATE events
		SET left_capacity = left_capacity - $2
		WHERE id = $1 AND left_capacity >= $2
		RETURNING left_capacity
	`
	err = tx.QueryRowContext(ctx, query, eventID, ticketCount).Scan(&remaining)
	if err == sql.ErrNoRows {
		applied = false
		query = `SELECT left_capacity FROM events WHERE id = $1`
		err = tx.QueryRowContext(ctx, query, eventID).Scan(&remaining)
		if err == sql.ErrNoRows {
			return false, 0, entity.ErrEventNotFound
		}
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to decrement capacity: %w", err)
	}

	if !applied {
		query = `UPDATE orders SET status = $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, query, entity.OrderStatusOversold, orderID); err != nil {
			return false, 0, fmt.Errorf("failed to update order status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return applied, remaining, nil
}

func (r *orderRepository) GetStuckOrders(ctx context.Context, before time.Time) ([]*entity.Order, error) {
	query := `
		SELECT id, dedup_key, customer_id, event_id, ticket_count, total_price, status, placed_at
		FROM orders
		WHERE status = 'persisted' AND placed_at < $1
		ORDER BY placed_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query stuck orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.DedupKey,
			&order.CustomerID,
			&order.EventID,
			&order.TicketCount,
			&order.TotalPrice,
			&order.Status,
			&order.PlacedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
