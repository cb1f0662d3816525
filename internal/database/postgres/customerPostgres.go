package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT id, name, email, address FROM customers WHERE id = $1`

	var customer entity.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Address,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}
