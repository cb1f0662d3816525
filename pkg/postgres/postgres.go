package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/sathwikhbhat/ticket-booking-system/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			total_capacity BIGINT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			total_capacity BIGINT NOT NULL,
			left_capacity BIGINT NOT NULL CHECK (left_capacity >= 0),
			ticket_price NUMERIC(10,2) NOT NULL,
			venue_id INTEGER REFERENCES venues(id) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			address TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			dedup_key VARCHAR(64) NOT NULL,
			customer_id BIGINT NOT NULL,
			event_id BIGINT NOT NULL,
			ticket_count BIGINT NOT NULL,
			total_price NUMERIC(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'persisted',
			placed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// The unique index is what makes settlement idempotent; losing it
		// would silently allow double orders, so it is not optional.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_dedup_key ON orders(dedup_key)`,

		`CREATE INDEX IF NOT EXISTS idx_orders_event_id ON orders(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_events_venue_id ON events(venue_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
