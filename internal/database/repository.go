package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cx-tal-miterani/seat-inventory/internal/catalog"
	"github.com/cx-tal-miterani/seat-inventory/internal/inventory"
)

// Repository handles all database operations. It implements
// inventory.Store and catalog.Catalog on top of a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Migrate creates the flights and seats tables if they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS flights (
			id UUID PRIMARY KEY,
			flight_number TEXT NOT NULL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			departure_time TIMESTAMPTZ NOT NULL,
			arrival_time TIMESTAMPTZ NOT NULL,
			economy_fare DOUBLE PRECISION NOT NULL DEFAULT 0,
			business_fare DOUBLE PRECISION NOT NULL DEFAULT 0,
			first_fare DOUBLE PRECISION NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS seats (
			id UUID PRIMARY KEY,
			flight_id UUID NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
			seat_number TEXT NOT NULL,
			class TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'available',
			price DOUBLE PRECISION NOT NULL,
			reserved_until TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (flight_id, seat_number)
		);

		CREATE INDEX IF NOT EXISTS idx_seats_flight_class ON seats (flight_id, class);
		CREATE INDEX IF NOT EXISTS idx_seats_reserved_until ON seats (reserved_until) WHERE status = 'reserved';
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// --- Flight Operations ---

// GetFlights returns all flights ordered by departure time
func (r *Repository) GetFlights(ctx context.Context) ([]inventory.Flight, error) {
	query := `
		SELECT id, flight_number, origin, destination, departure_time, arrival_time,
		       economy_fare, business_fare, first_fare
		FROM flights
		ORDER BY departure_time ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []inventory.Flight
	for rows.Next() {
		var f inventory.Flight
		err := rows.Scan(
			&f.ID, &f.FlightNumber, &f.Origin, &f.Destination,
			&f.DepartureTime, &f.ArrivalTime,
			&f.EconomyFare, &f.BusinessFare, &f.FirstFare,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}

	return flights, nil
}

// GetFlightByID returns a flight by ID
func (r *Repository) GetFlightByID(ctx context.Context, id uuid.UUID) (*inventory.Flight, error) {
	query := `
		SELECT id, flight_number, origin, destination, departure_time, arrival_time,
		       economy_fare, business_fare, first_fare
		FROM flights
		WHERE id = $1
	`

	var f inventory.Flight
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.FlightNumber, &f.Origin, &f.Destination,
		&f.DepartureTime, &f.ArrivalTime,
		&f.EconomyFare, &f.BusinessFare, &f.FirstFare,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	return &f, nil
}

// SeedSampleFlights inserts demo flights when the catalog is empty
func (r *Repository) SeedSampleFlights(ctx context.Context) error {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM flights`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count flights: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, f := range catalog.SampleFlights() {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO flights (id, flight_number, origin, destination, departure_time,
			                     arrival_time, economy_fare, business_fare, first_fare)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, f.ID, f.FlightNumber, f.Origin, f.Destination, f.DepartureTime,
			f.ArrivalTime, f.EconomyFare, f.BusinessFare, f.FirstFare)
		if err != nil {
			return fmt.Errorf("failed to seed flight %s: %w", f.FlightNumber, err)
		}
	}
	return nil
}

// --- Seat Operations (inventory.Store) ---

// InsertSeats bulk-inserts generated seats in a single COPY
func (r *Repository) InsertSeats(ctx context.Context, seats []inventory.Seat) (int, error) {
	rows := make([][]interface{}, len(seats))
	for i, seat := range seats {
		rows[i] = []interface{}{
			seat.ID, seat.FlightID, seat.SeatNumber, string(seat.Class),
			string(inventory.SeatStatusAvailable), seat.Price,
		}
	}

	copied, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"seats"},
		[]string{"id", "flight_id", "seat_number", "class", "status", "price"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert seats: %w", err)
	}

	return int(copied), nil
}

// HasSeats reports whether any seats exist for a flight
func (r *Repository) HasSeats(ctx context.Context, flightID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM seats WHERE flight_id = $1)
	`, flightID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check seats: %w", err)
	}
	return exists, nil
}

// SeatsByClass returns a flight's seats for one cabin class. The rows
// are read under a shared lock so concurrent lifecycle transitions
// cannot produce a torn view.
func (r *Repository) SeatsByClass(ctx context.Context, flightID uuid.UUID, class inventory.SeatClass) ([]inventory.Seat, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT id, flight_id, seat_number, class, status, price, reserved_until,
		       created_at, updated_at
		FROM seats
		WHERE flight_id = $1 AND class = $2
		ORDER BY seat_number
		FOR SHARE
	`

	rows, err := tx.Query(ctx, query, flightID, string(class))
	if err != nil {
		return nil, fmt.Errorf("failed to query seats: %w", err)
	}

	var seats []inventory.Seat
	for rows.Next() {
		var s inventory.Seat
		err := rows.Scan(
			&s.ID, &s.FlightID, &s.SeatNumber, &s.Class, &s.Status,
			&s.Price, &s.ReservedUntil, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit read: %w", err)
	}
	return seats, nil
}

// UpdateSeat runs a read-modify-write on one seat row under SELECT FOR
// UPDATE. A mutate error rolls the transaction back and is returned
// unwrapped so callers can classify it.
func (r *Repository) UpdateSeat(ctx context.Context, seatID uuid.UUID, mutate func(*inventory.Seat) error) (*inventory.Seat, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT id, flight_id, seat_number, class, status, price, reserved_until,
		       created_at, updated_at
		FROM seats
		WHERE id = $1
		FOR UPDATE
	`

	var s inventory.Seat
	err = tx.QueryRow(ctx, query, seatID).Scan(
		&s.ID, &s.FlightID, &s.SeatNumber, &s.Class, &s.Status,
		&s.Price, &s.ReservedUntil, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, inventory.ErrSeatNotFound
		}
		return nil, fmt.Errorf("failed to lock seat: %w", err)
	}

	if err := mutate(&s); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE seats SET status = $1, reserved_until = $2, updated_at = NOW()
		WHERE id = $3
	`, string(s.Status), s.ReservedUntil, s.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update seat: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit seat update: %w", err)
	}
	return &s, nil
}

// ReleaseExpiredHolds returns every seat whose hold lapsed before now
// back to available in one bulk update
func (r *Repository) ReleaseExpiredHolds(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE seats
		SET status = 'available', reserved_until = NULL, updated_at = NOW()
		WHERE status = 'reserved' AND reserved_until < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to release expired holds: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
