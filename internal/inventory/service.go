package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultHoldDuration is how long a reservation holds a seat when the
// caller does not ask for a specific duration.
const DefaultHoldDuration = 10 * time.Minute

// Store is the persistence collaborator for the seat inventory. All
// mutable seat state lives behind it; UpdateSeat is the single write
// path for lifecycle transitions and must execute the mutation as one
// atomic unit under an exclusive per-seat lock, rolling back entirely
// when the mutation fails.
type Store interface {
	// InsertSeats persists a batch of generated seats in one write
	InsertSeats(ctx context.Context, seats []Seat) (int, error)

	// HasSeats reports whether any seats exist for a flight
	HasSeats(ctx context.Context, flightID uuid.UUID) (bool, error)

	// SeatsByClass returns a flight's seats for one cabin class, read
	// under a shared lock so the view is consistent with concurrent
	// lifecycle operations
	SeatsByClass(ctx context.Context, flightID uuid.UUID, class SeatClass) ([]Seat, error)

	// UpdateSeat loads the seat under an exclusive lock, applies mutate,
	// and persists the result. A mutate error aborts the unit and leaves
	// the seat untouched. Returns ErrSeatNotFound for unknown ids.
	UpdateSeat(ctx context.Context, seatID uuid.UUID, mutate func(*Seat) error) (*Seat, error)

	// ReleaseExpiredHolds returns every seat whose hold lapsed before
	// now back to available in one bulk update, reporting the count
	ReleaseExpiredHolds(ctx context.Context, now time.Time) (int, error)
}

// Reservation is the result of a successful reserve operation
type Reservation struct {
	SeatID        uuid.UUID `json:"seatId"`
	FlightID      uuid.UUID `json:"flightId"`
	SeatNumber    string    `json:"seatNumber"`
	ReservedUntil time.Time `json:"reservedUntil"`
}

// SeatService defines the seat inventory operations exposed to the
// surrounding application layer
type SeatService interface {
	GenerateSeats(ctx context.Context, flight *Flight) (int, error)
	HasSeats(ctx context.Context, flightID uuid.UUID) (bool, error)
	SeatMap(ctx context.Context, flightID uuid.UUID, class SeatClass) (SeatMap, error)
	Reserve(ctx context.Context, seatID uuid.UUID, hold time.Duration) (*Reservation, error)
	Book(ctx context.Context, seatID uuid.UUID) (*Seat, error)
	Release(ctx context.Context, seatID uuid.UUID) (*Seat, error)
	SweepExpired(ctx context.Context) (int, error)
}

// Service implements SeatService on top of a Store
type Service struct {
	store Store
}

// NewService creates a new Service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GenerateSeats creates the full seat inventory for a flight. Callers
// are responsible for not generating twice for the same flight; check
// HasSeats first.
func (s *Service) GenerateSeats(ctx context.Context, flight *Flight) (int, error) {
	return s.store.InsertSeats(ctx, BuildSeats(flight))
}

// HasSeats reports whether a flight's inventory has been generated
func (s *Service) HasSeats(ctx context.Context, flightID uuid.UUID) (bool, error) {
	return s.store.HasSeats(ctx, flightID)
}

// SeatMap returns the current row/column grid for one cabin class
func (s *Service) SeatMap(ctx context.Context, flightID uuid.UUID, class SeatClass) (SeatMap, error) {
	seats, err := s.store.SeatsByClass(ctx, flightID, class)
	if err != nil {
		return nil, err
	}
	return BuildSeatMap(seats)
}

// Reserve places a temporary hold on a seat. An expired hold on the
// seat is treated as available and replaced in the same atomic unit.
func (s *Service) Reserve(ctx context.Context, seatID uuid.UUID, hold time.Duration) (*Reservation, error) {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}

	seat, err := s.store.UpdateSeat(ctx, seatID, func(seat *Seat) error {
		return seat.Reserve(time.Now(), hold)
	})
	if err != nil {
		return nil, err
	}

	return &Reservation{
		SeatID:        seat.ID,
		FlightID:      seat.FlightID,
		SeatNumber:    seat.SeatNumber,
		ReservedUntil: *seat.ReservedUntil,
	}, nil
}

// Book confirms a seat from available or reserved
func (s *Service) Book(ctx context.Context, seatID uuid.UUID) (*Seat, error) {
	return s.store.UpdateSeat(ctx, seatID, func(seat *Seat) error {
		return seat.Book()
	})
}

// Release returns a reserved seat to available
func (s *Service) Release(ctx context.Context, seatID uuid.UUID) (*Seat, error) {
	return s.store.UpdateSeat(ctx, seatID, func(seat *Seat) error {
		return seat.Release()
	})
}

// SweepExpired reclaims every seat whose hold has lapsed and returns
// the count. Safe to run concurrently with itself and with reserve,
// which performs the same expiry check on its own.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	return s.store.ReleaseExpiredHolds(ctx, time.Now())
}
