package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store. It serializes all writers behind one
// mutex, which satisfies the per-seat exclusivity UpdateSeat requires.
// Used by tests and by the server when no database is configured.
type MemStore struct {
	mu    sync.RWMutex
	seats map[uuid.UUID]*Seat
	// taken tracks (flight, seat number) pairs to keep them unique
	taken map[uuid.UUID]map[string]bool
}

// NewMemStore creates an empty MemStore
func NewMemStore() *MemStore {
	return &MemStore{
		seats: make(map[uuid.UUID]*Seat),
		taken: make(map[uuid.UUID]map[string]bool),
	}
}

// InsertSeats adds a batch of seats, rejecting the whole batch if any
// seat number already exists on its flight
func (m *MemStore) InsertSeats(ctx context.Context, seats []Seat) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, seat := range seats {
		if m.taken[seat.FlightID][seat.SeatNumber] {
			return 0, fmt.Errorf("duplicate seat %s on flight %s", seat.SeatNumber, seat.FlightID)
		}
	}

	now := time.Now()
	for _, seat := range seats {
		seat.CreatedAt = now
		seat.UpdatedAt = now
		stored := seat
		m.seats[seat.ID] = &stored
		if m.taken[seat.FlightID] == nil {
			m.taken[seat.FlightID] = make(map[string]bool)
		}
		m.taken[seat.FlightID][seat.SeatNumber] = true
	}
	return len(seats), nil
}

// HasSeats reports whether a flight's inventory has been generated
func (m *MemStore) HasSeats(ctx context.Context, flightID uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.taken[flightID]) > 0, nil
}

// SeatsByClass returns copies of a flight's seats for one cabin class,
// ordered by row then column
func (m *MemStore) SeatsByClass(ctx context.Context, flightID uuid.UUID, class SeatClass) ([]Seat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var seats []Seat
	for _, seat := range m.seats {
		if seat.FlightID == flightID && seat.Class == class {
			seats = append(seats, *seat)
		}
	}
	sort.Slice(seats, func(i, j int) bool {
		ri, ci, _ := SplitSeatNumber(seats[i].SeatNumber)
		rj, cj, _ := SplitSeatNumber(seats[j].SeatNumber)
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	})
	return seats, nil
}

// UpdateSeat applies mutate to a copy of the seat and commits the copy
// only when mutate succeeds
func (m *MemStore) UpdateSeat(ctx context.Context, seatID uuid.UUID, mutate func(*Seat) error) (*Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.seats[seatID]
	if !ok {
		return nil, ErrSeatNotFound
	}

	seat := *stored
	if err := mutate(&seat); err != nil {
		return nil, err
	}

	seat.UpdatedAt = time.Now()
	*stored = seat
	result := seat
	return &result, nil
}

// ReleaseExpiredHolds returns every lapsed hold to available
func (m *MemStore) ReleaseExpiredHolds(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, seat := range m.seats {
		if seat.HoldExpired(now) {
			seat.Status = SeatStatusAvailable
			seat.ReservedUntil = nil
			seat.UpdatedAt = now
			count++
		}
	}
	return count, nil
}
