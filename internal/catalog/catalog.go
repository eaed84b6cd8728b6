package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cx-tal-miterani/seat-inventory/internal/inventory"
)

var ErrFlightNotFound = errors.New("flight not found")

// Catalog provides read-only flight identity and fares to the seat
// inventory. Flights come from elsewhere; this core never writes them.
type Catalog interface {
	GetFlights(ctx context.Context) ([]inventory.Flight, error)
	GetFlightByID(ctx context.Context, id uuid.UUID) (*inventory.Flight, error)
}

// Memory is an in-memory Catalog used by tests and the database-less
// server mode
type Memory struct {
	mu      sync.RWMutex
	flights map[uuid.UUID]inventory.Flight
	order   []uuid.UUID
}

// NewMemory creates a catalog pre-loaded with the given flights
func NewMemory(flights ...inventory.Flight) *Memory {
	m := &Memory{flights: make(map[uuid.UUID]inventory.Flight)}
	for _, f := range flights {
		m.flights[f.ID] = f
		m.order = append(m.order, f.ID)
	}
	return m
}

// GetFlights returns all flights in insertion order
func (m *Memory) GetFlights(ctx context.Context) ([]inventory.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	flights := make([]inventory.Flight, 0, len(m.order))
	for _, id := range m.order {
		flights = append(flights, m.flights[id])
	}
	return flights, nil
}

// GetFlightByID returns a flight by ID
func (m *Memory) GetFlightByID(ctx context.Context, id uuid.UUID) (*inventory.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.flights[id]
	if !ok {
		return nil, ErrFlightNotFound
	}
	return &f, nil
}

// SampleFlights returns demo flights covering the three fare shapes:
// all cabins, no first class, economy only.
func SampleFlights() []inventory.Flight {
	now := time.Now()
	return []inventory.Flight{
		{
			ID:            uuid.New(),
			FlightNumber:  "AA123",
			Origin:        "New York (JFK)",
			Destination:   "Los Angeles (LAX)",
			DepartureTime: now.Add(24 * time.Hour),
			ArrivalTime:   now.Add(30 * time.Hour),
			EconomyFare:   150.00,
			BusinessFare:  450.00,
			FirstFare:     900.00,
		},
		{
			ID:            uuid.New(),
			FlightNumber:  "UA456",
			Origin:        "Chicago (ORD)",
			Destination:   "Miami (MIA)",
			DepartureTime: now.Add(48 * time.Hour),
			ArrivalTime:   now.Add(52 * time.Hour),
			EconomyFare:   200.00,
			BusinessFare:  550.00,
		},
		{
			ID:            uuid.New(),
			FlightNumber:  "DL789",
			Origin:        "San Francisco (SFO)",
			Destination:   "Seattle (SEA)",
			DepartureTime: now.Add(12 * time.Hour),
			ArrivalTime:   now.Add(14 * time.Hour),
			EconomyFare:   120.00,
		},
	}
}
