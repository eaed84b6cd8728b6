package inventory

import (
	"fmt"
	"strconv"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// SeatClass represents the cabin class of a seat
type SeatClass string

const (
	SeatClassEconomy  SeatClass = "economy"
	SeatClassBusiness SeatClass = "business"
	SeatClassFirst    SeatClass = "first"
)

// ParseSeatClass validates a seat class string
func ParseSeatClass(s string) (SeatClass, error) {
	switch SeatClass(s) {
	case SeatClassEconomy, SeatClassBusiness, SeatClassFirst:
		return SeatClass(s), nil
	}
	return "", fmt.Errorf("unknown seat class: %q", s)
}

// SeatStatus represents the status of a seat
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusReserved  SeatStatus = "reserved"
	SeatStatusBooked    SeatStatus = "booked"
)

// Flight represents a flight in the catalog. The inventory core reads
// flight identity and fares at seat-generation time and nothing else.
type Flight struct {
	ID            uuid.UUID `json:"id"`
	FlightNumber  string    `json:"flightNumber"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	EconomyFare   float64   `json:"economyFare"`
	BusinessFare  float64   `json:"businessFare"`
	FirstFare     float64   `json:"firstFare"`
}

// Fare returns the flight's fare for a seat class. A zero fare means
// the class is not offered on this flight.
func (f *Flight) Fare(class SeatClass) float64 {
	switch class {
	case SeatClassBusiness:
		return f.BusinessFare
	case SeatClassFirst:
		return f.FirstFare
	default:
		return f.EconomyFare
	}
}

// Seat represents one bookable unit of flight inventory
type Seat struct {
	ID            uuid.UUID  `json:"id"`
	FlightID      uuid.UUID  `json:"flightId"`
	SeatNumber    string     `json:"seatNumber"`
	Class         SeatClass  `json:"class"`
	Status        SeatStatus `json:"status"`
	Price         float64    `json:"price"`
	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// HoldExpired reports whether the seat carries a reservation whose hold
// has already lapsed. Both the reserve operation and the sweeper decide
// expiry through this one predicate.
func (s *Seat) HoldExpired(now time.Time) bool {
	return s.Status == SeatStatusReserved && s.ReservedUntil != nil && now.After(*s.ReservedUntil)
}

// EffectiveStatus returns the status the seat should be treated as,
// after accounting for hold expiry. A stored "reserved" is never
// trusted on its own.
func (s *Seat) EffectiveStatus(now time.Time) SeatStatus {
	if s.HoldExpired(now) {
		return SeatStatusAvailable
	}
	return s.Status
}

// Reserve applies the available -> reserved transition, placing a hold
// until now+hold. A reservation whose hold has lapsed is folded back to
// available and re-reserved within the same transition.
func (s *Seat) Reserve(now time.Time, hold time.Duration) error {
	if s.Status != SeatStatusAvailable {
		if !s.HoldExpired(now) {
			if s.Status == SeatStatusReserved {
				return ErrAlreadyReserved
			}
			return ErrNotAvailable
		}
		s.Status = SeatStatusAvailable
		s.ReservedUntil = nil
	}

	until := now.Add(hold)
	s.Status = SeatStatusReserved
	s.ReservedUntil = &until
	return nil
}

// Book confirms the seat. Booking is allowed from available as well as
// reserved; booked is terminal.
func (s *Seat) Book() error {
	if s.Status == SeatStatusBooked {
		return ErrAlreadyBooked
	}
	s.Status = SeatStatusBooked
	s.ReservedUntil = nil
	return nil
}

// Release returns a reserved seat to available
func (s *Seat) Release() error {
	if s.Status != SeatStatusReserved {
		return ErrNotReserved
	}
	s.Status = SeatStatusAvailable
	s.ReservedUntil = nil
	return nil
}

// SplitSeatNumber splits a seat number like "12C" into its row and
// column parts.
func SplitSeatNumber(number string) (int, string, error) {
	i := 0
	for i < len(number) && unicode.IsDigit(rune(number[i])) {
		i++
	}
	if i == 0 || i == len(number) {
		return 0, "", fmt.Errorf("malformed seat number: %q", number)
	}

	row, err := strconv.Atoi(number[:i])
	if err != nil || row <= 0 {
		return 0, "", fmt.Errorf("malformed seat number: %q", number)
	}
	for _, r := range number[i:] {
		if r < 'A' || r > 'Z' {
			return 0, "", fmt.Errorf("malformed seat number: %q", number)
		}
	}
	return row, number[i:], nil
}
