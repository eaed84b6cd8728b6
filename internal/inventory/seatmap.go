package inventory

import (
	"time"

	"github.com/google/uuid"
)

// SeatView is a single seat as presented in the seat map
type SeatView struct {
	ID            uuid.UUID  `json:"id"`
	SeatNumber    string     `json:"seatNumber"`
	Status        SeatStatus `json:"status"`
	Price         float64    `json:"price"`
	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`
}

// SeatMap is a row -> column -> seat projection of a cabin
type SeatMap map[int]map[string]SeatView

// BuildSeatMap organizes seats into a row/column grid, deriving row and
// column by splitting each seat number into its numeric and alphabetic
// parts.
func BuildSeatMap(seats []Seat) (SeatMap, error) {
	seatMap := make(SeatMap)
	for _, seat := range seats {
		row, col, err := SplitSeatNumber(seat.SeatNumber)
		if err != nil {
			return nil, err
		}

		if seatMap[row] == nil {
			seatMap[row] = make(map[string]SeatView)
		}
		seatMap[row][col] = SeatView{
			ID:            seat.ID,
			SeatNumber:    seat.SeatNumber,
			Status:        seat.Status,
			Price:         seat.Price,
			ReservedUntil: seat.ReservedUntil,
		}
	}
	return seatMap, nil
}
