package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// cabinSection describes one block of the standard aircraft configuration
type cabinSection struct {
	class    SeatClass
	firstRow int
	lastRow  int
	columns  []string
}

// Standard configuration: economy rows 1-25 (A-F), business rows 26-30
// (A-D), first rows 31-33 (A-B).
var cabinLayout = []cabinSection{
	{SeatClassEconomy, 1, 25, []string{"A", "B", "C", "D", "E", "F"}},
	{SeatClassBusiness, 26, 30, []string{"A", "B", "C", "D"}},
	{SeatClassFirst, 31, 33, []string{"A", "B"}},
}

// BuildSeats produces the full seat list for a flight. Economy seats are
// always generated; business and first only when the flight offers a
// positive fare for that cabin. Each seat's price is fixed from the
// flight's fare at this point and never changes afterwards.
func BuildSeats(flight *Flight) []Seat {
	var seats []Seat
	for _, section := range cabinLayout {
		fare := flight.Fare(section.class)
		if section.class != SeatClassEconomy && fare <= 0 {
			continue
		}
		for row := section.firstRow; row <= section.lastRow; row++ {
			for _, col := range section.columns {
				seats = append(seats, Seat{
					ID:         uuid.New(),
					FlightID:   flight.ID,
					SeatNumber: fmt.Sprintf("%d%s", row, col),
					Class:      section.class,
					Status:     SeatStatusAvailable,
					Price:      fare,
				})
			}
		}
	}
	return seats
}
