package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeatMap(t *testing.T) {
	until := time.Now().Add(10 * time.Minute)
	seats := []Seat{
		{ID: uuid.New(), SeatNumber: "1A", Status: SeatStatusAvailable, Price: 150.00},
		{ID: uuid.New(), SeatNumber: "1B", Status: SeatStatusReserved, Price: 150.00, ReservedUntil: &until},
		{ID: uuid.New(), SeatNumber: "2A", Status: SeatStatusBooked, Price: 150.00},
	}

	seatMap, err := BuildSeatMap(seats)

	require.NoError(t, err)
	require.Len(t, seatMap, 2)
	require.Len(t, seatMap[1], 2)
	require.Len(t, seatMap[2], 1)

	assert.Equal(t, seats[0].ID, seatMap[1]["A"].ID)
	assert.Equal(t, "1A", seatMap[1]["A"].SeatNumber)
	assert.Equal(t, SeatStatusAvailable, seatMap[1]["A"].Status)
	assert.Nil(t, seatMap[1]["A"].ReservedUntil)

	assert.Equal(t, SeatStatusReserved, seatMap[1]["B"].Status)
	require.NotNil(t, seatMap[1]["B"].ReservedUntil)
	assert.Equal(t, until, *seatMap[1]["B"].ReservedUntil)

	assert.Equal(t, SeatStatusBooked, seatMap[2]["A"].Status)
}

func TestBuildSeatMap_Empty(t *testing.T) {
	seatMap, err := BuildSeatMap(nil)

	require.NoError(t, err)
	assert.Empty(t, seatMap)
}

func TestBuildSeatMap_MalformedSeatNumber(t *testing.T) {
	seats := []Seat{{ID: uuid.New(), SeatNumber: "A1"}}

	_, err := BuildSeatMap(seats)

	assert.Error(t, err)
}
