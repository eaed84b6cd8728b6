package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableSeat() Seat {
	return Seat{
		SeatNumber: "12C",
		Class:      SeatClassEconomy,
		Status:     SeatStatusAvailable,
		Price:      150.00,
	}
}

func TestSeatReserve_Available(t *testing.T) {
	seat := availableSeat()
	now := time.Now()

	err := seat.Reserve(now, 10*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, SeatStatusReserved, seat.Status)
	require.NotNil(t, seat.ReservedUntil)
	assert.Equal(t, now.Add(10*time.Minute), *seat.ReservedUntil)
}

func TestSeatReserve_ActiveHold(t *testing.T) {
	seat := availableSeat()
	now := time.Now()
	require.NoError(t, seat.Reserve(now, 10*time.Minute))

	err := seat.Reserve(now.Add(time.Minute), 10*time.Minute)

	assert.ErrorIs(t, err, ErrAlreadyReserved)
	assert.True(t, IsConflict(err))
	assert.Equal(t, SeatStatusReserved, seat.Status)
}

func TestSeatReserve_ExpiredHold(t *testing.T) {
	// Hold lapsed one second before the call: the seat is treated as
	// available and gets a fresh hold.
	seat := availableSeat()
	now := time.Now()
	until := now.Add(-time.Second)
	seat.Status = SeatStatusReserved
	seat.ReservedUntil = &until

	err := seat.Reserve(now, 10*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, SeatStatusReserved, seat.Status)
	require.NotNil(t, seat.ReservedUntil)
	assert.Equal(t, now.Add(10*time.Minute), *seat.ReservedUntil)
}

func TestSeatReserve_Booked(t *testing.T) {
	seat := availableSeat()
	require.NoError(t, seat.Book())

	err := seat.Reserve(time.Now(), 10*time.Minute)

	assert.ErrorIs(t, err, ErrNotAvailable)
	assert.Equal(t, SeatStatusBooked, seat.Status)
}

func TestSeatBook_FromAvailable(t *testing.T) {
	seat := availableSeat()

	err := seat.Book()

	require.NoError(t, err)
	assert.Equal(t, SeatStatusBooked, seat.Status)
	assert.Nil(t, seat.ReservedUntil)
}

func TestSeatBook_FromReserved(t *testing.T) {
	seat := availableSeat()
	require.NoError(t, seat.Reserve(time.Now(), 10*time.Minute))

	err := seat.Book()

	require.NoError(t, err)
	assert.Equal(t, SeatStatusBooked, seat.Status)
	assert.Nil(t, seat.ReservedUntil)
}

func TestSeatBook_AlreadyBooked(t *testing.T) {
	seat := availableSeat()
	require.NoError(t, seat.Book())

	err := seat.Book()

	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.True(t, IsConflict(err))
	assert.Equal(t, SeatStatusBooked, seat.Status)
}

func TestSeatRelease(t *testing.T) {
	seat := availableSeat()
	require.NoError(t, seat.Reserve(time.Now(), 10*time.Minute))

	err := seat.Release()

	require.NoError(t, err)
	assert.Equal(t, SeatStatusAvailable, seat.Status)
	assert.Nil(t, seat.ReservedUntil)
}

func TestSeatRelease_NotReserved(t *testing.T) {
	seat := availableSeat()

	assert.ErrorIs(t, seat.Release(), ErrNotReserved)

	require.NoError(t, seat.Book())
	assert.ErrorIs(t, seat.Release(), ErrNotReserved)
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Minute)

	tests := []struct {
		name     string
		status   SeatStatus
		until    *time.Time
		expected SeatStatus
	}{
		{"available", SeatStatusAvailable, nil, SeatStatusAvailable},
		{"active hold", SeatStatusReserved, &future, SeatStatusReserved},
		{"lapsed hold", SeatStatusReserved, &past, SeatStatusAvailable},
		{"booked", SeatStatusBooked, nil, SeatStatusBooked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seat := Seat{Status: tt.status, ReservedUntil: tt.until}
			assert.Equal(t, tt.expected, seat.EffectiveStatus(now))
		})
	}
}

func TestSplitSeatNumber(t *testing.T) {
	tests := []struct {
		number  string
		row     int
		column  string
		wantErr bool
	}{
		{"1A", 1, "A", false},
		{"25F", 25, "F", false},
		{"33B", 33, "B", false},
		{"12", 0, "", true},
		{"C", 0, "", true},
		{"", 0, "", true},
		{"12c", 0, "", true},
		{"0A", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			row, col, err := SplitSeatNumber(tt.number)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.column, col)
		})
	}
}

func TestParseSeatClass(t *testing.T) {
	class, err := ParseSeatClass("business")
	require.NoError(t, err)
	assert.Equal(t, SeatClassBusiness, class)

	_, err = ParseSeatClass("premium")
	assert.Error(t, err)
}
