package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) (*Service, *MemStore, *Flight) {
	t.Helper()
	store := NewMemStore()
	flight := &Flight{
		ID:           uuid.New(),
		FlightNumber: "AA123",
		EconomyFare:  150.00,
		BusinessFare: 450.00,
		FirstFare:    900.00,
	}
	return NewService(store), store, flight
}

func generatedSeat(t *testing.T, svc *Service, flight *Flight, seatNumber string) Seat {
	t.Helper()
	seats, err := svc.store.SeatsByClass(context.Background(), flight.ID, SeatClassEconomy)
	require.NoError(t, err)
	for _, seat := range seats {
		if seat.SeatNumber == seatNumber {
			return seat
		}
	}
	t.Fatalf("seat %s not found", seatNumber)
	return Seat{}
}

func TestServiceGenerateSeats(t *testing.T) {
	svc, store, flight := setupTestService(t)
	ctx := context.Background()

	count, err := svc.GenerateSeats(ctx, flight)

	require.NoError(t, err)
	assert.Equal(t, 176, count)

	has, err := svc.HasSeats(ctx, flight.ID)
	require.NoError(t, err)
	assert.True(t, has)

	// Running again for the same flight violates seat number uniqueness
	_, err = svc.GenerateSeats(ctx, flight)
	assert.Error(t, err)

	economy, err := store.SeatsByClass(ctx, flight.ID, SeatClassEconomy)
	require.NoError(t, err)
	assert.Len(t, economy, 150)
}

func TestServiceSeatMap(t *testing.T) {
	svc, _, flight := setupTestService(t)
	ctx := context.Background()

	_, err := svc.GenerateSeats(ctx, flight)
	require.NoError(t, err)

	seatMap, err := svc.SeatMap(ctx, flight.ID, SeatClassBusiness)

	require.NoError(t, err)
	require.Len(t, seatMap, 5)
	for row := 26; row <= 30; row++ {
		require.Len(t, seatMap[row], 4)
		assert.Equal(t, 450.00, seatMap[row]["A"].Price)
		assert.Equal(t, SeatStatusAvailable, seatMap[row]["A"].Status)
	}
}

func TestServiceReserve(t *testing.T) {
	svc, _, flight := setupTestService(t)
	ctx := context.Background()
	_, err := svc.GenerateSeats(ctx, flight)
	require.NoError(t, err)

	seat := generatedSeat(t, svc, flight, "1A")
	before := time.Now()

	res, err := svc.Reserve(ctx, seat.ID, 0)

	require.NoError(t, err)
	assert.Equal(t, seat.ID, res.SeatID)
	assert.Equal(t, "1A", res.SeatNumber)
	assert.WithinDuration(t, before.Add(DefaultHoldDuration), res.ReservedUntil, 2*time.Second)

	// A second attempt on the active hold conflicts
	_, err = svc.Reserve(ctx, seat.ID, 0)
	assert.ErrorIs(t, err, ErrAlreadyReserved)
}

func TestServiceReserve_NotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Reserve(context.Background(), uuid.New(), time.Minute)

	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestServiceReserve_ExpiredHold(t *testing.T) {
	svc, store, flight := setupTestService(t)
	ctx := context.Background()
	_, err := svc.GenerateSeats(ctx, flight)
	require.NoError(t, err)

	seat := generatedSeat(t, svc, flight, "1A")

	// Backdate the hold so it lapsed one second ago
	_, err = store.UpdateSeat(ctx, seat.ID, func(s *Seat) error {
		until := time.Now().Add(-time.Second)
		s.Status = SeatStatusReserved
		s.ReservedUntil = &until
		return nil
	})
	require.NoError(t, err)

	res, err := svc.Reserve(ctx, seat.ID, 10*time.Minute)

	require.NoError(t, err)
	assert.True(t, res.ReservedUntil.After(time.Now()))
}

func TestServiceBookAndRelease(t *testing.T) {
	svc, _, flight := setupTestService(t)
	ctx := context.Background()
	_, err := svc.GenerateSeats(ctx, flight)
	require.NoError(t, err)

	reserved := generatedSeat(t, svc, flight, "1A")
	_, err = svc.Reserve(ctx, reserved.ID, time.Minute)
	require.NoError(t, err)

	// Booking straight from available is allowed
	direct := generatedSeat(t, svc, flight, "1B")
	booked, err := svc.Book(ctx, direct.ID)
	require.NoError(t, err)
	assert.Equal(t, SeatStatusBooked, booked.Status)
	assert.Nil(t, booked.ReservedUntil)

	// Booking from reserved clears the hold
	booked, err = svc.Book(ctx, reserved.ID)
	require.NoError(t, err)
	assert.Equal(t, SeatStatusBooked, booked.Status)
	assert.Nil(t, booked.ReservedUntil)

	// A booked seat stays booked
	_, err = svc.Book(ctx, reserved.ID)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	_, err = svc.Release(ctx, reserved.ID)
	assert.ErrorIs(t, err, ErrNotReserved)

	// Release only works on reserved seats
	other := generatedSeat(t, svc, flight, "1C")
	_, err = svc.Release(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotReserved)

	_, err = svc.Reserve(ctx, other.ID, time.Minute)
	require.NoError(t, err)
	released, err := svc.Release(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, SeatStatusAvailable, released.Status)
	assert.Nil(t, released.ReservedUntil)
}

func TestServiceSweepExpired(t *testing.T) {
	svc, store, flight := setupTestService(t)
	ctx := context.Background()
	_, err := svc.GenerateSeats(ctx, flight)
	require.NoError(t, err)

	// Two lapsed holds, one active hold, one booked seat
	for _, seatNumber := range []string{"1A", "1B"} {
		seat := generatedSeat(t, svc, flight, seatNumber)
		_, err = store.UpdateSeat(ctx, seat.ID, func(s *Seat) error {
			until := time.Now().Add(-time.Minute)
			s.Status = SeatStatusReserved
			s.ReservedUntil = &until
			return nil
		})
		require.NoError(t, err)
	}
	active := generatedSeat(t, svc, flight, "2A")
	_, err = svc.Reserve(ctx, active.ID, 10*time.Minute)
	require.NoError(t, err)
	bookedSeat := generatedSeat(t, svc, flight, "2B")
	_, err = svc.Book(ctx, bookedSeat.ID)
	require.NoError(t, err)

	count, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// The sweep is idempotent
	count, err = svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	seatMap, err := svc.SeatMap(ctx, flight.ID, SeatClassEconomy)
	require.NoError(t, err)
	assert.Equal(t, SeatStatusAvailable, seatMap[1]["A"].Status)
	assert.Equal(t, SeatStatusAvailable, seatMap[1]["B"].Status)
	assert.Equal(t, SeatStatusReserved, seatMap[2]["A"].Status)
	assert.Equal(t, SeatStatusBooked, seatMap[2]["B"].Status)
}

func TestServiceReserve_Concurrent(t *testing.T) {
	svc, _, flight := setupTestService(t)
	ctx := context.Background()
	_, err := svc.GenerateSeats(ctx, flight)
	require.NoError(t, err)

	seat := generatedSeat(t, svc, flight, "1A")

	const attempts = 50
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(ctx, seat.ID, 10*time.Minute)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	seatMap, err := svc.SeatMap(ctx, flight.ID, SeatClassEconomy)
	require.NoError(t, err)
	assert.Equal(t, SeatStatusReserved, seatMap[1]["A"].Status)
}
