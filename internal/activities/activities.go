package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/cx-tal-miterani/seat-inventory/internal/inventory"
)

// Activities holds the seat inventory activities executed by the worker
type Activities struct {
	seats inventory.SeatService
}

// NewActivities creates the activity set
func NewActivities(seats inventory.SeatService) *Activities {
	return &Activities{seats: seats}
}

// SweepResult is the outcome of one expiry sweep
type SweepResult struct {
	Reclaimed int `json:"reclaimed"`
}

// SweepExpiredHolds reclaims every seat whose hold has lapsed. Re-running
// immediately finds nothing to reclaim, so retries are harmless.
func (a *Activities) SweepExpiredHolds(ctx context.Context) (*SweepResult, error) {
	logger := activity.GetLogger(ctx)

	count, err := a.seats.SweepExpired(ctx)
	if err != nil {
		logger.Error("Expiry sweep failed", "error", err)
		return nil, err
	}

	if count > 0 {
		logger.Info("Reclaimed expired seat holds", "count", count)
	}
	return &SweepResult{Reclaimed: count}, nil
}
