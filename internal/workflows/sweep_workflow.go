package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/cx-tal-miterani/seat-inventory/internal/activities"
)

const (
	// SweepCronSchedule is how often the sweep workflow fires
	SweepCronSchedule = "* * * * *"
	// SweepWorkflowID is the fixed id of the cron workflow, so starting
	// it again is a no-op while one is running
	SweepWorkflowID = "seat-expiry-sweep"
)

// ExpirySweepWorkflow runs one pass of the expiry sweep. The worker
// schedules it as a cron workflow; the inventory itself mandates no
// scheduler, and a concurrent reserve on a just-expired seat is safe
// because reserve performs the same expiry check on its own.
func ExpirySweepWorkflow(ctx workflow.Context) (*activities.SweepResult, error) {
	logger := workflow.GetLogger(ctx)

	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	var result activities.SweepResult
	err := workflow.ExecuteActivity(ctx, "SweepExpiredHolds").Get(ctx, &result)
	if err != nil {
		logger.Error("Expiry sweep workflow failed", "error", err)
		return nil, err
	}

	logger.Info("Expiry sweep completed", "reclaimed", result.Reclaimed)
	return &result, nil
}
