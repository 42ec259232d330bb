package jobs

import (
	"context"
	"time"

	"lostark-hub/partyfinder/internal/metrics"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(ctx context.Context, sweeper Sweeper, metricsReg *metrics.MetricsRegistry, sweepInterval time.Duration) *ExpirySweepJob {
	expiryJob := NewExpirySweepJob(sweeper, metricsReg)

	// Start scheduled sweep in background
	go expiryJob.RunScheduled(ctx, sweepInterval)

	return expiryJob
}
