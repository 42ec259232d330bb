package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/metrics"
)

// Sweeper expires started posts and returns how many it expired.
type Sweeper interface {
	ExpireStarted(ctx context.Context) (int, error)
}

// ExpirySweepJob periodically expires party find posts whose start time has
// passed and reposts the recurring ones.
type ExpirySweepJob struct {
	sweeper Sweeper
	metrics *metrics.MetricsRegistry
	running atomic.Bool
	lastRun atomic.Int64
}

// NewExpirySweepJob creates a new sweep job. metricsReg may be nil.
func NewExpirySweepJob(sweeper Sweeper, metricsReg *metrics.MetricsRegistry) *ExpirySweepJob {
	return &ExpirySweepJob{sweeper: sweeper, metrics: metricsReg}
}

// Run executes one sweep. Overlapping calls return immediately.
func (j *ExpirySweepJob) Run(ctx context.Context) (int, error) {
	if !j.running.CompareAndSwap(false, true) {
		logging.Debug("Expiry sweep already running, skipping")
		return 0, nil
	}
	defer j.running.Store(false)

	start := time.Now()
	expired, err := j.sweeper.ExpireStarted(ctx)
	elapsed := time.Since(start)

	if j.metrics != nil {
		j.metrics.ExpirySweepDuration.Observe(elapsed.Seconds())
		j.metrics.PostsExpiredTotal.Add(float64(expired))
	}
	j.lastRun.Store(start.Unix())

	if err != nil {
		logging.Error("Expiry sweep failed", "expired", expired, "error", err)
		return expired, err
	}
	if expired > 0 {
		logging.Info("Expiry sweep completed", "expired", expired, "duration_ms", elapsed.Milliseconds())
	}
	return expired, nil
}

// LastRun is the start time of the latest sweep, zero before the first one.
func (j *ExpirySweepJob) LastRun() time.Time {
	if ts := j.lastRun.Load(); ts != 0 {
		return time.Unix(ts, 0)
	}
	return time.Time{}
}

// RunScheduled sweeps once immediately and then on every tick until ctx is done.
func (j *ExpirySweepJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_, _ = j.Run(ctx)

	for {
		select {
		case <-ticker.C:
			_, _ = j.Run(ctx)
		case <-ctx.Done():
			logging.Info("Shutting down expiry sweep")
			return
		}
	}
}
