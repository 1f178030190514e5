// Package scheduler runs background jobs at a fixed time of day.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is the work a trigger runs
type Job func(ctx context.Context) error

// DailyTriggerConfig holds configuration for a daily trigger
type DailyTriggerConfig struct {
	Name   string
	Hour   int
	Minute int
	// Location decides which wall clock Hour and Minute refer to
	Location *time.Location
	// CheckInterval is how often the clock is checked
	CheckInterval time.Duration
	// JobTimeout bounds a single run
	JobTimeout time.Duration
}

// DefaultDailyTriggerConfig runs at 02:00 UTC
func DefaultDailyTriggerConfig(name string) DailyTriggerConfig {
	return DailyTriggerConfig{
		Name:          name,
		Hour:          2,
		Minute:        0,
		Location:      time.UTC,
		CheckInterval: time.Minute,
		JobTimeout:    5 * time.Minute,
	}
}

// DailyTrigger runs a job once a day when the clock reaches Hour:Minute
type DailyTrigger struct {
	config DailyTriggerConfig
	job    Job
	logger *zap.Logger
	now    func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a trigger. Zero config fields take the defaults.
func NewDailyTrigger(config DailyTriggerConfig, job Job, logger *zap.Logger) (*DailyTrigger, error) {
	if job == nil {
		return nil, ErrNoJob
	}
	defaults := DefaultDailyTriggerConfig(config.Name)
	if config.Location == nil {
		config.Location = defaults.Location
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = defaults.CheckInterval
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = defaults.JobTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyTrigger{
		config: config,
		job:    job,
		logger: logger.With(zap.String("job", config.Name)),
		now:    time.Now,
	}, nil
}

// Start starts the trigger loop. Calling Start twice is a no-op.
func (d *DailyTrigger) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = true
	ctx, d.cancel = context.WithCancel(ctx)
	d.mu.Unlock()

	d.wg.Add(1)
	go d.runLoop(ctx)

	d.logger.Info("Daily trigger started",
		zap.Int("hour", d.config.Hour),
		zap.Int("minute", d.config.Minute),
		zap.String("timezone", d.config.Location.String()),
		zap.Duration("check_interval", d.config.CheckInterval),
	)
	return nil
}

// Stop stops the loop and waits for a running job, or for ctx to end
func (d *DailyTrigger) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false
	cancel := d.cancel
	d.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Daily trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the loop is active
func (d *DailyTrigger) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isRunning
}

// LastRunDate returns the local date of the last run, or ""
func (d *DailyTrigger) LastRunDate() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastRunDate
}

func (d *DailyTrigger) runLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the job if it is Hour:Minute and the job has not
// run today. It reports whether the job ran.
func (d *DailyTrigger) checkAndTrigger(ctx context.Context) bool {
	now := d.now().In(d.config.Location)
	if now.Hour() != d.config.Hour || now.Minute() != d.config.Minute {
		return false
	}

	today := now.Format("2006-01-02")
	d.mu.Lock()
	if d.lastRunDate == today {
		d.mu.Unlock()
		return false
	}
	d.lastRunDate = today
	d.mu.Unlock()

	d.run(ctx)
	return true
}

func (d *DailyTrigger) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, d.config.JobTimeout)
	defer cancel()

	start := d.now()
	if err := d.job(ctx); err != nil {
		d.logger.Error("Scheduled job failed", zap.Error(err), zap.Duration("elapsed", d.now().Sub(start)))
		return
	}
	d.logger.Info("Scheduled job completed", zap.Duration("elapsed", d.now().Sub(start)))
}
