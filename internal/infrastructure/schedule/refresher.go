// Package schedule runs the periodic snapshot refresh. The crawler writes
// new data files once per weekday; the refresher reloads them on a cron
// schedule so the serving snapshot never goes stale.
package schedule

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const refreshTimeout = 5 * time.Minute

// Job is the reload function the refresher invokes on schedule.
type Job func(ctx context.Context) error

// Refresher drives a Job from a standard 5-field cron expression.
type Refresher struct {
	cron *cron.Cron
	job  Job
}

// NewRefresher wraps job; Start arms the schedule.
func NewRefresher(job Job) *Refresher {
	return &Refresher{
		cron: cron.New(),
		job:  job,
	}
}

// Start registers the schedule and begins running. An invalid expression
// fails fast so a bad config never silently disables refresh.
func (r *Refresher) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, r.run)
	if err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("schedule: refresher started schedule=%q", schedule)
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Printf("schedule: refresher stopped")
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	started := time.Now()
	if err := r.job(ctx); err != nil {
		log.Printf("schedule: refresh failed err=%v", err)
		return
	}
	log.Printf("schedule: refresh completed elapsed=%s", time.Since(started).Round(time.Millisecond))
}
