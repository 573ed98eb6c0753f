package session

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher periodically replays the session's last-initiated location so a
// long-lived display stays current.
type Refresher struct {
	scheduler *gocron.Scheduler
	session   *Session
	interval  time.Duration
}

// NewRefresher creates a refresher. An interval of zero disables it.
func NewRefresher(s *Session, interval time.Duration) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		session:   s,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		log.Println("refresh: disabled; no interval configured")
		return nil
	}

	_, err := r.scheduler.Every(r.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		r.session.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
