package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fires the daily news broadcast at a fixed local wall-clock
// time. cron computes the next occurrence after every run, so the job
// repeats indefinitely and a failed cycle never blocks the next one.
type Scheduler struct {
	cron          *cron.Cron
	ctx           context.Context
	cancel        context.CancelFunc
	broadcastFunc func(ctx context.Context) error
}

func New(loc *time.Location) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetBroadcastFunc sets the job run on every cycle.
func (s *Scheduler) SetBroadcastFunc(f func(ctx context.Context) error) {
	s.broadcastFunc = f
}

// Start registers the daily entry at hour:minute and starts the cron
// loop. Without a broadcast func the scheduler stays idle.
func (s *Scheduler) Start(hour, minute int) error {
	if s.broadcastFunc == nil {
		log.Println("⚠️ Broadcast function not set, scheduler will not run")
		return nil
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	_, err := s.cron.AddFunc(spec, func() {
		log.Printf("🕘 Triggered daily news broadcast at %02d:%02d", hour, minute)
		if err := s.broadcastFunc(s.ctx); err != nil {
			log.Printf("❌ Daily news broadcast failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register daily broadcast: %w", err)
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started - daily news will be sent at %02d:%02d", hour, minute)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

// IsRunning reports whether a daily entry is registered and active.
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
