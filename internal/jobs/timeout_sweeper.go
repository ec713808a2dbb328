package jobs

import (
	"context"
	"log"
	"time"

	"helpdesk/internal/db"
	"helpdesk/internal/metrics"
)

// TimeoutSweeper expires pending help requests whose deadline has passed,
// marking them unresolved. Expiry is silent: no notification is sent.
type TimeoutSweeper struct {
	db       *db.DB
	interval time.Duration
}

// NewTimeoutSweeper creates a new sweeper.
func NewTimeoutSweeper(database *db.DB, interval time.Duration) *TimeoutSweeper {
	return &TimeoutSweeper{
		db:       database,
		interval: interval,
	}
}

// Start begins the background sweep loop. A failed sweep is logged and never
// prevents subsequent ticks.
func (s *TimeoutSweeper) Start(ctx context.Context) {
	log.Printf("Timeout sweeper started (interval: %v)", s.interval)

	// Run immediately on start
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Timeout sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep marks every overdue pending request unresolved. Only pending
// requests are considered, so a request resolved before the sweep runs is
// never touched even when its deadline has technically passed.
func (s *TimeoutSweeper) sweep(ctx context.Context) {
	pending, err := s.db.GetPendingRequests(ctx)
	if err != nil {
		log.Printf("Timeout sweeper: failed to get pending requests: %v", err)
		return
	}

	now := time.Now()
	for _, request := range pending {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !request.Overdue(now) {
			continue
		}

		if _, err := s.db.MarkRequestUnresolved(ctx, request.ID); err != nil {
			log.Printf("Timeout sweeper: failed to expire request %s: %v", request.ID, err)
			continue
		}

		log.Printf("Timeout sweeper: request %s timed out", request.ID)
		metrics.RecordExpired()
	}
}
