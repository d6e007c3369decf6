package services

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically reclaims expired holds. Not correctness-critical on
// its own (Confirm re-validates expiry) but it bounds how long an abandoned
// hold keeps a slot out of AvailableSlots.
type Sweeper struct {
	Reclaim  func() (int64, error)
	Interval time.Duration
}

// Run sweeps immediately, then on every tick until ctx is cancelled.
func (s Sweeper) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	s.sweep()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.sweep()
		}
	}
}

func (s Sweeper) sweep() {
	n, err := s.Reclaim()
	if err != nil {
		log.Printf("sweeper: reclaim failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("sweeper: reclaimed %d expired hold(s)", n)
	}
}
