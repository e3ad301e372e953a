package jobs

import (
	"context"
	"log/slog"
	"time"

	"grimoire/internal/logging"
)

// DedupeSweeper periodically evicts expired keys from a Deduper so keys that
// are never seen again do not accumulate.
type DedupeSweeper struct {
	deduper  *logging.Deduper
	interval time.Duration
}

// NewDedupeSweeper creates a new sweeper.
func NewDedupeSweeper(deduper *logging.Deduper, interval time.Duration) *DedupeSweeper {
	return &DedupeSweeper{deduper: deduper, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *DedupeSweeper) Start(ctx context.Context) {
	slog.Info("dedupe sweeper started", "interval", s.interval, "window", s.deduper.Window())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("dedupe sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *DedupeSweeper) sweep() int {
	removed := s.deduper.Sweep(s.deduper.Now())
	if removed > 0 {
		slog.Debug("dedupe sweeper evicted keys", "removed", removed, "remaining", s.deduper.Len())
	}
	return removed
}
