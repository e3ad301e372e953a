package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"grimoire/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestDedupeSweeper_Sweep(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	clock := &manualClock{now: t0}
	d := logging.NewDeduper(time.Minute, clock.Now)

	d.IsDuplicate("stale", t0)
	d.IsDuplicate("fresh", t0.Add(45*time.Second))

	s := NewDedupeSweeper(d, time.Hour)
	clock.Set(t0.Add(90 * time.Second))

	assert.Equal(t, 1, s.sweep())
	assert.Equal(t, 1, d.Len())
}

func TestDedupeSweeper_StartStops(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	clock := &manualClock{now: t0}
	d := logging.NewDeduper(time.Minute, clock.Now)
	d.IsDuplicate("stale", t0)
	clock.Set(t0.Add(2 * time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewDedupeSweeper(d, 5*time.Millisecond).Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return d.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
