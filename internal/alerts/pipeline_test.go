package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimoire/internal/logging"
	"grimoire/internal/models"
)

type fakeSink struct {
	mu      sync.Mutex
	enabled bool
	err     error
	events  []*models.LogEvent
	sent    chan *models.LogEvent
}

func newFakeSink() *fakeSink {
	return &fakeSink{enabled: true, sent: make(chan *models.LogEvent, 16)}
}

func (f *fakeSink) IsEnabled() bool { return f.enabled }

func (f *fakeSink) Send(ctx context.Context, ev *models.LogEvent) error {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	f.sent <- ev
	return f.err
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestPipeline(sink Sink, rate, r float64) (*Pipeline, *stepClock) {
	clock := &stepClock{now: time.Unix(1_700_000_000, 0)}
	d := logging.NewDeduper(time.Minute, clock.Now)
	return NewPipeline(sink, d, rate, func() float64 { return r }), clock
}

func TestPipeline_ForwardsAndSanitizes(t *testing.T) {
	sink := newFakeSink()
	p, _ := newTestPipeline(sink, 0, 0)

	ev := &models.LogEvent{
		Level:   "ERROR",
		Message: "payment webhook rejected",
		Context: map[string]any{"authorization": "Bearer x", "route": "/api/stripe"},
	}
	outcome := p.Handle(context.Background(), ev)

	assert.Equal(t, models.OutcomeForwarded, outcome)
	require.Equal(t, 1, sink.count())
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, "error", ev.Level)
	assert.Equal(t, map[string]any{"route": "/api/stripe"}, sink.events[0].Context)
}

func TestPipeline_Dedupes(t *testing.T) {
	sink := newFakeSink()
	p, clock := newTestPipeline(sink, 0, 0)
	ev := func() *models.LogEvent { return &models.LogEvent{Level: "error", Message: "same"} }

	assert.Equal(t, models.OutcomeForwarded, p.Handle(context.Background(), ev()))
	clock.Advance(time.Second)
	assert.Equal(t, models.OutcomeDuplicate, p.Handle(context.Background(), ev()))
	clock.Advance(61 * time.Second)
	assert.Equal(t, models.OutcomeForwarded, p.Handle(context.Background(), ev()))
	assert.Equal(t, 2, sink.count())
}

func TestPipeline_SamplesInfo(t *testing.T) {
	sink := newFakeSink()

	dropped, _ := newTestPipeline(sink, 0.1, 0.5)
	assert.Equal(t, models.OutcomeSampledOut, dropped.Handle(context.Background(), &models.LogEvent{Level: "info", Message: "a"}))

	kept, _ := newTestPipeline(sink, 0.1, 0.95)
	assert.Equal(t, models.OutcomeForwarded, kept.Handle(context.Background(), &models.LogEvent{Level: "info", Message: "a"}))

	// Warnings ignore the rate.
	assert.Equal(t, models.OutcomeForwarded, dropped.Handle(context.Background(), &models.LogEvent{Level: "warn", Message: "b"}))
}

func TestPipeline_SampledOutDoesNotArmDedupe(t *testing.T) {
	sink := newFakeSink()
	r := 0.0
	clock := &stepClock{now: time.Unix(1_700_000_000, 0)}
	p := NewPipeline(sink, logging.NewDeduper(time.Minute, clock.Now), 0.5, func() float64 { return r })

	assert.Equal(t, models.OutcomeSampledOut, p.Handle(context.Background(), &models.LogEvent{Level: "info", Message: "m"}))
	r = 0.9
	assert.Equal(t, models.OutcomeForwarded, p.Handle(context.Background(), &models.LogEvent{Level: "info", Message: "m"}))
}

func TestPipeline_DisabledAndFailed(t *testing.T) {
	disabled := newFakeSink()
	disabled.enabled = false
	p, _ := newTestPipeline(disabled, 1, 0)
	assert.Equal(t, models.OutcomeDisabled, p.Handle(context.Background(), &models.LogEvent{Level: "error", Message: "x"}))

	nilSink, _ := newTestPipeline(nil, 1, 0)
	assert.Equal(t, models.OutcomeDisabled, nilSink.Handle(context.Background(), &models.LogEvent{Level: "error", Message: "x"}))

	failing := newFakeSink()
	failing.err = errors.New("boom")
	p, _ = newTestPipeline(failing, 1, 0)
	assert.Equal(t, models.OutcomeFailed, p.Handle(context.Background(), &models.LogEvent{Level: "error", Message: "x"}))
}
