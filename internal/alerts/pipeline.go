// Package alerts forwards warning and error log events to a Discord channel,
// throttled by sampling and time-windowed dedupe.
package alerts

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"grimoire/internal/logging"
	"grimoire/internal/metrics"
	"grimoire/internal/models"
)

// Sink delivers events to an external channel.
type Sink interface {
	IsEnabled() bool
	Send(ctx context.Context, ev *models.LogEvent) error
}

// Pipeline sanitizes, samples and dedupes events before forwarding them.
type Pipeline struct {
	sink       Sink
	deduper    *logging.Deduper
	sampleRate float64
	rnd        func() float64
}

// NewPipeline creates a pipeline. A nil rnd uses math/rand.
func NewPipeline(sink Sink, deduper *logging.Deduper, infoSampleRate float64, rnd func() float64) *Pipeline {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &Pipeline{
		sink:       sink,
		deduper:    deduper,
		sampleRate: infoSampleRate,
		rnd:        rnd,
	}
}

// Handle runs ev through the pipeline and returns its outcome. ev.Context is
// replaced with its sanitized copy and ev.ID is assigned when unset.
func (p *Pipeline) Handle(ctx context.Context, ev *models.LogEvent) string {
	outcome := p.handle(ctx, ev)
	metrics.RecordLogEvent(ev.Level, outcome)
	return outcome
}

func (p *Pipeline) handle(ctx context.Context, ev *models.LogEvent) string {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	ev.Level = strings.ToLower(ev.Level)
	ev.Context = logging.SanitizeContext(ev.Context)

	if !logging.ShouldSample(ev.Level, p.sampleRate, p.rnd) {
		return models.OutcomeSampledOut
	}
	if p.deduper.Seen(ev.DedupeKey()) {
		return models.OutcomeDuplicate
	}
	if p.sink == nil || !p.sink.IsEnabled() {
		return models.OutcomeDisabled
	}

	if err := p.sink.Send(ctx, ev); err != nil {
		slog.Warn("failed to forward log event", "id", ev.ID, "error", err)
		return models.OutcomeFailed
	}
	return models.OutcomeForwarded
}

// HandleAsync runs ev through the pipeline in the background.
func (p *Pipeline) HandleAsync(ev *models.LogEvent) {
	go p.Handle(context.Background(), ev)
}
