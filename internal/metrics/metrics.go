package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"grimoire/internal/models"
)

var (
	slugLookupDesc = prometheus.NewDesc(
		"grimoire_slug_lookups_total",
		"Total persisted slug lookup count by match type",
		[]string{"match_type"},
		nil,
	)

	slugResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grimoire_slug_resolutions_total",
		Help: "Slug resolutions served by this process, by match type",
	}, []string{"match_type"})

	logEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grimoire_log_events_total",
		Help: "Ingested log events by level and pipeline outcome",
	}, []string{"level", "outcome"})
)

// LookupStore persists and aggregates slug lookups.
type LookupStore interface {
	IncrementSlugLookup(ctx context.Context, query string, matchType models.MatchType) error
	GetSlugLookupTotals(ctx context.Context) ([]models.SlugLookupTotal, error)
}

// SlugLookupCollector is a custom Prometheus collector that reads slug lookup
// totals from the database on each scrape.
type SlugLookupCollector struct {
	store LookupStore
}

// NewSlugLookupCollector creates a collector backed by store.
func NewSlugLookupCollector(store LookupStore) *SlugLookupCollector {
	return &SlugLookupCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *SlugLookupCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- slugLookupDesc
}

// Collect queries the store for lookup totals and emits them as counters.
func (c *SlugLookupCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	totals, err := c.store.GetSlugLookupTotals(ctx)
	if err != nil {
		slog.Error("failed to collect slug lookup metrics", "error", err)
		return
	}
	for _, t := range totals {
		ch <- prometheus.MustNewConstMetric(
			slugLookupDesc,
			prometheus.CounterValue,
			float64(t.Count),
			string(t.MatchType),
		)
	}
}

// Recorder provides async slug lookup recording.
type Recorder struct {
	store LookupStore
	wg    sync.WaitGroup
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the process counters and, when store is non-nil, the
// database-backed collector and lookup recorder. Must be called once at
// startup.
func Init(store LookupStore) {
	recorderOnce.Do(func() {
		prometheus.MustRegister(slugResolutions, logEvents)
		if store != nil {
			recorder = &Recorder{store: store}
			prometheus.MustRegister(NewSlugLookupCollector(store))
		}
	})
}

// RecordSlugLookup counts a resolution and asynchronously persists it.
func RecordSlugLookup(query string, matchType models.MatchType) {
	slugResolutions.WithLabelValues(string(matchType)).Inc()

	r := recorder
	if r == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.store.IncrementSlugLookup(context.Background(), query, matchType); err != nil {
			slog.Error("failed to record slug lookup", "query", query, "match_type", matchType, "error", err)
		}
	}()
}

// RecordLogEvent counts an ingested log event by outcome.
func RecordLogEvent(level, outcome string) {
	logEvents.WithLabelValues(level, outcome).Inc()
}

// Flush waits for in-flight lookup writes to finish.
func Flush() {
	if r := recorder; r != nil {
		r.wg.Wait()
	}
}
