package analytics

import (
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/metrics"
)

// LogObserver writes engine activity to a structured logger. Queries are
// logged at debug level.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger.With("component", "search-engine")}
}

func (o *LogObserver) IndexBuilt(s indexer.BuildStats) {
	o.logger.Info("index ready",
		"studies", s.Studies,
		"terms", s.Terms,
		"postings", s.Postings,
		"duration", s.Duration,
	)
}

func (o *LogObserver) Searched(s indexer.QueryStats) {
	o.logger.Debug("keyword searched",
		"keyword", s.Keyword,
		"normalized", s.Normalized,
		"hits", s.Hits,
		"duration", s.Duration,
	)
}

// MetricsObserver records engine activity in Prometheus collectors.
type MetricsObserver struct {
	m *metrics.Metrics
}

func NewMetricsObserver(m *metrics.Metrics) *MetricsObserver {
	return &MetricsObserver{m: m}
}

func (o *MetricsObserver) IndexBuilt(s indexer.BuildStats) {
	o.m.IndexStudies.Set(float64(s.Studies))
	o.m.IndexTerms.Set(float64(s.Terms))
	o.m.IndexPostings.Set(float64(s.Postings))
	o.m.IndexBuildSeconds.Set(s.Duration.Seconds())
}

func (o *MetricsObserver) Searched(s indexer.QueryStats) {
	resultType := "hit"
	if s.Hits == 0 {
		resultType = "zero_result"
	}
	o.m.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	o.m.SearchLatency.Observe(s.Duration.Seconds())
	o.m.SearchResultsCount.Observe(float64(s.Hits))
}

// EventObserver forwards engine activity to a Collector.
type EventObserver struct {
	collector *Collector
	now       func() time.Time
}

func NewEventObserver(collector *Collector) *EventObserver {
	return &EventObserver{collector: collector, now: time.Now}
}

func (o *EventObserver) IndexBuilt(s indexer.BuildStats) {
	o.collector.Track(string(EventIndexBuilt), BuildEvent{
		Type:      EventIndexBuilt,
		Studies:   s.Studies,
		Terms:     s.Terms,
		Postings:  s.Postings,
		LatencyMs: s.Duration.Milliseconds(),
		Timestamp: o.now().UTC(),
	})
}

func (o *EventObserver) Searched(s indexer.QueryStats) {
	eventType := EventSearch
	if s.Hits == 0 {
		eventType = EventZeroResult
	}
	o.collector.Track(s.Normalized, SearchEvent{
		Type:       eventType,
		Keyword:    s.Keyword,
		Normalized: s.Normalized,
		Hits:       s.Hits,
		LatencyUs:  s.Duration.Microseconds(),
		Timestamp:  o.now().UTC(),
	})
}
