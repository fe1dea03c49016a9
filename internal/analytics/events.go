// Package analytics turns engine activity into structured log lines,
// Prometheus metrics and search events published to Kafka.
package analytics

import "time"

type EventType string

const (
	EventSearch     EventType = "search"
	EventZeroResult EventType = "zero_result"
	EventIndexBuilt EventType = "index_built"
)

type SearchEvent struct {
	Type       EventType `json:"type"`
	Keyword    string    `json:"keyword"`
	Normalized string    `json:"normalized"`
	Hits       int       `json:"hits"`
	LatencyUs  int64     `json:"latency_us"`
	Timestamp  time.Time `json:"timestamp"`
}

type BuildEvent struct {
	Type      EventType `json:"type"`
	Studies   int       `json:"studies"`
	Terms     int       `json:"terms"`
	Postings  int       `json:"postings"`
	LatencyMs int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}
