// Package indexer builds the study search engine: a single-node inverted
// index constructed once from a fixed study collection and queried by exact
// keyword afterwards.
package indexer

import (
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/study-search/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/study-search/internal/study"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/logger"
)

// Engine answers single-keyword queries against an index built eagerly in
// NewEngine. It holds no mutable state after construction, so one Engine may
// serve concurrent Search calls once it has been handed to other goroutines.
type Engine struct {
	index    *index.Index
	observer Observer
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver installs an observer for build and query events.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine indexes studies in order. Each study contributes its title once
// to the postings of every distinct term in "title description"; studies
// without any terms are skipped silently. An empty collection yields an
// empty index.
func NewEngine(studies []study.Study, opts ...Option) *Engine {
	e := &Engine{
		observer: nopObserver{},
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	start := time.Now()
	b := index.NewBuilder()
	skipped := 0
	for _, s := range studies {
		terms := tokenizer.Tokenize(s.Title + " " + s.Description)
		if len(terms) == 0 {
			skipped++
			e.logger.Debug("study has no terms, not indexed", "study_id", s.ID)
		}
		b.Add(s.Title, terms)
	}
	e.index = b.Build()

	stats := e.index.Stats()
	elapsed := time.Since(start)
	e.logger.Info("inverted index built",
		"studies", stats.Studies,
		"skipped", skipped,
		"terms", stats.Terms,
		"postings", stats.Postings,
		"duration", elapsed,
	)
	e.observer.IndexBuilt(BuildStats{
		Studies:  stats.Studies,
		Terms:    stats.Terms,
		Postings: stats.Postings,
		Duration: elapsed,
	})
	return e
}

// Search returns the titles of every study containing keyword as a term, in
// study order. The keyword is only lowercased: it is not trimmed or split,
// so a keyword with whitespace never matches. Unknown keywords yield an
// empty, non-nil slice. The result is the caller's to modify.
func (e *Engine) Search(keyword string) []string {
	start := time.Now()
	normalized := tokenizer.Normalize(keyword)
	postings := e.index.Lookup(normalized)
	if postings == nil {
		postings = index.PostingList{}
	}
	e.observer.Searched(QueryStats{
		Keyword:    keyword,
		Normalized: normalized,
		Hits:       len(postings),
		Duration:   time.Since(start),
	})
	return postings
}

// Stats reports the size of the underlying index.
func (e *Engine) Stats() index.Stats {
	return e.index.Stats()
}

// Terms returns every indexed term in lexical order.
func (e *Engine) Terms() []string {
	return e.index.Terms()
}
