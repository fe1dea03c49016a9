// Package autocomplete suggests study titles by prefix. Titles live in a
// Redis sorted set with equal scores, so ZRANGEBYLEX walks them in byte
// order. Each member is the lowercased title, a NUL separator, then the
// title as written; matching is case-insensitive while suggestions keep
// their original casing.
package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/study"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/study-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/resilience"
)

const (
	separator = "\x00"
	// rangeEnd sorts after every byte that can appear in UTF-8 text.
	rangeEnd  = "\xff"
	batchSize = 500
)

// LexStore is the sorted-set subset of the Redis client used here.
type LexStore interface {
	AddLex(ctx context.Context, key string, members ...string) (int64, error)
	RangeByLex(ctx context.Context, key, min, max string, limit int) ([]string, error)
}

// Suggester inserts titles and answers prefix queries.
type Suggester struct {
	store   LexStore
	cfg     config.AutocompleteConfig
	breaker *resilience.CircuitBreaker
	logger  *slog.Logger
}

func New(store LexStore, cfg config.AutocompleteConfig) *Suggester {
	return &Suggester{
		store:   store,
		cfg:     cfg,
		breaker: resilience.NewCircuitBreaker("autocomplete-redis", resilience.CircuitBreakerConfig{}),
		logger:  slog.Default().With("component", "autocomplete"),
	}
}

// Add inserts titles. Empty titles are ignored; a title containing NUL is
// rejected because it cannot be encoded.
func (s *Suggester) Add(ctx context.Context, titles ...string) error {
	members := make([]string, 0, len(titles))
	for _, title := range titles {
		if strings.TrimSpace(title) == "" {
			continue
		}
		if strings.Contains(title, separator) {
			return fmt.Errorf("%w: title %q contains NUL", apperrors.ErrInvalidInput, title)
		}
		members = append(members, strings.ToLower(title)+separator+title)
	}
	for start := 0; start < len(members); start += batchSize {
		end := min(start+batchSize, len(members))
		err := s.breaker.Execute(ctx, func(ctx context.Context) error {
			_, err := s.store.AddLex(ctx, s.cfg.Key, members[start:end]...)
			return err
		})
		if err != nil {
			return s.unavailable("adding titles", err)
		}
	}
	return nil
}

// Seed adds the title of every study.
func (s *Suggester) Seed(ctx context.Context, studies []study.Study) error {
	titles := make([]string, len(studies))
	for i, st := range studies {
		titles[i] = st.Title
	}
	if err := s.Add(ctx, titles...); err != nil {
		return err
	}
	s.logger.Info("autocomplete seeded", "titles", len(titles), "key", s.cfg.Key)
	return nil
}

// Suggest returns up to limit titles whose lowercase form starts with the
// lowercased prefix, in byte order. limit <= 0 selects the configured
// default and larger values are capped at the configured maximum. An empty
// prefix yields no suggestions.
func (s *Suggester) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if prefix == "" {
		return []string{}, nil
	}
	limit = s.clampLimit(limit)
	lower := strings.ToLower(prefix)

	var members []string
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		members, err = s.store.RangeByLex(ctx, s.cfg.Key, lower, lower+rangeEnd, limit)
		return err
	})
	if err != nil {
		return nil, s.unavailable("querying prefix", err)
	}

	titles := make([]string, 0, len(members))
	for _, m := range members {
		_, title, ok := strings.Cut(m, separator)
		if !ok {
			// Members written by other tools are plain titles.
			title = m
		}
		titles = append(titles, title)
	}
	return titles, nil
}

func (s *Suggester) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

func (s *Suggester) unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Error("autocomplete store failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrUnavailable, err)
}
