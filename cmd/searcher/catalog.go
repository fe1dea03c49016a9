package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/study"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/study-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/resilience"
)

// loadCatalog reads the full study collection once at startup. Postgres
// reads are retried; invalid rows are not.
func loadCatalog(ctx context.Context, cfg *config.Config) ([]study.Study, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		studies, err := study.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("catalog loaded", "source", "file", "path", cfg.Catalog.Path, "studies", len(studies))
		return studies, nil
	case config.CatalogSourcePostgres:
		var studies []study.Study
		retryCfg := resilience.RetryConfig{
			MaxAttempts:  5,
			InitialDelay: 500 * time.Millisecond,
			ShouldRetry: func(err error) bool {
				return !errors.Is(err, apperrors.ErrInvalidInput)
			},
		}
		err := resilience.Retry(ctx, "load-catalog", retryCfg, func(ctx context.Context) error {
			db, err := postgres.New(cfg.Postgres)
			if err != nil {
				return err
			}
			defer db.Close()
			studies, err = study.NewStore(db).List(ctx)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("loading catalog from postgres: %w", err)
		}
		slog.Info("catalog loaded", "source", "postgres", "database", cfg.Postgres.Database, "studies", len(studies))
		return studies, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}
