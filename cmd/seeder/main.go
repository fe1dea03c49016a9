// Command seeder loads a study file into the PostgreSQL catalog and the
// Redis autocomplete store. Both targets are written concurrently; records
// are validated before anything is written.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/autocomplete"
	"github.com/Adithya-Monish-Kumar-K/study-search/internal/study"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/study-search/pkg/redis"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	file := flag.String("file", "", "study file to load (defaults to catalog.path)")
	toPostgres := flag.Bool("postgres", true, "write studies to the PostgreSQL catalog")
	toRedis := flag.Bool("autocomplete", true, "write titles to the autocomplete store")
	reset := flag.Bool("reset", false, "clear the autocomplete key before seeding")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	path := *file
	if path == "" {
		path = cfg.Catalog.Path
	}
	if err := run(cfg, path, *toPostgres, *toRedis, *reset); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, path string, toPostgres, toRedis, reset bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	studies, err := study.LoadFile(path)
	if err != nil {
		return err
	}
	slog.Info("study file loaded", "path", path, "studies", len(studies))

	g, gctx := errgroup.WithContext(ctx)
	if toPostgres {
		g.Go(func() error {
			db, err := postgres.New(cfg.Postgres)
			if err != nil {
				return err
			}
			defer db.Close()
			store := study.NewStore(db)
			if err := store.EnsureSchema(gctx); err != nil {
				return err
			}
			if err := store.Upsert(gctx, studies); err != nil {
				return err
			}
			slog.Info("catalog seeded", "database", cfg.Postgres.Database, "studies", len(studies))
			return nil
		})
	}
	if toRedis {
		g.Go(func() error {
			client, err := pkgredis.NewClient(cfg.Redis)
			if err != nil {
				return err
			}
			defer client.Close()
			if reset {
				if err := client.Del(gctx, cfg.Autocomplete.Key); err != nil {
					return fmt.Errorf("clearing %s: %w", cfg.Autocomplete.Key, err)
				}
			}
			if err := autocomplete.New(client, cfg.Autocomplete).Seed(gctx, studies); err != nil {
				return err
			}
			size, err := client.Card(gctx, cfg.Autocomplete.Key)
			if err != nil {
				return fmt.Errorf("counting %s: %w", cfg.Autocomplete.Key, err)
			}
			slog.Info("autocomplete seeded", "key", cfg.Autocomplete.Key, "titles", len(studies), "set_size", size)
			return nil
		})
	}
	return g.Wait()
}
