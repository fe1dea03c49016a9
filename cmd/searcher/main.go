package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/study-search/internal/autocomplete"
	"github.com/Adithya-Monish-Kumar-K/study-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/study-search/internal/searcher/handler"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/study-search/pkg/redis"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("search service failed", "error", err)
		os.Exit(1)
	}
	slog.Info("search service stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting search service", "port", cfg.Server.Port, "catalog", cfg.Catalog.Source)
	studies, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	observers := []indexer.Observer{
		analytics.NewLogObserver(slog.Default()),
		analytics.NewMetricsObserver(m),
	}
	if cfg.Analytics.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
		defer producer.Close()
		collector := analytics.NewCollector(producer, analytics.CollectorConfig{
			BufferSize: cfg.Analytics.BufferSize,
			OnDrop:     m.AnalyticsDropped.Inc,
		})
		collector.Start(ctx)
		defer collector.Close()
		observers = append(observers, analytics.NewEventObserver(collector))
		slog.Info("analytics collector enabled", "topic", cfg.Kafka.Topics.SearchEvents)
	}

	engine := indexer.NewEngine(studies,
		indexer.WithObserver(indexer.Observers(observers...)),
		indexer.WithLogger(logger.WithComponent("indexer")),
	)

	checker := health.NewChecker()
	checker.Register("index_engine", func(ctx context.Context) health.ComponentHealth {
		stats := engine.Stats()
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d terms from %d studies", stats.Terms, stats.Studies),
		}
	})

	var suggester handler.Suggester
	if cfg.Autocomplete.Enabled {
		redisClient, err := pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, autocomplete disabled", "error", err)
			checker.Register("redis", func(context.Context) health.ComponentHealth {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: "not connected"}
			})
		} else {
			defer redisClient.Close()
			s := autocomplete.New(redisClient, cfg.Autocomplete)
			if err := s.Seed(ctx, studies); err != nil {
				slog.Warn("seeding autocomplete failed", "error", err)
			}
			suggester = s
			checker.Register("redis", health.PingCheck(redisClient.Ping, health.StatusDegraded))
			slog.Info("autocomplete enabled", "redis", redisClient.Addr(), "key", cfg.Autocomplete.Key)
		}
	}

	mux := http.NewServeMux()
	handler.New(engine, suggester, m).Register(mux)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.Metrics(m)(chain)
	chain = middleware.RequestID(chain)

	servers := []*http.Server{{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}}
	if cfg.Metrics.Enabled {
		servers = append(servers, metrics.NewServer(cfg.Metrics.Port))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			slog.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("server shutdown error", "addr", srv.Addr, "error", err)
			}
		}
		return nil
	})
	return g.Wait()
}
