package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"presskit/api"
	"presskit/config"
	"presskit/events"
	"presskit/gateway"
	"presskit/logger"
	"presskit/stats"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("PRESSKIT_CONFIG"), "Path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "gateway error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.FromEnv()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		observers gateway.Observers
		closers   []io.Closer
		counters  api.CounterSource
	)

	if cfg.Redis.Addr != "" {
		recorder, err := stats.NewRedisRecorder(cfg.Redis, log)
		if err != nil {
			log.Warnw("⚠️ Outcome counters disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			observers = append(observers, recorder)
			closers = append(closers, recorder)
			counters = recorder
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewPublisher(cfg.Kafka, config.NormalizeBase(cfg.BackendBase), log)
		if err != nil {
			log.Warnw("⚠️ Run events disabled", "brokers", cfg.Kafka.Brokers, "error", err)
		} else {
			observers = append(observers, publisher)
			closers = append(closers, publisher)
		}
	}

	gw := gateway.New(cfg, log, gateway.WithObserver(observers))

	prober := gateway.NewProber(gw.BaseURL(), log)
	if err := prober.Start(cfg.ProbeSchedule); err != nil {
		return err
	}
	defer prober.Stop()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.NewRouter(api.Deps{
			Gateway: gw,
			Prober:  prober,
			Stats:   counters,
			Log:     log,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Infow("🤖 Proxy gateway started",
		"addr", srv.Addr,
		"backend", gw.BaseURL()+config.ProcessPath,
		"probe_schedule", cfg.ProbeSchedule,
		"observers", len(observers),
	)
	log.Info("API endpoints available:")
	log.Info("  POST /api/process")
	log.Info("  GET  /api/health")
	log.Info("  GET  /api/stats")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	case <-sigChan:
	}

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Shutdown error", "error", err)
	}

	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Warnw("Observer close error", "error", err)
		}
	}

	log.Info("Server stopped")
	return nil
}
