package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athapong/kegg-overlap/pkg/graph/metrics"
	"github.com/athapong/kegg-overlap/pkg/session"
	"github.com/athapong/kegg-overlap/pkg/web"
	"github.com/athapong/kegg-overlap/services"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	addr     = flag.String("addr", "", "Address to listen on; defaults to HTTP_ADDR")
	envFile  = flag.String("env", ".env", "Path to environment file")
	logLevel = flag.String("log-level", "", "Logging level (debug, info, warn, error); defaults to LOG_LEVEL")
	maxIdle  = flag.Duration("session-idle", session.DefaultMaxIdle, "Drop sessions idle for longer than this")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		logrus.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	cfg, err := services.LoadConfig()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	logger, err := services.NewLogger(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}

	client := services.NewKEGGClient(cfg, logger)
	store := session.NewStore(client, logger, *maxIdle)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewServer(store, client.Organism(), logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go pruneSessions(ctx, store)

	go func() {
		logger.Infof("Starting web server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start web server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
		os.Exit(1)
	}
	logger.Info("Web server shutdown complete")
}

func pruneSessions(ctx context.Context, store *session.Store) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			store.Prune(now)
			metrics.UpdateSystemMetrics()
		}
	}
}
