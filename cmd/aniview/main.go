// Package main wires together the aniview backend binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aniview/aniview/internal/api"
	"github.com/aniview/aniview/internal/config"
	"github.com/aniview/aniview/internal/fetch"
	"github.com/aniview/aniview/internal/logging"
	"github.com/aniview/aniview/internal/proxy"
	"github.com/aniview/aniview/internal/scrape"
	"github.com/aniview/aniview/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docs, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		logger.Fatal("document store init failed", zap.Error(err))
	}

	// The proxy fetcher carries no explicit timeout because the anime site
	// can be slow. The scrape fetcher is bounded so a hung playlist fetch
	// cannot pin a request forever.
	proxyFetcher := fetch.New(fetch.Config{
		UserAgent: cfg.Upstream.UserAgent,
	})
	scrapeFetcher := fetch.New(fetch.Config{
		UserAgent: cfg.Upstream.UserAgent,
		Timeout:   cfg.ScrapeTimeout(),
	})

	proxySvc := proxy.New(proxyFetcher, cfg.Upstream.AnimeBaseURL)
	scraper := scrape.New(scrapeFetcher, cfg.Upstream.PlaylistBaseURL)

	apiServer := api.NewServer(proxySvc, scraper, docs, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started",
			zap.Int("port", cfg.Server.Port),
			zap.String("static_dir", cfg.Static.Dir),
			zap.String("data_dir", cfg.Storage.DataDir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
