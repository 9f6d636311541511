package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/vytor/wortflash/internal/api"
	"github.com/vytor/wortflash/internal/assistant"
	"github.com/vytor/wortflash/internal/config"
	"github.com/vytor/wortflash/internal/gateway"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("WortFlash Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("llm_provider=%s", cfg.LLMProvider)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("upstream_timeout=%s", cfg.UpstreamTimeout)
	log.Debug("upstream_worker_count=%d", cfg.UpstreamWorkerCount)
	log.Debug("upstream_queue_size=%d", cfg.UpstreamQueueSize)
	log.Debug("lookup_cache_size=%d", cfg.LookupCacheSize)
	log.Debug("practice_question_count=%d", cfg.PracticeQuestionCount)

	completer := newCompleter(cfg)
	if completer == nil {
		log.Warn("no API key for provider %s, AI requests will fail with NOT_CONFIGURED", cfg.LLMProvider)
	}

	// Upstream calls share one bounded pool
	upstreamPool := worker.NewPool(cfg.UpstreamWorkerCount, cfg.UpstreamQueueSize)

	assistantService := assistant.NewService(completer, upstreamPool, assistant.Options{
		QuestionCount: cfg.PracticeQuestionCount,
		CacheSize:     cfg.LookupCacheSize,
	})

	srv := &api.Server{
		Assistant:      assistantService,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		ReadyChecks: []api.Check{
			{Name: "upstream", Fn: func(context.Context) error {
				if completer == nil {
					return errors.New("API key is not configured")
				}
				return nil
			}},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	upstreamPool.Start(ctx)

	// Configure HTTP server. Upstream calls can be slow, so the write timeout
	// leaves room for one full upstream round trip.
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping upstream pool")
	cancel()
	upstreamPool.Stop()

	log.Info("===========================================")
	log.Info("WortFlash Server Stopped")
	log.Info("===========================================")
}

// newCompleter returns nil when the selected provider has no key.
func newCompleter(cfg config.Config) gateway.Completer {
	key := cfg.APIKey()
	if key == "" {
		return nil
	}
	if cfg.LLMProvider == config.ProviderAnthropic {
		return gateway.NewAnthropic(key, cfg.AnthropicModel, option.WithRequestTimeout(cfg.UpstreamTimeout))
	}
	return gateway.New(key,
		gateway.WithURL(cfg.GatewayURL),
		gateway.WithModel(cfg.LLMModel),
		gateway.WithTimeout(cfg.UpstreamTimeout),
	)
}
