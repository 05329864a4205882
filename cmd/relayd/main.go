package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/localenlp/relay/internal/api"
	"github.com/localenlp/relay/internal/cache"
	"github.com/localenlp/relay/internal/config"
	"github.com/localenlp/relay/internal/relay"
	"github.com/localenlp/relay/internal/stt"
	"github.com/localenlp/relay/internal/translation"
	"github.com/localenlp/relay/internal/upload"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Redis is optional; without it the relay just skips result caching.
	var rdb *redis.Client
	var results *cache.Cache
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, running without result cache", "error", err)
			rdb.Close()
			rdb = nil
		} else {
			results = cache.New(rdb, cfg.Redis.CacheTTL)
			defer rdb.Close()
		}
	}

	uploads, err := upload.NewStore(cfg.Upload.Dir)
	if err != nil {
		slog.Error("failed to prepare upload dir", "error", err)
		os.Exit(1)
	}

	libre := translation.NewLibreTranslate(translation.LibreTranslateConfig{
		BaseURL: cfg.LibreTranslate.BaseURL,
		APIKey:  cfg.LibreTranslate.APIKey,
		Timeout: cfg.LibreTranslate.Timeout,
	})

	var fallback translation.Translator
	if cfg.OpenAI.APIKey != "" {
		fallback = translation.NewOpenAITranslator(translation.OpenAIConfig{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.TranslateModel,
		})
	}

	whisper := stt.NewWhisper(stt.WhisperConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.WhisperBaseURL,
		Model:   cfg.OpenAI.WhisperModel,
		Timeout: cfg.OpenAI.WhisperTimeout,
	})

	svc := relay.New(libre, fallback, libre, whisper, uploads, results, relay.Config{
		DetectDefaultLang: cfg.Relay.DetectDefaultLang,
		STTDefaultLang:    cfg.Relay.STTDefaultLang,
		SupportedLangs:    cfg.Relay.SupportedLangs,
		MaxTextLen:        cfg.Relay.MaxTextLen,
	})

	router := api.NewRouter(svc, uploads, libre, rdb, cfg)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting relay server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
