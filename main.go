package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dsridhar11/mbot123/internal/api"
	"github.com/dsridhar11/mbot123/internal/config"
	"github.com/dsridhar11/mbot123/internal/domain"
	"github.com/dsridhar11/mbot123/internal/infrastructure/llm"
	"github.com/dsridhar11/mbot123/internal/infrastructure/persistence"
	"github.com/dsridhar11/mbot123/internal/service/chat"
)

func main() {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	gin.SetMode(envOr("GIN_MODE", gin.ReleaseMode))

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("session store init failed")
	}
	defer sessionStore.Close()

	reportStore, err := persistence.NewFileReportStore(cfg.ReportsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("report store init failed")
	}

	gateway, err := llm.NewGateway(domain.LLMConfig{
		Provider: cfg.LLMProvider,
		BaseURL:  cfg.GeminiBaseURL,
		APIKey:   cfg.GoogleAPIKey,
		Model:    cfg.GeminiModel,
		Timeout:  cfg.LLMTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("gateway init failed")
	}

	orchestrator := chat.NewOrchestrator(gateway, sessionStore, reportStore, log)
	handler := api.NewHandler(orchestrator, reportStore, log)
	router := api.NewRouter(api.RouterConfig{
		SecretKey: cfg.SecretKey,
		WebDir:    cfg.WebDir,
	}, handler, log)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Each chat turn makes two sequential model calls; leave room for both.
		WriteTimeout: 2*cfg.LLMTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("provider", cfg.LLMProvider).
		Str("session_store", cfg.SessionStore).Msg("listening")
	waitForShutdown(server, log)
}

func newSessionStore(cfg *config.Config) (domain.SessionStore, error) {
	switch persistence.SessionStoreType(cfg.SessionStore) {
	case persistence.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		return persistence.NewSessionStore(persistence.SessionStoreRedis,
			persistence.WithRedisClient(client),
			persistence.WithRedisTTL(cfg.RedisTTL),
		)
	default:
		return persistence.NewSessionStore(persistence.SessionStoreMemory)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func waitForShutdown(server *http.Server, log zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
