// Command server runs the orchestrator as a NATS request/reply service
// with optional Redis context snapshots, delegated LLM resolution and a
// prometheus metrics endpoint.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voiceking/voiceking-orchestrator/internal/config"
	"github.com/voiceking/voiceking-orchestrator/internal/contextstore"
	"github.com/voiceking/voiceking-orchestrator/internal/llm"
	"github.com/voiceking/voiceking-orchestrator/internal/metrics"
	"github.com/voiceking/voiceking-orchestrator/internal/orchestrator"
	"github.com/voiceking/voiceking-orchestrator/internal/transport"
)

func main() {
	// .env is a development convenience; environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := newLogger(cfg.LogFormat)
	defer logger.Sync()

	logger.Info("starting voiceking orchestrator service",
		zap.String("service", cfg.ServiceName),
		zap.String("nats_url", cfg.NatsURL),
		zap.String("request_subject", cfg.NatsRequestSubject),
	)

	var store contextstore.Store
	if cfg.RedisURL != "" {
		redisStore, err := contextstore.NewRedisStore(cfg.RedisURL, cfg.ContextTTL)
		if err != nil {
			logger.Fatal("connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info("context store enabled", zap.Duration("ttl", cfg.ContextTTL))
	} else {
		logger.Info("context store disabled (REDIS_URL not set)")
	}

	var provider llm.Provider
	if cfg.AIProvider != "" {
		var err error
		provider, err = llm.NewProvider(cfg)
		if err != nil {
			logger.Fatal("init LLM provider", zap.Error(err))
		}
		logger.Info("LLM delegation enabled", zap.String("provider", provider.Name()))
	} else {
		logger.Info("LLM delegation disabled (AI_PROVIDER not set)")
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			logger.Info("metrics endpoint listening", zap.String("addr", cfg.MetricsAddr))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	core := orchestrator.New(cfg.DefaultSearchEngine)

	natsTransport, err := transport.NewNATSTransport(cfg, core, store, provider, m, logger)
	if err != nil {
		logger.Fatal("init NATS transport", zap.Error(err))
	}
	defer natsTransport.Close()

	if err := natsTransport.Start(); err != nil {
		logger.Fatal("start NATS transport", zap.Error(err))
	}

	logger.Info("service is running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	if err := natsTransport.Close(); err != nil {
		logger.Warn("error closing NATS transport", zap.Error(err))
	}
	logger.Info("service stopped")
}

func newLogger(format string) *zap.Logger {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
