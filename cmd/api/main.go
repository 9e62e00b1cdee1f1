package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chat-relay/internal/config"
	apihttp "chat-relay/internal/http"
	"chat-relay/internal/llm"
	"chat-relay/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		return err
	}

	relaySvc := service.NewRelayService(logger, completer, cfg.MaxInstances)
	chatHandler := apihttp.NewChatHandler(logger, relaySvc)
	router := apihttp.NewRouter(logger, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.ActiveModel()),
		zap.Int("max_instances", cfg.MaxInstances),
	)

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var result error
	select {
	case err := <-serveErr:
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("http server: %w", err))
		}
	case <-ctx.Done():
		logger.Info("shutting down due to signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, fmt.Errorf("http shutdown: %w", err))
	}
	if err := completer.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close llm client: %w", err))
	}
	return result
}

func newCompleter(ctx context.Context, cfg *config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout), nil
	}
}

// newLogger construye zap en JSON (producción) o consola; un nivel inválido cae a info.
func newLogger(level, format string) (*zap.Logger, error) {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		atomicLevel.SetLevel(zap.InfoLevel)
	}

	zapConfig := zap.NewProductionConfig()
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapConfig.Level = atomicLevel
	zapConfig.OutputPaths = []string{"stdout"}

	return zapConfig.Build()
}
