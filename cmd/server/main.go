package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/katakuxiko/biz-rag-backend/internal/api"
	"github.com/katakuxiko/biz-rag-backend/internal/cloud"
	"github.com/katakuxiko/biz-rag-backend/internal/config"
	"github.com/katakuxiko/biz-rag-backend/internal/logger"
	"github.com/katakuxiko/biz-rag-backend/internal/service"
	"github.com/katakuxiko/biz-rag-backend/internal/store"
)

func main() {
	// config
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn("close client", zap.Error(err))
			}
		}
	}()

	// store
	docs, closer, err := openDocumentStore(ctx, cfg)
	if err != nil {
		log.Fatal("document store", zap.Error(err))
	}
	closers = append(closers, closer)

	// speech clients
	speechClient, err := cloud.NewSpeechClient(ctx, cfg.GCP)
	if err != nil {
		log.Fatal("speech client", zap.Error(err))
	}
	closers = append(closers, speechClient)

	ttsClient, err := cloud.NewTextToSpeechClient(ctx, cfg.GCP)
	if err != nil {
		log.Fatal("text-to-speech client", zap.Error(err))
	}
	closers = append(closers, ttsClient)

	// services
	if cfg.OpenAI.APIKey == "" {
		log.Warn("OPENAI_API_KEY is not set")
	}
	llm := service.NewLLMClient(cfg.OpenAI)
	stt, err := service.NewSTTService(speechClient, cfg.Speech)
	if err != nil {
		log.Fatal("stt service", zap.Error(err))
	}

	// api
	app := fiber.New(fiber.Config{
		AppName:               cfg.Server.ServiceName,
		BodyLimit:             cfg.Server.AppBodyLimit(),
		DisableStartupMessage: true,
	})
	api.RegisterRoutes(app, api.Deps{
		Ask:         service.NewAskService(docs, llm),
		STT:         stt,
		TTS:         service.NewTTSService(ttsClient, log),
		Models:      llm,
		Logger:      log,
		ServiceName: cfg.Server.ServiceName,
		BodyLimit:   cfg.Server.BodyLimit(),
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("server started",
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("model", cfg.OpenAI.Model),
	)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Error("listen", zap.Error(err))
	}
}

func openDocumentStore(ctx context.Context, cfg *config.Config) (service.DocumentFetcher, io.Closer, error) {
	keys := store.KeyFormat{Prefix: cfg.Storage.Prefix, Suffix: cfg.Storage.Suffix}

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		s, err := store.NewPgStore(ctx, cfg.Storage.PgConn)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		client, err := cloud.NewStorageClient(ctx, cfg.Firebase)
		if err != nil {
			return nil, nil, err
		}
		return store.NewGCSStore(client, cfg.Storage.Bucket, keys), client, nil
	}
}
