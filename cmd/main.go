package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"live-interpreter-service/internal/api/ws"
	"live-interpreter-service/internal/app"
	"live-interpreter-service/internal/auth"
	"live-interpreter-service/internal/config"
	"live-interpreter-service/internal/events"
	apihttp "live-interpreter-service/internal/http"
	"live-interpreter-service/internal/observability"
	"live-interpreter-service/internal/service/interpret"
	"live-interpreter-service/internal/service/transcribe"
	"live-interpreter-service/internal/service/transcribe/deepgram"
	"live-interpreter-service/internal/service/transcribe/google"
	"live-interpreter-service/internal/service/transcribe/mock"
	"live-interpreter-service/internal/service/translate"
	"live-interpreter-service/internal/service/translate/azure"
	"live-interpreter-service/internal/service/translate/deepl"
	"live-interpreter-service/internal/store"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		application.Logger.Fatal().Err(err).Msg("Application startup failed")
	}
	logger := application.Logger

	ctx := context.Background()

	st, err := store.Open(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer st.Close()

	verifier := buildVerifier(cfg, logger)

	recognizer, err := buildRecognizer(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.STT.Provider).Msg("Failed to build STT provider")
	}
	transcriber := transcribe.NewService(recognizer, cfg.Limits.ProviderTimeout, logger)
	translator := translate.NewService(buildTranslationChain(cfg, logger), cfg.Limits.ProviderTimeout, logger)

	publisher := events.New(&events.Config{
		Enabled:   cfg.Kafka.Enabled,
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.Kafka.Topic,
		Principal: cfg.Service.Principal,
	})
	defer publisher.Close()

	controller := interpret.NewController(interpret.Deps{
		Verifier:     verifier,
		Accounts:     st,
		Sessions:     st,
		Registry:     interpret.NewRegistry(),
		Transcriber:  transcriber,
		Translator:   translator,
		Publisher:    publisher,
		SampleRateHz: cfg.STT.SampleRateHz,
	}, logger)

	wsServer := ws.NewServer(controller, cfg.Limits.MaxChunkBytes, logger)

	obsServer := observability.NewServer(cfg.Observability.MetricsAddr)
	obsServer.Start()

	server := &http.Server{
		Addr:        ":" + cfg.Service.HTTPPort,
		Handler:     apihttp.NewRouter(application, wsServer),
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Live interpreter service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Observability server shutdown failed")
	}

	application.Shutdown()
}

func buildVerifier(cfg *config.Configuration, logger zerolog.Logger) auth.Verifier {
	switch cfg.Auth.Mode {
	case "static":
		logger.Warn().Msg("Static token verifier enabled; for local development only")
		return auth.NewStaticVerifier(cfg.Auth.StaticToken)
	default:
		return auth.NewHTTPVerifier(cfg.Auth.Endpoint, cfg.Auth.APIKey, logger)
	}
}

func buildRecognizer(ctx context.Context, cfg *config.Configuration) (transcribe.Recognizer, error) {
	switch cfg.STT.Provider {
	case "deepgram":
		return deepgram.New(cfg.STT.DeepgramKey, cfg.STT.DeepgramModel), nil
	case "google":
		return google.New(ctx, cfg.STT.AudioEncoding, cfg.STT.SampleRateHz)
	default:
		return mock.New(), nil
	}
}

func buildTranslationChain(cfg *config.Configuration, logger zerolog.Logger) []translate.Provider {
	var chain []translate.Provider
	for _, name := range cfg.Translation.Providers {
		switch name {
		case "deepl":
			chain = append(chain, deepl.New(cfg.Translation.DeepLKey, cfg.Translation.DeepLEndpoint))
		case "azure":
			chain = append(chain, azure.New(cfg.Translation.AzureKey, cfg.Translation.AzureEndpoint, cfg.Translation.AzureRegion))
		default:
			logger.Warn().Str("provider", name).Msg("Unknown translation provider, skipping")
		}
	}
	return chain
}
