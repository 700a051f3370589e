// Command voicenote runs the Voice Note Taker API: an HTTP façade that
// forwards uploaded audio and text blobs to an external model provider and
// returns the transcription or paraphrase.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voicenote/internal/audio"
	"voicenote/internal/audit"
	"voicenote/internal/auth"
	"voicenote/internal/config"
	"voicenote/internal/handler"
	"voicenote/internal/logger"
	"voicenote/internal/provider"
	"voicenote/internal/ratelimit"
	"voicenote/internal/server"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml (default: search ./config.yml)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "voicenote: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, "voicenote")
	log.Info("Application starting")

	if cfg.Provider.APIKey == "" {
		log.Error("Provider API key not found. Please set OPENAI_API_KEY")
	}

	stager, err := audio.NewStager(cfg.Storage.TempDir, log)
	if err != nil {
		return err
	}
	store, err := audit.NewFileStore(cfg.Storage.AuditLogFile, log)
	if err != nil {
		return err
	}

	limiter := ratelimit.New()
	defer limiter.Close()

	openAI := provider.NewOpenAI(cfg.Provider)

	h := handler.New(handler.Deps{
		Log:         log,
		Transcriber: openAI,
		Paraphraser: openAI,
		Stager:      stager,
		Converter:   audio.NewFFmpegConverter(),
		Store:       store,
	})

	srv := server.New(cfg.Server, log)
	handler.Register(srv.Engine(), h, handler.RegisterOptions{
		Verifier:  auth.NewVerifier(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.PasswordHash),
		Limiter:   limiter,
		RateLimit: cfg.RateLimit,
		Log:       log,
	})

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Signal received, shutting down", logger.Fields("signal", sig.String()))

	return srv.Stop(ctx)
}
