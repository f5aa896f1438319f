package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Sagarm04/Sublyze/internal/config"
	"github.com/Sagarm04/Sublyze/internal/diagnostics"
	"github.com/Sagarm04/Sublyze/internal/domain"
	"github.com/Sagarm04/Sublyze/internal/intake"
	"github.com/Sagarm04/Sublyze/internal/jobs"
	"github.com/Sagarm04/Sublyze/internal/language"
	"github.com/Sagarm04/Sublyze/internal/progress"
	"github.com/Sagarm04/Sublyze/internal/provider"
	"github.com/Sagarm04/Sublyze/internal/server"
	"github.com/Sagarm04/Sublyze/internal/transcribe"
)

func main() {
	// Missing .env is fine; the environment may be configured directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("SUBLYZE_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.FromEnv()

	checker := diagnostics.NewChecker()
	report := checker.Run(cfg)
	for _, item := range report.Items {
		entry := log.WithFields(logrus.Fields{"check": item.ID, "status": item.Status})
		if item.Status == domain.DiagnosticStatusFail {
			entry.Warn(item.Message)
			if item.Hint != "" {
				entry.Warn(item.Hint)
			}
			continue
		}
		entry.Info(item.Message)
	}

	store := intake.NewStore(cfg.UploadDir, log)
	client := provider.NewClient(provider.Options{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		TranscribeModel: cfg.TranscribeModel,
		TranslateModel:  cfg.TranslateModel,
		Logger:          log,
	})
	pipeline := transcribe.NewPipeline(client, store, jobs.NewTracker(), cfg.ProviderTimeout, log)
	bus := progress.NewBus(500)

	srv := server.New(server.Options{
		Config:     cfg,
		Log:        log,
		Registry:   language.NewRegistry(),
		Store:      store,
		Pipeline:   pipeline,
		Translator: client,
		Reporter:   progress.NewReporter(bus),
		Bus:        bus,
		Checker:    checker,
	})

	if err := srv.Start(cfg.Addr); err != nil {
		log.WithError(err).Fatal("http server stopped")
	}
}
