package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	appconfig "news-digest/internal/config"
	"news-digest/internal/infra/extractor"
	"news-digest/internal/infra/mailer"
	"news-digest/internal/infra/scraper"
	"news-digest/internal/infra/summarizer"
	"news-digest/internal/observability/logging"
	"news-digest/internal/usecase/digest"
)

func main() {
	// .env is optional; environment variables take precedence in deployment.
	_ = godotenv.Load()

	logger := initLogger()

	cfg := appconfig.Load()
	provider := createProvider(logger)
	ext := createExtractor(logger)

	svc := digest.NewService(
		cfg.Feeds,
		scraper.NewRSSFetcher(&http.Client{Timeout: 30 * time.Second}),
		ext,
		summarizer.NewController(provider, summarizer.LoadConfig()),
		mailer.NewSendGrid(mailer.LoadConfig()),
		rate.NewLimiter(rate.Every(cfg.PacingInterval), 1),
		cfg.EntriesPerFeed,
	)

	runID := uuid.NewString()
	logger.Info("starting digest run",
		slog.String("run_id", runID),
		slog.Int("feeds", len(cfg.Feeds)),
		slog.Int("entries_per_feed", cfg.EntriesPerFeed),
		slog.Duration("pacing_interval", cfg.PacingInterval))

	if _, err := svc.Run(context.Background()); err != nil {
		logger.Error("digest run aborted",
			slog.String("run_id", runID),
			slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the default structured logger based on environment
// configuration. LOG_FORMAT=text switches to the human-readable handler.
func initLogger() *slog.Logger {
	var logger *slog.Logger
	if os.Getenv("LOG_FORMAT") == "text" {
		logger = logging.NewTextLogger()
	} else {
		logger = logging.NewLogger()
	}
	slog.SetDefault(logger)
	return logger
}

// createProvider builds the summarization provider selected by
// SUMMARIZER_TYPE (claude, openai, noop). A missing API key for the selected
// provider is fatal: the run would only produce failure messages.
func createProvider(logger *slog.Logger) summarizer.Provider {
	providerType := os.Getenv("SUMMARIZER_TYPE")
	switch providerType {
	case "", "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY must be set")
			os.Exit(1)
		}
		return summarizer.NewClaude(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY must be set")
			os.Exit(1)
		}
		return summarizer.NewOpenAI(apiKey)
	case "noop":
		logger.Warn("using noop summarization provider, digest will echo article text")
		return summarizer.NewNoOp()
	default:
		logger.Error("unknown SUMMARIZER_TYPE",
			slog.String("value", providerType))
		os.Exit(1)
		return nil
	}
}

// createExtractor builds the article extractor selected by EXTRACTOR_TYPE
// (heuristic, readability).
func createExtractor(logger *slog.Logger) digest.ArticleExtractor {
	cfg := extractor.LoadConfig()
	extractorType := os.Getenv("EXTRACTOR_TYPE")
	switch extractorType {
	case "", "heuristic":
		return extractor.NewHeuristic(cfg)
	case "readability":
		return extractor.NewReadability(cfg)
	default:
		logger.Error("unknown EXTRACTOR_TYPE",
			slog.String("value", extractorType))
		os.Exit(1)
		return nil
	}
}
