package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"MarketRadar/internal/config"
	"MarketRadar/internal/domain"
	"MarketRadar/internal/export"
	"MarketRadar/internal/fetcher"
	"MarketRadar/internal/infrastructure/feed"
	"MarketRadar/internal/infrastructure/scheduler"
	"MarketRadar/internal/infrastructure/sentimentsvc"
	"MarketRadar/internal/infrastructure/telegram"
	"MarketRadar/internal/logging"
	"MarketRadar/internal/ports"
	"MarketRadar/internal/scoring"
	"MarketRadar/internal/sentiment"
	"MarketRadar/internal/usecase"
	"MarketRadar/internal/watchlist"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	pipeline  *usecase.Pipeline
	watchlist *watchlist.Store
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	registry := fetcher.NewRegistry()
	registry.Register(feed.NewGoogleNews(nil, cfg.Fetch.Language, cfg.Fetch.Country,
		baseLogger.With("component", "feed.googlenews")))

	source := fetcher.NewSource(registry, cfg.Fetch.Strategy, cfg.Fetch.Workers,
		baseLogger.With("component", "source"))

	scoringCfg := scoring.DefaultConfig()
	if cfg.Scoring.Matching == string(scoring.MatchWordBoundary) {
		scoringCfg.Matching = scoring.MatchWordBoundary
	}
	engine, err := scoring.NewEngine(scoringCfg)
	if err != nil {
		return nil, fmt.Errorf("build scoring engine: %w", err)
	}

	var analyzer ports.SentimentAnalyzer = sentiment.NewLexicon()
	if cfg.Sentiment.InferenceURL != "" {
		analyzer = sentimentsvc.NewClient(cfg.Sentiment.InferenceURL, cfg.Sentiment.APIKey,
			analyzer, baseLogger.With("component", "sentiment.remote"))
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID,
			baseLogger.With("component", "telegram"))
	}

	var exporter ports.Exporter
	if cfg.Export.Path != "" {
		exporter = export.NewFileExporter(cfg.Export.Path)
	}

	store := watchlist.NewStore()

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:    source,
		Engine:    engine,
		Sentiment: analyzer,
		Notifier:  notifier,
		Exporter:  exporter,
		Watchlist: store,
		Settings: usecase.Settings{
			Universe:    cfg.Universe,
			WindowDays:  cfg.Window.Days,
			Threshold:   cfg.Scoring.Threshold,
			OnlyImpact:  cfg.Scoring.OnlyImpact,
			ShowSnippet: cfg.Scoring.ShowSnippet,
			MaxPerStock: 10,
		},
		Logger: baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:       cfg,
		pipeline:  pipeline,
		watchlist: store,
		logger:    baseLogger.With("component", "app"),
	}, nil
}

// Watch restricts refresh cycles to the given stock (session-scoped).
func (a *Application) Watch(stock string) {
	a.watchlist.Add(stock)
}

// AddEvent records a manual upcoming event for the digest.
func (a *Application) AddEvent(ev domain.UpcomingEvent) {
	a.watchlist.AddEvent(ev)
}

// Run performs a single refresh when no cron expression is configured;
// otherwise it starts the scheduler and blocks until the context ends.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	now := time.Now().In(a.cfg.Scheduler.Location())

	if a.cfg.Scheduler.CronExpression == "" {
		batch, err := a.pipeline.Refresh(ctx, now)
		if err != nil {
			return err
		}
		a.logger.Info("refresh complete",
			"displayed", batch.Displayed,
			"filtered_out", batch.FilteredOut,
			"scanned", batch.Scanned)
		return nil
	}

	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	runner := usecase.NewScheduler(driver, a.pipeline, a.logger)
	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return runner.Stop(stopCtx)
}
