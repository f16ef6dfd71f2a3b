package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"MarketRadar/internal/corroboration"
	"MarketRadar/internal/digest"
	"MarketRadar/internal/domain"
	"MarketRadar/internal/ports"
	"MarketRadar/internal/scoring"
	"MarketRadar/internal/watchlist"
)

// Settings are the per-run display knobs.
type Settings struct {
	Universe    []string
	WindowDays  int
	Threshold   int
	OnlyImpact  bool
	ShowSnippet bool
	MaxPerStock int
}

// PipelineDeps wires all driven adapters into the refresh pipeline.
type PipelineDeps struct {
	Source    ports.ArticleSource
	Engine    *scoring.Engine
	Sentiment ports.SentimentAnalyzer
	Notifier  ports.Notifier
	Exporter  ports.Exporter
	Watchlist *watchlist.Store
	Settings  Settings
	Logger    *slog.Logger
}

// Pipeline implements one fetch-and-score refresh cycle.
type Pipeline struct {
	source    ports.ArticleSource
	engine    *scoring.Engine
	sentiment ports.SentimentAnalyzer
	notifier  ports.Notifier
	exporter  ports.Exporter
	watchlist *watchlist.Store
	settings  Settings
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:    deps.Source,
		engine:    deps.Engine,
		sentiment: deps.Sentiment,
		notifier:  deps.Notifier,
		exporter:  deps.Exporter,
		watchlist: deps.Watchlist,
		settings:  deps.Settings,
		logger:    deps.Logger,
	}
}

// Refresh runs one full cycle: fetch every stock, build the corroboration
// index over the whole batch, then score, classify, filter, and deliver.
// The index MUST be complete before the first article is scored; a story's
// bonus depends on siblings fetched for other stocks in the same cycle.
func (p *Pipeline) Refresh(ctx context.Context, now time.Time) (domain.Batch, error) {
	if p.source == nil || p.engine == nil {
		return domain.Batch{}, fmt.Errorf("pipeline misconfigured: source and engine are required")
	}

	universe := p.settings.Universe
	if p.watchlist != nil {
		if watched := p.watchlist.Stocks(); len(watched) > 0 {
			universe = watched
		}
	}

	start := now.AddDate(0, 0, -p.settings.WindowDays)
	articles, err := p.source.FetchWindow(ctx, universe, start, now)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("fetch window: %w", err)
	}

	// Phase 1: corroboration index over the complete batch.
	index := corroboration.NewIndex()
	for i := range articles {
		articles[i].HeadlineKey = corroboration.NormalizeHeadline(articles[i].Title, articles[i].Stock)
		index.Add(articles[i].HeadlineKey, articles[i].Publisher)
	}

	p.debug("batch indexed", "articles", len(articles), "headlines", index.Len())

	// Phase 2: score against the finished index.
	batch := p.scoreBatch(ctx, universe, articles, index)

	if p.exporter != nil {
		if err := p.exporter.Export(batch); err != nil {
			return domain.Batch{}, fmt.Errorf("export batch: %w", err)
		}
	}

	if p.notifier != nil && batch.Scanned > 0 {
		message := digest.Render(batch, digest.Options{
			ShowSnippet: p.settings.ShowSnippet,
			MaxPerStock: p.settings.MaxPerStock,
		})
		if p.watchlist != nil {
			message += digest.RenderEvents(p.watchlist.Events())
		}
		if err := p.notifier.PublishDigest(ctx, message); err != nil {
			return domain.Batch{}, fmt.Errorf("publish digest: %w", err)
		}
	}

	return batch, nil
}

func (p *Pipeline) scoreBatch(ctx context.Context, universe []string, articles []domain.Article, index *corroboration.Index) domain.Batch {
	order := make([]string, 0, len(universe))
	byStock := make(map[string]*domain.StockNews, len(universe))
	batch := domain.Batch{}

	for _, stock := range universe {
		byStock[stock] = &domain.StockNews{Stock: stock}
		order = append(order, stock)
	}

	for _, art := range articles {
		news, ok := byStock[art.Stock]
		if !ok {
			news = &domain.StockNews{Stock: art.Stock}
			byStock[art.Stock] = news
			order = append(order, art.Stock)
		}
		news.Scanned++
		batch.Scanned++

		result := p.engine.Score(scoring.Input{
			Title:                   art.Title,
			Description:             art.Description,
			Publisher:               art.Publisher,
			CorroboratingPublishers: index.Publishers(art.HeadlineKey),
		})

		if !digest.Visible(result.Score, p.settings.Threshold, p.settings.OnlyImpact) {
			batch.FilteredOut++
			continue
		}
		batch.Displayed++

		scored := domain.ScoredArticle{
			Article:  art,
			Score:    result.Score,
			Reasons:  result.Reasons,
			Priority: digest.Classify(result.Score, p.settings.Threshold),
		}
		if p.sentiment != nil {
			scored.Sentiment = p.sentiment.Analyze(ctx, art.Title+" "+art.Description)
		}

		news.Articles = append(news.Articles, scored)
	}

	for _, stock := range order {
		news := byStock[stock]
		sort.SliceStable(news.Articles, func(i, j int) bool {
			return news.Articles[i].Score > news.Articles[j].Score
		})
		batch.Stocks = append(batch.Stocks, *news)
	}

	return batch
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
