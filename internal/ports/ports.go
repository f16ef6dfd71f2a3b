package ports

import (
	"context"
	"time"

	"MarketRadar/internal/domain"
)

// ArticleSource pulls raw articles for a whole stock universe over a window.
// Per-stock upstream failures degrade to missing articles, never to an error;
// an error here means the source itself is misconfigured.
type ArticleSource interface {
	FetchWindow(ctx context.Context, stocks []string, start, end time.Time) ([]domain.Article, error)
}

// SentimentAnalyzer labels combined title+description text. Decorative only;
// the impact score never reads it.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) domain.Sentiment
}

// Notifier delivers a rendered digest to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Exporter writes a scored batch to an external format (CSV).
type Exporter interface {
	Export(batch domain.Batch) error
}

// Scheduler controls when refresh cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
