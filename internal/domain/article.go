package domain

// Article is a raw news record as produced by a fetcher, flattened to plain
// strings before any scoring happens. Published stays an opaque upstream
// string; the feeds emit too many formats to parse reliably.
type Article struct {
	Stock       string
	Title       string
	Description string
	Publisher   string
	URL         string
	Published   string
	HeadlineKey string
}

// ScoredArticle carries an article together with its market-impact score,
// the reason labels that explain it, and presentation metadata.
type ScoredArticle struct {
	Article   Article
	Score     int
	Reasons   []string
	Sentiment Sentiment
	Priority  Priority
}

// Priority buckets articles for display badges.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Badge returns the display glyph for a priority bucket.
func (p Priority) Badge() string {
	switch p {
	case PriorityHigh:
		return "🔴"
	case PriorityMedium:
		return "🟠"
	default:
		return "⚪"
	}
}

// SentimentLabel is the 3-way polarity of an article's text.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// Sentiment pairs a label with its display glyph. It never feeds back into
// the impact score.
type Sentiment struct {
	Label SentimentLabel
	Glyph string
}

// StockNews groups the scored articles of one stock after threshold
// filtering; Scanned counts everything scored before filtering.
type StockNews struct {
	Stock    string
	Articles []ScoredArticle
	Scanned  int
}

// Batch is the outcome of one full fetch-and-score cycle.
type Batch struct {
	Stocks      []StockNews
	Displayed   int
	FilteredOut int
	Scanned     int
}

// UpcomingEvent is a manually entered calendar entry (earnings date, AGM,
// record date). Process-lifetime only.
type UpcomingEvent struct {
	Stock string
	Label string
	When  string
}
