// Package digest turns a scored batch into display decisions and a Markdown
// digest: priority badges, threshold filtering, and the per-stock rollup.
package digest

import (
	"fmt"
	"strings"

	"MarketRadar/internal/domain"
)

const (
	highScoreFloor = 70
	snippetLimit   = 220
)

// Classify buckets a score against the user threshold. A score exactly at
// the threshold is Medium, not Low.
func Classify(score, threshold int) domain.Priority {
	switch {
	case score >= highScoreFloor:
		return domain.PriorityHigh
	case score >= threshold:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// Visible decides whether an article is shown. With onlyImpact off,
// everything passes.
func Visible(score, threshold int, onlyImpact bool) bool {
	if !onlyImpact {
		return true
	}
	return score >= threshold
}

// Options control digest rendering.
type Options struct {
	ShowSnippet bool
	// MaxPerStock caps articles rendered per stock; 0 means no cap.
	MaxPerStock int
}

// Render builds the Markdown digest for one batch.
func Render(batch domain.Batch, opts Options) string {
	var b strings.Builder

	for _, stock := range batch.Stocks {
		fmt.Fprintf(&b, "🔹 *%s* (%d shown, scanned %d)\n",
			stock.Stock, len(stock.Articles), stock.Scanned)

		if len(stock.Articles) == 0 {
			b.WriteString("No market-impacting news found in the selected period.\n\n")
			continue
		}

		articles := stock.Articles
		if opts.MaxPerStock > 0 && len(articles) > opts.MaxPerStock {
			articles = articles[:opts.MaxPerStock]
		}

		for _, art := range articles {
			publisher := art.Article.Publisher
			if publisher == "" {
				publisher = "Unknown Source"
			}
			published := art.Article.Published
			if published == "" {
				published = "N/A"
			}

			fmt.Fprintf(&b, "- [%s](%s) %s *%s (%d)* 🏢 %s | 🗓️ %s\n",
				art.Article.Title, art.Article.URL,
				art.Priority.Badge(), art.Priority, art.Score,
				publisher, published)
			fmt.Fprintf(&b, "  Reasons: %s • Sentiment: %s %s\n",
				reasonsText(art.Reasons), art.Sentiment.Glyph, art.Sentiment.Label)

			if opts.ShowSnippet && art.Article.Description != "" {
				fmt.Fprintf(&b, "  > %s\n", snippet(art.Article.Description))
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: displayed %d • filtered out %d • scanned %d\n",
		batch.Displayed, batch.FilteredOut, batch.Scanned)

	return b.String()
}

// RenderEvents appends the manual calendar section; empty input renders
// nothing.
func RenderEvents(events []domain.UpcomingEvent) string {
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n📅 *Upcoming Events*\n")
	for _, ev := range events {
		when := ev.When
		if when == "" {
			when = "TBA"
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", ev.Stock, ev.Label, when)
	}
	return b.String()
}

func reasonsText(reasons []string) string {
	if len(reasons) == 0 {
		return "Signals detected"
	}
	return strings.Join(reasons, " • ")
}

func snippet(desc string) string {
	r := []rune(desc)
	if len(r) < snippetLimit {
		return desc
	}
	return string(r[:snippetLimit-3]) + "..."
}
