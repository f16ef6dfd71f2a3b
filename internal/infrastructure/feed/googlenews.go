package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"MarketRadar/internal/domain"
	"MarketRadar/internal/fetcher"
)

const defaultBaseURL = "https://news.google.com/rss/search"

// GoogleNews fetches stock news from the Google News RSS search endpoint.
// It implements the never-fail fetcher contract: every upstream problem is
// logged and degrades to an empty result.
type GoogleNews struct {
	baseURL  string
	language string
	country  string
	parser   *gofeed.Parser
	logger   *slog.Logger
}

var _ fetcher.Fetcher = (*GoogleNews)(nil)

// NewGoogleNews wires an HTTP client into a gofeed parser. A nil client gets
// a 20-second timeout; Google News occasionally stalls.
func NewGoogleNews(client *http.Client, language, country string, log *slog.Logger) *GoogleNews {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "MarketRadar/1.0"

	return &GoogleNews{
		baseURL:  defaultBaseURL,
		language: language,
		country:  country,
		parser:   parser,
		logger:   log,
	}
}

// Name identifies the strategy inside the registry.
func (g *GoogleNews) Name() string {
	return "googlenews"
}

// Fetch queries one stock over the date window and returns flattened
// articles. Publisher names and descriptions are normalized here so the
// scoring engine only ever sees plain strings.
func (g *GoogleNews) Fetch(ctx context.Context, query string, start, end time.Time) []domain.Article {
	feedURL := g.buildFeedURL(query, start, end)

	parsed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		g.warn("fetch feed failed", "query", query, "error", err)
		return nil
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		title := strings.TrimSpace(item.Title)
		articles = append(articles, domain.Article{
			Stock:       query,
			Title:       title,
			Description: flattenHTML(item.Description),
			Publisher:   publisherOf(title, item.Link),
			URL:         item.Link,
			Published:   item.Published,
		})
	}

	return articles
}

func (g *GoogleNews) buildFeedURL(query string, start, end time.Time) string {
	q := url.Values{}
	q.Set("q", `"`+query+`" after:`+start.Format("2006-01-02")+" before:"+end.Format("2006-01-02"))
	if g.language != "" {
		q.Set("hl", g.language)
	}
	if g.country != "" {
		q.Set("gl", g.country)
		q.Set("ceid", g.country+":en")
	}
	return g.baseURL + "?" + q.Encode()
}

// publisherOf extracts the publisher from the " - Publisher" suffix Google
// News appends to item titles, falling back to the link host.
func publisherOf(title, link string) string {
	if idx := strings.LastIndex(title, " - "); idx > 0 && idx+3 < len(title) {
		return strings.TrimSpace(title[idx+3:])
	}
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		return strings.TrimPrefix(u.Host, "www.")
	}
	return ""
}

// flattenHTML reduces the HTML fragment Google News puts in descriptions to
// plain snippet text with collapsed whitespace.
func flattenHTML(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

func (g *GoogleNews) warn(msg string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}
