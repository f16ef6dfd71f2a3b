package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"Reliance Industries" - Google News</title>
    <item>
      <title>Reliance Q2 results beat estimates - Reuters</title>
      <link>https://news.example.com/reliance-q2</link>
      <pubDate>Mon, 25 Aug 2025 10:00:00 GMT</pubDate>
      <description>&lt;a href="https://news.example.com/reliance-q2"&gt;Reliance Q2 results beat estimates&lt;/a&gt;&lt;p&gt;Strong quarter across segments.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Analysts raise targets</title>
      <link>https://www.livemint.com/markets/analysts</link>
      <pubDate>Tue, 26 Aug 2025 08:00:00 GMT</pubDate>
      <description>plain text snippet</description>
    </item>
  </channel>
</rss>`

func newTestFetcher(t *testing.T, handler http.HandlerFunc) (*GoogleNews, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	g := NewGoogleNews(server.Client(), "en-IN", "IN", nil)
	g.baseURL = server.URL
	return g, server
}

func TestFetchParsesFeed(t *testing.T) {
	t.Parallel()

	var gotQuery string
	g, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	})

	start := time.Date(2025, time.August, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)

	articles := g.Fetch(context.Background(), "Reliance Industries", start, end)
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	if !strings.Contains(gotQuery, `"Reliance Industries"`) ||
		!strings.Contains(gotQuery, "after:2025-08-24") ||
		!strings.Contains(gotQuery, "before:2025-08-31") {
		t.Fatalf("unexpected query: %q", gotQuery)
	}

	first := articles[0]
	if first.Stock != "Reliance Industries" {
		t.Fatalf("unexpected stock: %s", first.Stock)
	}
	if first.Title != "Reliance Q2 results beat estimates - Reuters" {
		t.Fatalf("unexpected title: %s", first.Title)
	}
	if first.Publisher != "Reuters" {
		t.Fatalf("unexpected publisher: %s", first.Publisher)
	}
	if first.Description != "Reliance Q2 results beat estimatesStrong quarter across segments." &&
		first.Description != "Reliance Q2 results beat estimates Strong quarter across segments." {
		t.Fatalf("unexpected flattened description: %q", first.Description)
	}
	if first.Published == "" {
		t.Fatal("published timestamp should be carried through as text")
	}

	// No title suffix: publisher falls back to the link host.
	second := articles[1]
	if second.Publisher != "livemint.com" {
		t.Fatalf("unexpected fallback publisher: %s", second.Publisher)
	}
	if second.Description != "plain text snippet" {
		t.Fatalf("unexpected description: %q", second.Description)
	}
}

func TestFetchDegradesToEmptyOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	g, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	articles := g.Fetch(context.Background(), "Infosys", time.Now().AddDate(0, 0, -7), time.Now())
	if len(articles) != 0 {
		t.Fatalf("expected no articles on upstream failure, got %d", len(articles))
	}
}

func TestFetchDegradesToEmptyOnGarbage(t *testing.T) {
	t.Parallel()

	g, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not xml"))
	})

	articles := g.Fetch(context.Background(), "Infosys", time.Now().AddDate(0, 0, -7), time.Now())
	if len(articles) != 0 {
		t.Fatalf("expected no articles on parse failure, got %d", len(articles))
	}
}

func TestPublisherOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title, link, want string
	}{
		{"Some headline - Economic Times", "https://x.example.com/a", "Economic Times"},
		{"No separator here", "https://www.business-standard.com/a", "business-standard.com"},
		{"No separator, bad link", "://bad", ""},
	}

	for _, tc := range cases {
		if got := publisherOf(tc.title, tc.link); got != tc.want {
			t.Fatalf("publisherOf(%q, %q) = %q, want %q", tc.title, tc.link, got, tc.want)
		}
	}
}

func TestBuildFeedURL(t *testing.T) {
	t.Parallel()

	g := NewGoogleNews(nil, "en-IN", "IN", nil)

	raw := g.buildFeedURL("Tata Motors",
		time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.August, 8, 0, 0, 0, 0, time.UTC))

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := u.Query()
	if q.Get("hl") != "en-IN" || q.Get("gl") != "IN" || q.Get("ceid") != "IN:en" {
		t.Fatalf("unexpected locale params: %s", u.RawQuery)
	}
	if want := `"Tata Motors" after:2025-08-01 before:2025-08-08`; q.Get("q") != want {
		t.Fatalf("unexpected q param: %q", q.Get("q"))
	}
}
