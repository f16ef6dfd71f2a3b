package sentiment

import (
	"context"
	"testing"

	"MarketRadar/internal/domain"
)

func TestLexiconLabels(t *testing.T) {
	t.Parallel()

	analyzer := NewLexicon()
	ctx := context.Background()

	cases := []struct {
		text string
		want domain.SentimentLabel
	}{
		{"Profit surge as company beats street estimates", domain.SentimentPositive},
		{"Shares plunge after fraud probe, heavy losses ahead", domain.SentimentNegative},
		{"Company schedules annual general meeting", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
		{"Record profit offset by penalty and downgrade, shares fall", domain.SentimentNegative},
	}

	for _, tc := range cases {
		got := analyzer.Analyze(ctx, tc.text)
		if got.Label != tc.want {
			t.Fatalf("text %q: got %s, want %s", tc.text, got.Label, tc.want)
		}
		if got.Glyph == "" {
			t.Fatalf("text %q: missing glyph", tc.text)
		}
	}
}

func TestLexiconStripsPunctuation(t *testing.T) {
	t.Parallel()

	analyzer := NewLexicon()

	got := analyzer.Analyze(context.Background(), "A big win: 'surge!' say analysts")
	if got.Label != domain.SentimentPositive {
		t.Fatalf("expected Positive, got %s", got.Label)
	}
}
