// Package sentiment labels article text with a 3-way polarity. It is a
// collaborator of the presentation layer only; scores never depend on it.
package sentiment

import (
	"context"
	"strings"

	"MarketRadar/internal/domain"
	"MarketRadar/internal/ports"
)

var positiveWords = []string{
	"beat", "beats", "surge", "surges", "rally", "gains", "gain", "jump",
	"jumps", "record", "strong", "growth", "profit", "upgrade", "bullish",
	"wins", "approval", "expansion", "dividend", "buyback",
}

var negativeWords = []string{
	"miss", "misses", "fall", "falls", "drop", "drops", "plunge", "plunges",
	"loss", "losses", "weak", "downgrade", "bearish", "fraud", "probe",
	"penalty", "lawsuit", "ban", "slump", "decline", "default",
}

// Lexicon is a word-count polarity analyzer. Stateless and concurrency-safe.
type Lexicon struct{}

var _ ports.SentimentAnalyzer = (*Lexicon)(nil)

// NewLexicon returns the default local analyzer.
func NewLexicon() *Lexicon {
	return &Lexicon{}
}

// Analyze tallies positive and negative lexicon hits across the text tokens
// and maps the balance to a label and glyph. Ties are Neutral.
func (l *Lexicon) Analyze(_ context.Context, text string) domain.Sentiment {
	pos, neg := 0, 0
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?\"'()[]")
		if token == "" {
			continue
		}
		if contains(positiveWords, token) {
			pos++
		}
		if contains(negativeWords, token) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return domain.Sentiment{Label: domain.SentimentPositive, Glyph: "📈"}
	case neg > pos:
		return domain.Sentiment{Label: domain.SentimentNegative, Glyph: "📉"}
	default:
		return domain.Sentiment{Label: domain.SentimentNeutral, Glyph: "➖"}
	}
}

func contains(words []string, token string) bool {
	for _, w := range words {
		if w == token {
			return true
		}
	}
	return false
}
