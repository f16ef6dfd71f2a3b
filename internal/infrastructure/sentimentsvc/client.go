package sentimentsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"MarketRadar/internal/domain"
	"MarketRadar/internal/ports"
)

// Client talks to an external sentiment service. On any failure it falls
// back to the local analyzer so labeling never blocks a refresh cycle.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	fallback ports.SentimentAnalyzer
	logger   *slog.Logger
}

var _ ports.SentimentAnalyzer = (*Client)(nil)

// NewClient creates a reusable HTTP client wrapping a local fallback.
func NewClient(endpoint, apiKey string, fallback ports.SentimentAnalyzer, log *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
		fallback: fallback,
		logger:   log,
	}
}

// Analyze sends the text for labeling, degrading to the fallback analyzer
// when the service is unreachable or answers garbage.
func (c *Client) Analyze(ctx context.Context, text string) domain.Sentiment {
	label, glyph, err := c.post(ctx, text)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("remote sentiment failed, using fallback", "error", err)
		}
		if c.fallback != nil {
			return c.fallback.Analyze(ctx, text)
		}
		return domain.Sentiment{Label: domain.SentimentNeutral, Glyph: "➖"}
	}

	return domain.Sentiment{Label: label, Glyph: glyph}
}

func (c *Client) post(ctx context.Context, text string) (domain.SentimentLabel, string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload struct {
		Label string `json:"label"`
		Glyph string `json:"glyph"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("decode response: %w", err)
	}

	switch payload.Label {
	case string(domain.SentimentPositive), string(domain.SentimentNegative), string(domain.SentimentNeutral):
		return domain.SentimentLabel(payload.Label), payload.Glyph, nil
	default:
		return "", "", fmt.Errorf("unknown label %q", payload.Label)
	}
}
