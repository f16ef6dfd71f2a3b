package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MarketRadar/internal/ports"
)

// maxMessageLen is Telegram's sendMessage text cap. A full digest (ten stocks
// with reasons, snippets, and events) routinely exceeds it.
const maxMessageLen = 4096

const defaultAPIBase = "https://api.telegram.org"

// Notifier sends digests to a Telegram chat via the bot API, splitting long
// digests into multiple messages on line boundaries.
type Notifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string, log *slog.Logger) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultAPIBase,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log,
	}
}

// PublishDigest posts a Markdown digest to Telegram, one message per chunk.
// Chunks are sent in order; the first failure aborts the rest.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}
	if strings.TrimSpace(digest) == "" {
		return nil
	}

	chunks := splitDigest(digest)
	n.debug("publishing digest", "chunks", len(chunks))

	for i, chunk := range chunks {
		if err := n.sendMessage(ctx, chunk); err != nil {
			return fmt.Errorf("send chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

func (n *Notifier) sendMessage(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// splitDigest breaks a digest into messages of at most maxMessageLen runes,
// preferring line boundaries so stock sections stay readable. A single line
// longer than the cap is hard-split.
func splitDigest(text string) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > maxMessageLen {
			flush()
			chunks = append(chunks, string(runes[:maxMessageLen]))
			runes = runes[maxMessageLen:]
		}

		need := len(runes)
		if len(cur) > 0 {
			need++ // joining newline
		}
		if len(cur)+need > maxMessageLen {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, '\n')
		}
		cur = append(cur, runes...)
	}
	flush()

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

func (n *Notifier) debug(msg string, args ...interface{}) {
	if n.logger != nil {
		n.logger.Debug(msg, args...)
	}
}
