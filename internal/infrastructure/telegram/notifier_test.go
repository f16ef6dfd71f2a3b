package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func newTestNotifier(t *testing.T, handler http.Handler) *Notifier {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	n := NewNotifier("test-token", "42", nil)
	n.baseURL = server.URL
	return n
}

func TestPublishDigestSendsForm(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText, gotMode string
	n := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		gotMode = r.PostForm.Get("parse_mode")
	}))

	if err := n.PublishDigest(context.Background(), "*Reliance Industries*"); err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotChat != "42" || gotText != "*Reliance Industries*" || gotMode != "Markdown" {
		t.Fatalf("unexpected form: chat=%q text=%q mode=%q", gotChat, gotText, gotMode)
	}
}

func TestPublishDigestChunksLongMessages(t *testing.T) {
	t.Parallel()

	// 120 hundred-rune lines is well past the 4096 cap, so the digest must
	// arrive as several messages that reassemble to the original.
	line := strings.Repeat("x", 100)
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = line
	}
	digest := strings.Join(lines, "\n")

	var texts []string
	n := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		texts = append(texts, r.PostForm.Get("text"))
	}))

	if err := n.PublishDigest(context.Background(), digest); err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}

	if len(texts) < 2 {
		t.Fatalf("expected multiple messages, got %d", len(texts))
	}
	for i, text := range texts {
		if utf8.RuneCountInString(text) > maxMessageLen {
			t.Fatalf("message %d exceeds the cap: %d runes", i, utf8.RuneCountInString(text))
		}
	}
	if strings.Join(texts, "\n") != digest {
		t.Fatal("chunks do not reassemble to the original digest")
	}
}

func TestPublishDigestErrorsOnAPIFailure(t *testing.T) {
	t.Parallel()

	n := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "flood control", http.StatusTooManyRequests)
	}))

	if err := n.PublishDigest(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestPublishDigestSkipsEmpty(t *testing.T) {
	t.Parallel()

	calls := 0
	n := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	if err := n.PublishDigest(context.Background(), "  \n "); err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("empty digest must not be sent, got %d calls", calls)
	}
}

func TestSplitDigestHardSplitsOversizedLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", maxMessageLen+10)
	chunks := splitDigest(long)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if utf8.RuneCountInString(chunks[0]) != maxMessageLen {
		t.Fatalf("first chunk should fill the cap, got %d runes", utf8.RuneCountInString(chunks[0]))
	}
	if chunks[0]+chunks[1] != long {
		t.Fatal("hard split lost content")
	}
}
