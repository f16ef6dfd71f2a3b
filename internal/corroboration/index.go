// Package corroboration groups same-story articles across publishers within
// one fetch batch. The index must be fully built before any article in the
// batch is scored, because a story's bonus depends on siblings discovered
// later in the same cycle.
package corroboration

import (
	"regexp"
	"strings"
)

// nonWord matches runs of non-word runes. Spelled out instead of \W because
// Go's \W is ASCII-only and would collapse Devanagari or other non-Latin
// titles to nothing; marks are included to keep combining vowel signs.
var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_]+`)

const (
	maxKeyLen      = 120
	fallbackPrefix = 40
)

// NormalizeHeadline derives the grouping key for a title: lowercase, collapse
// non-word runs to single spaces, trim, cap at 120 characters. An empty
// result falls back to "<lowercased-query>_<first-40-chars-of-title>".
//
// This is a grouping key, not a content hash; collisions between unrelated
// short or empty titles are accepted.
func NormalizeHeadline(title, query string) string {
	key := strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(title), " "))
	if key == "" {
		return strings.ToLower(query) + "_" + truncate(title, fallbackPrefix)
	}
	return truncate(key, maxKeyLen)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Index maps a normalized headline key to every publisher that reported it.
type Index struct {
	publishers map[string][]string
}

// NewIndex returns an empty index for one fetch batch.
func NewIndex() *Index {
	return &Index{publishers: map[string][]string{}}
}

// Add records one publisher under a headline key. Unknown publishers are
// recorded as "unknown" so the story's report count stays honest even when
// attribution is missing.
func (i *Index) Add(key, publisher string) {
	if publisher == "" {
		publisher = "unknown"
	}
	i.publishers[key] = append(i.publishers[key], publisher)
}

// Publishers returns every recorded publisher for a key, duplicates included.
// Deduplication is the scorer's job.
func (i *Index) Publishers(key string) []string {
	return i.publishers[key]
}

// Len reports how many distinct headline keys the index holds.
func (i *Index) Len() int {
	return len(i.publishers)
}
