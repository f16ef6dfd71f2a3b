package scoring

import (
	"fmt"
	"regexp"
	"strings"
)

// Input is everything the engine looks at for one article. Absent values are
// just empty strings; none of them can make Score fail.
type Input struct {
	Title       string
	Description string
	Publisher   string

	// CorroboratingPublishers lists every publisher that reported the same
	// normalized headline within the current fetch batch. May include the
	// article's own publisher; duplicates and empties are tolerated.
	CorroboratingPublishers []string
}

// Result is a bounded impact score plus the labels explaining it, in
// evaluation order. Reasons is nil when nothing matched.
type Result struct {
	Score   int
	Reasons []string
}

// Engine scores articles against an immutable Config. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg     Config
	numeric *regexp.Regexp

	// boundary holds per-keyword patterns, populated only in word mode.
	boundary map[string]*regexp.Regexp
}

// NewEngine compiles the numeric pattern (and, in word-boundary mode, one
// anchored pattern per keyword) and returns a ready engine.
func NewEngine(cfg Config) (*Engine, error) {
	numeric, err := regexp.Compile("(?i)" + cfg.NumericPattern)
	if err != nil {
		return nil, fmt.Errorf("compile numeric pattern: %w", err)
	}

	e := &Engine{cfg: cfg, numeric: numeric}

	if cfg.Matching == MatchWordBoundary {
		e.boundary = map[string]*regexp.Regexp{}
		for _, cat := range cfg.Categories {
			for _, kw := range cat.Keywords {
				if err := e.addBoundary(kw); err != nil {
					return nil, err
				}
			}
		}
		for _, kw := range cfg.SpeculativeWords {
			if err := e.addBoundary(kw); err != nil {
				return nil, err
			}
		}
	}

	return e, nil
}

func (e *Engine) addBoundary(keyword string) error {
	if _, ok := e.boundary[keyword]; ok {
		return nil
	}
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return fmt.Errorf("compile keyword %q: %w", keyword, err)
	}
	e.boundary[keyword] = re
	return nil
}

// Score classifies a single article. Pure function of the input and the
// engine's config: no I/O, no randomness, never fails.
func (e *Engine) Score(in Input) Result {
	text := strings.ToLower(in.Title + " " + in.Description)

	raw := 0
	var reasons []string

	for _, cat := range e.cfg.Categories {
		if e.containsAny(text, cat.Keywords) {
			raw += cat.Weight
			reasons = append(reasons, cat.Label)
		}
	}

	if e.numeric.MatchString(text) {
		raw += e.cfg.NumericWeight
		reasons = append(reasons, ReasonNumeric)
	}

	publisher := strings.ToLower(strings.TrimSpace(in.Publisher))
	if e.isTrusted(publisher) {
		raw += e.cfg.TrustedWeight
		reasons = append(reasons, ReasonTrusted)
	}
	// Not mutually exclusive with trusted: a publisher matching both tables
	// takes both adjustments.
	if publisher != "" && containsAnySubstring(publisher, e.cfg.LowQualitySources) {
		raw += e.cfg.LowQualityWeight
		reasons = append(reasons, ReasonLowQuality)
	}

	if e.containsAny(text, e.cfg.SpeculativeWords) {
		raw += e.cfg.SpeculativeWeight
		reasons = append(reasons, ReasonSpeculative)
	}

	if bonus := e.corroborationBonus(in.CorroboratingPublishers); bonus > 0 {
		raw += bonus
		reasons = append(reasons, ReasonCorroboration)
	}

	score := raw
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Reasons: reasons}
}

// corroborationBonus counts distinct trusted publishers in the corroboration
// set and pays 5 points per trusted publisher beyond the first, capped.
// Deduplication is by exact string; only the trust test lowercases.
func (e *Engine) corroborationBonus(publishers []string) int {
	if len(publishers) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(publishers))
	trusted := 0
	for _, p := range publishers {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		if e.isTrusted(strings.ToLower(p)) {
			trusted++
		}
	}

	if trusted <= 1 {
		return 0
	}
	bonus := 5 * (trusted - 1)
	if bonus > e.cfg.MaxCorroborationBonus {
		bonus = e.cfg.MaxCorroborationBonus
	}
	return bonus
}

// isTrusted expects an already-lowercased publisher string.
func (e *Engine) isTrusted(publisher string) bool {
	if publisher == "" {
		return false
	}
	return containsAnySubstring(publisher, e.cfg.TrustedSources)
}

func (e *Engine) containsAny(text string, keywords []string) bool {
	if e.cfg.Matching == MatchWordBoundary {
		for _, kw := range keywords {
			if re, ok := e.boundary[kw]; ok && re.MatchString(text) {
				return true
			}
		}
		return false
	}
	return containsAnySubstring(text, keywords)
}

func containsAnySubstring(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
