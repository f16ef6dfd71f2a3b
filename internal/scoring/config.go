package scoring

// MatchMode selects how keywords are located in article text.
type MatchMode string

const (
	// MatchSubstring is plain containment anywhere in the text, including
	// inside longer words. This is the historical behavior of the scoring
	// tables (e.g. "md" fires inside unrelated words) and stays the
	// default so scores stay comparable across deployments.
	MatchSubstring MatchMode = "substring"

	// MatchWordBoundary anchors every keyword with \b on both sides.
	// Higher precision, different scores.
	MatchWordBoundary MatchMode = "word"
)

// Category is one weighted keyword group. A category contributes its weight
// at most once per article no matter how many of its keywords match.
type Category struct {
	Name     string
	Label    string
	Weight   int
	Keywords []string
}

// Config is the full, immutable scoring configuration. Build one (usually
// via DefaultConfig), hand it to NewEngine, and never mutate it afterwards.
type Config struct {
	// Categories are evaluated in slice order; the order is part of the
	// contract because reason labels are appended as categories fire.
	Categories []Category

	NumericWeight     int
	TrustedWeight     int
	LowQualityWeight  int
	SpeculativeWeight int

	// MaxCorroborationBonus caps the 5-points-per-extra-trusted-publisher
	// corroboration bonus.
	MaxCorroborationBonus int

	// TrustedSources and LowQualitySources are lowercase substrings matched
	// against the lowercased publisher name. Always containment, regardless
	// of Matching: publisher strings routinely embed the source name
	// ("economictimes.indiatimes.com").
	TrustedSources    []string
	LowQualitySources []string

	// SpeculativeWords flag hedged or rumor language in the article text.
	SpeculativeWords []string

	// NumericPattern recognizes currency symbols and formatted quantities
	// with financial unit suffixes. Matched case-insensitively.
	NumericPattern string

	Matching MatchMode
}

// Reason labels, in evaluation order. Exported so tests and renderers can
// refer to them without retyping display strings.
const (
	ReasonEarnings      = "Earnings/Guidance"
	ReasonMA            = "M&A/JV"
	ReasonManagement    = "Management/Govt"
	ReasonCorpAction    = "Corporate Action"
	ReasonContract      = "Contract/Order"
	ReasonRegulatory    = "Regulatory/Policy"
	ReasonAnalyst       = "Broker/Analyst Move"
	ReasonBlockInsider  = "Block/Insider Deal"
	ReasonNumeric       = "Numeric Mention"
	ReasonTrusted       = "Trusted Source"
	ReasonLowQuality    = "Low-quality Source (penalized)"
	ReasonSpeculative   = "Speculative Language (penalized)"
	ReasonCorroboration = "Corroboration"
)

// DefaultConfig returns the production weight and keyword tables.
func DefaultConfig() Config {
	return Config{
		Categories: []Category{
			{
				Name:   "earnings_guidance",
				Label:  ReasonEarnings,
				Weight: 30,
				Keywords: []string{
					"earnings", "quarter", "q1", "q2", "q3", "q4", "revenue",
					"profit", "loss", "guidance", "outlook", "beat", "miss", "results",
				},
			},
			{
				Name:   "ma_jv",
				Label:  ReasonMA,
				Weight: 25,
				Keywords: []string{
					"acquires", "acquisition", "merger", "demerger", "spin-off",
					"spin off", "joint venture", "jv",
				},
			},
			{
				Name:   "management_change",
				Label:  ReasonManagement,
				Weight: 20,
				Keywords: []string{
					"appoint", "resign", "ceo", "cfo", "chairman", "board",
					"director", "promoter", "coo", "md",
				},
			},
			{
				Name:   "corp_action",
				Label:  ReasonCorpAction,
				Weight: 20,
				Keywords: []string{
					"buyback", "dividend", "split", "bonus issue", "bonus",
					"rights issue", "rights", "share pledge", "pledge",
				},
			},
			{
				Name:   "contract_deal",
				Label:  ReasonContract,
				Weight: 25,
				Keywords: []string{
					"contract", "order", "tender", "deal", "agreement",
					"licence", "license", "wins order",
				},
			},
			{
				Name:   "policy_regulation",
				Label:  ReasonRegulatory,
				Weight: 20,
				Keywords: []string{
					"sebi", "investigation", "fraud", "lawsuit", "penalty",
					"fine", "regulation", "ban", "policy", "pli", "subsidy", "tariff",
				},
			},
			{
				Name:   "analyst_move",
				Label:  ReasonAnalyst,
				Weight: 15,
				Keywords: []string{
					"upgrade", "downgrade", "target", "recommendation",
					"brokerage", "analyst",
				},
			},
			{
				Name:   "block_insider",
				Label:  ReasonBlockInsider,
				Weight: 25,
				Keywords: []string{
					"block deal", "bulk deal", "blocktrade", "block-trade",
					"insider", "promoter buy", "promoter selling", "promoter sell",
				},
			},
		},
		NumericWeight:         10,
		TrustedWeight:         15,
		LowQualityWeight:      -10,
		SpeculativeWeight:     -15,
		MaxCorroborationBonus: 20,
		TrustedSources: []string{
			"reuters", "bloomberg", "economic times", "economictimes",
			"livemint", "mint", "business standard", "business-standard",
			"cnbc", "ft", "financial times", "press release", "nse", "bse",
		},
		LowQualitySources: []string{
			"blog", "medium", "wordpress", "forum", "reddit", "quora",
		},
		SpeculativeWords: []string{
			"may", "might", "could", "rumour", "rumor", "reportedly",
			"alleged", "possible", "speculat",
		},
		NumericPattern: `[%₹$£€]|(?:\b\d{1,3}(?:,\d{3})*(?:\.\d+)?\b\s*(?:crore|lakh|billion|bn|mn|m|₹|rs\.|rs|rupee|ton|tons|mw|gw))`,
		Matching:       MatchSubstring,
	}
}
