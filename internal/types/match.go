package types

// Match methods recorded on a MatchResult.
const (
	MethodSentenceSimilarity = "sentence_similarity"
	MethodKeywordPrior       = "keyword_prior"
)

// MatchContext types returned by the generation gate.
const (
	ContextJDSignal  = "jd_signal"
	ContextHardSkill = "hard_skill"
	ContextSoftSkill = "soft_skill"
	ContextPrior     = "prior"
)

// MatchResult is the suggestion produced for a JD fragment: the four dimension
// values to propose, how they were found, and how confident the engine is.
type MatchResult struct {
	Relevance      string  `json:"relevance,omitempty"`
	Requirement    string  `json:"requirement,omitempty"`
	Passion        string  `json:"passion,omitempty"`
	Identity       string  `json:"identity,omitempty"`
	Confidence     float64 `json:"confidence"`
	Method         string  `json:"method"`
	MatchedText    string  `json:"matched_text,omitempty"`
	MatchedKeyword string  `json:"matched_keyword,omitempty"`
	MatchedScore   float64 `json:"matched_score"`
}

// MatchContext explains why the generation gate decided a fragment deserves an
// annotation suggestion.
type MatchContext struct {
	Type    string `json:"type"`
	Match   string `json:"match"`
	Source  string `json:"source"`
	Section string `json:"section,omitempty"`
}
