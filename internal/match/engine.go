package match

import (
	"context"
	"sort"
	"strings"

	"github.com/jonathan/jd-annotator/internal/embedding"
	"github.com/jonathan/jd-annotator/internal/types"
	"go.uber.org/zap"
)

const (
	// DefaultSimilarityThreshold is the minimum cosine similarity for a
	// sentence-index match to be suggested.
	DefaultSimilarityThreshold = 0.85

	// DefaultKeywordConfidenceThreshold is the minimum stored relevance
	// confidence for a keyword prior to be suggested.
	DefaultKeywordConfidenceThreshold = 0.6

	// keywordPriorDiscount reflects that a keyword hit is weaker evidence than
	// direct semantic similarity. Tunable; only required to stay below 1.
	keywordPriorDiscount = 0.8
)

// Prior-source labels recorded on MatchContext.
const (
	sourceTaxonomy = "taxonomy"
	sourcePriors   = "learned_priors"
)

// Engine answers the two read-only questions on the interactive suggestion
// path: should a fragment get an annotation at all, and what values should it
// get. Both calls are pure reads over an already-loaded record.
type Engine struct {
	SimilarityThreshold float64
	KeywordConfidence   float64

	log *zap.Logger
}

// NewEngine creates an engine with the default thresholds. A nil logger is
// replaced with a no-op logger.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		SimilarityThreshold: DefaultSimilarityThreshold,
		KeywordConfidence:   DefaultKeywordConfidenceThreshold,
		log:                 log,
	}
}

// ShouldGenerate decides whether a fragment deserves a suggestion, checking in
// priority order: taxonomy JD signals, hard skills (with aliases), soft
// skills, then learned priors whose relevance confidence exceeds 0.5 and that
// are not suppressed. Matching is case-insensitive substring throughout;
// the first hit wins.
func (e *Engine) ShouldGenerate(text string, taxonomy *types.Taxonomy, record *types.PriorsRecord) (bool, *types.MatchContext) {
	lower := strings.ToLower(text)

	// 1. JD signal phrases, per section
	for _, section := range sortedKeys(taxonomy.JDSignals) {
		for _, phrase := range taxonomy.JDSignals[section] {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return true, &types.MatchContext{
					Type:    types.ContextJDSignal,
					Match:   phrase,
					Source:  sourceTaxonomy,
					Section: section,
				}
			}
		}
	}

	// 2. Hard skills, canonical names then aliases
	for _, skill := range taxonomy.HardSkills {
		if e.containsSkill(lower, taxonomy, skill) {
			return true, &types.MatchContext{
				Type:   types.ContextHardSkill,
				Match:  skill,
				Source: sourceTaxonomy,
			}
		}
	}

	// 3. Soft skills
	for _, skill := range taxonomy.SoftSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			return true, &types.MatchContext{
				Type:   types.ContextSoftSkill,
				Match:  skill,
				Source: sourceTaxonomy,
			}
		}
	}

	// 4. Learned priors: confident, not suppressed
	for _, keyword := range sortedKeys(record.SkillPriors) {
		prior := record.SkillPriors[keyword]
		if prior.Avoid || prior.Relevance.Confidence <= 0.5 {
			continue
		}
		if strings.Contains(lower, keyword) {
			return true, &types.MatchContext{
				Type:   types.ContextPrior,
				Match:  keyword,
				Source: sourcePriors,
			}
		}
	}

	return false, nil
}

// FindBestMatch suggests annotation values for a fragment. It tries the
// sentence index first (cosine nearest neighbor at or above the similarity
// threshold) and falls back to keyword priors when the index is empty, the
// embedder fails, or nothing is similar enough. Returns nil when no stage
// qualifies.
func (e *Engine) FindBestMatch(ctx context.Context, text string, record *types.PriorsRecord, embedder embedding.Client) *types.MatchResult {
	if result := e.matchBySimilarity(ctx, text, record, embedder); result != nil {
		return result
	}
	return e.matchByKeyword(text, record)
}

// matchBySimilarity runs the nearest-neighbor stage. Embedding failures are
// treated as "no semantic match" rather than propagated; the keyword stage
// still runs.
func (e *Engine) matchBySimilarity(ctx context.Context, text string, record *types.PriorsRecord, embedder embedding.Client) *types.MatchResult {
	if embedder == nil || record.Index.IsEmpty() {
		return nil
	}

	query, err := embedder.Encode(ctx, text)
	if err != nil {
		e.log.Debug("embedding failed, falling back to keyword matching", zap.Error(err))
		return nil
	}

	best, score := argMax(cosineSimilarities(query, record.Index.Embeddings))
	if best < 0 || score < e.SimilarityThreshold {
		return nil
	}

	meta := record.Index.Metadata[best]
	return &types.MatchResult{
		Relevance:    meta.Relevance,
		Requirement:  meta.Requirement,
		Passion:      meta.Passion,
		Identity:     meta.Identity,
		Confidence:   score,
		Method:       types.MethodSentenceSimilarity,
		MatchedText:  record.Index.Texts[best],
		MatchedScore: score,
	}
}

// matchByKeyword scans the fragment's tokens in first-occurrence order and
// returns the first one backed by a confident, unsuppressed skill prior. The
// returned confidence carries the fixed keyword-prior discount.
func (e *Engine) matchByKeyword(text string, record *types.PriorsRecord) *types.MatchResult {
	for _, token := range tokenize(text) {
		prior, ok := record.SkillPriors[token]
		if !ok || prior.Avoid {
			continue
		}
		if prior.Relevance.Confidence <= e.KeywordConfidence {
			continue
		}
		return &types.MatchResult{
			Relevance:      prior.Relevance.Value,
			Requirement:    prior.Requirement.Value,
			Passion:        prior.Passion.Value,
			Identity:       prior.Identity.Value,
			Confidence:     prior.Relevance.Confidence * keywordPriorDiscount,
			Method:         types.MethodKeywordPrior,
			MatchedKeyword: token,
			MatchedScore:   prior.Relevance.Confidence,
		}
	}
	return nil
}

// containsSkill checks for the canonical skill name or any taxonomy alias.
func (e *Engine) containsSkill(lowerText string, taxonomy *types.Taxonomy, skill string) bool {
	canonical := strings.ToLower(skill)
	if strings.Contains(lowerText, canonical) {
		return true
	}
	for _, alias := range taxonomy.SkillAliases[canonical] {
		if strings.Contains(lowerText, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
