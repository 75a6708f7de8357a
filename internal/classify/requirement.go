// Package classify provides small, independent annotation helpers consumed by
// the caller alongside match results: requirement-type inference and keyword
// suggestion.
package classify

import (
	"strings"

	"github.com/jonathan/jd-annotator/internal/types"
)

// minWordOverlap is the word-overlap ratio above which a JD item is considered
// the same requirement as a listed qualification.
const minWordOverlap = 0.5

// sectionDefaults maps a JD section type to the requirement type assumed when
// the extracted qualification lists don't mention the item.
var sectionDefaults = map[string]string{
	"responsibilities": types.RequirementMustHave,
	"requirements":     types.RequirementMustHave,
	"benefits":         types.RequirementNiceToHave,
	"education":        types.RequirementNiceToHave,
	"nice_to_have":     types.RequirementNiceToHave,
}

// InferRequirementType classifies a JD item as must_have, nice_to_have or
// neutral. The extracted qualification lists are checked first (qualifications,
// then nice-to-haves); when neither mentions the item, the section type's
// default applies.
func InferRequirementType(text, sectionType string, jd *types.ExtractedJD) string {
	if jd != nil {
		if matchesAny(text, jd.Qualifications) {
			return types.RequirementMustHave
		}
		if matchesAny(text, jd.NiceToHaves) {
			return types.RequirementNiceToHave
		}
	}

	if def, ok := sectionDefaults[strings.ToLower(strings.TrimSpace(sectionType))]; ok {
		return def
	}
	return types.RequirementNeutral
}

// matchesAny reports whether text matches any candidate, by exact equality or
// by sharing more than half its words with the candidate.
func matchesAny(text string, candidates []string) bool {
	trimmed := strings.TrimSpace(text)
	for _, candidate := range candidates {
		if strings.EqualFold(trimmed, strings.TrimSpace(candidate)) {
			return true
		}
		if wordOverlap(trimmed, candidate) > minWordOverlap {
			return true
		}
	}
	return false
}

// wordOverlap returns |words(text) ∩ words(candidate)| / |words(text)|,
// case-insensitive. A text with no words overlaps nothing.
func wordOverlap(text, candidate string) float64 {
	textWords := wordSet(text)
	if len(textWords) == 0 {
		return 0
	}

	candidateWords := wordSet(candidate)
	shared := 0
	for w := range textWords {
		if candidateWords[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(textWords))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
