package classify

import (
	"strings"

	"github.com/jonathan/jd-annotator/internal/types"
)

// DefaultMaxKeywords is the keyword cap applied when maxKeywords is not
// positive.
const DefaultMaxKeywords = 3

// SuggestKeywordsForItem returns up to maxKeywords entries from the extracted
// JD's ranked keyword list, preserving that list's order, that appear in the
// item's text (case-insensitive substring).
func SuggestKeywordsForItem(text string, jd *types.ExtractedJD, maxKeywords int) []string {
	if jd == nil || len(jd.TopKeywords) == 0 {
		return nil
	}
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}

	lower := strings.ToLower(text)
	var keywords []string
	for _, kw := range jd.TopKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			keywords = append(keywords, kw)
			if len(keywords) == maxKeywords {
				break
			}
		}
	}
	return keywords
}
