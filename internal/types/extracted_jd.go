package types

// Requirement types inferred for JD items.
const (
	RequirementMustHave   = "must_have"
	RequirementNiceToHave = "nice_to_have"
	RequirementNeutral    = "neutral"
)

// ExtractedJD is the structured view of a job description produced upstream:
// the qualification lists and ranked keywords the classification helpers match
// against.
type ExtractedJD struct {
	Qualifications []string `json:"qualifications,omitempty"`
	NiceToHaves    []string `json:"nice_to_haves,omitempty"`
	TopKeywords    []string `json:"top_keywords,omitempty"`
}
