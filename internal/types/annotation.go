package types

import "github.com/google/uuid"

// Annotation sources.
const (
	SourceAutoGenerated = "auto_generated"
	SourceManual        = "manual"
)

// Feedback actions applied to an annotation.
const (
	ActionSave   = "save"
	ActionDelete = "delete"
)

// AnnotationTarget identifies the JD fragment an annotation is attached to.
// CharStart/CharEnd are optional offsets into the section text.
type AnnotationTarget struct {
	Text      string `json:"text"`
	Section   string `json:"section,omitempty"`
	CharStart *int   `json:"char_start,omitempty"`
	CharEnd   *int   `json:"char_end,omitempty"`
}

// OriginalValues snapshots the values an annotation carried when it was first
// suggested, so feedback can tell edits apart from accepts and can resolve the
// governing keyword prior.
type OriginalValues struct {
	Relevance      string `json:"relevance,omitempty"`
	Requirement    string `json:"requirement,omitempty"`
	Passion        string `json:"passion,omitempty"`
	Identity       string `json:"identity,omitempty"`
	MatchMethod    string `json:"match_method,omitempty"`
	MatchedKeyword string `json:"matched_keyword,omitempty"`
}

// Annotation is a single semantic label set over a JD fragment, either
// auto-generated by the suggestion engine or entered manually.
type Annotation struct {
	ID               uuid.UUID        `json:"id"`
	Source           string           `json:"source"`
	Target           AnnotationTarget `json:"target"`
	Relevance        string           `json:"relevance,omitempty"`
	RequirementType  string           `json:"requirement_type,omitempty"`
	Passion          string           `json:"passion,omitempty"`
	Identity         string           `json:"identity,omitempty"`
	OriginalValues   *OriginalValues  `json:"original_values,omitempty"`
	FeedbackCaptured bool             `json:"feedback_captured"`
}

// DimensionValues returns the annotation's current label per dimension, keyed
// by the canonical dimension names.
func (a *Annotation) DimensionValues() map[string]string {
	return map[string]string{
		DimRelevance:   a.Relevance,
		DimRequirement: a.RequirementType,
		DimPassion:     a.Passion,
		DimIdentity:    a.Identity,
	}
}

// CorpusAnnotation is the historical annotation shape consumed during rebuild:
// the labeled text plus the job it came from.
type CorpusAnnotation struct {
	Text        string `json:"text"`
	Relevance   string `json:"relevance,omitempty"`
	Requirement string `json:"requirement,omitempty"`
	Passion     string `json:"passion,omitempty"`
	Identity    string `json:"identity,omitempty"`
	JobID       string `json:"job_id,omitempty"`
}

// Meta converts a corpus annotation to the metadata stored in the sentence index.
func (c *CorpusAnnotation) Meta() SentenceMeta {
	return SentenceMeta{
		Relevance:   c.Relevance,
		Requirement: c.Requirement,
		Passion:     c.Passion,
		Identity:    c.Identity,
		JobID:       c.JobID,
	}
}
