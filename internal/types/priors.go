// Package types provides type definitions for structured data used throughout the jd-annotator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Dimension names used as keys throughout the priors record.
const (
	DimRelevance   = "relevance"
	DimRequirement = "requirement"
	DimPassion     = "passion"
	DimIdentity    = "identity"
)

// Dimension holds a single learned belief about one annotation dimension of a
// skill keyword. Value is empty exactly when N is zero (nothing observed yet).
type Dimension struct {
	Value      string  `json:"value,omitempty"`
	Confidence float64 `json:"confidence"`
	N          int     `json:"n"`
}

// NewDimension returns an unobserved dimension with neutral confidence.
func NewDimension() Dimension {
	return Dimension{Confidence: 0.5}
}

// SkillPrior is the learned belief about how a single skill keyword should be
// annotated, one Dimension per annotation axis plus a suppression flag.
type SkillPrior struct {
	Relevance   Dimension `json:"relevance"`
	Requirement Dimension `json:"requirement"`
	Passion     Dimension `json:"passion"`
	Identity    Dimension `json:"identity"`
	Avoid       bool      `json:"avoid"`
}

// NewSkillPrior returns a fresh prior with all dimensions unobserved.
func NewSkillPrior() *SkillPrior {
	return &SkillPrior{
		Relevance:   NewDimension(),
		Requirement: NewDimension(),
		Passion:     NewDimension(),
		Identity:    NewDimension(),
	}
}

// Dimensions returns the prior's dimensions keyed by canonical name.
// The pointers alias the prior's fields, so callers may mutate through them.
func (p *SkillPrior) Dimensions() map[string]*Dimension {
	return map[string]*Dimension{
		DimRelevance:   &p.Relevance,
		DimRequirement: &p.Requirement,
		DimPassion:     &p.Passion,
		DimIdentity:    &p.Identity,
	}
}

// SentenceMeta is the annotation metadata stored alongside each embedded
// sentence in the index.
type SentenceMeta struct {
	Relevance   string `json:"relevance"`
	Requirement string `json:"requirement"`
	Passion     string `json:"passion"`
	Identity    string `json:"identity"`
	JobID       string `json:"job_id,omitempty"`
}

// SentenceIndex is the flat nearest-neighbor index over previously annotated
// sentences. Embeddings, Texts and Metadata are parallel slices of length Count.
type SentenceIndex struct {
	Embeddings [][]float64    `json:"embeddings"`
	Texts      []string       `json:"texts"`
	Metadata   []SentenceMeta `json:"metadata"`
	BuiltAt    time.Time      `json:"built_at,omitempty"`
	Model      string         `json:"model,omitempty"`
	Count      int            `json:"count"`
}

// IsEmpty reports whether the index holds no embeddings.
func (idx *SentenceIndex) IsEmpty() bool {
	return len(idx.Embeddings) == 0
}

// PriorsStats tracks suggestion and rebuild bookkeeping.
type PriorsStats struct {
	TotalSuggestionsMade    int       `json:"total_suggestions_made"`
	AcceptedUnchanged       int       `json:"accepted_unchanged"`
	Edited                  int       `json:"edited"`
	Deleted                 int       `json:"deleted"`
	AnnotationsSinceBuild   int       `json:"annotations_since_build"`
	TotalAnnotationsAtBuild int       `json:"total_annotations_at_build"`
	LastRebuild             time.Time `json:"last_rebuild,omitempty"`
}

// PriorsRecord is the singleton learned state: the sentence index, the
// per-keyword skill priors and the bookkeeping stats. It is loaded wholesale
// into memory, mutated, and written back wholesale.
type PriorsRecord struct {
	Version     int                    `json:"version"`
	Index       SentenceIndex          `json:"sentence_index"`
	SkillPriors map[string]*SkillPrior `json:"skill_priors"`
	Stats       PriorsStats            `json:"stats"`
	UpdatedAt   time.Time              `json:"updated_at,omitempty"`
}

// NewEmptyRecord returns the shape persisted on first load: version 1, no
// index, no priors, all counters zero.
func NewEmptyRecord() *PriorsRecord {
	return &PriorsRecord{
		Version:     1,
		SkillPriors: make(map[string]*SkillPrior),
	}
}
