package priors

import (
	"time"

	"github.com/jonathan/jd-annotator/internal/types"
)

const (
	// deleteDecayFactor shrinks every dimension's confidence when a user
	// rejects a suggestion outright.
	deleteDecayFactor = 0.3

	// overwriteConfidenceCeiling is the confidence below which a disagreeing
	// user value replaces the stored one.
	overwriteConfidenceCeiling = 0.4

	// resetConfidence is the neutral confidence assigned after an overwrite.
	resetConfidence = 0.5
)

// CaptureApplies reports whether feedback on this annotation can teach the
// skill priors anything: only auto-generated annotations whose suggestion came
// through a keyword prior qualify.
func CaptureApplies(annotation *types.Annotation) bool {
	if annotation == nil || annotation.Source != types.SourceAutoGenerated {
		return false
	}
	orig := annotation.OriginalValues
	return orig != nil && orig.MatchMethod == types.MethodKeywordPrior && orig.MatchedKeyword != ""
}

// Capture folds a single user accept/edit/delete action into the record's
// skill priors. Only auto-generated annotations that were matched through a
// keyword prior teach anything here; the sentence index is taught only by full
// rebuild. The record is mutated in place and returned.
func Capture(annotation *types.Annotation, action string, record *types.PriorsRecord) *types.PriorsRecord {
	if !CaptureApplies(annotation) {
		return record
	}
	keyword := annotation.OriginalValues.MatchedKeyword

	if record.SkillPriors == nil {
		record.SkillPriors = make(map[string]*types.SkillPrior)
	}
	prior, ok := record.SkillPriors[keyword]
	if !ok {
		prior = types.NewSkillPrior()
		record.SkillPriors[keyword] = prior
	}

	switch action {
	case types.ActionDelete:
		prior.Avoid = true
		for _, dim := range prior.Dimensions() {
			decayConfidence(dim, deleteDecayFactor)
		}
		record.Stats.Deleted++

	case types.ActionSave:
		values := annotation.DimensionValues()
		for name, dim := range prior.Dimensions() {
			resetOnDisagreement(dim, values[name])
		}
		if annotationEdited(annotation) {
			record.Stats.Edited++
		} else {
			record.Stats.AcceptedUnchanged++
		}

	default:
		return record
	}

	record.Stats.AnnotationsSinceBuild++
	record.UpdatedAt = time.Now().UTC()
	return record
}

// decayConfidence multiplies a dimension's confidence by the given factor,
// keeping it inside [0,1].
func decayConfidence(d *types.Dimension, factor float64) {
	d.Confidence *= factor
	if d.Confidence < 0 {
		d.Confidence = 0
	}
	if d.Confidence > 1 {
		d.Confidence = 1
	}
}

// resetOnDisagreement overwrites a low-confidence stored value when the user's
// value differs, resetting confidence to neutral. High-confidence priors and
// agreeing values are left untouched by a single action.
func resetOnDisagreement(d *types.Dimension, userValue string) {
	if d.Confidence >= overwriteConfidenceCeiling {
		return
	}
	if userValue == "" || userValue == d.Value {
		return
	}
	d.Value = userValue
	d.Confidence = resetConfidence
	if d.N == 0 {
		d.N = 1
	}
}

// annotationEdited reports whether the annotation's current values differ from
// the values it was suggested with.
func annotationEdited(a *types.Annotation) bool {
	orig := a.OriginalValues
	return a.Relevance != orig.Relevance ||
		a.RequirementType != orig.Requirement ||
		a.Passion != orig.Passion ||
		a.Identity != orig.Identity
}
