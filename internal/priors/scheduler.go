package priors

import (
	"time"

	"github.com/jonathan/jd-annotator/internal/types"
)

const (
	// maxIndexAge is how old a sentence index may grow before volume starts
	// forcing a rebuild.
	maxIndexAge = 24 * time.Hour

	// staleAnnotationThreshold is the annotation volume that, combined with an
	// old index, makes a rebuild due.
	staleAnnotationThreshold = 20

	// forceRebuildThreshold is the annotation volume that makes a rebuild due
	// regardless of index age.
	forceRebuildThreshold = 100
)

// ShouldRebuild reports whether a full rebuild of the learned state is due.
// It bounds both staleness and the cost of re-embedding the whole corpus:
// an empty or never-built index always rebuilds, a day-old index rebuilds once
// enough annotations accumulated, and a large backlog rebuilds unconditionally.
func ShouldRebuild(record *types.PriorsRecord) bool {
	if record.Index.IsEmpty() {
		return true
	}
	if record.Index.BuiltAt.IsZero() {
		return true
	}

	since := record.Stats.AnnotationsSinceBuild
	if time.Since(record.Index.BuiltAt) > maxIndexAge && since > staleAnnotationThreshold {
		return true
	}
	return since > forceRebuildThreshold
}
