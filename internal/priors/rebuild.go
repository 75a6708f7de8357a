package priors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jd-annotator/internal/embedding"
	"github.com/jonathan/jd-annotator/internal/types"
	"go.uber.org/zap"
)

// CorpusReader is the annotation corpus collaborator: it enumerates every
// historical annotation, and is consumed only during rebuild.
type CorpusReader interface {
	ListAnnotations(ctx context.Context) ([]types.CorpusAnnotation, error)
}

// Rebuilder recomputes the sentence index and the skill-prior table from the
// entire historical corpus. Rebuilds are offline batch jobs: embedding errors
// propagate instead of degrading, because a silently-partial rebuild is worse
// than a loud failure.
type Rebuilder struct {
	corpus   CorpusReader
	embedder embedding.Client
	taxonomy *types.Taxonomy
	log      *zap.Logger
}

// NewRebuilder creates a rebuilder. A nil logger is replaced with a no-op
// logger.
func NewRebuilder(corpus CorpusReader, embedder embedding.Client, taxonomy *types.Taxonomy, log *zap.Logger) *Rebuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rebuilder{corpus: corpus, embedder: embedder, taxonomy: taxonomy, log: log}
}

// Rebuild replaces the record's sentence index and skill priors wholesale from
// the full corpus, then resets the rebuild bookkeeping and bumps the version.
// An empty corpus is a no-op, not an error. The record is mutated in place and
// returned.
func (r *Rebuilder) Rebuild(ctx context.Context, record *types.PriorsRecord) (*types.PriorsRecord, error) {
	annotations, err := r.corpus.ListAnnotations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load annotation corpus: %w", err)
	}
	if len(annotations) == 0 {
		r.log.Info("annotation corpus is empty, skipping rebuild")
		return record, nil
	}

	texts := make([]string, len(annotations))
	for i, a := range annotations {
		texts[i] = a.Text
	}

	vectors, err := r.embedder.EncodeBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed annotation corpus: %w", err)
	}

	metadata := make([]types.SentenceMeta, len(annotations))
	for i, a := range annotations {
		metadata[i] = a.Meta()
	}

	now := time.Now().UTC()
	record.Index = types.SentenceIndex{
		Embeddings: vectors,
		Texts:      texts,
		Metadata:   metadata,
		BuiltAt:    now,
		Model:      r.embedder.Model(),
		Count:      len(annotations),
	}

	record.SkillPriors = r.rebuildSkillPriors(annotations)

	record.Stats.TotalAnnotationsAtBuild = len(annotations)
	record.Stats.AnnotationsSinceBuild = 0
	record.Stats.LastRebuild = now
	record.Version++

	r.log.Info("rebuilt learned priors",
		zap.Int("annotations", len(annotations)),
		zap.Int("skill_priors", len(record.SkillPriors)),
		zap.Int("version", record.Version),
	)
	return record, nil
}

// rebuildSkillPriors recomputes the prior table from scratch: every taxonomy
// keyword votes over the annotations whose text mentions it. A full rebuild
// clears prior suppressions (avoid resets to false).
func (r *Rebuilder) rebuildSkillPriors(annotations []types.CorpusAnnotation) map[string]*types.SkillPrior {
	table := make(map[string]*types.SkillPrior)

	for _, keyword := range r.taxonomyKeywords() {
		votes := map[string][]string{
			types.DimRelevance:   nil,
			types.DimRequirement: nil,
			types.DimPassion:     nil,
			types.DimIdentity:    nil,
		}

		for _, a := range annotations {
			if !r.mentionsKeyword(a.Text, keyword) {
				continue
			}
			for dim, value := range map[string]string{
				types.DimRelevance:   a.Relevance,
				types.DimRequirement: a.Requirement,
				types.DimPassion:     a.Passion,
				types.DimIdentity:    a.Identity,
			} {
				if value != "" {
					votes[dim] = append(votes[dim], value)
				}
			}
		}

		table[keyword] = &types.SkillPrior{
			Relevance:   aggregateDimension(votes[types.DimRelevance]),
			Requirement: aggregateDimension(votes[types.DimRequirement]),
			Passion:     aggregateDimension(votes[types.DimPassion]),
			Identity:    aggregateDimension(votes[types.DimIdentity]),
		}
	}

	return table
}

// taxonomyKeywords returns the lowercased hard and soft skill names the prior
// table is keyed by.
func (r *Rebuilder) taxonomyKeywords() []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, skill := range append(append([]string{}, r.taxonomy.HardSkills...), r.taxonomy.SoftSkills...) {
		kw := strings.ToLower(strings.TrimSpace(skill))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	return keywords
}

// mentionsKeyword reports whether the text contains the keyword or any of its
// taxonomy aliases, case-insensitively.
func (r *Rebuilder) mentionsKeyword(text, keyword string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, keyword) {
		return true
	}
	for _, alias := range r.taxonomy.SkillAliases[keyword] {
		if strings.Contains(lower, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}
