package match

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/jd-annotator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns a canned vector, or an error.
type stubEmbedder struct {
	vector []float64
	err    error
}

func (s stubEmbedder) Encode(context.Context, string) ([]float64, error) {
	return s.vector, s.err
}

func (s stubEmbedder) EncodeBatch(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = s.vector
	}
	return vectors, s.err
}

func (stubEmbedder) Model() string { return "stub-embedding-001" }
func (stubEmbedder) Close() error  { return nil }

func gateTaxonomy() *types.Taxonomy {
	return &types.Taxonomy{
		JDSignals: map[string][]string{
			"requirements": {"years of experience", "must have"},
			"culture":      {"fast-paced"},
		},
		HardSkills:   []string{"python", "kubernetes"},
		SoftSkills:   []string{"communication"},
		SkillAliases: map[string][]string{"kubernetes": {"k8s"}},
	}
}

func recordWithPrior(keyword string, confidence float64, avoid bool) *types.PriorsRecord {
	record := types.NewEmptyRecord()
	prior := types.NewSkillPrior()
	prior.Relevance = types.Dimension{Value: "core", Confidence: confidence, N: 5}
	prior.Requirement = types.Dimension{Value: "must_have", Confidence: confidence, N: 5}
	prior.Avoid = avoid
	record.SkillPriors[keyword] = prior
	return record
}

func TestShouldGenerate_JDSignalWins(t *testing.T) {
	engine := NewEngine(nil)

	ok, ctx := engine.ShouldGenerate("Must have 5 years of experience with python", gateTaxonomy(), types.NewEmptyRecord())
	require.True(t, ok)
	require.NotNil(t, ctx)
	assert.Equal(t, types.ContextJDSignal, ctx.Type)
	assert.Equal(t, "taxonomy", ctx.Source)
	assert.Equal(t, "requirements", ctx.Section)
}

func TestShouldGenerate_HardSkill(t *testing.T) {
	engine := NewEngine(nil)

	ok, ctx := engine.ShouldGenerate("Deep Python expertise", gateTaxonomy(), types.NewEmptyRecord())
	require.True(t, ok)
	assert.Equal(t, types.ContextHardSkill, ctx.Type)
	assert.Equal(t, "python", ctx.Match)
}

func TestShouldGenerate_HardSkillAlias(t *testing.T) {
	engine := NewEngine(nil)

	ok, ctx := engine.ShouldGenerate("Operating k8s clusters", gateTaxonomy(), types.NewEmptyRecord())
	require.True(t, ok)
	assert.Equal(t, types.ContextHardSkill, ctx.Type)
	assert.Equal(t, "kubernetes", ctx.Match)
}

func TestShouldGenerate_SoftSkill(t *testing.T) {
	engine := NewEngine(nil)

	ok, ctx := engine.ShouldGenerate("Strong communication across teams", gateTaxonomy(), types.NewEmptyRecord())
	require.True(t, ok)
	assert.Equal(t, types.ContextSoftSkill, ctx.Type)
	assert.Equal(t, "communication", ctx.Match)
}

func TestShouldGenerate_ConfidentLearnedPrior(t *testing.T) {
	engine := NewEngine(nil)
	record := recordWithPrior("terraform", 0.8, false)

	ok, ctx := engine.ShouldGenerate("Provisioning with terraform modules", gateTaxonomy(), record)
	require.True(t, ok)
	assert.Equal(t, types.ContextPrior, ctx.Type)
	assert.Equal(t, "terraform", ctx.Match)
	assert.Equal(t, "learned_priors", ctx.Source)
}

func TestShouldGenerate_LowConfidencePriorIgnored(t *testing.T) {
	engine := NewEngine(nil)
	record := recordWithPrior("terraform", 0.5, false)

	ok, ctx := engine.ShouldGenerate("Provisioning with terraform modules", gateTaxonomy(), record)
	assert.False(t, ok)
	assert.Nil(t, ctx)
}

func TestShouldGenerate_SuppressedPriorIgnored(t *testing.T) {
	engine := NewEngine(nil)
	record := recordWithPrior("terraform", 0.9, true)

	ok, _ := engine.ShouldGenerate("Provisioning with terraform modules", gateTaxonomy(), record)
	assert.False(t, ok)
}

func TestShouldGenerate_NoMatch(t *testing.T) {
	engine := NewEngine(nil)

	ok, ctx := engine.ShouldGenerate("Our office has free snacks", gateTaxonomy(), types.NewEmptyRecord())
	assert.False(t, ok)
	assert.Nil(t, ctx)
}

func TestFindBestMatch_SimilarityAboveThreshold(t *testing.T) {
	engine := NewEngine(nil)

	record := types.NewEmptyRecord()
	record.Index = types.SentenceIndex{
		Embeddings: [][]float64{{0, 1}, {1, 0}},
		Texts:      []string{"Building APIs in Java", "Building APIs in Go"},
		Metadata: []types.SentenceMeta{
			{Relevance: "peripheral", Requirement: "nice_to_have"},
			{Relevance: "core", Requirement: "must_have", Passion: "high", Identity: "strong"},
		},
		Count: 2,
	}

	result := engine.FindBestMatch(context.Background(), "Building APIs in Golang", record, stubEmbedder{vector: []float64{1, 0}})
	require.NotNil(t, result)
	assert.Equal(t, types.MethodSentenceSimilarity, result.Method)
	assert.Equal(t, "core", result.Relevance)
	assert.Equal(t, "must_have", result.Requirement)
	assert.Equal(t, "high", result.Passion)
	assert.Equal(t, "strong", result.Identity)
	assert.Equal(t, "Building APIs in Go", result.MatchedText)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	assert.InDelta(t, 1.0, result.MatchedScore, 1e-9)
}

func TestFindBestMatch_SimilarityBelowThresholdFallsBackToKeyword(t *testing.T) {
	engine := NewEngine(nil)

	record := recordWithPrior("aws", 0.75, false)
	record.Index = types.SentenceIndex{
		Embeddings: [][]float64{{0, 1}},
		Texts:      []string{"Building APIs in Java"},
		Metadata:   []types.SentenceMeta{{Relevance: "peripheral"}},
		Count:      1,
	}

	// Query at roughly 45 degrees from the only index row: cosine ~0.707.
	result := engine.FindBestMatch(context.Background(), "Deploying to aws infrastructure", record, stubEmbedder{vector: []float64{1, 1}})
	require.NotNil(t, result)
	assert.Equal(t, types.MethodKeywordPrior, result.Method)
	assert.Equal(t, "aws", result.MatchedKeyword)
	assert.Equal(t, "core", result.Relevance)
	assert.InDelta(t, 0.6, result.Confidence, 1e-9)
	assert.InDelta(t, 0.75, result.MatchedScore, 1e-9)
}

func TestFindBestMatch_EmptyIndexUsesKeywordPriors(t *testing.T) {
	engine := NewEngine(nil)
	record := recordWithPrior("python", 0.9, false)

	result := engine.FindBestMatch(context.Background(), "Writing python services", record, nil)
	require.NotNil(t, result)
	assert.Equal(t, types.MethodKeywordPrior, result.Method)
	assert.Equal(t, "python", result.MatchedKeyword)
	assert.InDelta(t, 0.72, result.Confidence, 1e-9)
}

func TestFindBestMatch_EmbedderFailureFallsBackToKeyword(t *testing.T) {
	engine := NewEngine(nil)

	record := recordWithPrior("python", 0.9, false)
	record.Index = types.SentenceIndex{
		Embeddings: [][]float64{{1, 0}},
		Texts:      []string{"Writing python services"},
		Metadata:   []types.SentenceMeta{{Relevance: "core"}},
		Count:      1,
	}

	result := engine.FindBestMatch(context.Background(), "Writing python services", record, stubEmbedder{err: errors.New("quota exceeded")})
	require.NotNil(t, result)
	assert.Equal(t, types.MethodKeywordPrior, result.Method)
}

func TestFindBestMatch_KeywordAtConfidenceThresholdRejected(t *testing.T) {
	engine := NewEngine(nil)
	record := recordWithPrior("python", 0.6, false)

	result := engine.FindBestMatch(context.Background(), "Writing python services", record, nil)
	assert.Nil(t, result)
}

func TestFindBestMatch_SuppressedKeywordSkipped(t *testing.T) {
	engine := NewEngine(nil)
	record := recordWithPrior("python", 0.9, true)

	result := engine.FindBestMatch(context.Background(), "Writing python services", record, nil)
	assert.Nil(t, result)
}

func TestFindBestMatch_NothingQualifies(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.FindBestMatch(context.Background(), "Our office has free snacks", types.NewEmptyRecord(), nil)
	assert.Nil(t, result)
}
