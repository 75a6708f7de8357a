package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewGeminiClient_DefaultsModel(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "test-key", "")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, DefaultModel, client.Model())
}

func TestNewGeminiClient_CustomModel(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "test-key", "text-embedding-005")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, "text-embedding-005", client.Model())
}

func TestEncodeBatch_EmptyInput(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "test-key", "")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	vectors, err := client.EncodeBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestToFloat64(t *testing.T) {
	got := toFloat64([]float32{0.5, -1, 2})
	assert.Equal(t, []float64{0.5, -1, 2}, got)

	assert.Empty(t, toFloat64(nil))
}
