// Package embedding abstracts the sentence-embedding provider used to build
// and query the sentence index.
package embedding

import "context"

// Client is an abstraction over embedding providers
type Client interface {
	// Encode embeds a single text into a dense vector
	Encode(ctx context.Context, text string) ([]float64, error)
	// EncodeBatch embeds many texts, one vector per input in order
	EncodeBatch(ctx context.Context, texts []string) ([][]float64, error)
	// Model returns the provider model identity, recorded in the sentence index
	Model() string
	// Close releases any resources held by the client
	Close() error
}
