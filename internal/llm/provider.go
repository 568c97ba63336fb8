// Package llm defines universal chat-completion types and the provider
// interface for language-model backends.
package llm

import (
	"context"

	"github.com/skillsenselab/meetscribe/internal/provider"
)

// Provider is the interface that LLM backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// NewRegistry creates a new provider registry for LLM backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
