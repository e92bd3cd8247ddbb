// Package llm defines the Provider interface for chat-completion backends.
//
// A provider wraps a remote or local model API (e.g., Groq, OpenAI, or a
// llama.cpp server) behind a single blocking Complete call. The agent speaks
// whole phrases, so no streaming surface is exposed; providers that stream
// internally must accumulate before returning.
//
// Implementations must be safe for concurrent use.
package llm

import "context"

// Message is one turn of a conversation.
type Message struct {
	// Role is "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Usage holds token accounting returned by the backend. Counts are in the
// model's native token unit and may differ between providers for the same
// text.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CompletionRequest carries everything the model needs to produce a reply.
type CompletionRequest struct {
	// SystemPrompt is a high-priority instruction injected before Messages.
	// Providers without a dedicated system surface prepend it as a
	// "system"-role message.
	SystemPrompt string

	// Messages is the ordered conversation history; the last entry is
	// typically the "user" turn that drives the response.
	Messages []Message

	// Temperature controls output randomness in [0.0, 2.0]. Zero means use
	// the provider default.
	Temperature float64

	// MaxTokens caps completion length. Zero means provider default.
	MaxTokens int
}

// CompletionResponse is the model's reply.
type CompletionResponse struct {
	// Content is the full text of the assistant's reply.
	Content string

	// Usage contains token accounting for this request/response pair.
	Usage Usage
}

// Provider is the abstraction over any chat-completion backend.
type Provider interface {
	// Complete sends req and blocks for the full reply. Network failures,
	// non-2xx statuses, and malformed responses are all returned as errors;
	// the caller decides whether and how to retry.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
