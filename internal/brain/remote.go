// Package brain holds the free-form question handlers: the hosted-model
// client with its rolling conversation history and the on-device client that
// prompts the loaded local model.
package brain

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adityaksh/sakha/pkg/llm"
)

// maxHistory caps the rolling conversation window sent with each request.
const maxHistory = 10

const systemPrompt = `Tu Sakha hai, ek Hinglish personal voice assistant.
- Hamesha short aur helpful jawab do (1-2 sentences max jab tak detail na maangi ho)
- Hinglish mein baat karo (Hindi + English mix)
- Friendly aur smart tone rakho
- User ka naam "Boss" se address karo`

// Answer is the outcome of one Ask call.
type Answer struct {
	// Text is the reply to speak, or an apology when IsError is set.
	Text string

	// IsError reports that the call failed and Text is an apology.
	IsError bool
}

// RemoteClient asks the hosted model, carrying a rolling history of the
// last ten turns. Safe for concurrent use.
//
// A failed call keeps the user's turn in history. The next Ask therefore
// resends the failed question as context, which is deliberate: a user who
// retries gets a model that has already seen the question once.
type RemoteClient struct {
	provider    llm.Provider
	temperature float64
	maxTokens   int
	log         *slog.Logger

	mu      sync.Mutex
	history []llm.Message
}

// RemoteOption configures a RemoteClient.
type RemoteOption func(*RemoteClient)

// WithSampling overrides the default temperature (0.7) and reply token cap
// (200).
func WithSampling(temperature float64, maxTokens int) RemoteOption {
	return func(c *RemoteClient) {
		c.temperature = temperature
		c.maxTokens = maxTokens
	}
}

// WithRemoteLogger sets the logger. Defaults to slog.Default().
func WithRemoteLogger(log *slog.Logger) RemoteOption {
	return func(c *RemoteClient) { c.log = log }
}

// NewRemoteClient returns a client over provider. A nil provider is allowed
// and makes every Ask return the not-configured apology.
func NewRemoteClient(provider llm.Provider, opts ...RemoteOption) *RemoteClient {
	c := &RemoteClient{
		provider:    provider,
		temperature: 0.7,
		maxTokens:   200,
		log:         slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether a provider credential is wired up.
func (c *RemoteClient) Configured() bool { return c.provider != nil }

// Ask sends userMessage with the rolling history and returns the reply.
// Failures are reported in the Answer, never as a Go error; the controller
// loop must keep running regardless of what the network does.
func (c *RemoteClient) Ask(ctx context.Context, userMessage string) Answer {
	if c.provider == nil {
		return Answer{
			Text:    "Boss, API key set nahi ki. Config mein cloud api_key daalo.",
			IsError: true,
		}
	}

	c.mu.Lock()
	c.append(llm.Message{Role: "user", Content: userMessage})
	messages := make([]llm.Message, len(c.history))
	copy(messages, c.history)
	c.mu.Unlock()

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages:     messages,
		Temperature:  c.temperature,
		MaxTokens:    c.maxTokens,
	})
	if err != nil {
		c.log.Warn("hosted model call failed", "error", err)
		return Answer{
			Text:    "Network se baat nahi ho pa rahi Boss. Internet check karo.",
			IsError: true,
		}
	}

	reply := resp.Content
	c.mu.Lock()
	c.append(llm.Message{Role: "assistant", Content: reply})
	c.mu.Unlock()

	return Answer{Text: reply}
}

// append adds m to the history and drops the oldest entries so the window
// never exceeds maxHistory. Caller holds c.mu.
func (c *RemoteClient) append(m llm.Message) {
	c.history = append(c.history, m)
	if n := len(c.history) - maxHistory; n > 0 {
		c.history = c.history[n:]
	}
}

// Clear discards the conversation history.
func (c *RemoteClient) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// HistoryLen reports the current history window size.
func (c *RemoteClient) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}

// History returns a copy of the rolling window, oldest first.
func (c *RemoteClient) History() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Message, len(c.history))
	copy(out, c.history)
	return out
}
