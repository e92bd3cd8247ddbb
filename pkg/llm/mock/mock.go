// Package mock provides a test double for the llm.Provider interface.
//
// Use Provider in unit tests to verify outgoing CompletionRequests and to
// feed controlled responses without a live backend.
//
// Example:
//
//	p := &mock.Provider{
//	    Response: &llm.CompletionResponse{Content: "Hello!"},
//	}
//	resp, err := p.Complete(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/adityaksh/sakha/pkg/llm"
)

// Call records a single invocation of Complete.
type Call struct {
	// Ctx is the context passed to Complete.
	Ctx context.Context
	// Req is the CompletionRequest passed to Complete.
	Req llm.CompletionRequest
}

// Provider is a mock implementation of llm.Provider. Zero-value response
// fields cause Complete to return (nil, nil); set Err to inject a failure.
type Provider struct {
	mu sync.Mutex

	// Response is returned by Complete when Err is nil.
	Response *llm.CompletionResponse

	// Responses, when non-empty, is consumed one element per call before
	// falling back to Response. Use it to script multi-turn conversations.
	Responses []*llm.CompletionResponse

	// Err, if non-nil, is returned as the error from Complete.
	Err error

	// Calls records every invocation of Complete in order.
	Calls []Call
}

// Compile-time assertion.
var _ llm.Provider = (*Provider)(nil)

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Deep-copy messages so later caller mutations don't alter the record.
	rec := req
	rec.Messages = make([]llm.Message, len(req.Messages))
	copy(rec.Messages, req.Messages)
	p.Calls = append(p.Calls, Call{Ctx: ctx, Req: rec})

	if p.Err != nil {
		return nil, p.Err
	}
	if len(p.Responses) > 0 {
		r := p.Responses[0]
		p.Responses = p.Responses[1:]
		return r, nil
	}
	return p.Response, nil
}

// CallCount reports how many times Complete was invoked.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}

// LastCall returns the most recent call record, or nil if none.
func (p *Provider) LastCall() *Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Calls) == 0 {
		return nil
	}
	c := p.Calls[len(p.Calls)-1]
	return &c
}
