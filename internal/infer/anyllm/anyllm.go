// Package anyllm adapts a llama.cpp-compatible serving backend to the
// infer.Engine interface via github.com/mozilla-ai/any-llm-go.
//
// The serving process (llama.cpp server, llamafile, or Ollama) owns the model
// weights; Load verifies the artifact exists on disk and opens the client.
// This keeps the bootstrap contract (no generation before the artifact is
// present and loaded) without linking inference natively.
package anyllm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/llamacpp"

	"github.com/adityaksh/sakha/internal/infer"
)

// ErrNotLoaded is returned by Generate before a successful Load.
var ErrNotLoaded = errors.New("anyllm: engine not loaded")

// Engine implements infer.Engine against a llama.cpp-compatible server.
type Engine struct {
	opts []anyllmlib.Option

	mu      sync.Mutex
	backend anyllmlib.Provider
	model   string
	cfg     infer.GenerationConfig
	closed  bool
}

// Compile-time assertion.
var _ infer.Engine = (*Engine)(nil)

// New returns an unloaded Engine. opts configure the backend client, e.g.
// anyllmlib.WithBaseURL for a non-default server address.
func New(opts ...anyllmlib.Option) *Engine {
	return &Engine{opts: opts}
}

// Load implements infer.Engine. The model name sent to the server is the
// artifact's base name; llama.cpp servers ignore it, Ollama matches on it.
func (e *Engine) Load(ctx context.Context, path string, cfg infer.GenerationConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("anyllm: model artifact: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("anyllm: model artifact %s is a directory", path)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backend != nil {
		return errors.New("anyllm: already loaded")
	}
	backend, err := llamacpp.New(e.opts...)
	if err != nil {
		return fmt.Errorf("anyllm: open backend: %w", err)
	}
	e.backend = backend
	e.model = filepath.Base(path)
	e.cfg = cfg
	e.closed = false
	return nil
}

// Generate implements infer.Engine.
func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	e.mu.Lock()
	backend, model, cfg, closed := e.backend, e.model, e.cfg, e.closed
	e.mu.Unlock()

	if closed || backend == nil {
		return "", ErrNotLoaded
	}

	params := anyllmlib.CompletionParams{
		Model: model,
		Messages: []anyllmlib.Message{
			{Role: anyllmlib.RoleUser, Content: prompt},
		},
	}
	if cfg.MaxTokens > 0 {
		mt := cfg.MaxTokens
		params.MaxTokens = &mt
	}
	if cfg.Temperature != 0 {
		t := cfg.Temperature
		params.Temperature = &t
	}

	resp, err := backend.Completion(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anyllm: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("anyllm: empty choices in response")
	}
	return resp.Choices[0].Message.ContentString(), nil
}

// Close implements infer.Engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.backend = nil
	e.closed = true
	return nil
}
