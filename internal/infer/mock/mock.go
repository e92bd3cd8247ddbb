// Package mock provides a test double for the infer.Engine interface.
package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/adityaksh/sakha/internal/infer"
)

// ErrNotLoaded is returned by Generate before a successful Load.
var ErrNotLoaded = errors.New("mock: engine not loaded")

// ErrClosed is returned by Generate after Close.
var ErrClosed = errors.New("mock: engine closed")

// Engine is a mock implementation of infer.Engine.
type Engine struct {
	mu sync.Mutex

	// LoadErr, if non-nil, is returned by Load.
	LoadErr error

	// GenerateErr, if non-nil, is returned by Generate.
	GenerateErr error

	// Response is returned by Generate when GenerateErr is nil.
	Response string

	// LoadDelay, if set, makes Load block until the context is done or the
	// channel is closed. Use it to test in-flight load cancellation.
	LoadDelay chan struct{}

	loaded   bool
	closed   bool
	loadPath string
	loadCfg  infer.GenerationConfig
	prompts  []string
}

// Compile-time assertion.
var _ infer.Engine = (*Engine)(nil)

// Load implements infer.Engine.
func (e *Engine) Load(ctx context.Context, path string, cfg infer.GenerationConfig) error {
	e.mu.Lock()
	delay := e.LoadDelay
	if e.loaded {
		e.mu.Unlock()
		return errors.New("mock: already loaded")
	}
	e.mu.Unlock()

	if delay != nil {
		select {
		case <-delay:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.LoadErr != nil {
		return e.LoadErr
	}
	e.loaded = true
	e.closed = false
	e.loadPath = path
	e.loadCfg = cfg
	return nil
}

// Generate implements infer.Engine.
func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", ErrClosed
	}
	if !e.loaded {
		return "", ErrNotLoaded
	}
	e.prompts = append(e.prompts, prompt)
	if e.GenerateErr != nil {
		return "", e.GenerateErr
	}
	return e.Response, nil
}

// Close implements infer.Engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.loaded = false
	return nil
}

// Loaded reports whether a Load succeeded and Close has not been called.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// LoadPath returns the path passed to the last successful Load.
func (e *Engine) LoadPath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadPath
}

// LoadConfig returns the config passed to the last successful Load.
func (e *Engine) LoadConfig() infer.GenerationConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadCfg
}

// Prompts returns a copy of all prompts passed to Generate.
func (e *Engine) Prompts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.prompts))
	copy(out, e.prompts)
	return out
}
