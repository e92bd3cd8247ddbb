package brain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/adityaksh/sakha/internal/brain"
	"github.com/adityaksh/sakha/pkg/llm"
	llmmock "github.com/adityaksh/sakha/pkg/llm/mock"
)

func TestAsk_Success(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{Response: &llm.CompletionResponse{Content: "Namaste Boss!"}}
	c := brain.NewRemoteClient(p)

	got := c.Ask(context.Background(), "hello")
	if got.IsError {
		t.Fatalf("Ask returned error answer: %q", got.Text)
	}
	if got.Text != "Namaste Boss!" {
		t.Errorf("Text = %q, want model reply", got.Text)
	}
	if c.HistoryLen() != 2 {
		t.Errorf("HistoryLen = %d, want 2 (user + assistant)", c.HistoryLen())
	}

	call := p.LastCall()
	if call == nil {
		t.Fatal("provider never called")
	}
	if call.Req.SystemPrompt == "" {
		t.Error("request should carry the system preamble")
	}
	if call.Req.Temperature != 0.7 || call.Req.MaxTokens != 200 {
		t.Errorf("sampling = (%v, %d), want defaults (0.7, 200)", call.Req.Temperature, call.Req.MaxTokens)
	}
}

func TestAsk_NotConfigured(t *testing.T) {
	t.Parallel()
	c := brain.NewRemoteClient(nil)

	if c.Configured() {
		t.Error("Configured = true for nil provider")
	}
	got := c.Ask(context.Background(), "hello")
	if !got.IsError {
		t.Error("Ask without provider should report an error answer")
	}
}

func TestAsk_FailureKeepsUserTurnInHistory(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{Err: errors.New("dial tcp: timeout")}
	c := brain.NewRemoteClient(p)

	got := c.Ask(context.Background(), "kya haal")
	if !got.IsError {
		t.Fatal("Ask should report the network failure")
	}
	// The failed user turn stays so a retry resends it as context.
	if c.HistoryLen() != 1 {
		t.Errorf("HistoryLen = %d, want 1 (failed user turn retained)", c.HistoryLen())
	}
	h := c.History()
	if h[0].Role != "user" || h[0].Content != "kya haal" {
		t.Errorf("History[0] = %+v, want the failed user turn", h[0])
	}
}

func TestAsk_HistoryNeverExceedsTen(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{Response: &llm.CompletionResponse{Content: "ok"}}
	c := brain.NewRemoteClient(p)

	for i := 0; i < 25; i++ {
		c.Ask(context.Background(), fmt.Sprintf("sawaal %d", i))
		if n := c.HistoryLen(); n > 10 {
			t.Fatalf("after ask %d HistoryLen = %d, want <= 10", i, n)
		}
	}
}

func TestAsk_HistoryCapHoldsAcrossErrors(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{Err: errors.New("boom")}
	c := brain.NewRemoteClient(p)

	for i := 0; i < 30; i++ {
		c.Ask(context.Background(), "retry")
		if n := c.HistoryLen(); n > 10 {
			t.Fatalf("after error ask %d HistoryLen = %d, want <= 10", i, n)
		}
	}
}

func TestClear(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{Response: &llm.CompletionResponse{Content: "ok"}}
	c := brain.NewRemoteClient(p)

	c.Ask(context.Background(), "hello")
	c.Clear()
	if c.HistoryLen() != 0 {
		t.Errorf("HistoryLen after Clear = %d, want 0", c.HistoryLen())
	}
}
