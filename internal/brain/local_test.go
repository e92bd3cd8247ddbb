package brain_test

import (
	"context"
	"strings"
	"testing"

	"github.com/adityaksh/sakha/internal/brain"
	"github.com/adityaksh/sakha/internal/infer"
	infermock "github.com/adityaksh/sakha/internal/infer/mock"
)

func loadedEngine(t *testing.T, response string) *infermock.Engine {
	t.Helper()
	e := &infermock.Engine{Response: response}
	if err := e.Load(context.Background(), "/tmp/model.bin", infer.DefaultGenerationConfig()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return e
}

func TestLocalAsk_WrapsPromptInTurnMarkers(t *testing.T) {
	t.Parallel()
	e := loadedEngine(t, "Theek hun Boss!")
	c := brain.NewLocalClient(e, nil)

	got := c.Ask(context.Background(), "kaise ho")
	if got.IsError {
		t.Fatalf("Ask returned error answer: %q", got.Text)
	}
	if got.Text != "Theek hun Boss!" {
		t.Errorf("Text = %q, want engine reply", got.Text)
	}

	prompts := e.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("len(Prompts) = %d, want 1", len(prompts))
	}
	p := prompts[0]
	if !strings.Contains(p, "<start_of_turn>user\nkaise ho\n<end_of_turn>") {
		t.Errorf("prompt missing wrapped user turn:\n%s", p)
	}
	if !strings.HasSuffix(p, "<start_of_turn>model\n") {
		t.Errorf("prompt should end with an open model turn:\n%s", p)
	}
}

func TestLocalAsk_StripsEchoedMarkers(t *testing.T) {
	t.Parallel()
	e := loadedEngine(t, "<start_of_turn>model\nJawab yahan hai\n<end_of_turn>")
	c := brain.NewLocalClient(e, nil)

	got := c.Ask(context.Background(), "sawaal")
	if got.Text != "Jawab yahan hai" {
		t.Errorf("Text = %q, want cleaned reply", got.Text)
	}
}

func TestLocalAsk_EmptyReplyFallsBack(t *testing.T) {
	t.Parallel()
	e := loadedEngine(t, "  ")
	c := brain.NewLocalClient(e, nil)

	got := c.Ask(context.Background(), "sawaal")
	if got.IsError {
		t.Fatal("blank reply is not an error")
	}
	if got.Text != "Kuch samjha nahi Boss, phir se puchho!" {
		t.Errorf("Text = %q, want blank-reply fallback", got.Text)
	}
}

func TestLocalAsk_UnloadedEngineReportsError(t *testing.T) {
	t.Parallel()
	c := brain.NewLocalClient(&infermock.Engine{}, nil)

	got := c.Ask(context.Background(), "sawaal")
	if !got.IsError {
		t.Error("Ask on unloaded engine should report an error answer")
	}
}
