package health_test

import (
	"context"
	"testing"

	"github.com/adityaksh/sakha/internal/brain"
	"github.com/adityaksh/sakha/internal/health"
	infermock "github.com/adityaksh/sakha/internal/infer/mock"
	"github.com/adityaksh/sakha/internal/model"
	llmmock "github.com/adityaksh/sakha/pkg/llm/mock"
	synthmock "github.com/adityaksh/sakha/pkg/synth/mock"
)

func TestSynthReady(t *testing.T) {
	t.Parallel()
	sy := synthmock.NewNotReady()
	c := health.SynthReady(sy)

	if err := c.Check(context.Background()); err == nil {
		t.Error("Check() = nil before the synthesizer is ready, want error")
	}

	sy.SetReady()
	if err := c.Check(context.Background()); err != nil {
		t.Errorf("Check() = %v after SetReady, want nil", err)
	}
}

func TestLocalModel_NotFoundIsHealthy(t *testing.T) {
	t.Parallel()
	boot := model.New("http://example.com/m.bin", "m.bin", []string{t.TempDir()}, &infermock.Engine{})
	c := health.LocalModel(boot)

	if err := c.Check(context.Background()); err != nil {
		t.Errorf("Check() = %v for a merely absent model, want nil", err)
	}
}

func TestBackends_CloudConfigured(t *testing.T) {
	t.Parallel()
	remote := brain.NewRemoteClient(&llmmock.Provider{})
	c := health.Backends(remote, nil)

	if err := c.Check(context.Background()); err != nil {
		t.Errorf("Check() = %v with a configured cloud client, want nil", err)
	}
}

func TestBackends_NothingAvailable(t *testing.T) {
	t.Parallel()
	remote := brain.NewRemoteClient(nil)
	boot := model.New("http://example.com/m.bin", "m.bin", []string{t.TempDir()}, &infermock.Engine{})
	c := health.Backends(remote, boot)

	if err := c.Check(context.Background()); err == nil {
		t.Error("Check() = nil with no cloud key and no local model, want error")
	}
}
