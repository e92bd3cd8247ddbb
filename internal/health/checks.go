package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/adityaksh/sakha/internal/brain"
	"github.com/adityaksh/sakha/internal/model"
	"github.com/adityaksh/sakha/pkg/synth"
)

// SynthReady reports whether the synthesizer has finished initialising.
// Until it has, queued phrases sit in the response sink unspoken.
func SynthReady(sy synth.Synthesizer) Checker {
	return Checker{
		Name: "synth",
		Check: func(_ context.Context) error {
			select {
			case <-sy.Ready():
				return nil
			default:
				return errors.New("synthesizer not ready")
			}
		},
	}
}

// LocalModel reports on the local model lifecycle. The model is optional, so
// only a Failed acquisition counts as unhealthy; NotFound and the transient
// states are fine.
func LocalModel(boot *model.Bootstrap) Checker {
	return Checker{
		Name: "local_model",
		Check: func(_ context.Context) error {
			rec := boot.Record()
			if rec.State == model.StateFailed {
				return fmt.Errorf("model acquisition failed: %s", rec.Reason)
			}
			return nil
		},
	}
}

// Backends reports whether at least one language-model backend can serve the
// AI tier. Either a configured cloud client or a Ready local model will do;
// both may be nil or absent, in which case free-form queries get the
// "didn't understand" fallback and readiness fails.
func Backends(remote *brain.RemoteClient, boot *model.Bootstrap) Checker {
	return Checker{
		Name: "backends",
		Check: func(_ context.Context) error {
			if remote != nil && remote.Configured() {
				return nil
			}
			if boot != nil && boot.Ready() {
				return nil
			}
			return errors.New("no language-model backend available")
		},
	}
}
