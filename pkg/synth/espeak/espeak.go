// Package espeak implements the synthesizer boundary with espeak-ng via CGO.
//
// Synthesis is synchronous playback: Speak returns once espeak has finished
// the utterance, which trivially preserves submission order. libespeak-ng
// must be available at link time.
package espeak

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <espeak-ng/speak_lib.h>

static int
espeak_say(const char *text, const char *lang, int rate)
{
	if (!text)
	{ return -1; }

	espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0);
	espeak_VOICE specs = { 0 };
	specs.languages = lang;
	espeak_SetVoiceByProperties(&specs);
	if (rate > 0)
	{ espeak_SetParameter(espeakRATE, rate, 0); }

	espeak_Synth(text, strlen(text) + 1, 0, 0, 0, espeakCHARS_AUTO, NULL, NULL);
	espeak_Synchronize();
	espeak_Terminate();

	return 0;
}
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/adityaksh/sakha/pkg/synth"
)

// Synthesizer speaks text through espeak-ng. Safe for concurrent use; calls
// are serialised internally because espeak is single-voiced.
type Synthesizer struct {
	language string
	rate     int

	mu    sync.Mutex
	ready chan struct{}
}

// Compile-time assertion.
var _ synth.Synthesizer = (*Synthesizer)(nil)

// New returns a Synthesizer speaking the given espeak voice language
// (e.g., "hi", "en") at rate words per minute (0 = espeak default).
func New(language string, rate int) *Synthesizer {
	if language == "" {
		language = "hi"
	}
	ready := make(chan struct{})
	close(ready) // espeak initialises per utterance; always ready
	return &Synthesizer{language: language, rate: rate, ready: ready}
}

// Speak implements synth.Synthesizer.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))
	clang := C.CString(s.language)
	defer C.free(unsafe.Pointer(clang))

	rc := C.espeak_say(ctext, clang, C.int(s.rate))
	if rc != 0 {
		return fmt.Errorf("espeak: say failed: %d", int(rc))
	}
	return nil
}

// Ready implements synth.Synthesizer.
func (s *Synthesizer) Ready() <-chan struct{} { return s.ready }

// Close implements synth.Synthesizer.
func (s *Synthesizer) Close() error { return nil }
