// Package whisper implements the recognizer boundary on top of the
// whisper.cpp CGO bindings, for fully offline recognition.
//
// The whisper.cpp static library (libwhisper.a) and headers (whisper.h) must
// be available at link time via LIBRARY_PATH and C_INCLUDE_PATH.
//
// Audio capture is not this package's job: an [AudioSource] delivers raw
// 16-bit signed little-endian PCM chunks (typically from a microphone) and
// the engine performs RMS silence detection to decide when an utterance is
// complete. One inference runs per utterance; the result is emitted as a
// single final event.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/adityaksh/sakha/pkg/recognizer"
)

const (
	// bitsPerSample is fixed at 16 for the PCM format accepted by SendAudio.
	bitsPerSample = 16

	// defaultRMSThreshold is the root-mean-square energy (in 16-bit PCM
	// units) above which a chunk counts as speech.
	defaultRMSThreshold = 300.0

	defaultSampleRate = 16000
	defaultLanguage   = "hi"

	// defaultNoSpeechTimeout bounds how long a turn waits for the first
	// speech chunk before reporting a no-match.
	defaultNoSpeechTimeout = 8 * time.Second
)

// AudioSource delivers raw PCM chunks from the capture device. ReadChunk
// blocks until a chunk is available, ctx is cancelled, or the device fails.
// io.EOF means the device was shut down cleanly.
type AudioSource interface {
	ReadChunk(ctx context.Context) ([]byte, error)
}

// Engine implements recognizer.Engine using a shared whisper.cpp model.
// The model is loaded once; each session creates its own whisper context
// per inference (contexts are not thread-safe, the model is).
type Engine struct {
	model      whisperlib.Model
	source     AudioSource
	language   string
	sampleRate int

	rmsThreshold    float64
	noSpeechTimeout time.Duration
}

// Compile-time assertion.
var _ recognizer.Engine = (*Engine)(nil)

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithLanguage sets the transcription language code (e.g., "hi", "en").
func WithLanguage(lang string) Option {
	return func(e *Engine) { e.language = lang }
}

// WithSampleRate sets the PCM sample rate in Hz. Must match the source.
func WithSampleRate(rate int) Option {
	return func(e *Engine) { e.sampleRate = rate }
}

// WithRMSThreshold overrides the speech/silence energy threshold.
func WithRMSThreshold(t float64) Option {
	return func(e *Engine) { e.rmsThreshold = t }
}

// WithNoSpeechTimeout bounds how long a turn waits for speech to begin.
func WithNoSpeechTimeout(d time.Duration) Option {
	return func(e *Engine) { e.noSpeechTimeout = d }
}

// New loads the whisper.cpp model at modelPath and returns an Engine reading
// audio from source. The caller must call Close when done with the engine.
func New(modelPath string, source AudioSource, opts ...Option) (*Engine, error) {
	if modelPath == "" {
		return nil, errors.New("whisper: modelPath must not be empty")
	}
	if source == nil {
		return nil, errors.New("whisper: source must not be nil")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", modelPath, err)
	}
	e := &Engine{
		model:           model,
		source:          source,
		language:        defaultLanguage,
		sampleRate:      defaultSampleRate,
		rmsThreshold:    defaultRMSThreshold,
		noSpeechTimeout: defaultNoSpeechTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Close releases the whisper model.
func (e *Engine) Close() error {
	if e.model != nil {
		return e.model.Close()
	}
	return nil
}

// NewSession implements recognizer.Engine.
func (e *Engine) NewSession(ctx context.Context) (recognizer.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("whisper: context already cancelled: %w", err)
	}
	return &session{engine: e}, nil
}

// session is one listen serialisation point over the shared model and source.
type session struct {
	engine *Engine

	mu        sync.Mutex
	closed    bool
	listening bool
}

// Compile-time assertion.
var _ recognizer.Session = (*session)(nil)

// Listen implements recognizer.Session. It captures one utterance delimited
// by silence and emits the final transcript as the turn's only event.
// Inference runs only after the utterance completes, so interim transcripts
// are never produced and cfg.Partials is ignored.
func (s *session) Listen(ctx context.Context, cfg recognizer.ListenConfig) (<-chan recognizer.Event, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errors.New("whisper: session is closed")
	}
	if s.listening {
		s.mu.Unlock()
		return nil, errors.New("whisper: listen already in flight")
	}
	s.listening = true
	s.mu.Unlock()

	ch := make(chan recognizer.Event, 4)
	go func() {
		defer close(ch)
		defer func() {
			s.mu.Lock()
			s.listening = false
			s.mu.Unlock()
		}()
		s.captureTurn(ctx, cfg, ch)
	}()
	return ch, nil
}

// Close implements recognizer.Session.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// captureTurn buffers source audio until the configured silence window
// elapses after speech, then runs one inference and emits the terminal event.
func (s *session) captureTurn(ctx context.Context, cfg recognizer.ListenConfig, ch chan<- recognizer.Event) {
	e := s.engine

	completeSilence := cfg.CompleteSilence
	if completeSilence <= 0 {
		completeSilence = 1500 * time.Millisecond
	}
	lang := cfg.Language
	if lang == "" {
		lang = e.language
	}

	var (
		buffer    []byte
		hadSpeech bool
		silence   time.Duration
		waited    time.Duration
	)

	for {
		if err := ctx.Err(); err != nil {
			return
		}
		chunk, err := e.source.ReadChunk(ctx)
		if errors.Is(err, io.EOF) {
			emitError(ch, recognizer.CodeEngineFatal)
			return
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("whisper: audio source read failed", "err", err)
			emitError(ch, recognizer.CodeEngineFatal)
			return
		}

		rms := computeRMS(chunk)
		dur := chunkDuration(chunk, e.sampleRate)

		if rms < e.rmsThreshold {
			if !hadSpeech {
				waited += dur
				if waited >= e.noSpeechTimeout {
					emitError(ch, recognizer.CodeTimeout)
					return
				}
				continue
			}
			silence += dur
			buffer = append(buffer, chunk...)
			if silence >= completeSilence {
				break
			}
			continue
		}

		hadSpeech = true
		silence = 0
		buffer = append(buffer, chunk...)
	}

	text, err := s.infer(buffer, lang)
	if err != nil {
		slog.Error("whisper: inference failed", "err", err)
		emitError(ch, recognizer.CodeServer)
		return
	}
	if text == "" {
		emitError(ch, recognizer.CodeNoMatch)
		return
	}
	ch <- recognizer.Event{
		Kind:      recognizer.KindFinal,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// infer runs whisper.cpp over the buffered PCM using a fresh context.
func (s *session) infer(pcm []byte, lang string) (string, error) {
	samples := pcmToFloat32(pcm)

	wctx, err := s.engine.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("whisper: create context: %w", err)
	}
	if err := wctx.SetLanguage(lang); err != nil {
		slog.Warn("whisper: failed to set language, using default", "language", lang, "err", err)
	}
	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("whisper: read segment: %w", err)
		}
		parts = append(parts, segment.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

func emitError(ch chan<- recognizer.Event, code recognizer.ErrorCode) {
	ch <- recognizer.Event{
		Kind:      recognizer.KindError,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// computeRMS returns the root-mean-square amplitude of a 16-bit signed
// little-endian PCM chunk, in raw sample units.
func computeRMS(chunk []byte) float64 {
	n := len(chunk) / 2
	if n == 0 {
		return 0
	}
	var sum float64
	for i := range n {
		sample := int16(uint16(chunk[i*2]) | uint16(chunk[i*2+1])<<8)
		sum += float64(sample) * float64(sample)
	}
	return math.Sqrt(sum / float64(n))
}

// chunkDuration returns the playback duration of a mono PCM chunk.
func chunkDuration(chunk []byte, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	samples := len(chunk) / (bitsPerSample / 8)
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}

// pcmToFloat32 converts 16-bit signed little-endian PCM to float32 samples
// normalised to [-1.0, 1.0]. A trailing odd byte is ignored.
func pcmToFloat32(pcm []byte) []float32 {
	n := len(pcm) / 2
	samples := make([]float32, n)
	for i := range n {
		sample := int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
		samples[i] = float32(sample) / 32768.0
	}
	return samples
}
