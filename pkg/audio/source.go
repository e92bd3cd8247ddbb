package audio

import (
	"context"
	"errors"
	"io"
	"sync"
)

// captureChunkMs is the nominal chunk duration read from the device, in
// milliseconds of source audio.
const captureChunkMs = 100

// CaptureSource adapts a raw PCM stream (a microphone pipe, typically
// `arecord` on stdin) into fixed chunks of 16 kHz mono s16le, the format the
// recognizer consumes. Stereo input is downmixed and other sample rates are
// resampled.
//
// ReadChunk performs a blocking read on the underlying stream; cancel it by
// closing the reader. The context is only consulted between reads.
type CaptureSource struct {
	mu       sync.Mutex
	r        io.Reader
	srcRate  int
	channels int
	dstRate  int
	buf      []byte
}

// NewCaptureSource returns a CaptureSource reading s16le PCM at srcRate with
// the given channel count (1 or 2) and emitting 16 kHz mono chunks.
func NewCaptureSource(r io.Reader, srcRate, channels int) *CaptureSource {
	if srcRate <= 0 {
		srcRate = 16000
	}
	if channels != 2 {
		channels = 1
	}
	// 2 bytes per sample per channel.
	size := srcRate * channels * 2 * captureChunkMs / 1000
	return &CaptureSource{
		r:        r,
		srcRate:  srcRate,
		channels: channels,
		dstRate:  16000,
		buf:      make([]byte, size),
	}
}

// ReadChunk reads one chunk of source audio and returns it converted to
// 16 kHz mono. A short final read is converted and returned before io.EOF is
// surfaced on the next call.
func (s *CaptureSource) ReadChunk(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := io.ReadFull(s.r, s.buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}

	pcm := make([]byte, n)
	copy(pcm, s.buf[:n])
	if s.channels == 2 {
		pcm = StereoToMono(pcm)
	}
	pcm = ResampleMono16(pcm, s.srcRate, s.dstRate)
	return pcm, nil
}
