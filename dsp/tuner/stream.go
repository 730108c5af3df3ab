package tuner

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-spectune/dsp/buffer"
)

// bytesPerCF32Sample is the wire size of one interleaved little-endian
// float32 I/Q pair: 4 bytes real, 4 bytes imaginary.
const bytesPerCF32Sample = 8

// StreamFeeder is the "caller" half of the channelizer: a thin ingestion
// loop that reads a raw interleaved-float32 complex baseband stream (the
// "cf32" format produced by common SDR recording and playback tools) from
// an io.Reader and pushes it into an Engine in fixed-size chunks.
//
// It reuses a pooled scratch buffer across reads, so steady-state
// streaming performs no per-chunk allocation beyond what io.Reader itself
// does.
type StreamFeeder struct {
	engine *Engine
	reader io.Reader
	pool   *buffer.Pool
	raw    []byte
}

// NewStreamFeeder creates a feeder that reads up to chunkSamples complex
// samples at a time from r and feeds them to eng. chunkSamples must be
// positive.
func NewStreamFeeder(eng *Engine, r io.Reader, chunkSamples int) (*StreamFeeder, error) {
	if chunkSamples <= 0 {
		return nil, fmt.Errorf("tuner: chunk size must be positive, got %d", chunkSamples)
	}
	return &StreamFeeder{
		engine: eng,
		reader: r,
		pool:   buffer.NewPool(),
		raw:    make([]byte, chunkSamples*bytesPerCF32Sample),
	}, nil
}

// Run reads from the underlying reader until EOF, feeding each chunk to
// the engine as it arrives. It returns the conjunction of every Feed
// call's result. A trailing read that ends mid-sample is truncated to the
// last whole sample and still fed before returning.
func (f *StreamFeeder) Run() (bool, error) {
	ok := true
	for {
		n, err := io.ReadFull(f.reader, f.raw)
		whole := n - (n % bytesPerCF32Sample)

		if whole > 0 {
			chunk := f.pool.Get(whole / bytesPerCF32Sample)
			decodeCF32(chunk.Samples(), f.raw[:whole])
			ok = f.engine.Feed(chunk.Samples()) && ok
			f.pool.Put(chunk)
		}

		switch err {
		case nil:
			continue
		case io.EOF, io.ErrUnexpectedEOF:
			return ok, nil
		default:
			return false, err
		}
	}
}

// decodeCF32 unpacks interleaved little-endian float32 I/Q pairs from raw
// into dst. len(raw) must be 8*len(dst).
func decodeCF32(dst []complex128, raw []byte) {
	for i := range dst {
		off := i * bytesPerCF32Sample
		re := math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(raw[off+4:]))
		dst[i] = complex(float64(re), float64(im))
	}
}
