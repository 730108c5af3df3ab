package tuner

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectune/dsp/buffer"
	algofft "github.com/MeKo-Christian/algo-fft"
)

// phase selects which half of the 3N/2 input window the next forward DFT
// reads from. The engine alternates between the two on every completed
// window, giving 50% overlap between successive analysis frames.
type phase int

const (
	phaseEven phase = iota
	phaseOdd
)

// Engine owns the input ring of 3N/2 samples, the shared spectrum buffer,
// the forward DFT plan, and the roster of channels extracting from it.
//
// The window buffer holds three equal thirds of length N/2: the even
// analysis plan reads the first two thirds (window[0:N]), and the odd
// analysis plan reads the last two thirds (window[N/2:3N/2]). While the odd
// phase fills the last third, every newly written sample is also mirrored
// into the first third, so the following even-phase read of window[0:N]
// sees a seamless, 50%-overlapped continuation of the stream. This "three-thirds" layout lets both
// analysis frames be read as plain contiguous slices with no extra
// copying on the hot path.
//
// An Engine is not safe for concurrent use; see the package doc.
type Engine struct {
	windowSize int // N
	halfSize   int // N/2

	window   *buffer.Buffer // 3N/2 samples
	spectrum *buffer.Buffer // N samples, most recent forward-DFT output

	plan *algofft.Plan[complex128] // forward DFT, size N; shared across both phases

	p     int   // write cursor since the last completed window, in [0, N]
	state phase // which phase applies to the next completed window
	ready bool  // a forward DFT has just produced a fresh, unconsumed spectrum

	channels []*Channel // stable-indexed roster; nil entries are tombstones
}

// NewEngine constructs an Engine for the given parameters. WindowSize must
// be even and positive.
func NewEngine(params EngineParams) (*Engine, error) {
	n := params.WindowSize
	if n <= 0 || n%2 != 0 {
		return nil, ErrInvalidWindowSize
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("tuner: failed to create forward FFT plan: %w", err)
	}

	return &Engine{
		windowSize: n,
		halfSize:   n / 2,
		window:     buffer.New(3 * n / 2),
		spectrum:   buffer.New(n),
		plan:       plan,
		state:      phaseEven,
	}, nil
}

// WindowSize returns the engine's analysis window size N.
func (e *Engine) WindowSize() int { return e.windowSize }

// Close releases the engine's resources, closing every live channel first.
// The engine must not be used after Close.
func (e *Engine) Close() {
	for _, ch := range e.channels {
		if ch != nil {
			e.closeChannel(ch)
		}
	}
	e.channels = nil
	e.window = nil
	e.spectrum = nil
	e.plan = nil
}

// OpenChannel creates and registers a new narrowband channel. The returned
// Channel's index is stable: it never changes for the lifetime of the
// channel, and closing other channels never renumbers it.
func (e *Engine) OpenChannel(params ChannelParams) (*Channel, error) {
	if !(params.F0 > 0 && params.F0 < 2*math.Pi) {
		return nil, ErrInvalidFrequency
	}
	if !(params.BW > 0 && params.BW < 2*math.Pi) {
		return nil, ErrInvalidBandwidth
	}
	if params.OnData == nil {
		return nil, ErrMissingCallback
	}

	decimation := 2 * math.Pi / params.BW
	center := int(math.Round(params.F0 / (2 * math.Pi) * float64(e.windowSize)))
	size := int(math.Ceil(float64(e.windowSize) / decimation))
	if size <= 0 {
		return nil, ErrChannelSizeZero
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("tuner: failed to create inverse FFT plan: %w", err)
	}

	ch := &Channel{
		engine:  e,
		center:  center,
		size:    size,
		halfw:   size / 2,
		halfsz:  size / 2,
		offset:  size / 4,
		k:       1 / (decimation * float64(size)),
		fft:     buffer.New(size),
		timebuf: buffer.New(size),
		plan:    plan,
		onData:  params.OnData,
		private: params.Private,
	}

	ch.index = e.registerChannel(ch)
	return ch, nil
}

// registerChannel inserts ch into the first free (tombstoned) roster slot,
// appending a new slot only if none is free, and returns the assigned index.
func (e *Engine) registerChannel(ch *Channel) int {
	for i, slot := range e.channels {
		if slot == nil {
			e.channels[i] = ch
			return i
		}
	}
	e.channels = append(e.channels, ch)
	return len(e.channels) - 1
}

// CloseChannel detaches ch from the engine and releases its resources.
// It fails with ErrInvalidHandle if ch does not belong to this engine or
// has already been closed.
func (e *Engine) CloseChannel(ch *Channel) error {
	if ch == nil || ch.engine != e {
		return ErrInvalidHandle
	}
	if ch.index < 0 || ch.index >= len(e.channels) || e.channels[ch.index] != ch {
		return ErrInvalidHandle
	}
	e.closeChannel(ch)
	return nil
}

func (e *Engine) closeChannel(ch *Channel) {
	e.channels[ch.index] = nil
	ch.engine = nil
	ch.index = detachedIndex
	ch.fft = nil
	ch.timebuf = nil
	ch.plan = nil
}

// Feed consumes an arbitrary-length run of complex baseband samples,
// internally chopping it into window-aligned fills. After every completed
// analysis window it fans the fresh spectrum out to each live channel, in
// roster order. The result is the conjunction of every channel callback's
// return value observed during this call; a callback returning false does
// not halt delivery to the remaining channels.
//
// Feed must not be called reentrantly, nor concurrently with itself,
// OpenChannel, or CloseChannel on the same Engine.
func (e *Engine) Feed(samples []complex128) bool {
	ok := true
	for len(samples) > 0 {
		n := e.fillOnce(samples)
		samples = samples[n:]
		if e.ready {
			e.ready = false
			ok = e.fanOut() && ok
		}
	}
	return ok
}

// fillOnce performs one atomic fill step bounded by the remaining capacity
// of the current window, returning the number of samples consumed. When
// the write completes a full window, it executes the forward DFT for the
// phase that just completed, flips the phase, and marks ready.
func (e *Engine) fillOnce(samples []complex128) int {
	n := len(samples)
	if room := e.windowSize - e.p; n > room {
		n = room
	}

	window := e.window.Samples()

	switch e.state {
	case phaseEven:
		copy(window[e.p:e.p+n], samples[:n])
	case phaseOdd:
		copy(window[e.p+e.halfSize:e.p+e.halfSize+n], samples[:n])
		e.mirrorTail(window, n)
	}

	e.p += n

	if e.p == e.windowSize {
		e.p = e.halfSize
		completedOdd := e.state == phaseOdd
		e.runForward(window)
		if e.state == phaseEven {
			e.state = phaseOdd
		} else {
			e.state = phaseEven
		}
		e.ready = true
		if completedOdd {
			// The mirror step only runs during odd-phase fills, so the
			// invariant it maintains is only meaningful to check here,
			// right before the next even-phase read relies on it.
			assertMirrorInvariant(e, window)
		}
	}

	return n
}

// mirrorTail keeps the window's last third equal to its first third once
// the odd-phase write has populated past the half-size boundary. This is
// what lets the next even-phase read treat window[0:N] as a seamless,
// 50%-overlapped continuation of the stream.
func (e *Engine) mirrorTail(window []complex128, written int) {
	if e.p+written <= e.halfSize {
		return
	}
	start := e.p
	if start < e.halfSize {
		start = e.halfSize
	}
	tailLen := e.p + written - e.halfSize - (start - e.halfSize)
	if tailLen <= 0 {
		return
	}
	src := window[start+e.halfSize : start+e.halfSize+tailLen]
	dst := window[start-e.halfSize : start-e.halfSize+tailLen]
	copy(dst, src)
}

// runForward executes the forward DFT for the phase that just completed.
// Both phases write into the same spectrum buffer; the plan itself does
// not bind to fixed memory (unlike FFTW-style libraries), so a single
// plan object safely serves both analysis frames.
func (e *Engine) runForward(window []complex128) {
	var frame []complex128
	switch e.state {
	case phaseEven:
		frame = window[0:e.windowSize]
	case phaseOdd:
		frame = window[e.halfSize : e.halfSize+e.windowSize]
	}
	if err := e.plan.Forward(e.spectrum.Samples(), frame); err != nil {
		panic(fmt.Sprintf("tuner: forward FFT failed on correctly sized buffers: %v", err))
	}
}

// fanOut delivers the current spectrum to every live channel, in roster
// order, and returns the conjunction of their callback results.
func (e *Engine) fanOut() bool {
	ok := true
	spectrum := e.spectrum.Samples()
	for _, ch := range e.channels {
		if ch != nil {
			ok = ch.extract(spectrum, e.windowSize) && ok
		}
	}
	return ok
}
