package tuner

import (
	"github.com/cwbudde/algo-spectune/dsp/buffer"
	algofft "github.com/MeKo-Christian/algo-fft"
)

// detachedIndex marks a Channel that is no longer registered with an Engine.
const detachedIndex = -1

// Channel owns one extracted narrowband channel: its center bin,
// extraction width, amplitude scale, inverse-FFT scratch buffers, and
// output callback. A channel exclusively owns its fft, timebuf, and
// inverse DFT plan; it shares no mutable state with other channels except
// read-only access to the engine's spectrum during fan-out.
type Channel struct {
	engine *Engine
	index  int // slot in the engine's roster, or detachedIndex

	center int // DFT bin nearest the channel's center frequency
	size   int // inverse-FFT length
	halfw  int // extraction half-width in bins on each side of center
	halfsz int // size/2: number of samples delivered per callback
	offset int // size/4: start of the delivered slice within timebuf
	k      float64

	fft     *buffer.Buffer // frequency domain, IFFT input, length size
	timebuf *buffer.Buffer // time domain, IFFT output, length size
	plan    *algofft.Plan[complex128]

	onData  DataFunc
	private any
}

// Index returns the channel's stable slot index in its engine's roster.
// It is unaffected by unrelated channels opening or closing, and becomes
// detachedIndex once the channel is closed.
func (c *Channel) Index() int { return c.index }

// Size returns the channel's inverse-FFT length.
func (c *Channel) Size() int { return c.size }

// CenterBin returns the DFT bin nearest the channel's center frequency.
func (c *Channel) CenterBin() int { return c.center }

// Close detaches the channel from its engine and releases its resources.
// Closing an already-detached channel fails with ErrInvalidHandle.
func (c *Channel) Close() error {
	if c.engine == nil {
		return ErrInvalidHandle
	}
	return c.engine.CloseChannel(c)
}

// extract copies this channel's slice of spectrum into fft, scales it,
// runs the inverse DFT, and delivers the middle portion of the result to
// onData. windowSize is the engine's analysis size N.
//
// The upper sideband (positive frequencies at and above center) lands at
// the low end of fft; the lower sideband (frequencies just below center)
// lands at the high end, wrapping circularly across the spectrum's
// start/end when center lies within halfw bins of either end. This recenters the
// channel at DC: fft[0:halfw] holds frequencies center..center+halfw-1,
// and fft[size-halfw:size] holds center-halfw..center-1. The bins between
// them, fft[halfw:size-halfw], are a guard band and are never written —
// they stay at the zero value fft was allocated with. This also covers
// the case where size is odd: halfw = size/2 truncates, leaving exactly
// one untouched bin between the sidebands, which appears intentional
// though undocumented upstream.
func (c *Channel) extract(spectrum []complex128, windowSize int) bool {
	fft := c.fft.Samples()
	p := c.center

	// Upper sideband: fft[0:halfw] <- spectrum[p:p+halfw], wrapping at the
	// end of spectrum.
	n := c.halfw
	if p+n > windowSize {
		n = windowSize - p
	}
	copy(fft[:n], spectrum[p:p+n])
	if n < c.halfw {
		copy(fft[n:c.halfw], spectrum[:c.halfw-n])
	}

	// Lower sideband: fft[size-halfw:size] <- spectrum[p-halfw:p], wrapping
	// at the start of spectrum.
	n = c.halfw
	if p < n {
		n = p
	}
	copy(fft[c.size-n:c.size], spectrum[p-n:p])
	if n < c.halfw {
		copy(fft[c.size-c.halfw:c.size-n], spectrum[windowSize-(c.halfw-n):windowSize])
	}

	// Scale every written bin. k normalizes for the inverse DFT's missing
	// 1/size factor and for the spectrum repetition introduced by
	// downsampling.
	scale := complex(c.k, 0)
	for i := 0; i < c.halfw; i++ {
		fft[i] *= scale
	}
	for i := c.size - c.halfw; i < c.size; i++ {
		fft[i] *= scale
	}

	timebuf := c.timebuf.Samples()
	if err := c.plan.Inverse(timebuf, fft); err != nil {
		panic("tuner: inverse FFT failed on correctly sized buffers: " + err.Error())
	}

	return c.onData(c, c.private, timebuf[c.offset:c.offset+c.halfsz])
}
