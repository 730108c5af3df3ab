// Package tuner implements a spectral channelizer: a real-time engine that
// transforms overlapping windows of a complex baseband stream into the
// frequency domain and, for each of an arbitrary number of independently
// configured narrowband channels, extracts a centered slice of the
// spectrum, scales it, and reconstructs a decimated time-domain signal
// delivered to a per-channel callback.
//
// # Usage
//
// Create an Engine sized to the analysis window, open one or more channels
// centered on the frequencies of interest, then feed it sample blocks as
// they arrive:
//
//	eng, err := tuner.NewEngine(tuner.EngineParams{WindowSize: 1024})
//	ch, err := eng.OpenChannel(tuner.ChannelParams{
//		F0: math.Pi / 2, BW: 0.1,
//		OnData: func(ch *tuner.Channel, private any, samples []complex128) bool {
//			// samples is the decimated, baseband-centered channel output.
//			return true
//		},
//	})
//	ok := eng.Feed(iqSamples)
//
// # Overlap scheme
//
// The engine keeps a sliding input window of 3/2 the analysis size and
// alternates between two 50%-overlapping analysis frames ("even" and
// "odd"), so that every sample is analyzed twice across successive
// windows. This is the same two-phase overlap scheme used by classic
// FFT-based spectral channelizers; see [Engine] for the buffer layout.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Feed must not be called
// concurrently with itself or with OpenChannel/CloseChannel on the same
// Engine, and a channel callback must not call Feed on the Engine that
// invoked it.
package tuner
