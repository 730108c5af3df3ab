package tuner

import "errors"

// Errors returned by channelizer construction and handle validation.
var (
	// ErrInvalidWindowSize is returned when EngineParams.WindowSize is not
	// a positive, even integer.
	ErrInvalidWindowSize = errors.New("tuner: window size must be even and positive")

	// ErrInvalidFrequency is returned when ChannelParams.F0 is outside (0, 2*pi).
	ErrInvalidFrequency = errors.New("tuner: f0 must satisfy 0 < f0 < 2*pi")

	// ErrInvalidBandwidth is returned when ChannelParams.BW is outside (0, 2*pi).
	ErrInvalidBandwidth = errors.New("tuner: bw must satisfy 0 < bw < 2*pi")

	// ErrChannelSizeZero is returned when the channel IFFT length computed
	// from the bandwidth, ceil(N*BW/(2*pi)), is not positive.
	ErrChannelSizeZero = errors.New("tuner: channel bandwidth is too small for this window size")

	// ErrInvalidHandle is returned by CloseChannel when the channel does
	// not belong to this engine, or has already been closed.
	ErrInvalidHandle = errors.New("tuner: channel handle is stale, foreign, or already closed")

	// ErrMissingCallback is returned when ChannelParams.OnData is nil.
	ErrMissingCallback = errors.New("tuner: OnData callback must not be nil")
)
