// Package buffer provides a reusable complex128 buffer type and pool for
// allocation-friendly DSP processing. Channelizer internals accept raw
// []complex128 slices; Buffer is an optional convenience that helps callers
// manage allocation and reuse in hot paths such as analysis windows and
// per-channel FFT scratch space.
package buffer
