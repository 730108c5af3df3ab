// Package testutil provides deterministic signal generators shared across
// this module's test suites.
package testutil

import (
	"math"
	"math/rand"
)

// ComplexTone generates length samples of a unit-amplitude complex exponential
// exp(i*omega*n) at the given normalized angular frequency (radians/sample).
func ComplexTone(omega float64, length int) []complex128 {
	out := make([]complex128, length)
	for i := range out {
		phase := omega * float64(i)
		out[i] = complex(math.Cos(phase), math.Sin(phase))
	}
	return out
}

// ComplexMultiTone generates the sum of unit-amplitude complex exponentials
// at each of the given normalized angular frequencies.
func ComplexMultiTone(omegas []float64, length int) []complex128 {
	out := make([]complex128, length)
	for _, omega := range omegas {
		for i := range out {
			phase := omega * float64(i)
			out[i] += complex(math.Cos(phase), math.Sin(phase))
		}
	}
	return out
}

// ComplexNoise generates circularly-symmetric white noise with a fixed seed
// for reproducibility. Each sample's real and imaginary parts are independent
// uniform draws scaled by amplitude.
func ComplexNoise(seed int64, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		re := (rng.Float64()*2 - 1) * amplitude
		im := (rng.Float64()*2 - 1) * amplitude
		out[i] = complex(re, im)
	}
	return out
}
