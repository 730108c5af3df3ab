//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-spectune/internal/cpu"
	"github.com/cwbudde/algo-spectune/internal/vecmath/registry"
)

// init registers the NEON-optimized implementations with the vecmath registry.
//
// NEON (ARM Advanced SIMD) provides 128-bit SIMD operations and is mandatory
// on ARMv8 (arm64), so it's available on all arm64 CPUs.
//
// Priority: 15 (medium-high - ARM's equivalent to AVX/AVX2)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  15,

		// Spectral reduction operations
		Magnitude: Magnitude,
		Power:     Power,
	})
}
