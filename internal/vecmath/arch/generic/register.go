package generic

import (
	"github.com/cwbudde/algo-spectune/internal/cpu"
	"github.com/cwbudde/algo-spectune/internal/vecmath/registry"
)

// init registers the generic (pure Go) implementations with the vecmath registry.
//
// Generic implementations serve as the baseline fallback when no SIMD optimizations
// are available or when ForceGeneric is enabled for testing.
//
// Priority: 0 (lowest - used only when no SIMD alternatives are available)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,

		// Spectral reduction operations
		Magnitude: Magnitude,
		Power:     Power,
	})
}
