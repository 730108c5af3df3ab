package vecmath

import (
	"testing"

	"github.com/cwbudde/algo-spectune/internal/cpu"
	"github.com/cwbudde/algo-spectune/internal/vecmath/registry"
)

// TestForceGeneric tests that we can force the generic implementation via CPU features
func TestForceGeneric(t *testing.T) {
	// Force generic implementation
	cpu.SetForcedFeatures(cpu.Features{
		ForceGeneric: true,
	})
	defer cpu.ResetDetection()

	// Reset registry cache to force re-initialization
	registry.Global.Reset()

	// Re-register implementations
	// (In real usage, this happens automatically via init() functions in init_*.go)

	// Now test - should use generic implementation
	dst := make([]float64, 5)
	re := []float64{3, 4, 0, 1, 5}
	im := []float64{4, 3, 1, 0, 12}

	Power(dst, re, im)

	for i := range dst {
		expected := re[i]*re[i] + im[i]*im[i]
		if dst[i] != expected {
			t.Errorf("Power[%d] = %v, want %v", i, dst[i], expected)
		}
	}

	// Verify generic was selected
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry.Name != "generic" {
		t.Errorf("Expected generic implementation, got %s", entry.Name)
	}
}

// TestForceAVX2 tests that we can force AVX2 implementation via CPU features
func TestForceAVX2(t *testing.T) {
	// Force AVX2 features
	cpu.SetForcedFeatures(cpu.Features{
		HasSSE2:      true,
		HasAVX2:      true,
		Architecture: "amd64",
	})
	defer cpu.ResetDetection()

	// Reset to force re-initialization
	registry.Global.Reset()

	// Test - should use AVX2 implementation
	dst := make([]float64, 5)
	re := []float64{3, 4, 0, 1, 5}
	im := []float64{4, 3, 1, 0, 12}

	Power(dst, re, im)

	for i := range dst {
		expected := re[i]*re[i] + im[i]*im[i]
		if dst[i] != expected {
			t.Errorf("Power[%d] = %v, want %v", i, dst[i], expected)
		}
	}

	// Verify AVX2 was selected (if available on this platform)
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry.SIMDLevel == cpu.SIMDAVX2 && entry.Name != "avx2" {
		t.Errorf("Expected avx2 implementation, got %s", entry.Name)
	}
}

// TestForceSSE2 tests that we can force SSE2 implementation (for Magnitude)
func TestForceSSE2(t *testing.T) {
	// Force SSE2 only (no AVX2)
	cpu.SetForcedFeatures(cpu.Features{
		HasSSE2:      true,
		HasAVX2:      false,
		Architecture: "amd64",
	})
	defer cpu.ResetDetection()

	// Reset to force re-initialization
	registry.Global.Reset()

	// Test Magnitude - should use SSE2 implementation if available
	dst := make([]float64, 1)
	re := []float64{3}
	im := []float64{4}
	Magnitude(dst, re, im)

	expected := 5.0
	if dst[0] != expected {
		t.Errorf("Magnitude() = %v, want %v", dst[0], expected)
	}

	// Verify the selected implementation provides Magnitude
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry.Magnitude == nil {
		t.Error("Magnitude not available in selected implementation")
	}
}

// BenchmarkCompareImplementations benchmarks all available implementations
func BenchmarkCompareImplementations(b *testing.B) {
	sizes := []int{64, 256, 1024}

	// Test each size
	for _, n := range sizes {
		b.Run(sizeStr(n), func(b *testing.B) {
			dst := make([]float64, n)
			re := make([]float64, n)
			im := make([]float64, n)

			// Fill with data
			for i := 0; i < n; i++ {
				re[i] = float64(i)
				im[i] = float64(i * 2)
			}

			// Benchmark Generic
			b.Run("Generic", func(b *testing.B) {
				cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true})
				defer cpu.ResetDetection()

				b.ResetTimer()
				b.ReportAllocs()

				for i := 0; i < b.N; i++ {
					Power(dst, re, im)
				}

				bytes := int64(n) * 8 * 3
				b.SetBytes(bytes)
			})

			// Benchmark AVX2 (if on amd64)
			b.Run("AVX2", func(b *testing.B) {
				cpu.SetForcedFeatures(cpu.Features{
					HasSSE2:      true,
					HasAVX2:      true,
					Architecture: "amd64",
				})
				defer cpu.ResetDetection()

				b.ResetTimer()
				b.ReportAllocs()

				for i := 0; i < b.N; i++ {
					Power(dst, re, im)
				}

				bytes := int64(n) * 8 * 3
				b.SetBytes(bytes)
			})
		})
	}
}
