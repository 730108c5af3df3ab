package core

import "testing"

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1000.0, 1000.0005, 1e-6) {
		t.Fatal("expected relative comparison to hold for large values")
	}
}
