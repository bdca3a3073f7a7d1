package testutil

import "testing"

func TestRequireComplexSliceNearlyEqualPasses(t *testing.T) {
	a := []complex128{1 + 1i, 2}
	b := []complex128{1 + 1.0000001i, 2}
	RequireComplexSliceNearlyEqual(t, a, b, 1e-6)
}

func TestRequireMatrixNearlyEqualPasses(t *testing.T) {
	a := [][]complex128{{1, 2i}, {3, 4}}
	b := [][]complex128{{1, 2i}, {3, 4}}
	RequireMatrixNearlyEqual(t, a, b, 0)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []complex128{0, 1 + 2i, -3i})
}
