package nport

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-nport/internal/testutil"
)

func rampSweep(t *testing.T, freqs []float64, opts ...Option) *Sweep {
	t.Helper()
	mats := make([][][]complex128, len(freqs))
	for i, f := range freqs {
		// Value proportional to frequency, so interpolation is exact.
		mats[i] = [][]complex128{{complex(f, 0)}}
	}
	s, err := NewSweep(freqs, mats, TypeS, opts...)
	if err != nil {
		t.Fatalf("NewSweep: %v", err)
	}
	return s
}

func TestCombineAlignsOnOverlapUnion(t *testing.T) {
	a := rampSweep(t, []float64{1, 2, 3, 4})
	b := rampSweep(t, []float64{2, 3, 4, 5})

	sum, err := a.Combine(OpAdd, b)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, sum.Freqs(), []float64{2, 3, 4}, 0)
	got, err := sum.Parameter(1, 1)
	if err != nil {
		t.Fatalf("Parameter: %v", err)
	}
	// Both operands are the identity ramp, so the sum is 2f.
	testutil.RequireComplexSliceNearlyEqual(t, got, []complex128{4, 6, 8}, 1e-12)

	if sum.Type() != TypeS || sum.Z0() != DefaultZ0 {
		t.Fatalf("type/z0 = %s/%v, want S/50", sum.Type(), sum.Z0())
	}
}

func TestCombineInterpolatesUnalignedSamples(t *testing.T) {
	a := rampSweep(t, []float64{1, 3})
	b := rampSweep(t, []float64{1, 2, 3})

	sum, err := a.Combine(OpAdd, b)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, sum.Freqs(), []float64{1, 2, 3}, 0)
	got, err := sum.Parameter(1, 1)
	if err != nil {
		t.Fatalf("Parameter: %v", err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, got, []complex128{2, 4, 6}, 1e-12)
}

func TestCombineOperators(t *testing.T) {
	a := rampSweep(t, []float64{1, 2})
	b := rampSweep(t, []float64{1, 2})

	for _, tc := range []struct {
		op   Op
		want []complex128
	}{
		{OpAdd, []complex128{2, 4}},
		{OpSub, []complex128{0, 0}},
		{OpMul, []complex128{1, 4}},
		{OpDiv, []complex128{1, 1}},
	} {
		out, err := a.Combine(tc.op, b)
		if err != nil {
			t.Fatalf("Combine(%s): %v", tc.op, err)
		}
		got, err := out.Parameter(1, 1)
		if err != nil {
			t.Fatalf("Parameter: %v", err)
		}
		testutil.RequireComplexSliceNearlyEqual(t, got, tc.want, 1e-12)
	}
}

func TestCombineGuards(t *testing.T) {
	a := rampSweep(t, []float64{1, 2})

	z, err := a.Convert(TypeZ)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if _, err := a.Combine(OpAdd, z); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("type err = %v, want ErrTypeMismatch", err)
	}

	b := rampSweep(t, []float64{1, 2}, WithZ0(75))
	if _, err := a.Combine(OpAdd, b); !errors.Is(err, ErrImpedanceMismatch) {
		t.Fatalf("impedance err = %v, want ErrImpedanceMismatch", err)
	}

	c := rampSweep(t, []float64{10, 20})
	if _, err := a.Combine(OpAdd, c); !errors.Is(err, ErrNoOverlap) {
		t.Fatalf("overlap err = %v, want ErrNoOverlap", err)
	}
}

func TestCombinePortCountGuard(t *testing.T) {
	a := rampSweep(t, []float64{1, 2})
	b, err := NewSweep(
		[]float64{1, 2},
		[][][]complex128{
			{{0, 0}, {0, 0}},
			{{0, 0}, {0, 0}},
		},
		TypeS,
	)
	if err != nil {
		t.Fatalf("NewSweep: %v", err)
	}
	if _, err := a.Combine(OpAdd, b); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestCombineConstBroadcast(t *testing.T) {
	a := rampSweep(t, []float64{1, 2, 3})

	scaled, err := a.CombineConst(OpMul, 2)
	if err != nil {
		t.Fatalf("CombineConst: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, scaled.Freqs(), a.Freqs(), 0)
	got, err := scaled.Parameter(1, 1)
	if err != nil {
		t.Fatalf("Parameter: %v", err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, got, []complex128{2, 4, 6}, 1e-12)
}

func TestOpString(t *testing.T) {
	if OpAdd.String() != "+" || OpDiv.String() != "/" || Op(0).String() != "?" {
		t.Fatal("unexpected operator symbols")
	}
}
