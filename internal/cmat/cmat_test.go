package cmat

import (
	"errors"
	"testing"
)

func TestFromRowsAndAccessors(t *testing.T) {
	m, err := FromRows([][]complex128{
		{1 + 1i, 2},
		{3, 4 - 2i},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if m.Rows() != 2 || m.Cols() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", m.Rows(), m.Cols())
	}
	if got := m.At(1, 1); got != 4-2i {
		t.Fatalf("At(1,1) = %v, want 4-2i", got)
	}
	if !m.IsSquare() {
		t.Fatal("IsSquare = false, want true")
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]complex128{{1, 2}, {3}})
	if !errors.Is(err, ErrRagged) {
		t.Fatalf("err = %v, want ErrRagged", err)
	}
}

func TestFromRowsEmpty(t *testing.T) {
	_, err := FromRows(nil)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestMulIdentity(t *testing.T) {
	a, _ := FromRows([][]complex128{
		{1 + 2i, 3},
		{-1i, 5},
	})
	got, err := Mul(a, Identity(2))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !Equal(got, a, 0) {
		t.Fatalf("a·I = %v, want %v", got.ToRows(), a.ToRows())
	}
}

func TestMulKnownProduct(t *testing.T) {
	a, _ := FromRows([][]complex128{{1, 2}, {3, 4}})
	b, _ := FromRows([][]complex128{{5, 6}, {7, 8}})
	want, _ := FromRows([][]complex128{{19, 22}, {43, 50}})

	got, err := Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !Equal(got, want, 1e-15) {
		t.Fatalf("Mul = %v, want %v", got.ToRows(), want.ToRows())
	}
}

func TestMulDimensionMismatch(t *testing.T) {
	a := New(2, 3)
	b := New(2, 3)
	if _, err := Mul(a, b); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	a, _ := FromRows([][]complex128{
		{4 + 1i, 7},
		{2, 6 - 3i},
	})

	inv, err := Inverse(a)
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}

	prod, err := Mul(a, inv)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !Equal(prod, Identity(2), 1e-12) {
		t.Fatalf("a·a⁻¹ = %v, want identity", prod.ToRows())
	}
}

func TestInverseRequiresPivoting(t *testing.T) {
	// Zero in the leading position forces a row swap.
	a, _ := FromRows([][]complex128{
		{0, 1},
		{1, 0},
	})

	inv, err := Inverse(a)
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if !Equal(inv, a, 1e-15) {
		t.Fatalf("inverse of permutation = %v, want itself", inv.ToRows())
	}
}

func TestInverseSingular(t *testing.T) {
	a, _ := FromRows([][]complex128{
		{1, 2},
		{2, 4},
	})
	if _, err := Inverse(a); !errors.Is(err, ErrSingular) {
		t.Fatalf("err = %v, want ErrSingular", err)
	}
}

func TestInverseNotSquare(t *testing.T) {
	if _, err := Inverse(New(2, 3)); !errors.Is(err, ErrNotSquare) {
		t.Fatalf("err = %v, want ErrNotSquare", err)
	}
}

func TestAddSubScale(t *testing.T) {
	a, _ := FromRows([][]complex128{{1, 2i}})
	b, _ := FromRows([][]complex128{{3, -1i}})

	sum, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := sum.At(0, 0); got != 4 {
		t.Fatalf("sum[0,0] = %v, want 4", got)
	}
	if got := sum.At(0, 1); got != 1i {
		t.Fatalf("sum[0,1] = %v, want 1i", got)
	}

	diff, err := Sub(a, b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if got := diff.At(0, 0); got != -2 {
		t.Fatalf("diff[0,0] = %v, want -2", got)
	}

	sc := Scale(2i, a)
	if got := sc.At(0, 1); got != -4 {
		t.Fatalf("scale[0,1] = %v, want -4", got)
	}
}

func TestElemOps(t *testing.T) {
	a, _ := FromRows([][]complex128{{2, 6}})
	b, _ := FromRows([][]complex128{{4, 3}})

	prod, err := MulElem(a, b)
	if err != nil {
		t.Fatalf("MulElem: %v", err)
	}
	if got := prod.At(0, 0); got != 8 {
		t.Fatalf("prod[0,0] = %v, want 8", got)
	}

	quot, err := DivElem(a, b)
	if err != nil {
		t.Fatalf("DivElem: %v", err)
	}
	if got := quot.At(0, 1); got != 2 {
		t.Fatalf("quot[0,1] = %v, want 2", got)
	}
}

func TestTranspose(t *testing.T) {
	a, _ := FromRows([][]complex128{
		{1, 2, 3},
		{4, 5, 6},
	})
	at := Transpose(a)
	if at.Rows() != 3 || at.Cols() != 2 {
		t.Fatalf("shape = %dx%d, want 3x2", at.Rows(), at.Cols())
	}
	if got := at.At(2, 1); got != 6 {
		t.Fatalf("At(2,1) = %v, want 6", got)
	}
}

func TestRowParts(t *testing.T) {
	a, _ := FromRows([][]complex128{{3 + 4i, -1i}})
	re := make([]float64, 2)
	im := make([]float64, 2)
	a.RowParts(0, re, im)
	if re[0] != 3 || im[0] != 4 || re[1] != 0 || im[1] != -1 {
		t.Fatalf("RowParts = %v %v", re, im)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a, _ := FromRows([][]complex128{{1}})
	b := a.Clone()
	b.Set(0, 0, 9)
	if a.At(0, 0) != 1 {
		t.Fatalf("clone aliases source: %v", a.At(0, 0))
	}
}
